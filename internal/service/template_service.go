package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"daily-journal/internal/model"
	"daily-journal/internal/recurrence"
)

//go:embed challenges.yaml
var defaultChallenges []byte

// ChallengeTask is one recurring task of a challenge.
type ChallengeTask struct {
	Content    string                  `yaml:"content" json:"content"`
	Recurrence model.RecurrencePattern `yaml:"recurrence" json:"recurrence"`
}

// Challenge is a named bundle of recurring tasks.
type Challenge struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Duration    int             `yaml:"duration" json:"duration"`
	Category    string          `yaml:"category" json:"category"`
	Tasks       []ChallengeTask `yaml:"tasks" json:"tasks"`
}

// ApplyResult reports the templates created from a challenge.
type ApplyResult struct {
	Challenge    string `json:"challenge"`
	StartDate    string `json:"startDate"`
	EntryID      uint   `json:"entryId"`
	TasksCreated int    `json:"tasksCreated"`
	TaskIDs      []uint `json:"taskIds"`
}

// LoadChallenges decodes and validates a YAML challenge catalog.
func LoadChallenges(r io.Reader) ([]Challenge, error) {
	var catalog []Challenge
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode challenges: %w", err)
	}
	seen := make(map[string]bool, len(catalog))
	for i, c := range catalog {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("challenge #%d: id is required", i+1)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("challenge %q: duplicate id", c.ID)
		}
		seen[c.ID] = true
		if len(c.Tasks) == 0 {
			return nil, fmt.Errorf("challenge %q: no tasks", c.ID)
		}
		for _, t := range c.Tasks {
			if _, err := recurrence.ParsePattern(string(t.Recurrence)); err != nil {
				return nil, fmt.Errorf("challenge %q task %q: %w", c.ID, t.Content, err)
			}
		}
	}
	return catalog, nil
}

// DefaultChallenges returns the built-in catalog.
func DefaultChallenges() []Challenge {
	catalog, err := LoadChallenges(bytes.NewReader(defaultChallenges))
	if err != nil {
		panic(fmt.Sprintf("built-in challenges: %v", err))
	}
	return catalog
}

// TemplateService bulk-creates recurring templates from challenges.
type TemplateService struct {
	entries EntryStore
	tasks   TaskStore
	catalog []Challenge
}

func NewTemplateService(entries EntryStore, tasks TaskStore, catalog []Challenge) *TemplateService {
	if catalog == nil {
		catalog = DefaultChallenges()
	}
	return &TemplateService{entries: entries, tasks: tasks, catalog: catalog}
}

func (s *TemplateService) List() []Challenge {
	return s.catalog
}

func (s *TemplateService) Get(id string) (*Challenge, error) {
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			return &s.catalog[i], nil
		}
	}
	return nil, fmt.Errorf("challenge %q: %w", id, ErrNotFound)
}

// Apply adds every task of the challenge as a recurring template to the
// user's daily entry on startDate, after the tasks already there.
func (s *TemplateService) Apply(ctx context.Context, userID uint, challengeID, startDate string) (*ApplyResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(challengeID) == "" {
		return nil, invalid("templateId", "template id is required")
	}
	start, err := parseDate("startDate", startDate)
	if err != nil {
		return nil, err
	}
	challenge, err := s.Get(challengeID)
	if err != nil {
		return nil, err
	}

	day := model.FormatDate(start)
	entry, err := s.entries.FindOrCreate(ctx, userID, day, model.EntryDaily)
	if err != nil {
		return nil, fmt.Errorf("load entry: %w", err)
	}
	position, err := s.tasks.CountByEntry(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("count entry tasks: %w", err)
	}

	result := &ApplyResult{Challenge: challenge.Name, StartDate: day, EntryID: entry.ID}
	for i, ct := range challenge.Tasks {
		pattern := ct.Recurrence
		task := model.Task{
			EntryID:           entry.ID,
			Content:           ct.Content,
			Symbol:            model.SymbolBullet,
			Position:          position + i,
			IsRecurring:       true,
			RecurrencePattern: &pattern,
		}
		if err := s.tasks.Create(ctx, &task); err != nil {
			return result, fmt.Errorf("challenge %q: %w", challenge.ID, err)
		}
		result.TaskIDs = append(result.TaskIDs, task.ID)
	}
	result.TasksCreated = len(result.TaskIDs)
	log.Printf("[info] challenge %q applied user=%d start=%s tasks=%d", challenge.ID, userID, day, result.TasksCreated)
	return result, nil
}
