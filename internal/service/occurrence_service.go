package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"daily-journal/internal/model"
	"daily-journal/internal/recurrence"
	"daily-journal/internal/repository"
)

// CreatedInstance summarises one generated task.
type CreatedInstance struct {
	ID         uint                    `json:"id"`
	Content    string                  `json:"content"`
	Pattern    model.RecurrencePattern `json:"pattern"`
	TemplateID uint                    `json:"templateId"`
}

// FailedTemplate reports a template whose instance could not be written.
type FailedTemplate struct {
	TemplateID uint   `json:"templateId"`
	Error      string `json:"error"`
}

// GenerateResult is the outcome of one generation pass for a date.
type GenerateResult struct {
	Date         string            `json:"date"`
	EntryID      uint              `json:"entryId"`
	CreatedCount int               `json:"createdCount"`
	Created      []CreatedInstance `json:"created"`
	Skipped      int               `json:"skipped"`
	Failed       []FailedTemplate  `json:"failed,omitempty"`
}

// Partial reports whether some due templates could not be materialised.
func (r GenerateResult) Partial() bool {
	return len(r.Failed) > 0
}

// OccurrenceService materialises due recurring templates into daily entries.
type OccurrenceService struct {
	entries EntryStore
	tasks   TaskStore
}

func NewOccurrenceService(entries EntryStore, tasks TaskStore) *OccurrenceService {
	return &OccurrenceService{entries: entries, tasks: tasks}
}

// Generate makes sure every template of the user that is due on date has
// exactly one instance in the user's daily entry for that date. It is safe
// to call repeatedly and concurrently: instances already present are
// skipped, and an insert that loses a race against another generator is
// absorbed by the store's unique (entry, template) index.
//
// A failure to write one instance does not stop the others; failed templates
// are listed in the result.
func (s *OccurrenceService) Generate(ctx context.Context, userID uint, date string) (*GenerateResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	target, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	day := model.FormatDate(target)

	entry, err := s.entries.FindOrCreate(ctx, userID, day, model.EntryDaily)
	if err != nil {
		log.Printf("[error] generate: entry user=%d date=%s: %v", userID, day, err)
		return nil, fmt.Errorf("load daily entry: %w", err)
	}

	templates, err := s.tasks.ListTemplatesByUser(ctx, userID)
	if err != nil {
		log.Printf("[error] generate: templates user=%d date=%s: %v", userID, day, err)
		return nil, fmt.Errorf("load templates: %w", err)
	}

	existing, err := s.tasks.ListByEntry(ctx, entry.ID)
	if err != nil {
		log.Printf("[error] generate: entry tasks user=%d date=%s entry=%d: %v", userID, day, entry.ID, err)
		return nil, fmt.Errorf("load entry tasks: %w", err)
	}

	result := &GenerateResult{Date: day, EntryID: entry.ID, Created: []CreatedInstance{}}
	position := len(existing)

	for _, tmpl := range templates {
		anchor, err := model.ParseDate(tmpl.AnchorDate)
		if err != nil {
			log.Printf("[warn] generate: template=%d has bad anchor %q: %v", tmpl.ID, tmpl.AnchorDate, err)
			result.Failed = append(result.Failed, FailedTemplate{TemplateID: tmpl.ID, Error: "invalid anchor date"})
			continue
		}
		if !recurrence.IsDue(anchor, tmpl.Pattern(), target) {
			continue
		}
		if alreadyGenerated(existing, tmpl.Task) {
			result.Skipped++
			continue
		}

		parentID := tmpl.TemplateID()
		instance := model.Task{
			EntryID:      entry.ID,
			Content:      tmpl.Content,
			Symbol:       model.SymbolBullet,
			Position:     position,
			IsRecurring:  false,
			ParentTaskID: &parentID,
		}
		err = s.tasks.CreateInstance(ctx, &instance)
		switch {
		case errors.Is(err, repository.ErrConflict):
			log.Printf("[info] generate: instance of template=%d already exists user=%d date=%s", parentID, userID, day)
			result.Skipped++
			continue
		case err != nil:
			log.Printf("[error] generate: create instance user=%d date=%s template=%d: %v", userID, day, tmpl.ID, err)
			result.Failed = append(result.Failed, FailedTemplate{TemplateID: tmpl.ID, Error: "could not create instance"})
			continue
		}

		existing = append(existing, instance)
		position++
		result.Created = append(result.Created, CreatedInstance{
			ID:         instance.ID,
			Content:    instance.Content,
			Pattern:    tmpl.Pattern(),
			TemplateID: parentID,
		})
	}

	result.CreatedCount = len(result.Created)
	if result.CreatedCount > 0 || result.Partial() {
		log.Printf("[info] generate: user=%d date=%s created=%d skipped=%d failed=%d",
			userID, day, result.CreatedCount, result.Skipped, len(result.Failed))
	}
	return result, nil
}

// alreadyGenerated reports whether the entry tasks already cover tmpl: either
// the template (or the task it originates from) lives in the entry, or an
// instance with the same content points at the same template.
func alreadyGenerated(existing []model.Task, tmpl model.Task) bool {
	templateID := tmpl.TemplateID()
	for _, t := range existing {
		if t.ID == tmpl.ID || t.ID == templateID {
			return true
		}
		if t.ParentTaskID != nil && *t.ParentTaskID == templateID && t.Content == tmpl.Content {
			return true
		}
	}
	return false
}
