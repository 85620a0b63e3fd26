package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"daily-journal/internal/model"
	"daily-journal/internal/recurrence"
	"daily-journal/internal/repository"
	"daily-journal/internal/streak"
)

const upcomingPreview = 5

// TaskInput represents data required to create a task.
type TaskInput struct {
	Date      string
	EntryType model.EntryType
	Content   string
	Symbol    model.TaskSymbol
	Pattern   string
}

// RecurrenceResult is the recurrence state of a task after an update.
type RecurrenceResult struct {
	TaskID            uint                     `json:"taskId"`
	IsRecurring       bool                     `json:"isRecurring"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern"`
}

// StateResult is the outcome of a symbol change.
type StateResult struct {
	TaskID     uint                  `json:"taskId"`
	Symbol     model.TaskSymbol      `json:"symbol"`
	Completion *model.TaskCompletion `json:"completion,omitempty"`
}

// TaskStats are the per-task figures derived from completion history.
type TaskStats struct {
	TotalCompletions int `json:"totalCompletions"`
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	CompletionRate   int `json:"completionRate"`
	DaysActive       int `json:"daysActive"`
}

// TaskDetail is a task with its template metadata and derived stats.
type TaskDetail struct {
	ID                uint                     `json:"id"`
	EntryID           uint                     `json:"entryId"`
	EntryDate         string                   `json:"entryDate"`
	Content           string                   `json:"content"`
	Symbol            model.TaskSymbol         `json:"symbol"`
	IsRecurring       bool                     `json:"isRecurring"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern"`
	ParentTaskID      *uint                    `json:"parentTaskId"`
	TemplateID        uint                     `json:"templateId"`
	AnchorDate        string                   `json:"anchorDate"`
	CreatedAt         time.Time                `json:"createdAt"`
	Stats             TaskStats                `json:"stats"`
	Upcoming          []string                 `json:"upcoming,omitempty"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	entries     EntryStore
	tasks       TaskStore
	completions CompletionStore
	clock       Clock
}

func NewTaskService(entries EntryStore, tasks TaskStore, completions CompletionStore, clock Clock) *TaskService {
	return &TaskService{entries: entries, tasks: tasks, completions: completions, clock: clock}
}

// CreateTask appends a task to the user's entry for the given date and type.
// A non-empty pattern makes the task a recurring template anchored on that date.
func (s *TaskService) CreateTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, invalid("content", "content is required")
	}
	day, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	entryType := input.EntryType
	if entryType == "" {
		entryType = model.EntryDaily
	}
	if !entryType.Valid() {
		return nil, invalid("type", "unknown entry type %q", entryType)
	}
	symbol := input.Symbol
	if symbol == "" {
		symbol = model.SymbolBullet
	}
	if !symbol.Valid() {
		return nil, invalid("symbol", "unknown symbol %q", symbol)
	}

	var pattern *model.RecurrencePattern
	if strings.TrimSpace(input.Pattern) != "" {
		p, err := recurrence.ParsePattern(input.Pattern)
		if err != nil {
			return nil, invalid("pattern", "%v", err)
		}
		pattern = &p
	}

	entry, err := s.entries.FindOrCreate(ctx, userID, model.FormatDate(day), entryType)
	if err != nil {
		return nil, fmt.Errorf("load entry: %w", err)
	}
	position, err := s.tasks.CountByEntry(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("count entry tasks: %w", err)
	}

	task := model.Task{
		EntryID:           entry.ID,
		Content:           content,
		Symbol:            symbol,
		Position:          position,
		IsRecurring:       pattern != nil,
		RecurrencePattern: pattern,
		CreatedAt:         s.clock.now(),
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetRecurrence marks a task as a recurring template, or clears recurrence
// when pattern is empty. Instances generated earlier are not touched.
func (s *TaskService) SetRecurrence(ctx context.Context, userID, taskID uint, pattern string) (*RecurrenceResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireTask(taskID); err != nil {
		return nil, err
	}

	var p *model.RecurrencePattern
	if strings.TrimSpace(pattern) != "" {
		parsed, err := recurrence.ParsePattern(pattern)
		if err != nil {
			return nil, invalid("pattern", "%v", err)
		}
		p = &parsed
	}

	if _, err := s.tasks.FindOwned(ctx, userID, taskID); err != nil {
		return nil, fmt.Errorf("task %d: %w", taskID, err)
	}
	if err := s.tasks.SetRecurring(ctx, taskID, p); err != nil {
		return nil, err
	}
	log.Printf("[info] task=%d recurrence set to %v", taskID, patternLabel(p))
	return &RecurrenceResult{TaskID: taskID, IsRecurring: p != nil, RecurrencePattern: p}, nil
}

// SetState changes the symbol of a task. For recurring templates and their
// instances, moving to "complete" records a completion for the owning
// entry's date under the template id, and moving away from "complete"
// overwrites that fact with completed=false. Plain tasks produce no facts.
func (s *TaskService) SetState(ctx context.Context, userID, taskID uint, symbol string) (*StateResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireTask(taskID); err != nil {
		return nil, err
	}
	next := model.TaskSymbol(strings.ToLower(strings.TrimSpace(symbol)))
	if !next.Valid() {
		return nil, invalid("symbol", "unknown symbol %q", symbol)
	}

	task, err := s.tasks.FindOwned(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", taskID, err)
	}
	prev := task.Symbol
	tracked := task.IsRecurring || task.ParentTaskID != nil

	var fact *repository.CompletionFact
	if tracked && prev != next && (prev == model.SymbolComplete || next == model.SymbolComplete) {
		fact = &repository.CompletionFact{
			TaskID:    task.TemplateID(),
			Date:      task.EntryDate,
			Completed: next == model.SymbolComplete,
		}
	}

	completion, err := s.tasks.UpdateSymbol(ctx, taskID, next, fact)
	if err != nil {
		if fact != nil {
			log.Printf("[error] task=%d template=%d date=%s: record completion: %v", taskID, fact.TaskID, fact.Date, err)
			return nil, fmt.Errorf("record completion: %w", err)
		}
		return nil, err
	}
	return &StateResult{TaskID: taskID, Symbol: next, Completion: completion}, nil
}

// Delete removes a task owned by the user. Instances generated from a deleted
// template stay on their pages, as do its completion facts.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := requireTask(taskID); err != nil {
		return err
	}
	if _, err := s.tasks.FindOwned(ctx, userID, taskID); err != nil {
		return fmt.Errorf("task %d: %w", taskID, err)
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	log.Printf("[info] task=%d deleted by user=%d", taskID, userID)
	return nil
}

// Detail returns the task with the completion stats of its template.
func (s *TaskService) Detail(ctx context.Context, userID, taskID uint) (*TaskDetail, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := requireTask(taskID); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindOwned(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", taskID, err)
	}

	// Stats describe the template; an instance borrows them from its origin.
	tmpl := task
	if task.ParentTaskID != nil {
		origin, err := s.tasks.FindOwned(ctx, userID, *task.ParentTaskID)
		switch {
		case err == nil:
			tmpl = origin
		case errors.Is(err, repository.ErrNotFound):
			log.Printf("[warn] task=%d: template %d is gone", taskID, *task.ParentTaskID)
		default:
			return nil, fmt.Errorf("template %d: %w", *task.ParentTaskID, err)
		}
	}

	completions, err := s.completions.ListByTask(ctx, task.TemplateID())
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	detail := &TaskDetail{
		ID:                task.ID,
		EntryID:           task.EntryID,
		EntryDate:         task.EntryDate,
		Content:           task.Content,
		Symbol:            task.Symbol,
		IsRecurring:       task.IsRecurring,
		RecurrencePattern: task.RecurrencePattern,
		ParentTaskID:      task.ParentTaskID,
		TemplateID:        task.TemplateID(),
		AnchorDate:        tmpl.EntryDate,
		CreatedAt:         task.CreatedAt,
	}
	detail.Stats, err = s.taskStats(completions, tmpl.CreatedAt, tmpl.Pattern())
	if err != nil {
		return nil, err
	}

	if anchor, err := model.ParseDate(tmpl.EntryDate); err == nil && tmpl.Pattern() != "" {
		for _, d := range recurrence.NextDue(anchor, tmpl.Pattern(), s.clock.Today(), upcomingPreview) {
			detail.Upcoming = append(detail.Upcoming, model.FormatDate(d))
		}
	}
	return detail, nil
}

func (s *TaskService) taskStats(completions []model.TaskCompletion, createdAt time.Time, pattern model.RecurrencePattern) (TaskStats, error) {
	today := s.clock.Today()

	done := make([]string, 0, len(completions))
	for _, c := range completions {
		if c.Completed {
			done = append(done, c.Date)
		}
	}
	runs, err := streak.ComputeStrings(done, today)
	if err != nil {
		return TaskStats{}, fmt.Errorf("completion streak: %w", err)
	}

	daysActive := model.DaysBetween(s.clock.Day(createdAt), today) + 1
	if daysActive < 1 {
		daysActive = 1
	}
	expected := recurrence.ExpectedCompletions(pattern, daysActive)

	return TaskStats{
		TotalCompletions: len(done),
		CurrentStreak:    runs.Current,
		LongestStreak:    runs.Longest,
		CompletionRate:   recurrence.CompletionRate(len(done), expected),
		DaysActive:       daysActive,
	}, nil
}

func patternLabel(p *model.RecurrencePattern) string {
	if p == nil {
		return "none"
	}
	return string(*p)
}
