package service

import (
	"context"
	"fmt"

	"daily-journal/internal/model"
)

// CompletionService records whether a recurring task was done on a date.
// Facts are keyed by the canonical template id, so an instance id and its
// template id address the same history.
type CompletionService struct {
	completions CompletionStore
	tasks       TaskStore
}

func NewCompletionService(completions CompletionStore, tasks TaskStore) *CompletionService {
	return &CompletionService{completions: completions, tasks: tasks}
}

// Record upserts the (task, date) fact; recording again overwrites the flag.
func (s *CompletionService) Record(ctx context.Context, userID, taskID uint, date string, completed bool) (*model.TaskCompletion, error) {
	templateID, day, err := s.check(ctx, userID, taskID, date)
	if err != nil {
		return nil, err
	}
	row, err := s.completions.Upsert(ctx, templateID, day, completed)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	return row, nil
}

// Delete removes the (task, date) fact, undoing a completion.
func (s *CompletionService) Delete(ctx context.Context, userID, taskID uint, date string) error {
	templateID, day, err := s.check(ctx, userID, taskID, date)
	if err != nil {
		return err
	}
	if err := s.completions.Delete(ctx, templateID, day); err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

// List returns the facts of a task, newest date first.
func (s *CompletionService) List(ctx context.Context, userID, taskID uint) ([]model.TaskCompletion, error) {
	templateID, err := s.checkTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.completions.ListByTask(ctx, templateID)
}

// ListRange returns the facts of a task with start <= date <= end, oldest first.
func (s *CompletionService) ListRange(ctx context.Context, userID, taskID uint, start, end string) ([]model.TaskCompletion, error) {
	from, err := parseDate("startDate", start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("endDate", end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, invalid("endDate", "must not precede startDate")
	}
	templateID, err := s.checkTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.completions.ListByTaskInRange(ctx, templateID, model.FormatDate(from), model.FormatDate(to))
}

func (s *CompletionService) check(ctx context.Context, userID, taskID uint, date string) (uint, string, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return 0, "", err
	}
	templateID, err := s.checkTask(ctx, userID, taskID)
	if err != nil {
		return 0, "", err
	}
	return templateID, model.FormatDate(day), nil
}

// checkTask verifies ownership and resolves the id facts are stored under.
func (s *CompletionService) checkTask(ctx context.Context, userID, taskID uint) (uint, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	if err := requireTask(taskID); err != nil {
		return 0, err
	}
	task, err := s.tasks.FindOwned(ctx, userID, taskID)
	if err != nil {
		return 0, fmt.Errorf("task %d: %w", taskID, err)
	}
	return task.TemplateID(), nil
}
