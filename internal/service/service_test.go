package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

type harness struct {
	db          *gorm.DB
	entries     *repository.EntryRepository
	tasks       *repository.TaskRepository
	completions *repository.CompletionRepository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "service-test.db"), io.Discard)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &harness{
		db:          db,
		entries:     repository.NewEntryRepository(db),
		tasks:       repository.NewTaskRepository(db),
		completions: repository.NewCompletionRepository(db),
	}
}

func (h *harness) taskService(clock Clock) *TaskService {
	return NewTaskService(h.entries, h.tasks, h.completions, clock)
}

func utcAt(year int, month time.Month, day, hour int) Clock {
	return FixedClock(time.Date(year, month, day, hour, 0, 0, 0, time.UTC))
}

func mustCreateTask(t *testing.T, svc *TaskService, userID uint, input TaskInput) *model.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("create task %q: %v", input.Content, err)
	}
	return task
}

func mustGenerate(t *testing.T, svc *OccurrenceService, userID uint, date string) *GenerateResult {
	t.Helper()
	res, err := svc.Generate(context.Background(), userID, date)
	if err != nil {
		t.Fatalf("generate %s: %v", date, err)
	}
	return res
}
