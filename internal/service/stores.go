package service

import (
	"context"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

// EntryStore is the slice of the entry repository the services depend on.
type EntryStore interface {
	FindOrCreate(ctx context.Context, userID uint, date string, entryType model.EntryType) (*model.Entry, error)
}

// TaskStore is the slice of the task repository the services depend on.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	CreateInstance(ctx context.Context, task *model.Task) error
	ListByEntry(ctx context.Context, entryID uint) ([]model.Task, error)
	CountByEntry(ctx context.Context, entryID uint) (int, error)
	ListTemplatesByUser(ctx context.Context, userID uint) ([]repository.Template, error)
	FindOwned(ctx context.Context, userID, taskID uint) (*repository.OwnedTask, error)
	SetRecurring(ctx context.Context, taskID uint, pattern *model.RecurrencePattern) error
	UpdateSymbol(ctx context.Context, taskID uint, symbol model.TaskSymbol, fact *repository.CompletionFact) (*model.TaskCompletion, error)
	Delete(ctx context.Context, taskID uint) error
}

// CompletionStore persists completion facts.
type CompletionStore interface {
	Upsert(ctx context.Context, taskID uint, date string, completed bool) (*model.TaskCompletion, error)
	Delete(ctx context.Context, taskID uint, date string) error
	ListByTask(ctx context.Context, taskID uint) ([]model.TaskCompletion, error)
	ListByTaskInRange(ctx context.Context, taskID uint, start, end string) ([]model.TaskCompletion, error)
}

var (
	_ EntryStore      = (*repository.EntryRepository)(nil)
	_ TaskStore       = (*repository.TaskRepository)(nil)
	_ CompletionStore = (*repository.CompletionRepository)(nil)
)
