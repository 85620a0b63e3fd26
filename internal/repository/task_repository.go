package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-journal/internal/model"
)

// Template is a recurring task together with the date of its owning entry.
type Template struct {
	model.Task
	AnchorDate string
}

// OwnedTask is a task with the entry fields needed for ownership and dating.
type OwnedTask struct {
	model.Task
	UserID    uint
	EntryDate string
	EntryType model.EntryType
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// CreateInstance inserts a generated instance unless the entry already holds
// one for the same template. It returns ErrConflict when the unique
// (entry_id, parent_task_id) index swallowed the insert.
func (r *TaskRepository) CreateInstance(ctx context.Context, task *model.Task) error {
	if task.ParentTaskID == nil {
		return fmt.Errorf("create instance: parent task is required")
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(task)
	if res.Error != nil {
		return fmt.Errorf("create instance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *TaskRepository) ListByEntry(ctx context.Context, entryID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("entry_id = ?", entryID).Order("position ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) CountByEntry(ctx context.Context, entryID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("entry_id = ?", entryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListTemplatesByUser returns every recurring task across all entries of the user.
func (r *TaskRepository) ListTemplatesByUser(ctx context.Context, userID uint) ([]Template, error) {
	var templates []Template
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.*, entries.date AS anchor_date").
		Joins("JOIN entries ON entries.id = tasks.entry_id").
		Where("entries.user_id = ? AND tasks.is_recurring = ? AND tasks.recurrence_pattern IS NOT NULL", userID, true).
		Order("entries.date ASC, tasks.position ASC, tasks.id ASC").
		Scan(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// FindOwned loads a task only when its entry belongs to userID.
func (r *TaskRepository) FindOwned(ctx context.Context, userID, taskID uint) (*OwnedTask, error) {
	var rows []OwnedTask
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.*, entries.user_id AS user_id, entries.date AS entry_date, entries.type AS entry_type").
		Joins("JOIN entries ON entries.id = tasks.entry_id").
		Where("tasks.id = ? AND entries.user_id = ?", taskID, userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// SetRecurring updates the recurrence fields of a single task. Instances
// generated earlier are left untouched.
func (r *TaskRepository) SetRecurring(ctx context.Context, taskID uint, pattern *model.RecurrencePattern) error {
	updates := map[string]interface{}{
		"is_recurring":       pattern != nil,
		"recurrence_pattern": pattern,
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("set recurring: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompletionFact is a completion row written together with a symbol change.
type CompletionFact struct {
	TaskID    uint
	Date      string
	Completed bool
}

// UpdateSymbol changes the symbol of a task. A non-nil fact is upserted in the
// same transaction, so neither write survives without the other.
func (r *TaskRepository) UpdateSymbol(ctx context.Context, taskID uint, symbol model.TaskSymbol, fact *CompletionFact) (*model.TaskCompletion, error) {
	var stored *model.TaskCompletion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).Where("id = ?", taskID).Update("symbol", symbol)
		if res.Error != nil {
			return fmt.Errorf("update symbol: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if fact == nil {
			return nil
		}
		var err error
		stored, err = NewCompletionRepository(tx).Upsert(ctx, fact.TaskID, fact.Date, fact.Completed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes a task. Generated instances keep their parent reference.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
