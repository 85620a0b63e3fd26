package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-journal/internal/model"
)

// CompletionRepository stores per-date completion facts of recurring tasks.
type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Upsert writes the fact for (task, date), overwriting the flag of an existing row.
func (r *CompletionRepository) Upsert(ctx context.Context, taskID uint, date string, completed bool) (*model.TaskCompletion, error) {
	db := r.db.WithContext(ctx)
	row := model.TaskCompletion{TaskID: taskID, Date: date, Completed: completed}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "task_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":  completed,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert completion: %w", err)
	}

	var stored model.TaskCompletion
	if err := db.Where("task_id = ? AND date = ?", taskID, date).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reload completion: %w", translate(err))
	}
	return &stored, nil
}

// Delete removes the fact for (task, date). Removing a missing fact is not an error.
func (r *CompletionRepository) Delete(ctx context.Context, taskID uint, date string) error {
	if err := r.db.WithContext(ctx).Where("task_id = ? AND date = ?", taskID, date).
		Delete(&model.TaskCompletion{}).Error; err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}
	return nil
}

// ListByTask returns all facts for a task, newest date first.
func (r *CompletionRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskCompletion, error) {
	var rows []model.TaskCompletion
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByTaskInRange returns facts with start <= date <= end, oldest first.
func (r *CompletionRepository) ListByTaskInRange(ctx context.Context, taskID uint, start, end string) ([]model.TaskCompletion, error) {
	var rows []model.TaskCompletion
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND date >= ? AND date <= ?", taskID, start, end).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
