package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"daily-journal/internal/model"
)

// MoodRepository stores mood entries.
type MoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

func (r *MoodRepository) Create(ctx context.Context, mood *model.MoodEntry) error {
	if err := r.db.WithContext(ctx).Create(mood).Error; err != nil {
		return fmt.Errorf("create mood: %w", err)
	}
	return nil
}

func (r *MoodRepository) ListByDate(ctx context.Context, userID uint, date string) ([]model.MoodEntry, error) {
	var moods []model.MoodEntry
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).
		Order("time ASC, id ASC").Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}
