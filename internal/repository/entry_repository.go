package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-journal/internal/model"
)

// EntryRepository manages journal entries.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// FindOrCreate returns the entry for (user, date, type), inserting it when
// absent. Concurrent callers converge on the same row through the unique
// (user_id, date, type) index.
func (r *EntryRepository) FindOrCreate(ctx context.Context, userID uint, date string, entryType model.EntryType) (*model.Entry, error) {
	db := r.db.WithContext(ctx)

	entry, err := r.find(db, userID, date, entryType)
	switch {
	case err == nil:
		return entry, nil
	case err != ErrNotFound:
		return nil, fmt.Errorf("find entry: %w", err)
	}

	created := model.Entry{UserID: userID, Date: date, Type: entryType}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	if created.ID != 0 {
		return &created, nil
	}

	entry, err = r.find(db, userID, date, entryType)
	if err != nil {
		return nil, fmt.Errorf("reload entry: %w", err)
	}
	return entry, nil
}

func (r *EntryRepository) find(db *gorm.DB, userID uint, date string, entryType model.EntryType) (*model.Entry, error) {
	var entry model.Entry
	err := db.Where("user_id = ? AND date = ? AND type = ?", userID, date, entryType).First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}
