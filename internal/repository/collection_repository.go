package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-journal/internal/model"
)

// CollectionRepository manages named collections.
type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) GetOrCreate(ctx context.Context, userID uint, name, description string) (*model.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}

	var collection model.Collection
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ? AND name = ?", userID, name).First(&collection).Error
	switch {
	case err == nil:
		return &collection, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		collection = model.Collection{UserID: userID, Name: name, Description: description}
		if err := db.Create(&collection).Error; err != nil {
			return nil, fmt.Errorf("create collection: %w", err)
		}
		return &collection, nil
	default:
		return nil, fmt.Errorf("find collection: %w", err)
	}
}

func (r *CollectionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}
