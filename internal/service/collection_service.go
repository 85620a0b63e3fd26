package service

import (
	"context"
	"strings"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

// CollectionService provides helpers around collections.
type CollectionService struct {
	repo *repository.CollectionRepository
}

func NewCollectionService(repo *repository.CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

func (s *CollectionService) Create(ctx context.Context, userID uint, name, description string) (*model.Collection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "collection name is required")
	}
	return s.repo.GetOrCreate(ctx, userID, name, strings.TrimSpace(description))
}

func (s *CollectionService) List(ctx context.Context, userID uint) ([]model.Collection, error) {
	return s.repo.ListByUser(ctx, userID)
}
