package service

import (
	"context"
	"errors"
	"testing"

	"daily-journal/internal/repository"
)

func TestCollectionCreateIsPerUserAndIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := NewCollectionService(repository.NewCollectionRepository(h.db))

	first, err := svc.Create(ctx, 1, "Reading list", "books for 2024")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, 1, "  Reading list ", "")
	if err != nil {
		t.Fatalf("create again: %v", err)
	}
	if second.ID != first.ID || second.Description != "books for 2024" {
		t.Fatalf("expected existing collection %+v, got %+v", first, second)
	}
	if _, err := svc.Create(ctx, 2, "Reading list", ""); err != nil {
		t.Fatalf("other user: %v", err)
	}

	if _, err := svc.Create(ctx, 1, " ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: expected validation error, got %v", err)
	}
	if _, err := svc.Create(ctx, 0, "Goals", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("no user: expected validation error, got %v", err)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Reading list" {
		t.Fatalf("unexpected collections %+v", list)
	}
}
