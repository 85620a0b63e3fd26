package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
)

// MoodInput is a mood to log; Time defaults to the current clock time.
type MoodInput struct {
	Date string
	Time string
	Mood string
	Note string
}

// MoodService logs moods.
type MoodService struct {
	repo  *repository.MoodRepository
	clock Clock
}

func NewMoodService(repo *repository.MoodRepository, clock Clock) *MoodService {
	return &MoodService{repo: repo, clock: clock}
}

func (s *MoodService) Record(ctx context.Context, userID uint, input MoodInput) (*model.MoodEntry, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	mood := model.MoodType(strings.ToLower(strings.TrimSpace(input.Mood)))
	if !mood.Valid() {
		return nil, invalid("mood", "unknown mood %q", input.Mood)
	}

	now := s.clock.now()
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = model.FormatDate(now)
	}
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	clock := strings.TrimSpace(input.Time)
	if clock == "" {
		clock = now.Format("15:04")
	} else if _, err := time.Parse("15:04", clock); err != nil {
		return nil, invalid("time", "expected HH:MM, got %q", clock)
	}

	entry := model.MoodEntry{
		UserID: userID,
		Date:   model.FormatDate(day),
		Time:   clock,
		Mood:   mood,
		Note:   strings.TrimSpace(input.Note),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("record mood: %w", err)
	}
	return &entry, nil
}

func (s *MoodService) ListByDate(ctx context.Context, userID uint, date string) ([]model.MoodEntry, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, userID, model.FormatDate(day))
}
