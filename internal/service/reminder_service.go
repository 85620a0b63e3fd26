package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"daily-journal/internal/model"
)

// DayView is a daily entry after recurring instances were generated for it.
type DayView struct {
	Date       string
	EntryID    uint
	Tasks      []model.Task
	Generation *GenerateResult
}

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	occurrences *OccurrenceService
	tasks       TaskStore
	stats       *StatsService
	clock       Clock
}

func NewReminderService(occurrences *OccurrenceService, tasks TaskStore, stats *StatsService, clock Clock) *ReminderService {
	return &ReminderService{occurrences: occurrences, tasks: tasks, stats: stats, clock: clock}
}

// Day loads a daily entry the way a page view does: due recurring tasks are
// generated first, then the entry's tasks are read.
func (s *ReminderService) Day(ctx context.Context, userID uint, date string) (*DayView, error) {
	gen, err := s.occurrences.Generate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByEntry(ctx, gen.EntryID)
	if err != nil {
		return nil, fmt.Errorf("list day tasks: %w", err)
	}
	return &DayView{Date: gen.Date, EntryID: gen.EntryID, Tasks: tasks, Generation: gen}, nil
}

// DailySummary renders today's page and streak as Telegram HTML.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User) (string, error) {
	today := model.FormatDate(s.clock.Today())
	view, err := s.Day(ctx, user.ID, today)
	if err != nil {
		return "", err
	}
	stats, err := s.stats.Get(ctx, user.ID)
	if err != nil {
		return "", err
	}

	var open, done []model.Task
	for _, t := range view.Tasks {
		switch t.Symbol {
		case model.SymbolComplete:
			done = append(done, t)
		case model.SymbolBullet, model.SymbolScheduled:
			open = append(open, t)
		}
	}

	var builder strings.Builder
	builder.WriteString("📓 <b>Daily summary</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", view.Date))

	builder.WriteString("🔥 <b>Open tasks</b>\n")
	if len(open) == 0 {
		builder.WriteString("— nothing open\n")
	} else {
		for _, t := range open {
			builder.WriteString(FormatTaskLine(t))
		}
	}

	builder.WriteString(fmt.Sprintf("\n✅ Done today: %d of %d\n", len(done), len(view.Tasks)))
	builder.WriteString(fmt.Sprintf("📈 Streak: %d days (best %d)\n", stats.Streaks.Current, stats.Streaks.Longest))
	builder.WriteString(fmt.Sprintf("🎯 Completion rate: %d%%\n", stats.Overview.CompletionRate))

	return strings.TrimSpace(builder.String()), nil
}

// FormatTaskLine renders one task as a Telegram HTML line.
func FormatTaskLine(t model.Task) string {
	icon := symbolIcon(t.Symbol)
	suffix := ""
	switch {
	case t.IsRecurring:
		suffix = fmt.Sprintf(" <i>(%s)</i>", t.Pattern())
	case t.ParentTaskID != nil:
		suffix = " ♻️"
	}
	return fmt.Sprintf("%s <b>#%d</b> %s%s\n", icon, t.ID, html.EscapeString(strings.TrimSpace(t.Content)), suffix)
}

func symbolIcon(symbol model.TaskSymbol) string {
	switch symbol {
	case model.SymbolComplete:
		return "✅"
	case model.SymbolMigrated:
		return "➡️"
	case model.SymbolScheduled:
		return "📅"
	case model.SymbolNote:
		return "📝"
	case model.SymbolEvent:
		return "⭐"
	default:
		return "•"
	}
}
