package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"daily-journal/internal/model"
)

// EntryActivity is one entry with the number of tasks it holds.
type EntryActivity struct {
	EntryID   uint
	CreatedAt time.Time
	Tasks     int
}

// DayProductivity counts tasks of a daily entry.
type DayProductivity struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// StatsRepository runs the aggregate reads behind the dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Snapshot runs fn against a repository bound to a single read transaction,
// so all counts observed inside fn come from the same database state.
func (r *StatsRepository) Snapshot(ctx context.Context, fn func(tx *StatsRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StatsRepository{db: tx})
	})
}

type groupCount struct {
	Label string
	Count int
}

func toCounts(rows []groupCount) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out
}

// TaskCountsBySymbol counts all tasks of the user grouped by symbol.
func (r *StatsRepository) TaskCountsBySymbol(ctx context.Context, userID uint) (map[string]int, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.symbol AS label, COUNT(*) AS count").
		Joins("JOIN entries ON entries.id = tasks.entry_id").
		Where("entries.user_id = ?", userID).
		Group("tasks.symbol").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count tasks by symbol: %w", err)
	}
	return toCounts(rows), nil
}

func (r *StatsRepository) EntryCountsByType(ctx context.Context, userID uint) (map[string]int, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("entries").
		Select("type AS label, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count entries by type: %w", err)
	}
	return toCounts(rows), nil
}

func (r *StatsRepository) MoodCounts(ctx context.Context, userID uint) (map[string]int, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).
		Table("mood_entries").
		Select("mood AS label, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("mood").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count moods: %w", err)
	}
	return toCounts(rows), nil
}

func (r *StatsRepository) CollectionCount(ctx context.Context, userID uint) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Collection{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count collections: %w", err)
	}
	return int(count), nil
}

// EntryActivity lists every entry of the user with its creation time and task
// count. Bucketing by day happens in the caller, in the caller's time zone.
func (r *StatsRepository) EntryActivity(ctx context.Context, userID uint) ([]EntryActivity, error) {
	var rows []EntryActivity
	err := r.db.WithContext(ctx).
		Table("entries").
		Select("entries.id AS entry_id, entries.created_at AS created_at, COUNT(tasks.id) AS tasks").
		Joins("LEFT JOIN tasks ON tasks.entry_id = entries.id").
		Where("entries.user_id = ?", userID).
		Group("entries.id, entries.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("entry activity: %w", err)
	}
	return rows, nil
}

// MoodsBetween returns moods with from <= date <= to, newest first.
func (r *StatsRepository) MoodsBetween(ctx context.Context, userID uint, from, to string) ([]model.MoodEntry, error) {
	var moods []model.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC, time DESC, id DESC").
		Find(&moods).Error
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	return moods, nil
}

// DailyProductivity returns completed/total task counts of daily entries with
// from <= date <= to, oldest first.
func (r *StatsRepository) DailyProductivity(ctx context.Context, userID uint, from, to string) ([]DayProductivity, error) {
	var rows []DayProductivity
	err := r.db.WithContext(ctx).
		Table("entries").
		Select("entries.date AS date, COUNT(CASE WHEN tasks.symbol = ? THEN 1 END) AS completed, COUNT(tasks.id) AS total", model.SymbolComplete).
		Joins("LEFT JOIN tasks ON tasks.entry_id = entries.id").
		Where("entries.user_id = ? AND entries.type = ? AND entries.date >= ? AND entries.date <= ?", userID, model.EntryDaily, from, to).
		Group("entries.date").
		Order("entries.date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("daily productivity: %w", err)
	}
	return rows, nil
}
