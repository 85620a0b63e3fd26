package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
	"daily-journal/internal/streak"
)

const (
	activityWindowDays = 30
	streakWindowDays   = 365
)

// Overview holds the all-time counters of the dashboard.
type Overview struct {
	TotalTasks       int `json:"totalTasks"`
	CompletedTasks   int `json:"completedTasks"`
	MigratedTasks    int `json:"migratedTasks"`
	CompletionRate   int `json:"completionRate"`
	TotalCollections int `json:"totalCollections"`
}

// DayActivity is the number of entries created on a day and the tasks they hold.
type DayActivity struct {
	Date    string `json:"date"`
	Entries int    `json:"entries"`
	Tasks   int    `json:"tasks"`
}

// MoodPoint is a logged mood in the dashboard window.
type MoodPoint struct {
	Date string         `json:"date"`
	Time string         `json:"time,omitempty"`
	Mood model.MoodType `json:"mood"`
	Note string         `json:"note,omitempty"`
}

// Stats is the dashboard payload.
type Stats struct {
	GeneratedAt          time.Time                    `json:"generatedAt"`
	Overview             Overview                     `json:"overview"`
	TasksBySymbol        map[string]int               `json:"tasksBySymbol"`
	EntriesByType        map[string]int               `json:"entriesByType"`
	RecentActivity       []DayActivity                `json:"recentActivity"`
	Streaks              streak.Result                `json:"streaks"`
	Moods                []MoodPoint                  `json:"moods"`
	MoodDistribution     map[string]int               `json:"moodDistribution"`
	ProductivityTimeline []repository.DayProductivity `json:"productivityTimeline"`
}

// StatsService builds dashboard statistics from the journal history.
type StatsService struct {
	repo  *repository.StatsRepository
	clock Clock
}

func NewStatsService(repo *repository.StatsRepository, clock Clock) *StatsService {
	return &StatsService{repo: repo, clock: clock}
}

// Get computes the dashboard for a user. Trailing windows are whole calendar
// days ending today (inclusive) in the service's time zone. All reads share
// one transaction so the counters agree with each other.
func (s *StatsService) Get(ctx context.Context, userID uint) (*Stats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	today := s.clock.Today()
	todayStr := model.FormatDate(today)
	windowStart := today.AddDate(0, 0, -(activityWindowDays - 1))
	streakStart := today.AddDate(0, 0, -(streakWindowDays - 1))

	out := &Stats{GeneratedAt: s.clock.now()}
	err := s.repo.Snapshot(ctx, func(tx *repository.StatsRepository) error {
		var err error
		if out.TasksBySymbol, err = tx.TaskCountsBySymbol(ctx, userID); err != nil {
			return err
		}
		if out.EntriesByType, err = tx.EntryCountsByType(ctx, userID); err != nil {
			return err
		}
		if out.MoodDistribution, err = tx.MoodCounts(ctx, userID); err != nil {
			return err
		}
		if out.Overview.TotalCollections, err = tx.CollectionCount(ctx, userID); err != nil {
			return err
		}

		activity, err := tx.EntryActivity(ctx, userID)
		if err != nil {
			return err
		}
		out.RecentActivity = s.recentActivity(activity, windowStart, today)
		out.Streaks = streak.Compute(s.activeDays(activity, streakStart, today), today)

		moods, err := tx.MoodsBetween(ctx, userID, model.FormatDate(windowStart), todayStr)
		if err != nil {
			return err
		}
		out.Moods = make([]MoodPoint, 0, len(moods))
		for _, m := range moods {
			out.Moods = append(out.Moods, MoodPoint{Date: m.Date, Time: m.Time, Mood: m.Mood, Note: m.Note})
		}

		out.ProductivityTimeline, err = tx.DailyProductivity(ctx, userID, model.FormatDate(windowStart), todayStr)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("stats user=%d: %w", userID, err)
	}

	out.Overview.TotalTasks = sumCounts(out.TasksBySymbol)
	out.Overview.CompletedTasks = out.TasksBySymbol[string(model.SymbolComplete)]
	out.Overview.MigratedTasks = out.TasksBySymbol[string(model.SymbolMigrated)]
	out.Overview.CompletionRate = percent(out.Overview.CompletedTasks, out.Overview.TotalTasks)
	if out.ProductivityTimeline == nil {
		out.ProductivityTimeline = []repository.DayProductivity{}
	}
	return out, nil
}

// recentActivity buckets entries by creation day, newest day first.
func (s *StatsService) recentActivity(rows []repository.EntryActivity, from, to time.Time) []DayActivity {
	byDay := make(map[string]*DayActivity)
	for _, row := range rows {
		day := s.clock.Day(row.CreatedAt)
		if day.Before(from) || day.After(to) {
			continue
		}
		key := model.FormatDate(day)
		bucket, ok := byDay[key]
		if !ok {
			bucket = &DayActivity{Date: key}
			byDay[key] = bucket
		}
		bucket.Entries++
		bucket.Tasks += row.Tasks
	}

	out := make([]DayActivity, 0, len(byDay))
	for _, bucket := range byDay {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// activeDays returns the distinct days in [from, to] on which an entry was created.
func (s *StatsService) activeDays(rows []repository.EntryActivity, from, to time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	days := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		day := s.clock.Day(row.CreatedAt)
		if day.Before(from) || day.After(to) || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
