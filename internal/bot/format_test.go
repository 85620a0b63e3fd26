package bot

import (
	"strings"
	"testing"
	"time"

	"daily-journal/internal/model"
	"daily-journal/internal/service"
)

func TestParseDay(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{"", "2024-03-10"},
		{" 2024-03-05 ", "2024-03-05"},
		{"tomorrow", "2024-03-11"},
		{"yesterday", "2024-03-09"},
	}
	for _, tc := range cases {
		got, err := parseDay(tc.in, today)
		if err != nil {
			t.Fatalf("parseDay(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseDay(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := parseDay("qwerty", today); err == nil {
		t.Fatal("expected an error for gibberish")
	}
}

func TestParseArgs(t *testing.T) {
	if id, err := parseTaskID(" #12 "); err != nil || id != 12 {
		t.Fatalf("parseTaskID = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "abc", "-1"} {
		if _, err := parseTaskID(bad); err == nil {
			t.Fatalf("parseTaskID(%q): expected error", bad)
		}
	}

	id, pattern, err := parseRecurArgs("7 Weekly")
	if err != nil || id != 7 || pattern != "weekly" {
		t.Fatalf("parseRecurArgs = %d %q %v", id, pattern, err)
	}
	if _, pattern, _ := parseRecurArgs("7 off"); pattern != "" {
		t.Fatalf("off must clear the pattern, got %q", pattern)
	}
	if _, _, err := parseRecurArgs("7"); err == nil {
		t.Fatal("expected error without pattern")
	}

	addCases := []struct{ in, pattern, content string }{
		{"daily: Read 20 pages", "daily", "Read 20 pages"},
		{"Call mom", "", "Call mom"},
		{"Note: buy milk", "", "Note: buy milk"},
	}
	for _, tc := range addCases {
		p, c := parseAddArgs(tc.in)
		if p != tc.pattern || c != tc.content {
			t.Fatalf("parseAddArgs(%q) = %q, %q", tc.in, p, c)
		}
	}

	if head, rest := splitFirst("good  long day"); head != "good" || rest != "long day" {
		t.Fatalf("splitFirst = %q, %q", head, rest)
	}
	if got := shortTitle("Stretch for ten minutes", 8); got != "Stretch…" {
		t.Fatalf("shortTitle = %q", got)
	}
}

func TestMenuCommand(t *testing.T) {
	if cmd, ok := menuCommand(menuLabelToday); !ok || cmd != "today" {
		t.Fatalf("menuCommand(today) = %q, %v", cmd, ok)
	}
	if _, ok := menuCommand("hello"); ok {
		t.Fatal("free text must not map to a command")
	}
}

func TestFormatDay(t *testing.T) {
	parent := uint(1)
	view := &service.DayView{
		Date: "2024-03-10",
		Tasks: []model.Task{
			{ID: 5, Content: "Run", Symbol: model.SymbolBullet, ParentTaskID: &parent},
			{ID: 6, Content: "Dentist", Symbol: model.SymbolEvent},
			{ID: 7, Content: "Pay rent", Symbol: model.SymbolComplete},
		},
		Generation: &service.GenerateResult{CreatedCount: 1, Failed: []service.FailedTemplate{{TemplateID: 2}}},
	}
	text := formatDay(view)
	for _, want := range []string{"2024-03-10", "1 recurring tasks added", "1 recurring tasks could not be added", "#5", "Dentist"} {
		if !strings.Contains(text, want) {
			t.Fatalf("formatDay missing %q:\n%s", want, text)
		}
	}

	kb, ok := dayKeyboard(view.Tasks)
	if !ok || len(kb.InlineKeyboard) != 2 {
		t.Fatalf("expected buttons for the bullet and the completed task, got %+v", kb)
	}
	if data := kb.InlineKeyboard[0][0].CallbackData; data == nil || *data != "done:5" {
		t.Fatalf("unexpected callback %v", data)
	}
	if data := kb.InlineKeyboard[1][0].CallbackData; data == nil || *data != "undo:7" {
		t.Fatalf("unexpected callback %v", data)
	}

	if _, ok := dayKeyboard([]model.Task{{ID: 1, Symbol: model.SymbolNote}}); ok {
		t.Fatal("notes do not get buttons")
	}
}

func TestFormatDetail(t *testing.T) {
	weekly := model.PatternWeekly
	detail := &service.TaskDetail{
		ID:                3,
		Content:           "Plan <week>",
		EntryDate:         "2024-03-01",
		Symbol:            model.SymbolBullet,
		IsRecurring:       true,
		RecurrencePattern: &weekly,
		TemplateID:        3,
		AnchorDate:        "2024-03-01",
		Stats:             service.TaskStats{TotalCompletions: 3, CurrentStreak: 1, LongestStreak: 2, CompletionRate: 75, DaysActive: 28},
		Upcoming:          []string{"2024-03-29"},
	}
	text := formatDetail(detail)
	for _, want := range []string{"Plan &lt;week&gt;", "Repeats weekly", "Rate: 75% over 28 days", "Next: 2024-03-29"} {
		if !strings.Contains(text, want) {
			t.Fatalf("formatDetail missing %q:\n%s", want, text)
		}
	}

	plain := &service.TaskDetail{ID: 4, Content: "Call", EntryDate: "2024-03-01", Symbol: model.SymbolBullet}
	if text := formatDetail(plain); !strings.Contains(text, "One-off task") || strings.Contains(text, "Streak") {
		t.Fatalf("plain task detail:\n%s", text)
	}
}

func TestFormatStats(t *testing.T) {
	stats := &service.Stats{
		Overview:         service.Overview{TotalTasks: 8, CompletedTasks: 6, MigratedTasks: 1, CompletionRate: 75},
		MoodDistribution: map[string]int{"good": 2, "bad": 1},
	}
	stats.Streaks.Current = 3
	stats.Streaks.Longest = 5
	text := formatStats(stats)
	for _, want := range []string{"Completion rate: 75%", "Streak: 3 days (best 5)", "🙁 1 🙂 2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("formatStats missing %q:\n%s", want, text)
		}
	}
}
