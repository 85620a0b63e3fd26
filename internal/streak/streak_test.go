package streak

import (
	"testing"
	"time"

	"daily-journal/internal/model"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := model.ParseDate(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func TestComputeStrings(t *testing.T) {
	history := []string{"2024-03-05", "2024-03-04", "2024-03-03", "2024-03-01"}

	cases := []struct {
		name      string
		dates     []string
		reference string
		want      Result
	}{
		{"empty", nil, "2024-03-05", Result{0, 0}},
		{"single today", []string{"2024-03-05"}, "2024-03-05", Result{1, 1}},
		{"single yesterday", []string{"2024-03-04"}, "2024-03-05", Result{1, 1}},
		{"single stale", []string{"2024-03-01"}, "2024-03-05", Result{0, 1}},
		{"run ending today", history, "2024-03-05", Result{3, 3}},
		{"run ending yesterday", history, "2024-03-06", Result{3, 3}},
		{"gap breaks current", history, "2024-03-07", Result{0, 3}},
		{
			"longest is older run",
			[]string{"2024-03-10", "2024-03-09", "2024-03-05", "2024-03-04", "2024-03-03", "2024-03-02"},
			"2024-03-10",
			Result{2, 4},
		},
		{
			"unsorted with duplicates",
			[]string{"2024-03-03", "2024-03-05", "2024-03-04", "2024-03-05"},
			"2024-03-05",
			Result{3, 3},
		},
		{"month boundary", []string{"2024-03-01", "2024-02-29", "2024-02-28"}, "2024-03-01", Result{3, 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeStrings(tc.dates, mustDate(t, tc.reference))
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeRejectsBadDate(t *testing.T) {
	if _, err := ComputeStrings([]string{"2024-13-01"}, time.Now()); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestComputeUsesCalendarDays(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	dates := []time.Time{
		time.Date(2024, 3, 5, 0, 30, 0, 0, loc),
		time.Date(2024, 3, 4, 23, 59, 0, 0, loc),
	}
	got := Compute(dates, time.Date(2024, 3, 5, 12, 0, 0, 0, loc))
	if got != (Result{Current: 2, Longest: 2}) {
		t.Fatalf("got %+v", got)
	}
}
