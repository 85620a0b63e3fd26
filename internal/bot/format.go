package bot

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"daily-journal/internal/model"
	"daily-journal/internal/service"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseDay resolves an ISO date or a natural-language phrase relative to
// today. An empty phrase means today.
func parseDay(text string, today time.Time) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.FormatDate(today), nil
	}
	if d, err := model.ParseDate(text); err == nil {
		return model.FormatDate(d), nil
	}
	res, err := dateParser.Parse(text, today)
	if err != nil {
		return "", fmt.Errorf("could not read date %q", text)
	}
	if res == nil {
		return "", fmt.Errorf("could not read date %q, try YYYY-MM-DD", text)
	}
	return model.FormatDate(res.Time), nil
}

func parseTaskID(text string) (uint, error) {
	value := strings.TrimPrefix(strings.TrimSpace(text), "#")
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", text)
	}
	return uint(id), nil
}

// parseRecurArgs reads "<id> <pattern|off>"; "off" and "none" clear the pattern.
func parseRecurArgs(text string) (uint, string, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, "", errors.New("expected task id and pattern")
	}
	id, err := parseTaskID(fields[0])
	if err != nil {
		return 0, "", err
	}
	pattern := strings.ToLower(fields[1])
	if pattern == "off" || pattern == "none" {
		pattern = ""
	}
	return id, pattern, nil
}

// parseAddArgs splits an optional "pattern:" prefix from the task text.
func parseAddArgs(text string) (string, string) {
	text = strings.TrimSpace(text)
	if head, rest, ok := strings.Cut(text, ":"); ok {
		if p := model.RecurrencePattern(strings.ToLower(strings.TrimSpace(head))); p.Valid() {
			return string(p), strings.TrimSpace(rest)
		}
	}
	return "", text
}

func splitFirst(text string) (string, string) {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return text, ""
	}
	return text[:idx], strings.TrimSpace(text[idx:])
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(title)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func formatDay(view *service.DayView) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📅 <b>%s</b>\n", view.Date))
	if gen := view.Generation; gen != nil && gen.CreatedCount > 0 {
		builder.WriteString(fmt.Sprintf("♻️ %d recurring tasks added\n", gen.CreatedCount))
	}
	if gen := view.Generation; gen != nil && gen.Partial() {
		builder.WriteString(fmt.Sprintf("⚠️ %d recurring tasks could not be added\n", len(gen.Failed)))
	}
	builder.WriteByte('\n')

	if len(view.Tasks) == 0 {
		builder.WriteString("Nothing here yet. Add a task with /add.")
		return builder.String()
	}
	for _, t := range view.Tasks {
		builder.WriteString(service.FormatTaskLine(t))
	}
	return strings.TrimSpace(builder.String())
}

func formatDetail(d *service.TaskDetail) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("<b>#%d</b> %s\n", d.ID, html.EscapeString(d.Content)))
	builder.WriteString(fmt.Sprintf("🗓 %s · %s\n", d.EntryDate, d.Symbol))

	switch {
	case d.IsRecurring && d.RecurrencePattern != nil:
		builder.WriteString(fmt.Sprintf("♻️ Repeats %s since %s\n", *d.RecurrencePattern, d.AnchorDate))
	case d.ParentTaskID != nil:
		builder.WriteString(fmt.Sprintf("♻️ Copy of #%d (since %s)\n", d.TemplateID, d.AnchorDate))
	default:
		builder.WriteString("One-off task\n")
		return strings.TrimSpace(builder.String())
	}

	s := d.Stats
	builder.WriteString(fmt.Sprintf("\n✅ Completions: %d\n", s.TotalCompletions))
	builder.WriteString(fmt.Sprintf("🔥 Streak: %d (best %d)\n", s.CurrentStreak, s.LongestStreak))
	builder.WriteString(fmt.Sprintf("🎯 Rate: %d%% over %d days\n", s.CompletionRate, s.DaysActive))
	if len(d.Upcoming) > 0 {
		builder.WriteString("⏭ Next: " + strings.Join(d.Upcoming, ", "))
	}
	return strings.TrimSpace(builder.String())
}

func formatStats(s *service.Stats) string {
	o := s.Overview
	var builder strings.Builder
	builder.WriteString("📈 <b>Your journal</b>\n")
	builder.WriteString(fmt.Sprintf("Tasks: %d · done %d · migrated %d\n", o.TotalTasks, o.CompletedTasks, o.MigratedTasks))
	builder.WriteString(fmt.Sprintf("Completion rate: %d%%\n", o.CompletionRate))
	builder.WriteString(fmt.Sprintf("Collections: %d\n", o.TotalCollections))
	builder.WriteString(fmt.Sprintf("🔥 Streak: %d days (best %d)\n", s.Streaks.Current, s.Streaks.Longest))
	builder.WriteString(fmt.Sprintf("Active days this month: %d\n", len(s.RecentActivity)))

	if len(s.MoodDistribution) > 0 {
		moods := make([]string, 0, len(s.MoodDistribution))
		for mood := range s.MoodDistribution {
			moods = append(moods, mood)
		}
		sort.Strings(moods)
		parts := make([]string, 0, len(moods))
		for _, mood := range moods {
			parts = append(parts, fmt.Sprintf("%s %d", moodIcon(model.MoodType(mood)), s.MoodDistribution[mood]))
		}
		builder.WriteString("Moods: " + strings.Join(parts, " "))
	}
	return strings.TrimSpace(builder.String())
}

func formatChallenges(catalog []service.Challenge) string {
	var builder strings.Builder
	builder.WriteString("🏆 <b>Challenges</b>\n")
	for _, c := range catalog {
		builder.WriteString(fmt.Sprintf("\n<b>%s</b> (<code>%s</code>, %d days)\n%s\n",
			html.EscapeString(c.Name), html.EscapeString(c.ID), c.Duration, html.EscapeString(c.Description)))
	}
	builder.WriteString("\nStart one with /challenge &lt;id&gt;")
	return builder.String()
}

func moodIcon(m model.MoodType) string {
	switch m {
	case model.MoodAmazing:
		return "🤩"
	case model.MoodGood:
		return "🙂"
	case model.MoodOkay:
		return "😐"
	case model.MoodBad:
		return "🙁"
	case model.MoodTerrible:
		return "😫"
	default:
		return "•"
	}
}
