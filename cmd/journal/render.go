package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"daily-journal/internal/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const barWidth = 20

func renderStats(s *service.Stats) string {
	o := s.Overview
	overview := strings.Join([]string{
		headerStyle.Render("Overview"),
		row("Tasks", fmt.Sprintf("%d", o.TotalTasks)),
		row("Completed", fmt.Sprintf("%d", o.CompletedTasks)),
		row("Migrated", fmt.Sprintf("%d", o.MigratedTasks)),
		row("Completion", fmt.Sprintf("%d%%", o.CompletionRate)),
		row("Collections", fmt.Sprintf("%d", o.TotalCollections)),
		row("Streak", fmt.Sprintf("%d (best %d)", s.Streaks.Current, s.Streaks.Longest)),
	}, "\n")

	lines := []string{headerStyle.Render("Last 30 days")}
	if len(s.ProductivityTimeline) == 0 {
		lines = append(lines, labelStyle.Render("no daily pages"))
	}
	for _, day := range s.ProductivityTimeline {
		lines = append(lines, fmt.Sprintf("%s %s %d/%d",
			labelStyle.Render(day.Date), bar(day.Completed, day.Total), day.Completed, day.Total))
	}
	timeline := strings.Join(lines, "\n")

	blocks := []string{panelStyle.Render(overview), panelStyle.Render(timeline)}
	if len(s.MoodDistribution) > 0 {
		blocks = append(blocks, panelStyle.Render(renderCounts("Moods", s.MoodDistribution)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderChallenges(catalog []service.Challenge) string {
	blocks := make([]string, 0, len(catalog))
	for _, c := range catalog {
		lines := []string{
			headerStyle.Render(c.Name) + " " + labelStyle.Render(c.ID),
			fmt.Sprintf("%d days · %s", c.Duration, c.Category),
		}
		for _, t := range c.Tasks {
			lines = append(lines, fmt.Sprintf("  • %s %s", t.Content, labelStyle.Render("("+string(t.Recurrence)+")")))
		}
		blocks = append(blocks, panelStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderCounts(title string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := []string{headerStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, row(k, fmt.Sprintf("%d", counts[k])))
	}
	return strings.Join(lines, "\n")
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
}

func bar(done, total int) string {
	if total <= 0 {
		return strings.Repeat("·", barWidth)
	}
	filled := done * barWidth / total
	return barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("·", barWidth-filled)
}
