package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-journal/internal/model"
	"daily-journal/internal/service"
)

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /today [date] — open a daily page (\"tomorrow\", \"last friday\", 2024-03-05)\n" +
	"• /add [daily|weekly|monthly|yearly:] &lt;text&gt; — add a task for today\n" +
	"• /done &lt;id&gt; — mark a task complete\n" +
	"• /undo &lt;id&gt; — reopen a task\n" +
	"• /delete &lt;id&gt; — remove a task\n" +
	"• /recur &lt;id&gt; &lt;daily|weekly|monthly|yearly|off&gt; — make a task repeat\n" +
	"• /task &lt;id&gt; — streak and completion rate of a task\n" +
	"• /stats — journal statistics\n" +
	"• /mood &lt;amazing|good|okay|bad|terrible&gt; [note] — log your mood\n" +
	"• /challenges — list challenge templates\n" +
	"• /challenge &lt;id&gt; [date] — start a challenge\n" +
	"• /report — send today's summary"

func (b *Bot) handleStart(chatID int64, from *tgbotapi.User) error {
	name := strings.TrimSpace(from.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>I keep your bullet journal: daily pages, recurring habits and streaks.</b>\n\n%s",
		html.EscapeString(name), helpText)
	return b.sendText(chatID, text)
}

func (b *Bot) handleToday(ctx context.Context, chatID int64, user *model.User, args string) error {
	date, err := parseDay(args, b.svc.Clock.Today())
	if err != nil {
		return b.sendText(chatID, "⚠️ "+html.EscapeString(err.Error()))
	}
	return b.sendDay(ctx, chatID, user, date)
}

func (b *Bot) sendDay(ctx context.Context, chatID int64, user *model.User, date string) error {
	view, err := b.svc.Reminders.Day(ctx, user.ID, date)
	if err != nil {
		return b.replyError(chatID, "load the page", err)
	}
	text := formatDay(view)
	if kb, ok := dayKeyboard(view.Tasks); ok {
		return b.sendWithReplyMarkup(chatID, text, kb)
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, user *model.User, args string) error {
	pattern, content := parseAddArgs(args)
	if content == "" {
		return b.sendText(chatID, "Write the task after the command, e.g. /add daily: Read 20 pages")
	}
	task, err := b.svc.Tasks.CreateTask(ctx, user.ID, service.TaskInput{
		Date:    model.FormatDate(b.svc.Clock.Today()),
		Content: content,
		Pattern: pattern,
	})
	if err != nil {
		return b.replyError(chatID, "add the task", err)
	}
	return b.sendText(chatID, "➕ Added:\n"+service.FormatTaskLine(*task))
}

func (b *Bot) handleSymbol(ctx context.Context, chatID int64, user *model.User, args string, symbol model.TaskSymbol) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return b.sendText(chatID, "Give the task number, e.g. /done 3")
	}
	res, err := b.svc.Tasks.SetState(ctx, user.ID, taskID, string(symbol))
	if err != nil {
		return b.replyError(chatID, "update the task", err)
	}

	text := fmt.Sprintf("Task #%d is now %s.", res.TaskID, res.Symbol)
	if res.Completion != nil && res.Completion.Completed {
		detail, err := b.svc.Tasks.Detail(ctx, user.ID, taskID)
		if err == nil {
			text += fmt.Sprintf("\n🔥 Streak: %d days", detail.Stats.CurrentStreak)
		}
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleRecur(ctx context.Context, chatID int64, user *model.User, args string) error {
	taskID, pattern, err := parseRecurArgs(args)
	if err != nil {
		return b.sendText(chatID, "Usage: /recur &lt;id&gt; &lt;daily|weekly|monthly|yearly|off&gt;")
	}
	res, err := b.svc.Tasks.SetRecurrence(ctx, user.ID, taskID, pattern)
	if err != nil {
		return b.replyError(chatID, "change the recurrence", err)
	}
	if !res.IsRecurring {
		return b.sendText(chatID, fmt.Sprintf("Task #%d no longer repeats. Copies already on your pages stay.", res.TaskID))
	}
	return b.sendText(chatID, fmt.Sprintf("♻️ Task #%d repeats %s.", res.TaskID, *res.RecurrencePattern))
}

func (b *Bot) handleDelete(ctx context.Context, chatID int64, user *model.User, args string) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return b.sendText(chatID, "Give the task number, e.g. /delete 3")
	}
	if err := b.svc.Tasks.Delete(ctx, user.ID, taskID); err != nil {
		return b.replyError(chatID, "delete the task", err)
	}
	return b.sendText(chatID, fmt.Sprintf("🗑 Task #%d deleted.", taskID))
}

func (b *Bot) handleTask(ctx context.Context, chatID int64, user *model.User, args string) error {
	taskID, err := parseTaskID(args)
	if err != nil {
		return b.sendText(chatID, "Give the task number, e.g. /task 3")
	}
	detail, err := b.svc.Tasks.Detail(ctx, user.ID, taskID)
	if err != nil {
		return b.replyError(chatID, "load the task", err)
	}
	return b.sendText(chatID, formatDetail(detail))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64, user *model.User) error {
	stats, err := b.svc.Stats.Get(ctx, user.ID)
	if err != nil {
		return b.replyError(chatID, "build statistics", err)
	}
	return b.sendText(chatID, formatStats(stats))
}

func (b *Bot) handleMood(ctx context.Context, chatID int64, user *model.User, args string) error {
	mood, note := splitFirst(args)
	if mood == "" {
		return b.sendText(chatID, "Usage: /mood &lt;amazing|good|okay|bad|terrible&gt; [note]")
	}
	entry, err := b.svc.Moods.Record(ctx, user.ID, service.MoodInput{Mood: mood, Note: note})
	if err != nil {
		return b.replyError(chatID, "log the mood", err)
	}
	return b.sendText(chatID, fmt.Sprintf("%s Mood logged for %s at %s.", moodIcon(entry.Mood), entry.Date, entry.Time))
}

func (b *Bot) handleChallenge(ctx context.Context, chatID int64, user *model.User, args string) error {
	id, rest := splitFirst(args)
	if id == "" {
		return b.sendText(chatID, "Pick a challenge from /challenges, e.g. /challenge 21-day-meditation")
	}
	start, err := parseDay(rest, b.svc.Clock.Today())
	if err != nil {
		return b.sendText(chatID, "⚠️ "+html.EscapeString(err.Error()))
	}
	res, err := b.svc.Templates.Apply(ctx, user.ID, id, start)
	if err != nil {
		return b.replyError(chatID, "start the challenge", err)
	}
	return b.sendText(chatID, fmt.Sprintf("🏆 <b>%s</b> starts on %s with %d recurring tasks.",
		html.EscapeString(res.Challenge), res.StartDate, res.TasksCreated))
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, user *model.User) error {
	text, err := b.svc.Reminders.DailySummary(ctx, *user)
	if err != nil {
		return b.replyError(chatID, "build the report", err)
	}
	return b.sendText(chatID, text)
}
