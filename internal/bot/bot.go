package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-journal/internal/model"
	"daily-journal/internal/repository"
	"daily-journal/internal/service"
)

const (
	cbDonePrefix = "done:"
	cbUndoPrefix = "undo:"
)

const (
	menuLabelToday      = "📅 Today"
	menuLabelStats      = "📈 Stats"
	menuLabelChallenges = "🏆 Challenges"
	menuLabelHelp       = "ℹ️ Help"
)

// Services are the journal operations the bot presents.
type Services struct {
	Users     *repository.UserRepository
	Tasks     *service.TaskService
	Reminders *service.ReminderService
	Stats     *service.StatsService
	Moods     *service.MoodService
	Templates *service.TemplateService
	Clock     service.Clock
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api *tgbotapi.BotAPI
	svc Services
}

func New(token string, svc Services) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{api: api, svc: svc}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("[error] handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("[error] handle message: %v", err)
			}
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg, msg.Command(), msg.CommandArguments())
	}

	if command, ok := menuCommand(msg.Text); ok {
		return b.handleCommand(ctx, msg, command, "")
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Try /today to open your daily page or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, command, args string) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	chatID := msg.Chat.ID

	switch command {
	case "start":
		return b.handleStart(chatID, msg.From)
	case "help":
		return b.sendText(chatID, helpText)
	case "today":
		return b.handleToday(ctx, chatID, user, args)
	case "add":
		return b.handleAdd(ctx, chatID, user, args)
	case "done":
		return b.handleSymbol(ctx, chatID, user, args, model.SymbolComplete)
	case "undo":
		return b.handleSymbol(ctx, chatID, user, args, model.SymbolBullet)
	case "delete":
		return b.handleDelete(ctx, chatID, user, args)
	case "recur":
		return b.handleRecur(ctx, chatID, user, args)
	case "task":
		return b.handleTask(ctx, chatID, user, args)
	case "stats":
		return b.handleStats(ctx, chatID, user)
	case "mood":
		return b.handleMood(ctx, chatID, user, args)
	case "challenges":
		return b.sendText(chatID, formatChallenges(b.svc.Templates.List()))
	case "challenge":
		return b.handleChallenge(ctx, chatID, user, args)
	case "report":
		return b.handleReport(ctx, chatID, user)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("[warn] callback ack: %v", err)
	}

	var symbol model.TaskSymbol
	var prefix string
	switch {
	case strings.HasPrefix(cb.Data, cbDonePrefix):
		symbol, prefix = model.SymbolComplete, cbDonePrefix
	case strings.HasPrefix(cb.Data, cbUndoPrefix):
		symbol, prefix = model.SymbolBullet, cbUndoPrefix
	default:
		return nil
	}
	log.Printf("[info] callback %s user=%d", cb.Data, cb.From.ID)

	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return err
	}
	return b.handleSymbol(ctx, cb.Message.Chat.ID, user, strings.TrimPrefix(cb.Data, prefix), symbol)
}

// SendDailyReports sends a summary to every user known to the bot.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	users, err := b.svc.Users.ListWithTelegram(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if user.TelegramID == nil {
			continue
		}
		text, err := b.svc.Reminders.DailySummary(ctx, user)
		if err != nil {
			log.Printf("[error] build summary for user %d: %v", user.ID, err)
			continue
		}
		if err := b.sendText(*user.TelegramID, text); err != nil {
			log.Printf("[error] send summary to %d: %v", *user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.svc.Users.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

// replyError answers with the validation message, a not-found notice, or a
// generic failure; the latter is logged in full.
func (b *Bot) replyError(chatID int64, action string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return b.sendText(chatID, "⚠️ "+html.EscapeString(verr.Message))
	case errors.Is(err, service.ErrNotFound):
		return b.sendText(chatID, "🔍 Not found. Check the id with /today.")
	default:
		log.Printf("[error] %s: %v", action, err)
		return b.sendText(chatID, fmt.Sprintf("Could not %s, please try again later.", action))
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func menuCommand(text string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case strings.ToLower(menuLabelToday):
		return "today", true
	case strings.ToLower(menuLabelStats):
		return "stats", true
	case strings.ToLower(menuLabelChallenges):
		return "challenges", true
	case strings.ToLower(menuLabelHelp):
		return "help", true
	default:
		return "", false
	}
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelStats),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelChallenges),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

// dayKeyboard offers a toggle button per actionable task.
func dayKeyboard(tasks []model.Task) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range tasks {
		var btn tgbotapi.InlineKeyboardButton
		switch t.Symbol {
		case model.SymbolBullet, model.SymbolScheduled:
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("✅ #%d · %s", t.ID, shortTitle(t.Content, 24)),
				cbDonePrefix+strconv.FormatUint(uint64(t.ID), 10))
		case model.SymbolComplete:
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("↩️ #%d · %s", t.ID, shortTitle(t.Content, 24)),
				cbUndoPrefix+strconv.FormatUint(uint64(t.ID), 10))
		default:
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
