package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"daily-journal/internal/api"
	"daily-journal/internal/bot"
	"daily-journal/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the Telegram bot and scheduled reports",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(api.Services{
		Occurrences: a.occurrences,
		Tasks:       a.tasks,
		Completions: a.completions,
		Stats:       a.stats,
		Moods:       a.moods,
		Templates:   a.templates,
		Collections: a.collections,
		Clock:       a.clock,
	})
	httpServer := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Printf("[info] http listening on %s", a.cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.cfg.BotEnabled() {
		telegramBot, err := bot.New(a.cfg.TelegramToken, bot.Services{
			Users:     a.users,
			Tasks:     a.tasks,
			Reminders: a.reminders,
			Stats:     a.stats,
			Moods:     a.moods,
			Templates: a.templates,
			Clock:     a.clock,
		})
		if err != nil {
			return err
		}

		scheduler := service.NewSchedulerService(a.cfg.Location, 30*time.Second)
		if _, err := scheduler.ScheduleDaily("daily-report", a.cfg.ReportTime, telegramBot.SendDailyReports); err != nil {
			return err
		}
		if a.cfg.ReportInterval > 0 {
			if _, err := scheduler.ScheduleInterval("interval-report", a.cfg.ReportInterval, telegramBot.SendDailyReports); err != nil {
				return err
			}
		}
		scheduler.Start()
		defer scheduler.Stop()

		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	} else {
		log.Println("[info] TELEGRAM_TOKEN not set, bot disabled")
	}

	log.Println("[info] journal started")
	select {
	case <-ctx.Done():
	case err = <-errCh:
		log.Printf("[error] %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Printf("[warn] http shutdown: %v", shutdownErr)
	}
	log.Println("[info] shutdown complete")
	return err
}
