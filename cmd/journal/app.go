package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"daily-journal/internal/config"
	"daily-journal/internal/logging"
	"daily-journal/internal/repository"
	"daily-journal/internal/service"
)

// app holds the wired repositories and services shared by all commands.
type app struct {
	cfg   config.Config
	db    *gorm.DB
	clock service.Clock

	users       *repository.UserRepository
	occurrences *service.OccurrenceService
	tasks       *service.TaskService
	completions *service.CompletionService
	stats       *service.StatsService
	moods       *service.MoodService
	templates   *service.TemplateService
	collections *service.CollectionService
	reminders   *service.ReminderService

	closers []func() error
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logOut, closeLog, err := logging.Setup(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, logOut)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("db: %w", err)
	}

	a := &app{cfg: cfg, db: db, clock: service.SystemClock(cfg.Location)}
	a.closers = append(a.closers, closeLog)
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	catalog, err := loadCatalog(cfg.ChallengesFile)
	if err != nil {
		a.Close()
		return nil, err
	}

	entries := repository.NewEntryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	a.users = repository.NewUserRepository(db)
	a.occurrences = service.NewOccurrenceService(entries, taskRepo)
	a.tasks = service.NewTaskService(entries, taskRepo, completionRepo, a.clock)
	a.completions = service.NewCompletionService(completionRepo, taskRepo)
	a.stats = service.NewStatsService(repository.NewStatsRepository(db), a.clock)
	a.moods = service.NewMoodService(repository.NewMoodRepository(db), a.clock)
	a.templates = service.NewTemplateService(entries, taskRepo, catalog)
	a.collections = service.NewCollectionService(repository.NewCollectionRepository(db))
	a.reminders = service.NewReminderService(a.occurrences, taskRepo, a.stats, a.clock)

	return a, nil
}

func loadCatalog(path string) ([]service.Challenge, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("challenges file: %w", err)
	}
	defer f.Close()
	catalog, err := service.LoadChallenges(f)
	if err != nil {
		return nil, fmt.Errorf("challenges file %s: %w", path, err)
	}
	log.Printf("[info] loaded %d challenges from %s", len(catalog), path)
	return catalog, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[warn] close: %v", err)
		}
	}
}
