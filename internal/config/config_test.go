package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "TELEGRAM_TOKEN", "HTTP_ADDR", "REPORT_INTERVAL_HOURS", "REPORT_TIME", "TIMEZONE", "LOG_FILE", "CHALLENGES_FILE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "journal.db" || cfg.HTTPAddr != ":8080" || cfg.ReportTime != "08:00" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.ReportInterval != 0 {
		t.Errorf("expected periodic report disabled, got %s", cfg.ReportInterval)
	}
	if cfg.BotEnabled() {
		t.Error("bot must be disabled without a token")
	}
	if cfg.Location != time.Local {
		t.Errorf("expected local zone, got %v", cfg.Location)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "journal.yaml")
	doc := "database_url: data/file.db\nhttp_addr: \":9090\"\ntimezone: UTC\nreport_interval_hours: \"6\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "env.db")
	t.Setenv("TELEGRAM_TOKEN", " secret ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "env.db" {
		t.Errorf("env must win over file, got %q", cfg.DatabaseURL)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("file value lost, got %q", cfg.HTTPAddr)
	}
	if cfg.ReportInterval != 6*time.Hour {
		t.Errorf("interval = %s", cfg.ReportInterval)
	}
	if !cfg.BotEnabled() || cfg.TelegramToken != "secret" {
		t.Errorf("token not trimmed: %q", cfg.TelegramToken)
	}
	if cfg.Location != time.UTC {
		t.Errorf("location = %v", cfg.Location)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestParseInterval(t *testing.T) {
	cases := map[string]time.Duration{
		"":    0,
		"5":   5 * time.Hour,
		"1.5": 90 * time.Minute,
		"-2":  0,
		"abc": 0,
	}
	for raw, want := range cases {
		if got := parseInterval(raw); got != want {
			t.Errorf("parseInterval(%q) = %s, want %s", raw, got, want)
		}
	}
}
