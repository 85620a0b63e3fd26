package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the journal server, bot and CLI.
type Config struct {
	DatabaseURL    string
	TelegramToken  string
	HTTPAddr       string
	ReportInterval time.Duration
	ReportTime     string
	Timezone       string
	Location       *time.Location
	LogFile        string
	ChallengesFile string
}

// BotEnabled reports whether a Telegram token was configured.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "journal.db")
	v.SetDefault("telegram_token", "")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("report_interval_hours", "")
	v.SetDefault("report_time", "08:00")
	v.SetDefault("timezone", "Local")
	v.SetDefault("log_file", "")
	v.SetDefault("challenges_file", "")
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, later sources overriding earlier ones. Keys map to
// upper-case variables: database_url is read from DATABASE_URL.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		DatabaseURL:    strings.TrimSpace(v.GetString("database_url")),
		TelegramToken:  strings.TrimSpace(v.GetString("telegram_token")),
		HTTPAddr:       strings.TrimSpace(v.GetString("http_addr")),
		ReportInterval: parseInterval(strings.TrimSpace(v.GetString("report_interval_hours"))),
		ReportTime:     strings.TrimSpace(v.GetString("report_time")),
		Timezone:       strings.TrimSpace(v.GetString("timezone")),
		LogFile:        strings.TrimSpace(v.GetString("log_file")),
		ChallengesFile: strings.TrimSpace(v.GetString("challenges_file")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "journal.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

// parseInterval turns an hour count into a duration; anything unusable
// disables the periodic report.
func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
