package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Pulse struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RefreshToken string `yaml:"refresh_token"`
		BaseURL      string `yaml:"base_url"`
	} `yaml:"pulse"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Roster struct {
		UserIDs            []string `yaml:"user_ids"` // empty means the whole team
		StateFile          string   `yaml:"state_file"`
		AlertCooldownHours int      `yaml:"alert_cooldown_hours"`
	} `yaml:"roster"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PULSE_CLIENT_ID"); v != "" {
		cfg.Pulse.ClientID = v
	}
	if v := os.Getenv("PULSE_CLIENT_SECRET"); v != "" {
		cfg.Pulse.ClientSecret = v
	}
	if v := os.Getenv("PULSE_REFRESH_TOKEN"); v != "" {
		cfg.Pulse.RefreshToken = v
	}
	if v := os.Getenv("PULSE_BASE_URL"); v != "" {
		cfg.Pulse.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_WEEKLY"); v != "" {
		cfg.Schedule.WeeklyCron = v
	}
	if v := os.Getenv("ALERT_COOLDOWN_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			cfg.Roster.AlertCooldownHours = hours
		}
	}
	if v := os.Getenv("ROSTER_STATE_FILE"); v != "" {
		cfg.Roster.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 21 * * *"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 9 * * 1"
	}
	if cfg.Roster.StateFile == "" {
		cfg.Roster.StateFile = "data/roster_state.json"
	}
	if cfg.Roster.AlertCooldownHours == 0 {
		cfg.Roster.AlertCooldownHours = 24
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/throw_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Pulse.ClientID == "" {
		return fmt.Errorf("pulse.client_id is required")
	}
	if c.Pulse.ClientSecret == "" {
		return fmt.Errorf("pulse.client_secret is required")
	}
	if c.Pulse.RefreshToken == "" {
		return fmt.Errorf("pulse.refresh_token is required")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Roster.AlertCooldownHours < 0 {
		return fmt.Errorf("roster.alert_cooldown_hours must not be negative")
	}
	return nil
}
