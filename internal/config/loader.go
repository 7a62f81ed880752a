package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads configuration from the given file (or the default path when
// empty), then applies environment overrides. A missing config file is not an
// error; a present but unreadable one is.
func Load(path string) (*Config, error) {
	// Credentials commonly live in a .env next to the process, like the
	// original deployment. Absence is fine.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	cfg.Store.DBPath = expandHome(cfg.Store.DBPath)
	cfg.History.Dir = expandHome(cfg.History.Dir)

	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = DefaultModel
	}
	if cfg.History.Entries <= 0 {
		cfg.History.Entries = 10
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("SWITCHBUDDY_DB"); v != "" {
		cfg.Store.DBPath = v
	}
}

// Validate checks the startup-fatal configuration surface. Missing delivery or
// generation credentials abort the process here rather than surfacing later as
// per-call failures.
func (c *Config) Validate() error {
	var missing []string

	if c.Telegram.BotToken == "" {
		missing = append(missing, "telegram.bot_token (TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.ChatID == "" {
		missing = append(missing, "telegram.chat_id (TELEGRAM_CHAT_ID)")
	}
	if c.Anthropic.APIKey == "" {
		missing = append(missing, "anthropic.api_key (ANTHROPIC_API_KEY)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if _, err := time.Parse("15:04", c.Schedule.Time); err != nil {
		return fmt.Errorf("schedule.time %q: want HH:MM", c.Schedule.Time)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}

	return nil
}

// DefaultConfigPath returns the path to the default config file
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".switchbuddy", "config.yaml")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
