package config

import (
	"os"
	"path/filepath"
)

// DefaultModel is used when anthropic.model is not configured.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".switchbuddy")

	return &Config{
		Version: "1",
		Anthropic: AnthropicConfig{
			Model: DefaultModel,
		},
		Store: StoreConfig{
			DBPath: filepath.Join(base, "tasks.db"),
		},
		Schedule: ScheduleConfig{
			Time:     "14:50",
			Timezone: "Asia/Kolkata",
		},
		History: HistoryConfig{
			Dir:     filepath.Join(base, "runs"),
			Entries: 10,
		},
	}
}

// WriteDefault writes a commented default configuration to a file
func WriteDefault(path string) error {
	content := `# SwitchBuddy Cron Configuration
version: "1"

# Telegram delivery channel.
# Both values may instead come from TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID.
telegram:
  bot_token: ""
  chat_id: ""

# Anthropic structured-generation service.
# The key may instead come from ANTHROPIC_API_KEY.
anthropic:
  api_key: ""
  model: claude-sonnet-4-20250514

# SQLite task store (overridable via SWITCHBUDDY_DB)
store:
  db_path: ~/.switchbuddy/tasks.db

# Daily debrief trigger
schedule:
  time: "14:50"
  timezone: Asia/Kolkata

# Run report history
history:
  dir: ~/.switchbuddy/runs
  entries: 10

# Optional read-only report API, enabled when addr is set
# web:
#   addr: :8080
`
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
