package config

// Config represents the full SwitchBuddy cron service configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Telegram delivery channel
	Telegram TelegramConfig `yaml:"telegram" mapstructure:"telegram"`

	// Anthropic structured-generation service
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`

	// Task store
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Daily trigger
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`

	// Run history persistence
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Optional observability HTTP surface
	Web WebConfig `yaml:"web" mapstructure:"web"`
}

// TelegramConfig configures the delivery channel
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" mapstructure:"bot_token"`
	ChatID   string `yaml:"chat_id" mapstructure:"chat_id"`
}

// AnthropicConfig configures the generation service
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

// StoreConfig configures the SQLite task store
type StoreConfig struct {
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// ScheduleConfig configures the daily fire time
type ScheduleConfig struct {
	// Time is the local fire time in "15:04" form
	Time string `yaml:"time" mapstructure:"time"`
	// Timezone is an IANA zone name, e.g. "Asia/Kolkata"
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// HistoryConfig configures run report persistence
type HistoryConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Entries int    `yaml:"entries" mapstructure:"entries"`
}

// WebConfig configures the read-only report API
type WebConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
