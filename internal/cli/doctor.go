package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/config"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check service configuration health",
	Long:  `Runs diagnostic checks on configuration, credentials and the task store, and reports pass/fail for each.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	passed := 0
	failed := 0

	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Printf("  ✓ %s\n", name)
			passed++
		} else {
			fmt.Printf("  ✗ %s — %s\n", name, detail)
			failed++
		}
	}

	fmt.Println("Configuration:")
	cfg, cfgErr := config.Load(configPath)
	if cfgErr != nil {
		check("config readable", false, cfgErr.Error())
		fmt.Printf("\n%d passed, %d failed\n", passed, failed)
		return fmt.Errorf("doctor found problems")
	}
	check("config readable", true, "")

	check("telegram bot token", cfg.Telegram.BotToken != "", "set telegram.bot_token or TELEGRAM_BOT_TOKEN")
	check("telegram chat id", cfg.Telegram.ChatID != "", "set telegram.chat_id or TELEGRAM_CHAT_ID")
	check("anthropic api key", cfg.Anthropic.APIKey != "", "set anthropic.api_key or ANTHROPIC_API_KEY")

	_, timeErr := time.Parse("15:04", cfg.Schedule.Time)
	check("schedule time", timeErr == nil, fmt.Sprintf("%q is not HH:MM", cfg.Schedule.Time))
	_, tzErr := time.LoadLocation(cfg.Schedule.Timezone)
	check("schedule timezone", tzErr == nil, fmt.Sprintf("unknown timezone %q", cfg.Schedule.Timezone))

	fmt.Println()
	fmt.Println("Task store:")
	if s, err := store.Open(cfg.Store.DBPath); err != nil {
		check("store opens", false, err.Error())
	} else {
		check("store opens", true, "")
		users, err := s.ListUsers(cmd.Context())
		if err != nil {
			check("users readable", false, err.Error())
		} else {
			check("users readable", true, "")
			fmt.Printf("  → %d users at %s\n", len(users), cfg.Store.DBPath)
		}
		s.Close()
	}

	fmt.Println()
	fmt.Println("Run history:")
	if _, err := os.Stat(cfg.History.Dir); err != nil {
		check("history directory", false, "will be created on first run")
	} else {
		check("history directory", true, "")
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}
