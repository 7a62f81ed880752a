package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/config"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/debrief"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/notify"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/summary"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one debrief run immediately",
	Long:  `Runs the full debrief pipeline once for all users and prints the run report.`,
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().String("date", "", "Date to debrief (YYYY-MM-DD, default today in the configured timezone)")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = todayIn(cfg.Schedule.Timezone)
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("--date %q: want YYYY-MM-DD", date)
	}

	runner, taskStore, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer taskStore.Close()

	report := runner.Run(cmd.Context(), date)

	if err := debrief.SaveReport(cfg.History.Dir, report); err != nil {
		fmt.Printf("warning: could not save run report: %v\n", err)
	}

	fmt.Print(report.Render())

	if report.Err != "" {
		return fmt.Errorf("run failed: %s", report.Err)
	}
	return nil
}

// buildRunner wires the pipeline stages from validated configuration.
func buildRunner(cfg *config.Config) (*debrief.Runner, *store.TaskStore, error) {
	taskStore, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open task store: %w", err)
	}

	client := summary.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	summarizer := summary.NewSummarizer(client)
	notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	return debrief.NewRunner(taskStore, summarizer, notifier), taskStore, nil
}

func todayIn(timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format("2006-01-02")
}
