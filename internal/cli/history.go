package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/config"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/debrief"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent run reports",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Number of runs to show (default history.entries)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.History.Entries
	}

	reports, err := debrief.LoadRecent(cfg.History.Dir, limit)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Println("No run history found.")
		return nil
	}

	for _, r := range reports {
		fmt.Print(r.Render())
		fmt.Println()
	}

	return nil
}
