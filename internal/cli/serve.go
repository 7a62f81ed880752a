package cli

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/config"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/debrief"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/sched"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daily debrief scheduler",
	Long: `Starts the scheduler daemon. The debrief pipeline fires once per day at
schedule.time in schedule.timezone. With web.addr (or --addr) set, a
read-only HTTP API additionally exposes recent run reports.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address for the report API (overrides web.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	scheduler, err := sched.New(cfg.Schedule.Time, cfg.Schedule.Timezone)
	if err != nil {
		return err
	}

	runner, taskStore, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer taskStore.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.Web.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}
	if addr != "" {
		server := web.NewServer(cfg.History.Dir, cfg.History.Entries)
		go func() {
			log.Printf("report API listening on %s", addr)
			if err := server.Run(addr); err != nil {
				log.Printf("report API stopped: %v", err)
			}
		}()
	}

	log.Printf("scheduler started, firing daily at %s %s", cfg.Schedule.Time, cfg.Schedule.Timezone)

	err = scheduler.Start(ctx, func(ctx context.Context, date string) {
		report := runner.Run(ctx, date)
		if err := debrief.SaveReport(cfg.History.Dir, report); err != nil {
			log.Printf("could not save run report: %v", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		log.Println("scheduler stopped")
		return nil
	}
	return err
}
