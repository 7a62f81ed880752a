package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/config"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users and tasks into the store",
	Long:  `Populates the task store with a demo user and a set of tasks for a date, for trying the pipeline end to end.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().String("date", "", "Date for the seeded tasks (YYYY-MM-DD, default today)")
	seedCmd.Flags().String("user", "demo-user", "User ID to seed")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = todayIn(cfg.Schedule.Timezone)
	}
	userID, _ := cmd.Flags().GetString("user")

	taskStore, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer taskStore.Close()

	user := &store.User{ID: userID, Name: "Demo User", CreatedAt: time.Now().UTC()}
	if err := taskStore.SaveUser(user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	tasks := []store.DailyTask{
		{Time: "09:00", Title: "React Hooks Practice", Type: store.TypeSchedule, Completed: false},
		{Time: "11:00", Title: "DBMS Flashcards", Type: store.TypeSchedule, Completed: false},
		{Time: "14:00", Title: "Standup", Type: store.TypeSchedule, Completed: true},
		{Time: "16:00", Title: "Mock Interview", Type: store.TypeInterview, Description: "System design round", Completed: false},
	}

	for i := range tasks {
		t := tasks[i]
		t.ID = uuid.NewString()
		t.Date = date
		t.UserID = userID
		if err := taskStore.SaveTask(&t); err != nil {
			return fmt.Errorf("save task %q: %w", t.Title, err)
		}
	}

	fmt.Printf("Seeded %d tasks for %s on %s\n", len(tasks), userID, date)
	return nil
}
