package debrief

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/notify"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/summary"
)

// TaskSource enumerates users and reads their tasks for a date
type TaskSource interface {
	ListUsers(ctx context.Context) ([]store.User, error)
	TasksForDay(ctx context.Context, userID, date string) ([]store.DailyTask, error)
}

// Summarizer produces a validated DailySummary for a task batch
type Summarizer interface {
	Summarize(ctx context.Context, batch []store.DailyTask) (*summary.DailySummary, error)
}

// Notifier delivers message text to the configured channel
type Notifier interface {
	Deliver(ctx context.Context, text string) notify.DeliveryResult
}

// defaultStageTimeout bounds each external call (store fetch, generation,
// delivery) so a hung dependency becomes a stage failure, not a hung run.
const defaultStageTimeout = 90 * time.Second

// Runner drives the per-user debrief pipeline across all known users
type Runner struct {
	source       TaskSource
	summarizer   Summarizer
	notifier     Notifier
	stageTimeout time.Duration
}

// NewRunner creates a runner over explicit stage dependencies
func NewRunner(source TaskSource, summarizer Summarizer, notifier Notifier) *Runner {
	return &Runner{
		source:       source,
		summarizer:   summarizer,
		notifier:     notifier,
		stageTimeout: defaultStageTimeout,
	}
}

// Run executes one debrief run for the given date (YYYY-MM-DD). Users are
// processed strictly sequentially; both external services are rate limited
// and the sequencing is the backpressure. Every per-user failure is contained
// in that user's entry — only a failed user enumeration ends the run early,
// since there is nothing to iterate.
func (r *Runner) Run(ctx context.Context, date string) *RunReport {
	report := &RunReport{
		RunID:     uuid.NewString(),
		Date:      date,
		StartedAt: time.Now().UTC(),
	}

	log.Printf("debrief run %s starting for %s", report.RunID, date)

	lctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	users, err := r.source.ListUsers(lctx)
	cancel()
	if err != nil {
		report.Err = err.Error()
		report.FinishedAt = time.Now().UTC()
		log.Printf("debrief run %s: user enumeration failed: %v", report.RunID, err)
		return report
	}
	if len(users) == 0 {
		report.Err = "no users found to process"
		report.FinishedAt = time.Now().UTC()
		log.Printf("debrief run %s: no users found", report.RunID)
		return report
	}

	for _, u := range users {
		report.Entries = append(report.Entries, r.processUser(ctx, u.ID, date))
	}

	report.FinishedAt = time.Now().UTC()

	delivered, skipped, failed := report.Counts()
	log.Printf("debrief run %s finished: %d delivered, %d skipped, %d failed",
		report.RunID, delivered, skipped, failed)

	return report
}

func (r *Runner) processUser(ctx context.Context, userID, date string) UserOutcome {
	fctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	batch, err := r.source.TasksForDay(fctx, userID, date)
	cancel()
	if err != nil {
		log.Printf("user %s: fetch failed: %v", userID, err)
		return UserOutcome{UserID: userID, Outcome: OutcomeFailed, Stage: StageFetch, Reason: err.Error()}
	}

	if len(batch) == 0 {
		log.Printf("user %s: no tasks today, skipping", userID)
		return UserOutcome{UserID: userID, Outcome: OutcomeSkipped}
	}

	sctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	sum, err := r.summarizer.Summarize(sctx, batch)
	cancel()
	if err != nil {
		log.Printf("user %s: summarize failed: %v", userID, err)
		return UserOutcome{UserID: userID, Outcome: OutcomeFailed, Stage: StageSummarize, Reason: err.Error()}
	}

	text := Format(sum)

	dctx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	result := r.notifier.Deliver(dctx, text)
	cancel()
	if !result.Success {
		log.Printf("user %s: delivery failed: %s", userID, result.Message)
		// The report carries the channel's own description, without the
		// notifier's message framing.
		reason := strings.TrimPrefix(result.Message, "Telegram API Error: ")
		return UserOutcome{UserID: userID, Outcome: OutcomeFailed, Stage: StageDeliver, Reason: reason}
	}

	log.Printf("user %s: debrief delivered", userID)
	return UserOutcome{UserID: userID, Outcome: OutcomeDelivered}
}
