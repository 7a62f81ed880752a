package debrief

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the terminal state of one user's debrief cycle
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
)

// Stage names the pipeline step where a user's cycle failed
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageSummarize Stage = "summarize"
	StageDeliver   Stage = "deliver"
)

// UserOutcome is one user's entry in a run report
type UserOutcome struct {
	UserID  string  `yaml:"user_id"`
	Outcome Outcome `yaml:"outcome"`
	Stage   Stage   `yaml:"stage,omitempty"`
	Reason  string  `yaml:"reason,omitempty"`
}

// RunReport aggregates the per-user outcomes of one debrief run. Err is set
// only when the run failed before any user could be processed.
type RunReport struct {
	RunID      string
	Date       string
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []UserOutcome
	Err        string
}

// Counts returns the number of delivered, skipped and failed entries
func (r *RunReport) Counts() (delivered, skipped, failed int) {
	for _, e := range r.Entries {
		switch e.Outcome {
		case OutcomeDelivered:
			delivered++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return
}

// Render formats the report for logs and the history CLI
func (r *RunReport) Render() string {
	var sb strings.Builder

	delivered, skipped, failed := r.Counts()
	fmt.Fprintf(&sb, "Run %s (%s): %d delivered, %d skipped, %d failed\n",
		r.RunID, r.Date, delivered, skipped, failed)

	if r.Err != "" {
		fmt.Fprintf(&sb, "  run error: %s\n", r.Err)
	}

	for _, e := range r.Entries {
		switch e.Outcome {
		case OutcomeFailed:
			fmt.Fprintf(&sb, "  %s: failed at %s: %s\n", e.UserID, e.Stage, e.Reason)
		default:
			fmt.Fprintf(&sb, "  %s: %s\n", e.UserID, e.Outcome)
		}
	}

	return sb.String()
}
