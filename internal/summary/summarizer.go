package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
)

// ErrGeneration marks any failure of the structured-generation call, including
// output that does not validate against the DailySummary schema.
var ErrGeneration = errors.New("summary generation failed")

// maxPriorities caps nextDayPriorities. The prompt asks for three; the cap is
// also enforced locally in case the model returns more.
const maxPriorities = 3

// MissedTask is one incomplete task with a suggested reschedule slot
type MissedTask struct {
	Title           string `json:"title"`
	RescheduledTime string `json:"rescheduledTime"`
}

// DailySummary is the structured reflective summary for one user's day
type DailySummary struct {
	MotivationalSummary string       `json:"motivationalSummary"`
	NextDayPriorities   []string     `json:"nextDayPriorities"`
	CompletedTasks      int          `json:"completedTasks"`
	TotalTasks          int          `json:"totalTasks"`
	Streak              int          `json:"streak"`
	MissedTasks         []MissedTask `json:"missedTasks"`
}

// Generator produces raw model text for a system+user prompt pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Summarizer turns a task batch into a validated DailySummary
type Summarizer struct {
	gen Generator
}

// NewSummarizer creates a Summarizer backed by the given generator
func NewSummarizer(gen Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

const systemPrompt = `You are an encouraging and insightful productivity coach. Your goal is to help the user reflect on their day and prepare for the next one.
You will be given a list of tasks and their completion status for today.
Your tasks are to:
1.  **motivationalSummary**: Write a short, motivational summary of the user's accomplishments. Focus on what they completed.
2.  **nextDayPriorities**: Based on the incomplete tasks and general productivity principles, identify and suggest the top 3 most important priorities for tomorrow.
3.  **completedTasks**: Count the number of completed tasks.
4.  **totalTasks**: Count the total number of tasks.
5.  **streak**: Return a fictional but realistic streak number between 2 and 10.
6.  **missedTasks**: For each incomplete task, create an object with its title and a suggested rescheduled time for tomorrow (e.g., "Tomorrow 8AM", "Tomorrow 1PM").

Respond with ONLY valid JSON in this exact shape:
{"motivationalSummary": "...", "nextDayPriorities": ["..."], "completedTasks": 0, "totalTasks": 0, "streak": 0, "missedTasks": [{"title": "...", "rescheduledTime": "..."}]}`

// Summarize generates and validates a DailySummary for the batch. Counts are
// derived locally and override whatever the model returned, so the displayed
// arithmetic is always correct. Any structural violation in the model output
// is an ErrGeneration, never silently patched.
func (s *Summarizer) Summarize(ctx context.Context, batch []store.DailyTask) (*DailySummary, error) {
	text, err := s.gen.Generate(ctx, systemPrompt, buildTaskPrompt(batch))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	summary, err := parseSummary(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	completed, missed := 0, 0
	for _, t := range batch {
		if t.Completed {
			completed++
		} else {
			missed++
		}
	}

	if err := validate(summary, missed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	// Local counts win over model output.
	summary.CompletedTasks = completed
	summary.TotalTasks = len(batch)

	if len(summary.NextDayPriorities) > maxPriorities {
		summary.NextDayPriorities = summary.NextDayPriorities[:maxPriorities]
	}

	return summary, nil
}

// buildTaskPrompt enumerates title and completion status only. Task IDs,
// descriptions, times, types and user IDs never leave the process.
func buildTaskPrompt(batch []store.DailyTask) string {
	var b strings.Builder
	b.WriteString("Today's Tasks:\n")
	for _, t := range batch {
		fmt.Fprintf(&b, "- %s (Completed: %t)\n", t.Title, t.Completed)
	}
	return b.String()
}

// parseSummary extracts the summary JSON, handling markdown code fences.
func parseSummary(text string) (*DailySummary, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var summary DailySummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, fmt.Errorf("parse summary JSON: %w (raw: %s)", err, text)
	}
	return &summary, nil
}

func validate(s *DailySummary, wantMissed int) error {
	if s.MotivationalSummary == "" {
		return fmt.Errorf("missing motivationalSummary")
	}
	if s.Streak < 0 {
		return fmt.Errorf("negative streak %d", s.Streak)
	}
	if len(s.MissedTasks) != wantMissed {
		return fmt.Errorf("got %d missed tasks, batch has %d incomplete", len(s.MissedTasks), wantMissed)
	}
	for i, m := range s.MissedTasks {
		if m.Title == "" || m.RescheduledTime == "" {
			return fmt.Errorf("missed task %d incomplete: %+v", i, m)
		}
	}
	return nil
}
