package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
)

// fakeGenerator returns canned model output
type fakeGenerator struct {
	text       string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	return f.text, f.err
}

func sampleBatch() []store.DailyTask {
	return []store.DailyTask{
		{ID: "t1", Time: "09:00", Title: "React Hooks Practice", Description: "useEffect deep dive", Type: store.TypeSchedule, Completed: false, UserID: "u1"},
		{ID: "t2", Time: "11:00", Title: "DBMS Flashcards", Type: store.TypeSchedule, Completed: false, UserID: "u1"},
		{ID: "t3", Time: "14:00", Title: "Standup", Type: store.TypeSchedule, Completed: true, UserID: "u1"},
	}
}

const validOutput = `{
	"motivationalSummary": "You showed up for the standup, that counts!",
	"nextDayPriorities": ["React Hooks Practice", "DBMS Flashcards"],
	"completedTasks": 99,
	"totalTasks": 99,
	"streak": 4,
	"missedTasks": [
		{"title": "React Hooks Practice", "rescheduledTime": "Tomorrow 8AM"},
		{"title": "DBMS Flashcards", "rescheduledTime": "Tomorrow 1PM"}
	]
}`

func TestSummarizeOverridesCounts(t *testing.T) {
	gen := &fakeGenerator{text: validOutput}
	s := NewSummarizer(gen)

	got, err := s.Summarize(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	// Model claimed 99/99; local counts win.
	if got.CompletedTasks != 1 {
		t.Errorf("Expected completedTasks=1, got %d", got.CompletedTasks)
	}
	if got.TotalTasks != 3 {
		t.Errorf("Expected totalTasks=3, got %d", got.TotalTasks)
	}
	if len(got.MissedTasks) != 2 {
		t.Errorf("Expected 2 missed tasks, got %d", len(got.MissedTasks))
	}
	if got.Streak != 4 {
		t.Errorf("Expected streak=4, got %d", got.Streak)
	}
}

func TestSummarizePromptMinimizesTaskData(t *testing.T) {
	gen := &fakeGenerator{text: validOutput}
	s := NewSummarizer(gen)

	if _, err := s.Summarize(context.Background(), sampleBatch()); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if !strings.Contains(gen.lastUser, "- React Hooks Practice (Completed: false)") {
		t.Errorf("Expected title/completed pair in prompt, got:\n%s", gen.lastUser)
	}
	if !strings.Contains(gen.lastUser, "- Standup (Completed: true)") {
		t.Errorf("Expected completed task in prompt, got:\n%s", gen.lastUser)
	}
	// Only title and completion status may leave the process.
	for _, leaked := range []string{"t1", "useEffect deep dive", "09:00", "u1", "schedule"} {
		if strings.Contains(gen.lastUser, leaked) {
			t.Errorf("Prompt leaked task field %q:\n%s", leaked, gen.lastUser)
		}
	}
}

func TestSummarizeStripsMarkdownFences(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + validOutput + "\n```"}
	s := NewSummarizer(gen)

	got, err := s.Summarize(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Summarize failed on fenced output: %v", err)
	}
	if got.MotivationalSummary == "" {
		t.Error("Expected parsed summary from fenced output")
	}
}

func TestSummarizeTruncatesExtraPriorities(t *testing.T) {
	output := `{
		"motivationalSummary": "ok",
		"nextDayPriorities": ["a", "b", "c", "d", "e"],
		"completedTasks": 1,
		"totalTasks": 3,
		"streak": 2,
		"missedTasks": [
			{"title": "React Hooks Practice", "rescheduledTime": "Tomorrow 8AM"},
			{"title": "DBMS Flashcards", "rescheduledTime": "Tomorrow 1PM"}
		]
	}`
	s := NewSummarizer(&fakeGenerator{text: output})

	got, err := s.Summarize(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(got.NextDayPriorities) != 3 {
		t.Errorf("Expected priorities truncated to 3, got %d", len(got.NextDayPriorities))
	}
	if got.NextDayPriorities[2] != "c" {
		t.Errorf("Expected truncation to keep input order, got %v", got.NextDayPriorities)
	}
}

func TestSummarizeRejectsMissedCountMismatch(t *testing.T) {
	output := `{
		"motivationalSummary": "ok",
		"nextDayPriorities": [],
		"completedTasks": 1,
		"totalTasks": 3,
		"streak": 2,
		"missedTasks": [{"title": "React Hooks Practice", "rescheduledTime": "Tomorrow 8AM"}]
	}`
	s := NewSummarizer(&fakeGenerator{text: output})

	_, err := s.Summarize(context.Background(), sampleBatch())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("Expected ErrGeneration for missed count mismatch, got %v", err)
	}
}

func TestSummarizeRejectsMissingSummaryText(t *testing.T) {
	output := `{
		"nextDayPriorities": [],
		"completedTasks": 1,
		"totalTasks": 3,
		"streak": 2,
		"missedTasks": [
			{"title": "React Hooks Practice", "rescheduledTime": "Tomorrow 8AM"},
			{"title": "DBMS Flashcards", "rescheduledTime": "Tomorrow 1PM"}
		]
	}`
	s := NewSummarizer(&fakeGenerator{text: output})

	_, err := s.Summarize(context.Background(), sampleBatch())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("Expected ErrGeneration for missing motivationalSummary, got %v", err)
	}
}

func TestSummarizeRejectsNegativeStreak(t *testing.T) {
	output := strings.Replace(validOutput, `"streak": 4`, `"streak": -1`, 1)
	s := NewSummarizer(&fakeGenerator{text: output})

	_, err := s.Summarize(context.Background(), sampleBatch())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("Expected ErrGeneration for negative streak, got %v", err)
	}
}

func TestSummarizeRejectsInvalidJSON(t *testing.T) {
	s := NewSummarizer(&fakeGenerator{text: "I could not produce JSON today, sorry."})

	_, err := s.Summarize(context.Background(), sampleBatch())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("Expected ErrGeneration for unparseable output, got %v", err)
	}
}

func TestSummarizeWrapsGeneratorError(t *testing.T) {
	s := NewSummarizer(&fakeGenerator{err: errors.New("api quota exceeded")})

	_, err := s.Summarize(context.Background(), sampleBatch())
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("Expected ErrGeneration for generator failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "api quota exceeded") {
		t.Errorf("Expected cause in error, got %v", err)
	}
}
