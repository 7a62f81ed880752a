package debrief

import (
	"context"
	"errors"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/notify"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/store"
	"github.com/satishreddimedapati/switchbuddy-cron/internal/summary"
)

// Common test errors
var (
	ErrMockStore      = errors.New("mock store error")
	ErrMockGeneration = errors.New("mock generation error")
)

// MockTaskSource implements TaskSource for testing
type MockTaskSource struct {
	ListUsersFunc   func(ctx context.Context) ([]store.User, error)
	TasksForDayFunc func(ctx context.Context, userID, date string) ([]store.DailyTask, error)
	FetchCalls      int
}

func (m *MockTaskSource) ListUsers(ctx context.Context) ([]store.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

func (m *MockTaskSource) TasksForDay(ctx context.Context, userID, date string) ([]store.DailyTask, error) {
	m.FetchCalls++
	if m.TasksForDayFunc != nil {
		return m.TasksForDayFunc(ctx, userID, date)
	}
	return nil, nil
}

// MockSummarizer implements Summarizer for testing
type MockSummarizer struct {
	SummarizeFunc func(ctx context.Context, batch []store.DailyTask) (*summary.DailySummary, error)
	CallCount     int
}

func (m *MockSummarizer) Summarize(ctx context.Context, batch []store.DailyTask) (*summary.DailySummary, error) {
	m.CallCount++
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, batch)
	}
	return &summary.DailySummary{
		MotivationalSummary: "well done",
		CompletedTasks:      1,
		TotalTasks:          len(batch),
		Streak:              2,
	}, nil
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	DeliverFunc func(ctx context.Context, text string) notify.DeliveryResult
	CallCount   int
	LastText    string
}

func (m *MockNotifier) Deliver(ctx context.Context, text string) notify.DeliveryResult {
	m.CallCount++
	m.LastText = text
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, text)
	}
	return notify.DeliveryResult{Success: true, Message: "Message sent successfully."}
}

func users(ids ...string) []store.User {
	var out []store.User
	for _, id := range ids {
		out = append(out, store.User{ID: id, Name: id})
	}
	return out
}

func batchOf(titles ...string) []store.DailyTask {
	var out []store.DailyTask
	for _, title := range titles {
		out = append(out, store.DailyTask{Title: title})
	}
	return out
}
