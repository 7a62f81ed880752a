// Package sched fires a job once per day at a configured local time.
//
// Semantics are at-least-once with no catch-up: if the process is down when
// the fire time passes, that day's run is simply skipped.
package sched

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Scheduler triggers a function daily at a fixed wall-clock time in a
// configured timezone.
type Scheduler struct {
	hour   int
	minute int
	loc    *time.Location
}

// New parses fireTime ("15:04") and an IANA timezone name.
func New(fireTime, timezone string) (*Scheduler, error) {
	t, err := time.Parse("15:04", fireTime)
	if err != nil {
		return nil, fmt.Errorf("fire time %q: want HH:MM", fireTime)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", timezone, err)
	}

	return &Scheduler{hour: t.Hour(), minute: t.Minute(), loc: loc}, nil
}

// Next returns the next fire instant strictly after now.
func (s *Scheduler) Next(now time.Time) time.Time {
	local := now.In(s.loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.hour, s.minute, 0, 0, s.loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks, invoking fn at every fire time until ctx is cancelled. The
// fire date (in the scheduler's timezone, YYYY-MM-DD) is passed to fn.
func (s *Scheduler) Start(ctx context.Context, fn func(ctx context.Context, date string)) error {
	for {
		now := time.Now()
		next := s.Next(now)
		log.Printf("next debrief run scheduled for %s", next.Format("2006-01-02 15:04 MST"))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case fired := <-timer.C:
			fn(ctx, fired.In(s.loc).Format("2006-01-02"))
		}
	}
}
