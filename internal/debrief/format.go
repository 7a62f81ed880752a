package debrief

import (
	"fmt"
	"strings"

	"github.com/satishreddimedapati/switchbuddy-cron/internal/summary"
)

// Format renders a DailySummary as Telegram message text. It is pure and
// total: the same summary always yields byte-identical output, and sections
// with no content are omitted rather than printed empty.
func Format(s *summary.DailySummary) string {
	var sb strings.Builder

	sb.WriteString("📝 Daily Debrief\n")
	fmt.Fprintf(&sb, "✅ Today’s Summary: %d/%d tasks completed\n", s.CompletedTasks, s.TotalTasks)
	fmt.Fprintf(&sb, "🔥 Streak: %d days\n", s.Streak)

	if len(s.MissedTasks) > 0 {
		sb.WriteString("📌 Missed Tasks:\n")
		for _, t := range s.MissedTasks {
			fmt.Fprintf(&sb, "- %s → %s\n", t.Title, t.RescheduledTime)
		}
	}

	if len(s.NextDayPriorities) > 0 {
		sb.WriteString("🎯 Top 3 Priorities for Tomorrow:\n")
		for i, p := range s.NextDayPriorities {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
		}
	}

	return sb.String()
}
