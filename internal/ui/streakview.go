package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/trivium/internal/streak"
)

func (m Model) streakView() string {
	st := m.deps.Streak

	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render("  🔥 Streak"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Current streak:  %d day(s)\n", st.CurrentStreak()))
	b.WriteString(fmt.Sprintf("  Longest streak:  %d day(s)\n", st.LongestStreak()))
	b.WriteString(fmt.Sprintf("  Facts learned:   %d\n", st.TotalFacts()))
	b.WriteString(fmt.Sprintf("  Overall journey: %d%%\n", st.TotalProgress()))
	b.WriteString("\n")

	// Recent activity, oldest to newest for a left-to-right calendar
	days := m.deps.Config.UI.RecentActivityDays
	var activity []streak.DayActivity
	for day := range st.RecentActivity(days) {
		activity = append(activity, day)
	}

	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  Last %d days:", days)))
	b.WriteString("\n  ")
	for i := len(activity) - 1; i >= 0; i-- {
		if activity[i].Visited {
			b.WriteString(m.styles.Highlight.Render("●"))
		} else {
			b.WriteString(m.styles.Muted.Render("·"))
		}
	}
	b.WriteString("\n\n")

	badges := st.Achievements()
	if len(badges) == 0 {
		b.WriteString(m.styles.Muted.Render("  No badges yet. Keep reading!"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Highlight.Render("  Badges"))
		b.WriteString("\n")
		for _, badge := range badges {
			b.WriteString(fmt.Sprintf("  %s %s\n", badge.Icon, badge.Name))
		}
	}

	return b.String()
}
