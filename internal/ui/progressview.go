package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/trivium/internal/fact"
)

func (m *Model) handleProgressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.progCursor > 0 {
			m.progCursor--
		}
	case "down", "j":
		if m.progCursor < len(fact.Categories)-1 {
			m.progCursor++
		}
	case "x":
		m.deps.Progress.ResetCategoryProgress(fact.Categories[m.progCursor])
	}
	return m, nil
}

func (m Model) progressView() string {
	p := m.deps.Progress

	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render("  📊 Progress"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %d of ~%d facts viewed (%d%%)\n",
		p.TotalFactsViewed(), p.TotalFactsAvailable(), p.OverallProgress()))
	// The tracker's ledger survives category resets, so it can exceed the
	// progress count above
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d distinct fact(s) ever seen", m.deps.Tracker.ViewedCount())))
	b.WriteString("\n\n")

	barWidth := max(10, min(40, m.width-30))
	for i, c := range fact.Categories {
		pct := p.CategoryProgress(c)
		bar := progressBar(pct, barWidth)

		line := fmt.Sprintf("%-13s %s %3d%%", c, bar, pct)
		if i == m.progCursor {
			b.WriteString("  " + m.styles.SelectedItem.Render(line))
		} else {
			b.WriteString("  " + categoryStyle(c).Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("  [x] reset selected category"))
	b.WriteString("\n")
	return b.String()
}

// progressBar renders pct as a fixed-width bar of filled and empty cells.
func progressBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
