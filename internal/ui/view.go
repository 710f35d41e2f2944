package ui

import (
	"fmt"
	"strings"
)

// View renders the active screen with a shared header and status bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n")

	switch m.mode {
	case modeFavorites:
		b.WriteString(m.favoritesView())
	case modeCollections:
		b.WriteString(m.collectionsView())
	case modeStreak:
		b.WriteString(m.streakView())
	case modeProgress:
		b.WriteString(m.progressView())
	case modeFlashcards:
		b.WriteString(m.flashcardsView())
	default:
		b.WriteString(m.factView())
	}

	b.WriteString("\n")
	if m.confirmReset {
		b.WriteString(m.styles.Error.Render("  Wipe all saved data? [y/N]"))
	} else {
		b.WriteString(m.statusBar())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) header() string {
	title := "✨ trivium"
	if m.category != "" {
		title += "  ·  " + m.category
	} else if m.mode == modeFact {
		title += "  ·  surprise me"
	}
	streak := m.deps.Streak.CurrentStreak()
	if streak > 0 {
		title += fmt.Sprintf("  ·  🔥 %d", streak)
	}
	return m.styles.Header.Render(title)
}

func (m Model) statusBar() string {
	var hints string
	switch m.mode {
	case modeFact:
		hints = "[n]ext  [tab] category  [f]avorite  [a]dd  [1-6] react  [v/c/s/p/F] views  [q]uit"
	case modeFavorites:
		hints = "[j/k] move  [enter] open  [d]elete  [esc] back  [q]uit"
	case modeCollections:
		hints = "[j/k] move  [n]ew  [r]ename  [d]elete  [a] toggle fact  [esc] back"
	case modeStreak:
		hints = "[esc] back  [q]uit"
	case modeProgress:
		hints = "[j/k] move  [x] reset category  [esc] back"
	case modeFlashcards:
		hints = "[h/l] prev/next  [f]avorite  [a]dd  [r] new deck  [esc] back"
	}
	return m.styles.StatusBar.Render("  " + hints)
}
