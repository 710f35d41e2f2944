package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.deps.Favorites.Count()

	switch msg.String() {
	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
	case "down", "j":
		if m.favCursor < count-1 {
			m.favCursor++
		}
	case "d", "x":
		all := m.deps.Favorites.All()
		if m.favCursor < len(all) {
			m.deps.Favorites.Remove(all[m.favCursor].ID)
			if m.favCursor > 0 {
				m.favCursor--
			}
		}
	case "enter":
		// Bring the favorite back up as the displayed fact
		all := m.deps.Favorites.All()
		if m.favCursor < len(all) {
			f := all[m.favCursor]
			m.showFact(&f)
			m.mode = modeFact
			return m, m.fetchRelated()
		}
	}
	return m, nil
}

func (m Model) favoritesView() string {
	all := m.deps.Favorites.All()

	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render(fmt.Sprintf("  ★ Favorites (%d)", len(all))))
	b.WriteString("\n\n")

	if len(all) == 0 {
		b.WriteString(m.styles.Muted.Render("  Nothing saved yet. Press [f] on a fact you like."))
		b.WriteString("\n")
		return b.String()
	}

	for i, f := range all {
		text := truncate(f.Text, max(20, m.width-8))
		if i == m.favCursor {
			b.WriteString(m.styles.SelectedItem.Render(text))
		} else {
			b.WriteString(m.styles.NormalItem.Render(text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncate shortens s to maxLen runes, adding an ellipsis. Slicing on
// runes keeps multibyte text (German facts and emoji) intact.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
