package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.deps.Collections.All()

	switch msg.String() {
	case "up", "k":
		if m.colCursor > 0 {
			m.colCursor--
		}
	case "down", "j":
		if m.colCursor < len(all)-1 {
			m.colCursor++
		}
	case "n":
		m.colEntering = true
		m.colInput.SetValue("")
		m.colInput.Focus()
		return m, textinput.Blink
	case "r":
		if m.colCursor < len(all) {
			m.colRenaming = true
			m.colInput.SetValue(all[m.colCursor].Name)
			m.colInput.Focus()
			return m, textinput.Blink
		}
	case "d":
		if m.colCursor < len(all) {
			m.deps.Collections.Delete(all[m.colCursor].ID)
			if m.colCursor > 0 {
				m.colCursor--
			}
		}
	case "a":
		// Toggle the current fact's membership in the selected collection
		if m.current != nil && m.colCursor < len(all) {
			id := all[m.colCursor].ID
			if m.deps.Collections.Contains(id, m.current.ID) {
				m.deps.Collections.RemoveFact(id, m.current.ID)
			} else {
				m.deps.Collections.AddFact(id, *m.current)
			}
		}
	}
	return m, nil
}

func (m *Model) handleCollectionInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.colInput.Value())
		if name != "" {
			if m.colRenaming {
				all := m.deps.Collections.All()
				if m.colCursor < len(all) {
					m.deps.Collections.Rename(all[m.colCursor].ID, name)
				}
			} else {
				id := m.deps.Collections.Create(name)
				// A new collection usually exists to hold the fact on
				// screen; add it right away
				if m.current != nil {
					m.deps.Collections.AddFact(id, *m.current)
				}
			}
		}
		m.colEntering = false
		m.colRenaming = false
		m.colInput.Blur()
		return m, nil

	case "esc":
		m.colEntering = false
		m.colRenaming = false
		m.colInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.colInput, cmd = m.colInput.Update(msg)
	return m, cmd
}

func (m Model) collectionsView() string {
	all := m.deps.Collections.All()

	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render(fmt.Sprintf("  Collections (%d)", len(all))))
	b.WriteString("\n\n")

	for i, c := range all {
		label := fmt.Sprintf("%s  %d fact(s)", c.Name, len(c.Facts))
		if m.current != nil && m.deps.Collections.Contains(c.ID, m.current.ID) {
			label += "  ✓ has current fact"
		}
		if i == m.colCursor {
			b.WriteString(m.styles.SelectedItem.Render(label))
		} else {
			b.WriteString(m.styles.NormalItem.Render(label))
		}
		b.WriteString("\n")
	}

	if m.colEntering || m.colRenaming {
		prompt := "New collection: "
		if m.colRenaming {
			prompt = "Rename to: "
		}
		b.WriteString("\n  " + prompt + m.colInput.View() + "\n")
	}

	// Show the selected collection's facts
	if m.colCursor < len(all) && len(all[m.colCursor].Facts) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("  — " + all[m.colCursor].Name + " —"))
		b.WriteString("\n")
		for _, f := range all[m.colCursor].Facts {
			b.WriteString(m.styles.Muted.Render("  · " + truncate(f.Text, max(20, m.width-10))))
			b.WriteString("\n")
		}
	}

	return b.String()
}
