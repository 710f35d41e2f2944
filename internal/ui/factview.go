package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/reactions"
)

func (m *Model) handleFactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", " ":
		return m, m.fetchFact()

	case "tab":
		m.category = nextCategory(m.category)
		return m, nil

	case "f":
		if m.current == nil {
			return m, nil
		}
		if m.deps.Favorites.IsFavorite(m.current.ID) {
			m.deps.Favorites.Remove(m.current.ID)
		} else {
			m.deps.Favorites.Add(*m.current)
		}
		return m, nil

	case "a":
		// Quick-save into the default collection
		if m.current != nil {
			m.deps.Collections.AddFact("default", *m.current)
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6":
		if m.current == nil {
			return m, nil
		}
		idx := int(msg.String()[0] - '1')
		m.deps.Reactions.AddReaction(m.current.ID, fact.ReactionTypes[idx].Name, reactions.DefaultUserID)
		return m, nil

	case "]":
		// Jump to a prefetched related fact. The stores see this as a
		// fresh view event immediately after the current one.
		if len(m.related) > 0 {
			next := m.related[0]
			m.related = m.related[1:]
			m.showFact(&next)
			return m, m.fetchRelated()
		}
		return m, nil
	}
	return m, nil
}

// nextCategory cycles "" (surprise) -> each fixed category -> "".
func nextCategory(current string) string {
	if current == "" {
		return fact.Categories[0]
	}
	for i, c := range fact.Categories {
		if c == current {
			if i == len(fact.Categories)-1 {
				return ""
			}
			return fact.Categories[i+1]
		}
	}
	return ""
}

func (m Model) factView() string {
	var b strings.Builder

	if m.loading && m.current == nil {
		b.WriteString(fmt.Sprintf("\n  %s fetching a fact...\n", m.spin.View()))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("  [n] try again"))
		b.WriteString("\n")
		return b.String()
	}

	if m.current == nil {
		return m.styles.Muted.Render("\n  No fact yet. Press [n].\n")
	}

	f := m.current
	category := fact.NormalizeCategory(f.Category)

	card := m.styles.FactText.Render(wrap(f.Text, max(20, m.width-10)))
	if m.deps.Config.UI.ShowSource && f.Source != "" {
		card += "\n\n" + m.styles.SourceLine.Render("— "+f.Source)
	}
	b.WriteString(m.styles.FactCard.Width(max(30, m.width-4)).Render(card))
	b.WriteString("\n")

	// Category badge and save markers
	line := "  " + categoryStyle(category).Render("#"+category)
	if m.deps.Favorites.IsFavorite(f.ID) {
		line += "  " + m.styles.Highlight.Render("★ favorited")
	}
	if ids := m.deps.Collections.CollectionsWithFact(f.ID); len(ids) > 0 {
		line += "  " + m.styles.Muted.Render(fmt.Sprintf("in %d collection(s)", len(ids)))
	}
	b.WriteString(line + "\n\n")

	b.WriteString(m.reactionsLine(f.ID))
	b.WriteString("\n")

	if len(m.related) > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d related fact(s) ready — press ]", len(m.related))))
		b.WriteString("\n")
	}

	return b.String()
}

// reactionsLine renders the six reaction buttons with counts, marking the
// local user's active reaction.
func (m Model) reactionsLine(factID string) string {
	fr := m.deps.Reactions.FactReactions(factID)
	mine := m.deps.Reactions.UserReaction(factID, reactions.DefaultUserID)

	var parts []string
	for i, rt := range fact.ReactionTypes {
		label := fmt.Sprintf("%d %s", i+1, rt.Emoji)
		if n := fr.ReactionCounts[rt.Name]; n > 0 {
			label += fmt.Sprintf(" %d", n)
		}
		if rt.Name == mine {
			parts = append(parts, m.styles.SelectedItem.Render(label))
		} else {
			parts = append(parts, m.styles.NormalItem.Render(label))
		}
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// wrap breaks text at word boundaries to fit the given width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
