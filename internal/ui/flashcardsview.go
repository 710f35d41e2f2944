package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashcardBatchSize is how many facts each deck refill fetches.
const flashcardBatchSize = 5

func (m *Model) handleFlashcardsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.cardIdx > 0 {
			m.cardIdx--
		}
	case "right", "l":
		if m.cardIdx < len(m.cards)-1 {
			m.cardIdx++
		}
		// Refill before the user hits the end of the deck
		if m.cardIdx >= len(m.cards)-2 && !m.cardsLoading {
			return m, m.fetchFlashcards()
		}
	case "f":
		if m.cardIdx < len(m.cards) {
			card := m.cards[m.cardIdx]
			if m.deps.Favorites.IsFavorite(card.ID) {
				m.deps.Favorites.Remove(card.ID)
			} else {
				m.deps.Favorites.Add(card)
			}
		}
	case "a":
		// Quick-save into the default collection
		if m.cardIdx < len(m.cards) {
			m.deps.Collections.AddFact("default", m.cards[m.cardIdx])
		}
	case "r":
		// Start over with a fresh deck
		m.cards = nil
		m.cardIdx = 0
		return m, m.fetchFlashcards()
	}
	return m, nil
}

// fetchFlashcards requests a batch of random facts for the deck. Results
// already in the deck are dropped on arrival, so refills only grow it.
func (m *Model) fetchFlashcards() tea.Cmd {
	m.cardsLoading = true
	client := m.deps.Client
	language := m.deps.Prefs.Language()
	timeout := time.Duration(m.deps.Config.API.TimeoutSeconds) * time.Second

	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		facts, err := client.RandomFacts(ctx, flashcardBatchSize, language)
		return FlashcardsLoadedMsg{Facts: facts, Err: err}
	})
}

func (m Model) flashcardsView() string {
	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render("  🎴 Fact Flashcards"))
	b.WriteString("\n\n")

	if len(m.cards) == 0 {
		if m.cardsLoading {
			b.WriteString(fmt.Sprintf("  %s loading facts...\n", m.spin.View()))
		} else {
			b.WriteString(m.styles.Muted.Render("  No facts available. Press [r] to try again."))
			b.WriteString("\n")
		}
		return b.String()
	}

	card := m.cards[m.cardIdx]

	label := "Random Fact"
	if card.Source != "" {
		label = card.Source
	}
	content := m.styles.SourceLine.Render(strings.ToUpper(label)) + "\n\n" +
		m.styles.FactText.Render(wrap(card.Text, max(20, m.width-10)))
	b.WriteString(m.styles.FactCard.Width(max(30, m.width-4)).Render(content))
	b.WriteString("\n")

	line := fmt.Sprintf("  card %d of %d", m.cardIdx+1, len(m.cards))
	if m.deps.Favorites.IsFavorite(card.ID) {
		line += "  " + m.styles.Highlight.Render("★ favorited")
	}
	if m.cardsLoading {
		line += "  " + m.styles.Muted.Render("loading more...")
	}
	b.WriteString(line + "\n")

	return b.String()
}
