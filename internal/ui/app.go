// Package ui is the Bubble Tea presentation layer.
//
// The UI invokes store operations when a fact is displayed or the user
// acts; it never reads or writes persisted storage directly.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/trivium/internal/collections"
	"github.com/abelbrown/trivium/internal/config"
	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/favorites"
	"github.com/abelbrown/trivium/internal/fetch"
	"github.com/abelbrown/trivium/internal/logging"
	"github.com/abelbrown/trivium/internal/prefs"
	"github.com/abelbrown/trivium/internal/progress"
	"github.com/abelbrown/trivium/internal/reactions"
	"github.com/abelbrown/trivium/internal/reset"
	"github.com/abelbrown/trivium/internal/storage"
	"github.com/abelbrown/trivium/internal/streak"
	"github.com/abelbrown/trivium/internal/tracking"
)

// View mode
type viewMode int

const (
	modeFact viewMode = iota
	modeFavorites
	modeCollections
	modeStreak
	modeProgress
	modeFlashcards
)

// Deps bundles everything the root model needs.
type Deps struct {
	Config      *config.Config
	Client      *fetch.Client
	KV          *storage.Store
	Prefs       *prefs.Prefs
	Progress    *progress.Store
	Streak      *streak.Store
	Reactions   *reactions.Store
	Collections *collections.Store
	Favorites   *favorites.Store
	Tracker     *tracking.Tracker
}

// Model is the root Bubble Tea model
type Model struct {
	deps   Deps
	styles Styles

	mode     viewMode
	current  *fact.Fact
	category string // "" means surprise me
	related  []fact.Fact
	loading  bool
	spin     spinner.Model
	err      error

	width  int
	height int

	favCursor int

	colCursor   int
	colInput    textinput.Model
	colEntering bool // typing a new collection name
	colRenaming bool

	progCursor int

	cards        []fact.Fact
	cardIdx      int
	cardsLoading bool

	confirmReset bool
}

// New creates the root model. A visit is recorded at startup, before any
// fact is shown.
func New(deps Deps) Model {
	deps.Streak.RecordVisit()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "Collection name"
	ti.CharLimit = 40

	return Model{
		deps:     deps,
		styles:   StylesFor(deps.Prefs.Theme()),
		spin:     sp,
		colInput: ti,
	}
}

// Init initializes the app
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchFact())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.cardsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case FactLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			logging.Error("Fact fetch failed", "error", msg.Err)
			return m, nil
		}
		m.err = nil
		m.showFact(msg.Fact)
		return m, m.fetchRelated()

	case FlashcardsLoadedMsg:
		m.cardsLoading = false
		if msg.Err != nil {
			logging.Warn("Flashcards fetch failed", "error", msg.Err)
			return m, nil
		}
		// Refills may repeat facts already dealt; keep the deck distinct
		seen := make(map[string]bool, len(m.cards))
		for _, c := range m.cards {
			seen[c.ID] = true
		}
		for _, f := range msg.Facts {
			if !seen[f.ID] {
				m.cards = append(m.cards, f)
			}
		}
		return m, nil

	case RelatedLoadedMsg:
		if msg.Err != nil {
			// Related facts are a nicety; keep the current view
			logging.Warn("Related prefetch failed", "error", msg.Err)
			return m, nil
		}
		m.related = msg.Facts
		return m, nil
	}

	return m, nil
}

// showFact makes f the displayed fact and reports the view to every
// interested store. Progress and streak each run their own dedup guard,
// so re-reporting within the throttle window is harmless.
func (m *Model) showFact(f *fact.Fact) {
	m.current = f
	m.deps.Tracker.MarkAsCounted(f.ID)
	m.deps.Progress.RecordFactView(f)
	m.deps.Streak.RecordFactView(f)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		return m.handleResetKey(msg)
	}
	if m.colEntering || m.colRenaming {
		return m.handleCollectionInput(msg)
	}

	// Global keys
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeFact
		return m, nil

	case "v":
		m.mode = modeFavorites
		m.favCursor = 0
		return m, nil

	case "c":
		m.mode = modeCollections
		m.colCursor = 0
		return m, nil

	case "s":
		m.mode = modeStreak
		return m, nil

	case "p":
		m.mode = modeProgress
		m.progCursor = 0
		return m, nil

	case "F":
		m.mode = modeFlashcards
		if len(m.cards) == 0 && !m.cardsLoading {
			return m, m.fetchFlashcards()
		}
		return m, nil

	case "T":
		m.styles = StylesFor(m.deps.Prefs.CycleTheme())
		return m, nil

	case "L":
		m.deps.Prefs.CycleLanguage()
		return m, nil

	case "X":
		m.confirmReset = true
		return m, nil
	}

	switch m.mode {
	case modeFact:
		return m.handleFactKey(msg)
	case modeFavorites:
		return m.handleFavoritesKey(msg)
	case modeCollections:
		return m.handleCollectionsKey(msg)
	case modeProgress:
		return m.handleProgressKey(msg)
	case modeFlashcards:
		return m.handleFlashcardsKey(msg)
	}
	return m, nil
}

func (m *Model) handleResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmReset = false
		return m.resetAll()
	default:
		m.confirmReset = false
	}
	return m, nil
}

// resetAll clears every recognized storage key and rebuilds the stores
// from their defaults, mirroring the page reload of a browser app.
func (m *Model) resetAll() (tea.Model, tea.Cmd) {
	reset.All(m.deps.KV)

	m.deps.Prefs = prefs.New(m.deps.KV)
	m.deps.Progress = progress.New(m.deps.KV)
	m.deps.Streak = streak.New(m.deps.KV)
	m.deps.Reactions = reactions.New(m.deps.KV)
	m.deps.Collections = collections.New(m.deps.KV)
	m.deps.Favorites = favorites.New(m.deps.KV)
	m.deps.Tracker = tracking.New(m.deps.KV)

	m.styles = StylesFor(m.deps.Prefs.Theme())
	m.current = nil
	m.related = nil
	m.cards = nil
	m.cardIdx = 0
	m.cardsLoading = false
	m.category = ""
	m.mode = modeFact
	m.deps.Streak.RecordVisit()

	return m, m.fetchFact()
}

// Commands

func (m *Model) fetchFact() tea.Cmd {
	m.loading = true
	client := m.deps.Client
	category := m.category
	language := m.deps.Prefs.Language()
	timeout := time.Duration(m.deps.Config.API.TimeoutSeconds) * time.Second

	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		f, err := client.FactByCategory(ctx, category, language)
		return FactLoadedMsg{Fact: f, Err: err}
	})
}

func (m *Model) fetchRelated() tea.Cmd {
	client := m.deps.Client
	count := m.deps.Config.API.RelatedCount
	category := fact.CategoryRandom
	if m.current != nil {
		category = fact.NormalizeCategory(m.current.Category)
	}
	language := m.deps.Prefs.Language()
	timeout := time.Duration(m.deps.Config.API.TimeoutSeconds) * time.Second

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		facts, err := client.RandomFacts(ctx, count, language)
		for i := range facts {
			facts[i].Category = category
		}
		return RelatedLoadedMsg{Facts: facts, Err: err}
	}
}
