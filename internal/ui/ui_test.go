package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/trivium/internal/collections"
	"github.com/abelbrown/trivium/internal/config"
	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/favorites"
	"github.com/abelbrown/trivium/internal/prefs"
	"github.com/abelbrown/trivium/internal/progress"
	"github.com/abelbrown/trivium/internal/reactions"
	"github.com/abelbrown/trivium/internal/storage"
	"github.com/abelbrown/trivium/internal/streak"
	"github.com/abelbrown/trivium/internal/tracking"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	return Deps{
		Config:      config.DefaultConfig(),
		KV:          kv,
		Prefs:       prefs.New(kv),
		Progress:    progress.New(kv),
		Streak:      streak.New(kv),
		Reactions:   reactions.New(kv),
		Collections: collections.New(kv),
		Favorites:   favorites.New(kv),
		Tracker:     tracking.New(kv),
	}
}

// Update returns either a value or a pointer depending on the path taken.
func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	switch v := tm.(type) {
	case Model:
		return v
	case *Model:
		return *v
	default:
		t.Fatalf("unexpected model type %T", tm)
		return Model{}
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNextCategoryCyclesThroughAll(t *testing.T) {
	seen := make(map[string]bool)
	c := ""
	for i := 0; i <= len(fact.Categories); i++ {
		c = nextCategory(c)
		seen[c] = true
	}
	// After a full cycle we are back at surprise mode
	if c != "" {
		t.Errorf("expected empty category after full cycle, got %q", c)
	}
	for _, want := range fact.Categories {
		if !seen[want] {
			t.Errorf("cycle never visited %q", want)
		}
	}
}

func TestWrapRespectsWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	for _, line := range strings.Split(wrap(text, 15), "\n") {
		if len(line) > 15 {
			t.Errorf("line %q exceeds width 15", line)
		}
	}
	if wrap("short", 80) != "short" {
		t.Errorf("short text should be unchanged")
	}
}

func TestWrapKeepsAllWords(t *testing.T) {
	text := "one two three four five"
	got := strings.Fields(wrap(text, 8))
	want := strings.Fields(text)
	if len(got) != len(want) {
		t.Fatalf("wrap lost words: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 20); got != "hello world" {
		t.Errorf("no-op truncate changed string: %q", got)
	}
	if got := truncate("hello world", 8); got != "hello..." {
		t.Errorf("got %q, want %q", got, "hello...")
	}
	if got := truncate("hello", 2); got != "he" {
		t.Errorf("tiny maxLen: got %q", got)
	}
}

func TestProgressBarBounds(t *testing.T) {
	if got := progressBar(0, 10); strings.Contains(got, "█") {
		t.Errorf("0%% bar should be empty, got %q", got)
	}
	full := progressBar(100, 10)
	if strings.Contains(full, "░") {
		t.Errorf("100%% bar should be full, got %q", full)
	}
	half := progressBar(50, 10)
	if n := strings.Count(half, "█"); n != 5 {
		t.Errorf("50%% of 10 cells: got %d filled", n)
	}
}

func TestStylesForKnownThemes(t *testing.T) {
	for _, theme := range []string{"dark", "light", "cosmic", "sunset"} {
		// Must not panic and must produce a usable style set
		s := StylesFor(theme)
		if s.Header.Render("x") == "" {
			t.Errorf("theme %q produced empty render", theme)
		}
	}
	// Unknown themes fall back rather than blowing up
	StylesFor("no-such-theme")
}

func TestFlashcardsDeckPaging(t *testing.T) {
	m := New(newTestDeps(t))
	m.mode = modeFlashcards

	deck := []fact.Fact{
		{ID: "c1", Text: "one"},
		{ID: "c2", Text: "two"},
		{ID: "c3", Text: "three"},
		{ID: "c4", Text: "four"},
	}
	m = asModel(t, first(m.Update(FlashcardsLoadedMsg{Facts: deck})))
	if m.cardIdx != 0 || len(m.cards) != 4 {
		t.Fatalf("after load: cardIdx=%d, deck=%d, want 0 and 4", m.cardIdx, len(m.cards))
	}

	m = asModel(t, first(m.Update(keyMsg("l"))))
	if m.cardIdx != 1 {
		t.Errorf("cardIdx = %d after next, want 1", m.cardIdx)
	}
	m = asModel(t, first(m.Update(keyMsg("h"))))
	if m.cardIdx != 0 {
		t.Errorf("cardIdx = %d after prev, want 0", m.cardIdx)
	}
	// Prev at the start of the deck stays put
	m = asModel(t, first(m.Update(keyMsg("h"))))
	if m.cardIdx != 0 {
		t.Errorf("cardIdx = %d after prev at start, want 0", m.cardIdx)
	}
}

func TestFlashcardsRefillNearDeckEnd(t *testing.T) {
	m := New(newTestDeps(t))
	m.mode = modeFlashcards
	m = asModel(t, first(m.Update(FlashcardsLoadedMsg{Facts: []fact.Fact{
		{ID: "c1", Text: "one"},
		{ID: "c2", Text: "two"},
		{ID: "c3", Text: "three"},
	}})))

	// Moving within two cards of the end requests a refill
	next, cmd := m.Update(keyMsg("l"))
	m = asModel(t, next)
	if cmd == nil {
		t.Error("expected a refill command near the end of the deck")
	}
	if !m.cardsLoading {
		t.Error("cardsLoading should be set while the refill is in flight")
	}
}

func TestFlashcardsRefillKeepsDeckDistinct(t *testing.T) {
	m := New(newTestDeps(t))
	m.mode = modeFlashcards
	m = asModel(t, first(m.Update(FlashcardsLoadedMsg{Facts: []fact.Fact{
		{ID: "c1", Text: "one"},
		{ID: "c2", Text: "two"},
	}})))

	// A refill repeating a dealt fact only adds the new one
	m = asModel(t, first(m.Update(FlashcardsLoadedMsg{Facts: []fact.Fact{
		{ID: "c2", Text: "two"},
		{ID: "c5", Text: "five"},
	}})))
	if len(m.cards) != 3 {
		t.Fatalf("deck size = %d after overlapping refill, want 3", len(m.cards))
	}
	if m.cards[2].ID != "c5" {
		t.Errorf("appended card = %q, want c5", m.cards[2].ID)
	}
}

func TestFlashcardsFavoriteToggle(t *testing.T) {
	deps := newTestDeps(t)
	m := New(deps)
	m.mode = modeFlashcards
	m = asModel(t, first(m.Update(FlashcardsLoadedMsg{Facts: []fact.Fact{
		{ID: "c1", Text: "one"},
	}})))

	m = asModel(t, first(m.Update(keyMsg("f"))))
	if !deps.Favorites.IsFavorite("c1") {
		t.Error("card should be favorited after f")
	}
	m = asModel(t, first(m.Update(keyMsg("f"))))
	if deps.Favorites.IsFavorite("c1") {
		t.Error("second f should remove the favorite")
	}
	_ = m
}

func TestProgressViewShowsViewedLedger(t *testing.T) {
	deps := newTestDeps(t)
	deps.Tracker.MarkAsCounted("x1")
	deps.Tracker.MarkAsCounted("x2")

	m := New(deps)
	out := m.progressView()
	if !strings.Contains(out, "2 distinct fact(s) ever seen") {
		t.Errorf("progress view missing viewed ledger line:\n%s", out)
	}
}

func TestTruncateMultibyte(t *testing.T) {
	s := "Die Königin äußerte sich überraschend über die Straßenbahn"
	got := truncate(s, 20)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Errorf("truncated length = %d runes, want 20", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func first(m tea.Model, _ tea.Cmd) tea.Model { return m }

func TestCategoryStyleCoversAllCategories(t *testing.T) {
	for _, c := range fact.Categories {
		if categoryStyle(c).Render(c) == "" {
			t.Errorf("category %q produced empty render", c)
		}
	}
}
