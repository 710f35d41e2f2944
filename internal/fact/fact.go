// Package fact defines the core fact value type and the fixed category
// and reaction vocabularies shared by every store.
package fact

import (
	"strings"

	"github.com/abelbrown/trivium/internal/logging"
)

// Fact is a single trivia statement. Facts are immutable value records;
// identity is by ID. Category is assigned client-side at display time -
// the upstream source has no category awareness.
type Fact struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Source    string `json:"source,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	Language  string `json:"language,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	Category  string `json:"category,omitempty"`
}

// CategoryRandom is the fallback bucket for facts with no category or an
// unrecognized one.
const CategoryRandom = "random"

// Categories is the fixed set of labels used to bucket facts for progress
// display. Order is the display order.
var Categories = []string{
	"science",
	"history",
	"animals",
	"geography",
	"food",
	"entertainment",
	"sports",
	"space",
	"weird",
	CategoryRandom,
}

// categorySynonyms maps externally-observed labels into the fixed set.
var categorySynonyms = map[string]string{
	"technology":     "science",
	"tech":           "science",
	"science & tech": "science",
	"travel":         "geography",
	"geo":            "geography",
	"nature":         "animals",
	"cooking":        "food",
	"cuisine":        "food",
	"movies":         "entertainment",
	"tv":             "entertainment",
	"astronomy":      "space",
	"unusual":        "weird",
	"strange":        "weird",
}

var validCategories = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// NormalizeCategory maps an arbitrary category string into the fixed set.
// Empty input defaults to "random"; synonyms are rewritten; anything else
// falls back to "random" with a logged warning.
func NormalizeCategory(category string) string {
	if category == "" {
		return CategoryRandom
	}
	c := strings.ToLower(strings.TrimSpace(category))
	if mapped, ok := categorySynonyms[c]; ok {
		return mapped
	}
	if validCategories[c] {
		return c
	}
	logging.Warn("Unknown category, defaulting to random", "category", category)
	return CategoryRandom
}

// IsValidCategory reports whether c is one of the ten fixed labels.
func IsValidCategory(c string) bool {
	return validCategories[c]
}

// Reaction is one of the fixed emoji-tagged sentiment labels a user may
// attach to a fact.
type Reaction struct {
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// ReactionTypes is the fixed reaction vocabulary, in display order.
var ReactionTypes = []Reaction{
	{Emoji: "🤯", Name: "mind-blown"},
	{Emoji: "😂", Name: "funny"},
	{Emoji: "🤔", Name: "skeptical"},
	{Emoji: "👍", Name: "like"},
	{Emoji: "❤️", Name: "love"},
	{Emoji: "🧠", Name: "educational"},
}
