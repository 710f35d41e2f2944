package ui

import "github.com/abelbrown/trivium/internal/fact"

// FactLoadedMsg carries the result of a random-fact fetch.
type FactLoadedMsg struct {
	Fact *fact.Fact
	Err  error
}

// RelatedLoadedMsg carries the prefetched related-facts batch.
type RelatedLoadedMsg struct {
	Facts []fact.Fact
	Err   error
}

// FlashcardsLoadedMsg carries a fetched flashcard deck refill.
type FlashcardsLoadedMsg struct {
	Facts []fact.Fact
	Err   error
}
