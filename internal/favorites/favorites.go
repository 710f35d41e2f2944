// Package favorites maintains the flat set of saved facts, unique by id
// and order-preserving for display.
package favorites

import (
	"sync"

	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/storage"
)

// Store is the favorites store. It exclusively owns the factFavorites
// storage key and persists its full state after every mutation.
type Store struct {
	mu    sync.Mutex
	kv    *storage.Store
	facts []fact.Fact
}

// New creates a Store, rehydrating persisted state.
func New(kv *storage.Store) *Store {
	s := &Store{kv: kv}
	kv.Get(storage.KeyFavorites, &s.facts)
	return s
}

// Add saves the fact. Adding a fact already saved is a no-op.
func (s *Store) Add(f fact.Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.facts {
		if existing.ID == f.ID {
			return
		}
	}
	s.facts = append(s.facts, f)
	s.save()
}

// Remove deletes the fact by id. Removing an absent fact is a no-op.
func (s *Store) Remove(factID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.facts {
		if existing.ID == factID {
			s.facts = append(s.facts[:i], s.facts[i+1:]...)
			s.save()
			return
		}
	}
}

// IsFavorite reports whether the fact is saved.
func (s *Store) IsFavorite(factID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.facts {
		if existing.ID == factID {
			return true
		}
	}
	return false
}

// All returns a snapshot of the saved facts, in insertion order.
func (s *Store) All() []fact.Fact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]fact.Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Count returns the number of saved facts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.facts)
}

// save persists the full state. Callers hold s.mu.
func (s *Store) save() {
	s.kv.Set(storage.KeyFavorites, s.facts)
}
