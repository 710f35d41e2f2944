// Package reactions tracks per-fact reaction counts and each user's
// single active reaction, with toggle semantics.
package reactions

import (
	"sync"

	"github.com/abelbrown/trivium/internal/storage"
)

// DefaultUserID identifies the implicit local user. Every operation takes
// an explicit user id so a multi-profile setup needs no re-architecture.
const DefaultUserID = "current-user"

// FactReactions holds the reaction state for one fact.
//
// Invariant: for every user in UserReactions, ReactionCounts of that
// user's reaction is at least 1; zero-count entries are pruned.
type FactReactions struct {
	ReactionCounts map[string]int    `json:"reactionCounts"`
	UserReactions  map[string]string `json:"userReactions"`
}

// Store is the reactions store. It exclusively owns the factReactions
// storage key and persists its full state after every mutation.
type Store struct {
	mu    sync.Mutex
	kv    *storage.Store
	state map[string]*FactReactions
}

// New creates a Store, rehydrating persisted state.
func New(kv *storage.Store) *Store {
	s := &Store{kv: kv, state: make(map[string]*FactReactions)}
	kv.Get(storage.KeyReactions, &s.state)
	if s.state == nil {
		s.state = make(map[string]*FactReactions)
	}
	return s
}

// AddReaction toggles the user's reaction of the given type on the fact.
// Re-selecting the active reaction clears it; selecting a different one
// replaces the prior reaction, pruning its count if it drops to zero.
func (s *Store) AddReaction(factID, reactionType, userID string) {
	if factID == "" || reactionType == "" || userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fr, ok := s.state[factID]
	if !ok {
		fr = &FactReactions{
			ReactionCounts: make(map[string]int),
			UserReactions:  make(map[string]string),
		}
		s.state[factID] = fr
	}

	current := fr.UserReactions[userID]

	if current == reactionType {
		// Toggle off
		fr.ReactionCounts[reactionType]--
		if fr.ReactionCounts[reactionType] <= 0 {
			delete(fr.ReactionCounts, reactionType)
		}
		delete(fr.UserReactions, userID)
	} else {
		if current != "" {
			fr.ReactionCounts[current]--
			if fr.ReactionCounts[current] <= 0 {
				delete(fr.ReactionCounts, current)
			}
		}
		fr.ReactionCounts[reactionType]++
		fr.UserReactions[userID] = reactionType
	}

	s.save()
}

// FactReactions returns the reaction state for a fact. Unknown facts get
// an empty result.
func (s *Store) FactReactions(factID string) FactReactions {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr, ok := s.state[factID]
	if !ok {
		return FactReactions{
			ReactionCounts: map[string]int{},
			UserReactions:  map[string]string{},
		}
	}

	out := FactReactions{
		ReactionCounts: make(map[string]int, len(fr.ReactionCounts)),
		UserReactions:  make(map[string]string, len(fr.UserReactions)),
	}
	for k, v := range fr.ReactionCounts {
		out.ReactionCounts[k] = v
	}
	for k, v := range fr.UserReactions {
		out.UserReactions[k] = v
	}
	return out
}

// UserReaction returns the user's active reaction on the fact, or "" if
// none.
func (s *Store) UserReaction(factID, userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fr, ok := s.state[factID]; ok {
		return fr.UserReactions[userID]
	}
	return ""
}

// TotalReactions returns the sum of all reaction counts on the fact.
func (s *Store) TotalReactions(factID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr, ok := s.state[factID]
	if !ok {
		return 0
	}
	var total int
	for _, n := range fr.ReactionCounts {
		total += n
	}
	return total
}

// save persists the full state. Callers hold s.mu.
func (s *Store) save() {
	s.kv.Set(storage.KeyReactions, s.state)
}
