// Package collections manages user-named groups of saved facts.
//
// Mutations are fail-soft throughout: operations on an absent collection
// id are silently ignored, and membership changes are idempotent.
package collections

import (
	"sync"

	"github.com/google/uuid"

	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/storage"
)

// Collection is a user-named, user-managed group of saved facts, unique by
// fact id and ordered by insertion.
type Collection struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Facts []fact.Fact `json:"facts"`
}

// Store is the collections store. It exclusively owns the factCollections
// storage key and persists its full state after every mutation.
type Store struct {
	mu          sync.Mutex
	kv          *storage.Store
	collections []Collection
}

// New creates a Store, rehydrating persisted state. At first run a single
// default collection is seeded.
func New(kv *storage.Store) *Store {
	s := &Store{kv: kv}
	if !kv.Get(storage.KeyCollections, &s.collections) {
		s.collections = []Collection{{ID: "default", Name: "My Collection", Facts: []fact.Fact{}}}
		s.save()
	}
	return s
}

// Create appends a new empty collection and returns its id, so the caller
// can immediately add a fact to it.
func (s *Store) Create(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Collection{ID: uuid.NewString(), Name: name, Facts: []fact.Fact{}}
	s.collections = append(s.collections, c)
	s.save()
	return c.ID
}

// Rename changes a collection's name. Absent ids are silently ignored.
func (s *Store) Rename(id, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID == id {
			s.collections[i].Name = newName
			s.save()
			return
		}
	}
}

// Delete removes a collection permanently. Absent ids are silently
// ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID == id {
			s.collections = append(s.collections[:i], s.collections[i+1:]...)
			s.save()
			return
		}
	}
}

// AddFact adds a fact to a collection. Adding a fact already present is a
// no-op.
func (s *Store) AddFact(collectionID string, f fact.Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID != collectionID {
			continue
		}
		for _, existing := range s.collections[i].Facts {
			if existing.ID == f.ID {
				return
			}
		}
		s.collections[i].Facts = append(s.collections[i].Facts, f)
		s.save()
		return
	}
}

// RemoveFact removes a fact from a collection. Removing an absent fact is
// a no-op.
func (s *Store) RemoveFact(collectionID, factID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID != collectionID {
			continue
		}
		for j, existing := range s.collections[i].Facts {
			if existing.ID == factID {
				s.collections[i].Facts = append(s.collections[i].Facts[:j], s.collections[i].Facts[j+1:]...)
				s.save()
				return
			}
		}
		return
	}
}

// Contains reports whether the fact is in the collection.
func (s *Store) Contains(collectionID, factID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.collections {
		if c.ID != collectionID {
			continue
		}
		for _, f := range c.Facts {
			if f.ID == factID {
				return true
			}
		}
		return false
	}
	return false
}

// CollectionsWithFact returns the ids of every collection containing the
// fact.
func (s *Store) CollectionsWithFact(factID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, c := range s.collections {
		for _, f := range c.Facts {
			if f.ID == factID {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids
}

// All returns a snapshot of every collection, in creation order.
func (s *Store) All() []Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// save persists the full state. Callers hold s.mu.
func (s *Store) save() {
	s.kv.Set(storage.KeyCollections, s.collections)
}
