// Package tracking records which facts have been shown during and across
// sessions. It owns the viewedFactIds storage key, independently of the
// progress and streak stores' own dedup guards.
package tracking

import "github.com/abelbrown/trivium/internal/storage"

// Tracker is an explicit per-app instance (never a package-level
// singleton) so tests can construct isolated trackers.
type Tracker struct {
	kv *storage.Store

	// sessionIDs holds ids counted in this session only.
	sessionIDs map[string]bool
	// lastProcessedID suppresses back-to-back duplicate processing.
	lastProcessedID string
	// persisted is the distinct-id history mirrored to storage.
	persisted    []string
	persistedSet map[string]bool
}

// New creates a Tracker, rehydrating the persisted id history.
func New(kv *storage.Store) *Tracker {
	t := &Tracker{
		kv:           kv,
		sessionIDs:   make(map[string]bool),
		persistedSet: make(map[string]bool),
	}
	var ids []string
	if kv.Get(storage.KeyViewedFactIDs, &ids) {
		t.persisted = ids
		for _, id := range ids {
			t.persistedSet[id] = true
		}
	}
	return t
}

// HasBeenCounted reports whether the fact was already counted in this
// session.
func (t *Tracker) HasBeenCounted(factID string) bool {
	return t.sessionIDs[factID] || t.lastProcessedID == factID
}

// MarkAsCounted records the fact as viewed in this session and appends it
// to the persisted distinct-id history if not already present.
func (t *Tracker) MarkAsCounted(factID string) {
	t.sessionIDs[factID] = true
	t.lastProcessedID = factID

	if !t.persistedSet[factID] {
		t.persisted = append(t.persisted, factID)
		t.persistedSet[factID] = true
		t.kv.Set(storage.KeyViewedFactIDs, t.persisted)
	}
}

// ViewedCount returns the number of distinct facts ever viewed.
func (t *Tracker) ViewedCount() int {
	return len(t.persisted)
}

// Reset clears session tracking. The persisted history is untouched.
func (t *Tracker) Reset() {
	t.sessionIDs = make(map[string]bool)
	t.lastProcessedID = ""
}
