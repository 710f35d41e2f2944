// Package dedupe suppresses duplicate delivery of the same logical
// fact-view event.
//
// A single qualifying view is broadcast to both the progress and streak
// stores, and UI paths such as the related-facts panel can report the same
// fact twice within one tick. Each consuming store holds its own private
// Guard, so one view still counts exactly once in each store, while a view
// reported twice to the same store within the throttle window counts once.
package dedupe

import "time"

// throttleDuration is the window within which a repeated mark of the same
// id is considered a duplicate.
const throttleDuration = 2 * time.Second

// Guard is an in-memory registry of recently processed fact ids. It is
// ephemeral by design - rebuilt empty on every process start - since its
// sole purpose is to suppress sub-session duplicate signals.
//
// Guard is not safe for concurrent use; stores drive it from a single
// goroutine under their own lock.
type Guard struct {
	recentlyProcessed map[string]time.Time
	throttle          time.Duration
	now               func() time.Time
}

// NewGuard returns a Guard with the standard 2s throttle window.
func NewGuard() *Guard {
	return &Guard{
		recentlyProcessed: make(map[string]time.Time),
		throttle:          throttleDuration,
		now:               time.Now,
	}
}

// NewGuardWithClock returns a Guard driven by the given clock. Tests use
// this to simulate the throttle window elapsing.
func NewGuardWithClock(now func() time.Time) *Guard {
	g := NewGuard()
	g.now = now
	return g
}

// WasRecentlyProcessed reports whether id was marked within the throttle
// window before this check.
func (g *Guard) WasRecentlyProcessed(id string) bool {
	processed, ok := g.recentlyProcessed[id]
	if !ok {
		return false
	}
	return g.now().Sub(processed) < g.throttle
}

// MarkAsProcessed records id as processed now and opportunistically evicts
// stale entries.
func (g *Guard) MarkAsProcessed(id string) {
	g.recentlyProcessed[id] = g.now()
	g.evictStale()
}

// evictStale drops entries older than 10x the throttle window to bound
// memory.
func (g *Guard) evictStale() {
	cutoff := g.now().Add(-10 * g.throttle)
	for id, processed := range g.recentlyProcessed {
		if processed.Before(cutoff) {
			delete(g.recentlyProcessed, id)
		}
	}
}
