// Package progress tracks which facts have been viewed and how far the
// user has worked through each category.
//
// Category totals are static estimates (100 per category by default), not
// ground truth - the upstream source is purely random and cannot be
// enumerated.
package progress

import (
	"math"
	"sync"
	"time"

	"github.com/abelbrown/trivium/internal/dedupe"
	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/logging"
	"github.com/abelbrown/trivium/internal/storage"
)

// defaultCategoryTotal is the fixed estimate used to seed each category at
// first run.
const defaultCategoryTotal = 100

// ViewRecord tracks a single distinct fact ever viewed.
type ViewRecord struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	FirstViewed time.Time `json:"firstViewed"`
	LastViewed  time.Time `json:"lastViewed"`
	ViewCount   int       `json:"viewCount"`
}

// state is the persisted slice of progress data.
//
// Invariant: ViewedByCategory[c] equals the number of ViewRecords whose
// category is c, at all times.
type state struct {
	ViewedFacts      map[string]*ViewRecord `json:"viewedFacts"`
	ViewedByCategory map[string]int         `json:"viewedByCategory"`
	CategoryTotals   map[string]int         `json:"categoryTotals"`
	LastUpdated      *time.Time             `json:"lastUpdated"`
}

// Store is the progress store. It exclusively owns the factProgressData
// storage key and persists its full state after every mutation.
type Store struct {
	mu    sync.Mutex
	kv    *storage.Store
	guard *dedupe.Guard
	now   func() time.Time
	state state
}

// New creates a Store, rehydrating persisted state and seeding default
// category totals if none exist yet. Existing estimates are never
// overwritten.
func New(kv *storage.Store) *Store {
	return newStore(kv, dedupe.NewGuard(), time.Now)
}

// NewWithClock is like New but with an injectable clock and guard, for
// tests.
func NewWithClock(kv *storage.Store, guard *dedupe.Guard, now func() time.Time) *Store {
	return newStore(kv, guard, now)
}

func newStore(kv *storage.Store, guard *dedupe.Guard, now func() time.Time) *Store {
	s := &Store{kv: kv, guard: guard, now: now}
	if !kv.Get(storage.KeyProgressData, &s.state) {
		s.state = state{}
	}
	if s.state.ViewedFacts == nil {
		s.state.ViewedFacts = make(map[string]*ViewRecord)
	}
	if s.state.ViewedByCategory == nil {
		s.state.ViewedByCategory = make(map[string]int)
	}
	if len(s.state.CategoryTotals) == 0 {
		s.state.CategoryTotals = make(map[string]int, len(fact.Categories))
		for _, c := range fact.Categories {
			s.state.CategoryTotals[c] = defaultCategoryTotal
		}
		s.save()
	}
	return s
}

// RecordFactView records a qualifying view of f. Malformed input (missing
// fact id) and duplicate delivery within the throttle window are silently
// skipped. A repeat view of a known fact bumps only its view count and
// last-viewed time; category counters are untouched.
func (s *Store) RecordFactView(f *fact.Fact) {
	if f == nil || f.ID == "" {
		logging.Warn("Cannot record fact view - missing fact or fact ID")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.guard.WasRecentlyProcessed(f.ID) {
		logging.Debug("Progress already recorded for fact, skipping", "id", f.ID)
		return
	}
	s.guard.MarkAsProcessed(f.ID)

	category := fact.NormalizeCategory(f.Category)
	now := s.now()

	if rec, ok := s.state.ViewedFacts[f.ID]; ok {
		rec.ViewCount++
		rec.LastViewed = now
		s.save()
		return
	}

	s.state.ViewedFacts[f.ID] = &ViewRecord{
		ID:          f.ID,
		Category:    category,
		FirstViewed: now,
		LastViewed:  now,
		ViewCount:   1,
	}
	s.state.ViewedByCategory[category]++
	s.state.LastUpdated = &now
	s.save()
}

// IsFactViewed reports whether the fact has ever been viewed.
func (s *Store) IsFactViewed(factID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.ViewedFacts[factID]
	return ok
}

// CategoryProgress returns the percentage (0-100) of the category's
// estimated total that has been viewed.
func (s *Store) CategoryProgress(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return percent(s.state.ViewedByCategory[category], s.state.CategoryTotals[category])
}

// TotalFactsViewed returns the count of distinct facts ever viewed.
func (s *Store) TotalFactsViewed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.ViewedFacts)
}

// TotalFactsAvailable returns the sum of all category estimates.
func (s *Store) TotalFactsAvailable() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	for _, n := range s.state.CategoryTotals {
		total += n
	}
	return total
}

// OverallProgress returns the percentage (0-100) of all estimated facts
// that have been viewed.
func (s *Store) OverallProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int
	for _, n := range s.state.CategoryTotals {
		total += n
	}
	return percent(len(s.state.ViewedFacts), total)
}

// ViewedByCategory returns the per-category distinct view count.
func (s *Store) ViewedByCategory(category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ViewedByCategory[category]
}

// SetCategoryTotal overwrites the static estimate for a category.
func (s *Store) SetCategoryTotal(category string, total int) {
	if category == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CategoryTotals[category] = total
	s.save()
}

// ResetCategoryProgress removes every view record in the category and
// zeroes its counter. Category totals are untouched.
func (s *Store) ResetCategoryProgress(category string) {
	if category == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rec := range s.state.ViewedFacts {
		if rec.Category == category {
			delete(s.state.ViewedFacts, id)
		}
	}
	s.state.ViewedByCategory[category] = 0
	now := s.now()
	s.state.LastUpdated = &now
	s.save()
}

// save persists the full state. Callers hold s.mu.
func (s *Store) save() {
	s.kv.Set(storage.KeyProgressData, &s.state)
}

// percent computes round(100*viewed/total) clamped to 100, with 0 for an
// empty denominator.
func percent(viewed, total int) int {
	if total == 0 {
		return 0
	}
	p := int(math.Round(float64(viewed) / float64(total) * 100))
	return min(100, p)
}
