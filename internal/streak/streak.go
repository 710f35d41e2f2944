// Package streak tracks calendar-day visit history, consecutive-day
// streaks, overall fact totals and the achievement badges derived from
// them.
package streak

import (
	"iter"
	"math"
	"sync"
	"time"

	"github.com/abelbrown/trivium/internal/dedupe"
	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/logging"
	"github.com/abelbrown/trivium/internal/storage"
)

// dateKey is the storage format for calendar days (local time).
const dateKey = "2006-01-02"

// categoryTarget is the fixed per-category fact target used for the
// progress percentages that feed achievements.
const categoryTarget = 100

// Badge is an earned achievement.
type Badge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DayActivity describes one calendar day of visit history.
type DayActivity struct {
	Date    string
	Visited bool
	Count   int
}

// state is the persisted slice of streak data.
//
// Invariant: LongestStreak >= CurrentStreak after every mutation.
type state struct {
	VisitDates       map[string]int `json:"visitDates"`
	CurrentStreak    int            `json:"currentStreak"`
	LongestStreak    int            `json:"longestStreak"`
	LastVisitDate    string         `json:"lastVisitDate,omitempty"`
	TotalFacts       int            `json:"totalFacts"`
	Achievements     []Badge        `json:"achievementsBadges"`
	CategoryProgress map[string]int `json:"categoryProgress"`
	TotalProgress    int            `json:"totalProgress"`
}

// Store is the streak store. It exclusively owns the factStreakData
// storage key and persists its full state after every mutation.
type Store struct {
	mu    sync.Mutex
	kv    *storage.Store
	guard *dedupe.Guard
	now   func() time.Time
	state state
}

// New creates a Store, rehydrating persisted state.
func New(kv *storage.Store) *Store {
	return newStore(kv, dedupe.NewGuard(), time.Now)
}

// NewWithClock is like New but with an injectable clock and guard, for
// simulating calendar days in tests.
func NewWithClock(kv *storage.Store, guard *dedupe.Guard, now func() time.Time) *Store {
	return newStore(kv, guard, now)
}

func newStore(kv *storage.Store, guard *dedupe.Guard, now func() time.Time) *Store {
	s := &Store{kv: kv, guard: guard, now: now}
	if !kv.Get(storage.KeyStreakData, &s.state) {
		s.state = state{}
	}
	if s.state.VisitDates == nil {
		s.state.VisitDates = make(map[string]int)
	}
	if s.state.CategoryProgress == nil {
		s.state.CategoryProgress = make(map[string]int)
	}
	return s
}

// RecordVisit marks a visit for today. The first visit of a day advances
// or resets the streak; later visits only bump the day's count.
func (s *Store) RecordVisit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordVisitLocked()
	s.checkAchievementsLocked()
	s.save()
}

func (s *Store) recordVisitLocked() {
	now := s.now()
	today := now.Format(dateKey)

	firstVisitToday := s.state.VisitDates[today] == 0
	s.state.VisitDates[today]++

	if firstVisitToday {
		yesterday := now.AddDate(0, 0, -1).Format(dateKey)
		// A visit yesterday continues the streak; so does the absolute
		// first visit ever. Anything else is a gap.
		if s.state.VisitDates[yesterday] > 0 || s.state.LastVisitDate == "" {
			s.state.CurrentStreak++
		} else {
			s.state.CurrentStreak = 1
		}
		if s.state.CurrentStreak > s.state.LongestStreak {
			s.state.LongestStreak = s.state.CurrentStreak
		}
	}

	s.state.LastVisitDate = today
}

// RecordFactView records a qualifying fact view: bumps the fact total and
// category progress, recomputes overall progress, and records a visit.
// Duplicate delivery within the throttle window is skipped.
func (s *Store) RecordFactView(f *fact.Fact) {
	if f == nil || f.ID == "" {
		logging.Warn("Cannot record fact view - missing fact or fact ID")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.guard.WasRecentlyProcessed(f.ID) {
		return
	}
	s.guard.MarkAsProcessed(f.ID)

	s.state.TotalFacts++
	category := fact.NormalizeCategory(f.Category)
	s.state.CategoryProgress[category]++
	s.state.TotalProgress = s.computeTotalProgress()

	s.recordVisitLocked()
	s.checkAchievementsLocked()
	s.save()
}

// computeTotalProgress is the mean of per-category percentages across only
// the categories with nonzero progress. Callers hold s.mu.
func (s *Store) computeTotalProgress() int {
	var sum, active int
	for _, count := range s.state.CategoryProgress {
		p := min(100, int(math.Round(float64(count)/categoryTarget*100)))
		if p > 0 {
			sum += p
			active++
		}
	}
	if active == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(active)))
}

// checkAchievementsLocked derives the badge list from fixed thresholds.
// The stored list is replaced only when the new list is strictly longer:
// badges are a one-way ratchet and are never revoked, even after a reset
// drops the underlying numbers back below a threshold.
func (s *Store) checkAchievementsLocked() {
	var badges []Badge

	if s.state.CurrentStreak >= 3 {
		badges = append(badges, Badge{ID: "streak-3", Name: "3 Day Streak", Icon: "🔥"})
	}
	if s.state.CurrentStreak >= 7 {
		badges = append(badges, Badge{ID: "streak-7", Name: "7 Day Streak", Icon: "🔥🔥"})
	}
	if s.state.CurrentStreak >= 30 {
		badges = append(badges, Badge{ID: "streak-30", Name: "30 Day Streak", Icon: "🔥🔥🔥"})
	}

	if s.state.TotalFacts >= 10 {
		badges = append(badges, Badge{ID: "facts-10", Name: "10 Facts Learned", Icon: "🧠"})
	}
	if s.state.TotalFacts >= 50 {
		badges = append(badges, Badge{ID: "facts-50", Name: "50 Facts Learned", Icon: "🧠🧠"})
	}
	if s.state.TotalFacts >= 100 {
		badges = append(badges, Badge{ID: "facts-100", Name: "100 Facts Learned", Icon: "🧠🧠🧠"})
	}

	if s.state.TotalProgress >= 25 {
		badges = append(badges, Badge{ID: "progress-25", Name: "25% Explorer", Icon: "🔍"})
	}
	if s.state.TotalProgress >= 50 {
		badges = append(badges, Badge{ID: "progress-50", Name: "Halfway There", Icon: "🔍🔍"})
	}
	if s.state.TotalProgress >= 75 {
		badges = append(badges, Badge{ID: "progress-75", Name: "Knowledge Seeker", Icon: "🔍🔍🔍"})
	}

	if len(badges) > len(s.state.Achievements) {
		s.state.Achievements = badges
	}
}

// CurrentStreak returns the current consecutive-day streak.
func (s *Store) CurrentStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentStreak
}

// LongestStreak returns the longest streak ever achieved.
func (s *Store) LongestStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LongestStreak
}

// TotalFacts returns the total qualifying fact views.
func (s *Store) TotalFacts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalFacts
}

// TotalProgress returns the overall progress percentage (0-100).
func (s *Store) TotalProgress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalProgress
}

// Achievements returns the earned badges, in threshold order.
func (s *Store) Achievements() []Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	badges := make([]Badge, len(s.state.Achievements))
	copy(badges, s.state.Achievements)
	return badges
}

// CategoryProgress returns the percentage (0-100) of the fixed target
// viewed in the category.
func (s *Store) CategoryProgress(category string) int {
	if category == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min(100, int(math.Round(float64(s.state.CategoryProgress[category])/categoryTarget*100)))
}

// WasDateVisited reports whether the given day has a recorded visit.
func (s *Store) WasDateVisited(date time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.VisitDates[date.Format(dateKey)] > 0
}

// VisitCount returns the visit count recorded for the given day.
func (s *Store) VisitCount(date time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.VisitDates[date.Format(dateKey)]
}

// RecentActivity returns a lazy sequence over the last days calendar
// days ending today, most recent first. The sequence is restartable;
// callers may range over it more than once.
func (s *Store) RecentActivity(days int) iter.Seq[DayActivity] {
	return func(yield func(DayActivity) bool) {
		today := s.now()
		for i := 0; i < days; i++ {
			date := today.AddDate(0, 0, -i)
			key := date.Format(dateKey)

			s.mu.Lock()
			count := s.state.VisitDates[key]
			s.mu.Unlock()

			if !yield(DayActivity{Date: key, Visited: count > 0, Count: count}) {
				return
			}
		}
	}
}

// save persists the full state. Callers hold s.mu.
func (s *Store) save() {
	s.kv.Set(storage.KeyStreakData, &s.state)
}
