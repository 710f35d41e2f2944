package streak

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/abelbrown/trivium/internal/dedupe"
	"github.com/abelbrown/trivium/internal/fact"
	"github.com/abelbrown/trivium/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) advanceDays(n int)       { c.t = c.t.AddDate(0, 0, n) }

func newTestKV(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewWithClock(newTestKV(t), dedupe.NewGuardWithClock(clock.now), clock.now)
	return s, clock
}

func TestFirstEverVisit(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordVisit()

	if got := s.CurrentStreak(); got != 1 {
		t.Errorf("CurrentStreak = %d after first visit, want 1", got)
	}
	if got := s.LongestStreak(); got != 1 {
		t.Errorf("LongestStreak = %d after first visit, want 1", got)
	}
}

func TestConsecutiveDays(t *testing.T) {
	s, clock := newTestStore(t)

	for day := 0; day < 3; day++ {
		s.RecordVisit()
		clock.advanceDays(1)
	}

	if got := s.CurrentStreak(); got != 3 {
		t.Errorf("CurrentStreak = %d after 3 consecutive days, want 3", got)
	}
}

func TestGapResetsStreakToOne(t *testing.T) {
	s, clock := newTestStore(t)

	s.RecordVisit()
	clock.advanceDays(1)
	s.RecordVisit() // streak 2

	clock.advanceDays(3) // skip days
	s.RecordVisit()

	if got := s.CurrentStreak(); got != 1 {
		t.Errorf("CurrentStreak = %d after gap, want 1", got)
	}
	if got := s.LongestStreak(); got != 2 {
		t.Errorf("LongestStreak = %d after gap, want 2", got)
	}
}

func TestLongestAtLeastCurrentInvariant(t *testing.T) {
	s, clock := newTestStore(t)

	// Mixed pattern: runs of visits with gaps in between
	pattern := []int{1, 1, 1, 3, 1, 1, 1, 1, 2, 1}
	for _, gap := range pattern {
		s.RecordVisit()
		if s.LongestStreak() < s.CurrentStreak() {
			t.Fatalf("invariant violated: longest %d < current %d",
				s.LongestStreak(), s.CurrentStreak())
		}
		clock.advanceDays(gap)
	}
}

func TestRepeatVisitsSameDay(t *testing.T) {
	s, clock := newTestStore(t)

	s.RecordVisit()
	s.RecordVisit()
	s.RecordVisit()

	if got := s.CurrentStreak(); got != 1 {
		t.Errorf("CurrentStreak = %d after repeat same-day visits, want 1", got)
	}
	if got := s.VisitCount(clock.now()); got != 3 {
		t.Errorf("VisitCount = %d, want 3", got)
	}
}

func TestRecordFactView(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordFactView(&fact.Fact{ID: "f1", Category: "science"})

	if got := s.TotalFacts(); got != 1 {
		t.Errorf("TotalFacts = %d, want 1", got)
	}
	if got := s.CategoryProgress("science"); got != 1 {
		t.Errorf("CategoryProgress(science) = %d, want 1", got)
	}
	// One category with 1% progress: mean is 1
	if got := s.TotalProgress(); got != 1 {
		t.Errorf("TotalProgress = %d, want 1", got)
	}
	// A fact view also records a visit
	if got := s.CurrentStreak(); got != 1 {
		t.Errorf("CurrentStreak = %d after fact view, want 1", got)
	}
}

func TestMalformedFactViewSkipped(t *testing.T) {
	s, _ := newTestStore(t)

	s.RecordFactView(nil)
	s.RecordFactView(&fact.Fact{Category: "science"})

	if got := s.TotalFacts(); got != 0 {
		t.Errorf("TotalFacts = %d after malformed views, want 0", got)
	}
	if got := s.CurrentStreak(); got != 0 {
		t.Errorf("CurrentStreak = %d after malformed views, want 0", got)
	}
}

func TestDuplicateFactViewSkipped(t *testing.T) {
	s, _ := newTestStore(t)

	f := &fact.Fact{ID: "f1", Category: "science"}
	s.RecordFactView(f)
	s.RecordFactView(f)

	if got := s.TotalFacts(); got != 1 {
		t.Errorf("TotalFacts = %d after rapid duplicate, want 1", got)
	}
}

func TestTotalProgressIsMeanOfActiveCategories(t *testing.T) {
	s, clock := newTestStore(t)

	// 10 science facts (10%), 30 history facts (30%)
	for i := 0; i < 10; i++ {
		s.RecordFactView(&fact.Fact{ID: fmt.Sprintf("s%d", i), Category: "science"})
		clock.advance(3 * time.Second)
	}
	for i := 0; i < 30; i++ {
		s.RecordFactView(&fact.Fact{ID: fmt.Sprintf("h%d", i), Category: "history"})
		clock.advance(3 * time.Second)
	}

	// Mean of 10 and 30, not their sum
	if got := s.TotalProgress(); got != 20 {
		t.Errorf("TotalProgress = %d, want 20", got)
	}
}

func TestAchievementsFromFactCount(t *testing.T) {
	s, clock := newTestStore(t)

	for i := 0; i < 10; i++ {
		s.RecordFactView(&fact.Fact{ID: fmt.Sprintf("f%d", i), Category: "random"})
		clock.advance(3 * time.Second)
	}

	badges := s.Achievements()
	if len(badges) != 1 {
		t.Fatalf("got %d badges, want 1: %+v", len(badges), badges)
	}
	if badges[0].ID != "facts-10" {
		t.Errorf("badge id = %q, want facts-10", badges[0].ID)
	}
}

func TestStreakAchievements(t *testing.T) {
	s, clock := newTestStore(t)

	for day := 0; day < 7; day++ {
		s.RecordVisit()
		clock.advanceDays(1)
	}

	badges := s.Achievements()
	want := []string{"streak-3", "streak-7"}
	if len(badges) != len(want) {
		t.Fatalf("got %d badges, want %d: %+v", len(badges), len(want), badges)
	}
	for i, id := range want {
		if badges[i].ID != id {
			t.Errorf("badge[%d] = %q, want %q", i, badges[i].ID, id)
		}
	}
}

func TestBadgesAreNeverRevoked(t *testing.T) {
	kv := newTestKV(t)
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewWithClock(kv, dedupe.NewGuardWithClock(clock.now), clock.now)

	// Earn streak-3
	for day := 0; day < 3; day++ {
		s.RecordVisit()
		clock.advanceDays(1)
	}
	if len(s.Achievements()) != 1 {
		t.Fatalf("expected streak-3 badge, got %+v", s.Achievements())
	}

	// Break the streak; the recomputed list would be empty, but the
	// stored badges stay (replace-on-longer-only ratchet)
	clock.advanceDays(5)
	s.RecordVisit()

	badges := s.Achievements()
	if len(badges) != 1 || badges[0].ID != "streak-3" {
		t.Errorf("badge was revoked after streak break: %+v", badges)
	}
}

func TestRecentActivity(t *testing.T) {
	s, clock := newTestStore(t)

	s.RecordVisit() // day 0
	clock.advanceDays(1)
	s.RecordVisit() // day 1
	s.RecordVisit()
	clock.advanceDays(1) // day 2: no visit

	var got []DayActivity
	for day := range s.RecentActivity(3) {
		got = append(got, day)
	}

	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	// Reverse-chronological: today (no visit), yesterday (2 visits),
	// two days ago (1 visit)
	if got[0].Visited || got[0].Count != 0 {
		t.Errorf("today = %+v, want unvisited", got[0])
	}
	if !got[1].Visited || got[1].Count != 2 {
		t.Errorf("yesterday = %+v, want visited twice", got[1])
	}
	if !got[2].Visited || got[2].Count != 1 {
		t.Errorf("two days ago = %+v, want visited once", got[2])
	}
}

func TestRecentActivityIsRestartable(t *testing.T) {
	s, _ := newTestStore(t)
	s.RecordVisit()

	seq := s.RecentActivity(5)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 5 || second != 5 {
		t.Errorf("sequence not restartable: first=%d second=%d, want 5 and 5", first, second)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	kv := newTestKV(t)
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	s := NewWithClock(kv, dedupe.NewGuardWithClock(clock.now), clock.now)
	s.RecordVisit()
	clock.advanceDays(1)
	s.RecordVisit()

	reloaded := NewWithClock(kv, dedupe.NewGuardWithClock(clock.now), clock.now)
	if got := reloaded.CurrentStreak(); got != 2 {
		t.Errorf("CurrentStreak after restart = %d, want 2", got)
	}
	// Same-day visit after restart must not advance the streak
	reloaded.RecordVisit()
	if got := reloaded.CurrentStreak(); got != 2 {
		t.Errorf("CurrentStreak after same-day revisit = %d, want 2", got)
	}
}
