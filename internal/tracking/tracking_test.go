package tracking

import (
	"path/filepath"
	"testing"

	"github.com/abelbrown/trivium/internal/storage"
)

func newTestKV(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestMarkAndCheck(t *testing.T) {
	tr := New(newTestKV(t))

	if tr.HasBeenCounted("f1") {
		t.Error("unmarked fact reported as counted")
	}

	tr.MarkAsCounted("f1")
	if !tr.HasBeenCounted("f1") {
		t.Error("marked fact not reported as counted")
	}
}

func TestPersistedHistoryDeduplicates(t *testing.T) {
	tr := New(newTestKV(t))

	tr.MarkAsCounted("f1")
	tr.MarkAsCounted("f1")
	tr.MarkAsCounted("f2")

	if got := tr.ViewedCount(); got != 2 {
		t.Errorf("ViewedCount = %d, want 2", got)
	}
}

func TestHistorySurvivesRestart(t *testing.T) {
	kv := newTestKV(t)

	tr := New(kv)
	tr.MarkAsCounted("f1")
	tr.MarkAsCounted("f2")

	// New tracker over the same storage: session state empty, history kept
	fresh := New(kv)
	if fresh.HasBeenCounted("f1") {
		t.Error("session tracking leaked across restart")
	}
	if got := fresh.ViewedCount(); got != 2 {
		t.Errorf("ViewedCount after restart = %d, want 2", got)
	}
}

func TestResetClearsSessionOnly(t *testing.T) {
	tr := New(newTestKV(t))

	tr.MarkAsCounted("f1")
	tr.Reset()

	if tr.HasBeenCounted("f1") {
		t.Error("reset did not clear session tracking")
	}
	if got := tr.ViewedCount(); got != 1 {
		t.Errorf("reset touched persisted history: ViewedCount = %d, want 1", got)
	}
}
