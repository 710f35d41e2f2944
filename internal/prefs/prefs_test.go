package prefs

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

func TestDefaults(t *testing.T) {
	p := New(newTestKV(t))

	if got := p.Language(); got != "en" {
		t.Errorf("default language = %q, want en", got)
	}
	if got := p.Theme(); got != "dark" {
		t.Errorf("default theme = %q, want dark", got)
	}
}

func TestSetAndPersist(t *testing.T) {
	kv := newTestKV(t)

	p := New(kv)
	p.SetLanguage("de")
	p.SetTheme("cosmic")

	reloaded := New(kv)
	if got := reloaded.Language(); got != "de" {
		t.Errorf("language after restart = %q, want de", got)
	}
	if got := reloaded.Theme(); got != "cosmic" {
		t.Errorf("theme after restart = %q, want cosmic", got)
	}
}

func TestInvalidValuesIgnored(t *testing.T) {
	p := New(newTestKV(t))

	p.SetLanguage("fr")
	p.SetTheme("neon")

	if got := p.Language(); got != "en" {
		t.Errorf("language = %q after invalid set, want en", got)
	}
	if got := p.Theme(); got != "dark" {
		t.Errorf("theme = %q after invalid set, want dark", got)
	}
}

func TestCycle(t *testing.T) {
	p := New(newTestKV(t))

	if got := p.CycleLanguage(); got != "de" {
		t.Errorf("CycleLanguage = %q, want de", got)
	}
	if got := p.CycleLanguage(); got != "es" {
		t.Errorf("CycleLanguage = %q, want es", got)
	}
	if got := p.CycleLanguage(); got != "en" {
		t.Errorf("CycleLanguage wrapped to %q, want en", got)
	}
}
