// Package reset implements the reset-to-defaults operation.
package reset

import (
	"github.com/abelbrown/trivium/internal/logging"
	"github.com/abelbrown/trivium/internal/storage"
)

// All removes every recognized storage key. After a reset, stores
// constructed over the same storage reinitialize from their built-in
// defaults: empty favorites, the single default collection, zero streak.
//
// Session-scoped state (dedup guards, the tracker's session set) lives in
// memory only, so the caller is expected to rebuild its stores after
// calling All.
func All(kv *storage.Store) {
	for _, key := range storage.Keys {
		kv.Remove(key)
	}
	logging.Info("All application data reset")
}
