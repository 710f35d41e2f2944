// Package storage provides the durable key-value layer for trivium.
//
// Every store persists its full state as a JSON document under a single
// well-known key. The layer is deliberately failure-tolerant: a read error
// behaves as "value absent" and a write error as "write dropped", logged
// either way, so a broken database never takes down the session - the
// stores simply continue in memory.
package storage

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/abelbrown/trivium/internal/logging"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Recognized keys. Each store owns exactly one key and is its sole writer.
const (
	KeyLanguage      = "language"
	KeyTheme         = "theme"
	KeyFavorites     = "factFavorites"
	KeyCollections   = "factCollections"
	KeyProgressData  = "factProgressData"
	KeyStreakData    = "factStreakData"
	KeyReactions     = "factReactions"
	KeyViewedFactIDs = "viewedFactIds"
)

// Keys lists every recognized key, in reset order.
var Keys = []string{
	KeyLanguage,
	KeyTheme,
	KeyFavorites,
	KeyCollections,
	KeyProgressData,
	KeyStreakData,
	KeyReactions,
	KeyViewedFactIDs,
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the SQLite-backed key-value store. NOT an interface - concrete
// type. All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates a Store at the given database path, creating the schema if
// needed. Pass ":memory:" for an ephemeral store in tests.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logging.Info("Storage initialized", "path", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get reads the JSON document stored under key into v. Returns false if
// the key is absent or the stored value cannot be decoded; decode and read
// failures are logged and treated as absence.
func (s *Store) Get(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		logging.Error("Failed to read stored value", "key", key, "error", err)
		return false
	}

	if err := json.UnmarshalFromString(raw, v); err != nil {
		logging.Error("Failed to decode stored value", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores v as a JSON document under key, overwriting any prior value.
// Returns false if the value could not be encoded or written; the failure
// is logged and the write dropped.
func (s *Store) Set(key string, v any) bool {
	raw, err := json.MarshalToString(v)
	if err != nil {
		logging.Error("Failed to encode value", "key", key, "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, raw, time.Now())
	if err != nil {
		logging.Error("Failed to store value", "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes the value stored under key. Removing an absent key is a
// no-op.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		logging.Error("Failed to remove stored value", "key", key, "error", err)
		return false
	}
	return true
}

// Has reports whether a value is stored under key.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM kv WHERE key = ?", key).Scan(&n); err != nil {
		logging.Error("Failed to check stored key", "key", key, "error", err)
		return false
	}
	return n > 0
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
