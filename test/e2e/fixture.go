package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
)

// fixtureFact is what the stub API returns for every request. Short on
// purpose so it never wraps across lines on a 120-column terminal.
const fixtureFact = "Honey never spoils."

// startFactServer runs a stub facts API that always answers with the
// fixture fact.
func startFactServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":        "e2e-1",
			"text":      fixtureFact,
			"source":    "fixture",
			"language":  "en",
			"permalink": "https://example.com/e2e-1",
		})
	}))
}

// seedConfig points the app's config at the stub server so the child
// process never touches the real API.
func seedConfig(homeDir, baseURL string) error {
	dataDir := filepath.Join(homeDir, ".trivium")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	cfg := map[string]any{
		"api": map[string]any{
			"base_url":        baseURL,
			"timeout_seconds": 5,
			"related_count":   2,
		},
		"ui": map[string]any{
			"recent_activity_days": 30,
			"show_source":          true,
		},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0644)
}
