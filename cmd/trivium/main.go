package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/trivium/internal/collections"
	"github.com/abelbrown/trivium/internal/config"
	"github.com/abelbrown/trivium/internal/favorites"
	"github.com/abelbrown/trivium/internal/fetch"
	"github.com/abelbrown/trivium/internal/logging"
	"github.com/abelbrown/trivium/internal/prefs"
	"github.com/abelbrown/trivium/internal/progress"
	"github.com/abelbrown/trivium/internal/reactions"
	"github.com/abelbrown/trivium/internal/storage"
	"github.com/abelbrown/trivium/internal/streak"
	"github.com/abelbrown/trivium/internal/tracking"
	"github.com/abelbrown/trivium/internal/ui"
)

func main() {
	// Data directory: ~/.trivium/
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".trivium")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(dataDir); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Write the file back so users have something to edit
	if err := cfg.Save(); err != nil {
		logging.Warn("Could not write config file", "error", err)
	}

	kv, err := storage.Open(filepath.Join(dataDir, "trivium.db"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer kv.Close()

	client := fetch.NewWithBaseURL(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	deps := ui.Deps{
		Config:      cfg,
		Client:      client,
		KV:          kv,
		Prefs:       prefs.New(kv),
		Progress:    progress.New(kv),
		Streak:      streak.New(kv),
		Reactions:   reactions.New(kv),
		Collections: collections.New(kv),
		Favorites:   favorites.New(kv),
		Tracker:     tracking.New(kv),
	}

	program := tea.NewProgram(ui.New(deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Printf("Error running program: %v", err)
	}
}
