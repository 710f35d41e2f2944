// Package config holds the persistent application configuration.
//
// Preferences the user changes from inside the UI (language, theme) live
// in the key-value storage with the rest of the app state; this file
// covers the knobs edited by hand.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// API settings
	API APIConfig `json:"api"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds upstream fact source settings
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	RelatedCount   int    `json:"related_count"` // Facts prefetched for the related panel
}

// UIConfig holds UI preferences
type UIConfig struct {
	RecentActivityDays int  `json:"recent_activity_days"` // Days shown in the streak calendar
	ShowSource         bool `json:"show_source"`          // Show the fact's source attribution
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://uselessfacts.jsph.pl/api/v2",
			TimeoutSeconds: 10,
			RelatedCount:   3,
		},
		UI: UIConfig{
			RecentActivityDays: 30,
			ShowSource:         true,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".trivium", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills zero values left by a partial config file
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.API.RelatedCount <= 0 {
		c.API.RelatedCount = def.API.RelatedCount
	}
	if c.UI.RecentActivityDays <= 0 {
		c.UI.RecentActivityDays = def.UI.RecentActivityDays
	}
}
