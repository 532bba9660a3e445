package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for caloriemgl.
type Config struct {
	BaseDir     string         `toml:"base_dir"`
	LogDir      string         `toml:"log_dir"`
	ProfilePath string         `toml:"profile_path"`
	Database    DatabaseConfig `toml:"database"`
	Search      SearchConfig   `toml:"search"`
	Pace        PaceConfig     `toml:"pace"`
	USDA        USDAConfig     `toml:"usda"`
	Export      ExportConfig   `toml:"export"`
}

// DatabaseConfig represents configuration for the catalog database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// SearchConfig bounds the search result surface.
type SearchConfig struct {
	// DisplayLimit caps the expandable "more results" list shown after
	// the top match.
	DisplayLimit int `toml:"display_limit"`
	// RecentLimit caps the recent-foods list.
	RecentLimit int `toml:"recent_limit"`
}

// PaceConfig carries the goal-timeline pace policy. The defaults are
// product constants, kept configurable rather than re-derived.
type PaceConfig struct {
	LoseKgPerWeek  float64 `toml:"lose_kg_per_week"`
	GainKgPerWeek  float64 `toml:"gain_kg_per_week"`
	ToleranceWeeks float64 `toml:"tolerance_weeks"`
}

// USDAConfig configures the optional external nutrition lookup.
// APIKey may be left empty and supplied via the USDA_API_KEY
// environment variable instead; empty disables the fallback.
type USDAConfig struct {
	APIKey  string `toml:"api_key,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

// ExportConfig configures encrypted database export. With no
// recipient key the export is written unencrypted.
type ExportConfig struct {
	RecipientPath string `toml:"recipient_path,omitempty"` // age public key file
}

// NewConfig creates a new Config with the provided base directory and defaults.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:     baseDir,
		LogDir:      filepath.Join(baseDir, "log"),
		ProfilePath: filepath.Join(baseDir, "profile.toml"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Search: SearchConfig{
			DisplayLimit: 8,
			RecentLimit:  10,
		},
		Pace: PaceConfig{
			LoseKgPerWeek:  0.5,
			GainKgPerWeek:  0.25,
			ToleranceWeeks: 1,
		},
		USDA: USDAConfig{
			BaseURL: "https://api.nal.usda.gov/fdc",
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
