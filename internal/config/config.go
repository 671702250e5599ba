// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// TimelineConfig holds projection and drag settings.
type TimelineConfig struct {
	DefaultView    string  `toml:"default_view"`    // "months", "weeks" or "days"
	ClickThreshold float64 `toml:"click_threshold"` // cells of movement before a press becomes a drag
	MinWidth       float64 `toml:"min_width"`       // narrowest an item can be resized to, in cells
	Year           int     `toml:"year"`            // 0 means the current year
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			DefaultView:    "months",
			ClickThreshold: 1,
			MinWidth:       1,
			Year:           0,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "almanac.db"
	}
	return filepath.Join(home, ".local", "share", "almanac", "almanac.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ALMANAC_DEFAULT_VIEW"); v != "" {
		cfg.Timeline.DefaultView = v
	}
	if v := os.Getenv("ALMANAC_CLICK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ALMANAC_CLICK_THRESHOLD: %w", err)
		}
		cfg.Timeline.ClickThreshold = f
	}
	if v := os.Getenv("ALMANAC_MIN_WIDTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ALMANAC_MIN_WIDTH: %w", err)
		}
		cfg.Timeline.MinWidth = f
	}
	if v := os.Getenv("ALMANAC_YEAR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_YEAR: %w", err)
		}
		cfg.Timeline.Year = n
	}

	if v := os.Getenv("ALMANAC_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validViews = map[string]bool{
	"months": true,
	"weeks":  true,
	"days":   true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validViews[strings.ToLower(c.Timeline.DefaultView)] {
		return fmt.Errorf("invalid default_view: %q (want months, weeks or days)", c.Timeline.DefaultView)
	}
	if c.Timeline.ClickThreshold < 0 {
		return errors.New("click_threshold cannot be negative")
	}
	if c.Timeline.MinWidth < 1 {
		return errors.New("min_width must be at least 1")
	}
	if c.Timeline.Year < 0 || c.Timeline.Year > 9999 {
		return fmt.Errorf("year out of range: %d", c.Timeline.Year)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// StartYear returns the configured year, or the current year when unset.
func (c *Config) StartYear() int {
	if c.Timeline.Year == 0 {
		return time.Now().Year()
	}
	return c.Timeline.Year
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
