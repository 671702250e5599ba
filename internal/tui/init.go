package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/watch"
)

// InitState records which startup files are missing. The TUI asks before
// creating them.
type InitState struct {
	NeedsInit     bool
	ConfigMissing bool
	DBMissing     bool
	ConfigPath    string
	DBPath        string
}

// DetectInitState checks for missing config or database files.
func DetectInitState(cfg *config.Config) (InitState, error) {
	return detectInitStateAt(config.DefaultConfigPath(), cfg.Storage.DBPath)
}

func detectInitStateAt(configPath, dbPath string) (InitState, error) {
	state := InitState{ConfigPath: configPath, DBPath: dbPath}

	var err error
	if state.ConfigMissing, err = missing(configPath); err != nil {
		return InitState{}, fmt.Errorf("checking config path: %w", err)
	}
	if state.DBMissing, err = missing(dbPath); err != nil {
		return InitState{}, fmt.Errorf("checking db path: %w", err)
	}
	state.NeedsInit = state.ConfigMissing || state.DBMissing
	return state, nil
}

// missing reports whether nothing exists at path. An empty path counts as
// missing.
func missing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

func openRepo(dbPath string) (item.Repository, error) {
	repo, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// startWatcher watches the database for writes by other processes. The
// data directory is created first so the watch can start before the
// database file exists.
func startWatcher(dbPath string) (*watch.Watcher, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return watch.New(dbPath, watch.DefaultDebounce)
}

// initializeStorage writes the default config and opens the database
// after the user accepted the startup question.
func (m Model) initializeStorage() (Model, error) {
	if m.initState.ConfigMissing {
		if err := m.config.SaveTo(m.initState.ConfigPath); err != nil {
			return m, fmt.Errorf("saving config: %w", err)
		}
	}

	if m.repo == nil {
		repo, err := openRepo(m.initState.DBPath)
		if err != nil {
			return m, err
		}
		m.repo = repo
	}

	m.initState = InitState{}
	return m, nil
}
