// Package ui implements the almanac command line.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   item.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	owned  bool // repo was opened by the app and must be closed
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened from the configured database path on first use.
func NewApp(repo item.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "almanac",
		Short: "A year planner with a draggable timeline",
		Long: `Almanac lays out date-ranged items on a one-year timeline.

Run without arguments to open the interactive timeline: drag bars to
move them, drag their edges to change start or end dates, and switch
between month, week and day columns.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.shiftCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almanac %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database when no repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.Open(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.owned = true
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.owned && a.repo != nil {
		err := a.repo.Close()
		a.repo = nil
		a.owned = false
		return err
	}
	return nil
}
