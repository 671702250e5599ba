package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/importer"
	"github.com/javiermolinar/almanac/internal/item"
)

func (a *App) importCmd() *cobra.Command {
	var (
		year    int
		keepIDs bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import items from a YAML or iCalendar file",
		Long: `Import items from a YAML document (as written by export) or an
iCalendar file. Recurring events are expanded inside --year.

Imported items get new IDs unless --keep-ids is set.

Example:
  almanac import plan.yaml
  almanac import holidays.ics --year=2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file does not exist: %s", path)
				}
				return fmt.Errorf("checking file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("path is a directory: %s", path)
			}

			items, err := importer.LoadFile(path, year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, it := range items {
					PrintItemRow(out, it)
				}
				fmt.Fprintf(out, "Would import %d items from %s\n", len(items), path)
				return nil
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			count, err := importItems(context.Background(), a.repo, items, keepIDs)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Imported %d items from %s\n", count, path)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to expand recurring events in (default: each event's own year)")
	cmd.Flags().BoolVar(&keepIDs, "keep-ids", false, "Keep the IDs stored in the file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the items without importing them")

	return cmd
}

// importItems stores items in one batch.
func importItems(ctx context.Context, dest item.Repository, items []item.Item, keepIDs bool) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	batch := make([]*item.Item, 0, len(items))
	for i := range items {
		it := items[i]
		if !keepIDs {
			it.ID = item.NewID()
		}
		batch = append(batch, &it)
	}

	if err := dest.CreateItems(ctx, batch); err != nil {
		return 0, fmt.Errorf("importing items: %w", err)
	}
	return len(batch), nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
