package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/importer"
	"github.com/javiermolinar/almanac/internal/item"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		year int
		all  bool
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export items as YAML",
		Long: `Write the items of a year as a YAML document that import can read back.

Example:
  almanac export --year=2025 --out=plan.yaml
  almanac export --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if year == 0 {
				year = a.config.StartYear()
			}

			var (
				items []item.Item
				err   error
			)
			if all {
				items, err = a.repo.ListItems(context.Background())
			} else {
				items, err = a.repo.ListItemsByYear(context.Background(), year)
			}
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			if out == "" || out == "-" {
				return importer.WriteYAML(cmd.OutOrStdout(), items)
			}

			path, err := resolvePath(out)
			if err != nil {
				return err
			}
			if err := writeFile(path, func(w io.Writer) error { return importer.WriteYAML(w, items) }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d items to %s\n", len(items), path)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to export (default: configured year)")
	cmd.Flags().BoolVar(&all, "all", false, "Export items of every year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")

	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
