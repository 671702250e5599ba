package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/item"
)

func (a *App) listCmd() *cobra.Command {
	var (
		year int
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Long: `List the items overlapping a year, in timeline order.

Without --year the configured year is used (the current year by default).`,
		Example: `  almanac list
  almanac list --year=2025
  almanac list --all`,
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

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No items found.")
				return nil
			}

			if all {
				fmt.Fprintf(out, "=== %s ===\n", formatHeader("All items"))
			} else {
				fmt.Fprintf(out, "=== %s ===\n", formatHeader(fmt.Sprint(year)))
			}
			for _, it := range items {
				PrintItemRow(out, it)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to list (default: configured year)")
	cmd.Flags().BoolVar(&all, "all", false, "List items of every year")

	return cmd
}
