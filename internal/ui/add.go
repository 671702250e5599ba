package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an item to the timeline",
		Long: `Add a date-ranged item. Dates are whole days; the end date is inclusive.

Example:
  almanac add "Product launch" --start=2025-03-01 --end=2025-03-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			it, err := item.New(args[0], start, end)
			if err != nil {
				return err
			}

			if err := a.repo.CreateItem(context.Background(), &it); err != nil {
				return fmt.Errorf("creating item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (%s → %s, %s)\n",
				shortID(it.ID),
				it.Title,
				it.StartDate.Format(dateutil.DateLayout),
				it.EndDate.Format(dateutil.DateLayout),
				FormatDays(it.DurationDays()),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, default: start date)")

	return cmd
}
