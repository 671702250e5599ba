package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// ErrAmbiguousID is returned when an ID prefix matches several items.
var ErrAmbiguousID = errors.New("id prefix matches more than one item")

func (a *App) shiftCmd() *cobra.Command {
	var (
		startOnly bool
		endOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "shift [id] [days]",
		Short: "Move an item by a number of days",
		Long: `Move an item forward (positive days) or backward (negative days).
The id may be any unique prefix, as printed by list.

With --start or --end only that edge moves, resizing the item.

Example:
  almanac shift 3f2a9c1d 7
  almanac shift 3f2a9c1d -- -3
  almanac shift 3f2a9c1d 5 --end`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if startOnly && endOnly {
				return fmt.Errorf("--start and --end are mutually exclusive")
			}
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[1])
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			it, err := a.findItem(ctx, args[0])
			if err != nil {
				return err
			}

			updated := shiftItem(it, days, !endOnly, !startOnly)
			if err := updated.Validate(); err != nil {
				return err
			}
			if err := a.repo.UpdateItem(ctx, updated); err != nil {
				return fmt.Errorf("updating item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Shifted %s: %s (%s)\n",
				shortID(updated.ID), updated.String(), FormatDays(updated.DurationDays()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&startOnly, "start", false, "Move only the start date")
	cmd.Flags().BoolVar(&endOnly, "end", false, "Move only the end date")

	return cmd
}

// shiftItem moves the chosen edges of it by days whole calendar days.
func shiftItem(it item.Item, days int, start, end bool) item.Item {
	if start {
		it.StartDate = dateutil.TruncateToDay(dateutil.ShiftDays(it.StartDate, days))
	}
	if end {
		it.EndDate = dateutil.EndOfDay(dateutil.ShiftDays(it.EndDate, days))
	}
	return it
}

// findItem looks an item up by full ID, then by unique ID prefix.
func (a *App) findItem(ctx context.Context, ref string) (item.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return item.Item{}, fmt.Errorf("empty id")
	}

	it, err := a.repo.GetItem(ctx, ref)
	if err == nil {
		return *it, nil
	}
	if !errors.Is(err, item.ErrNotFound) {
		return item.Item{}, fmt.Errorf("getting item: %w", err)
	}

	items, err := a.repo.ListItems(ctx)
	if err != nil {
		return item.Item{}, fmt.Errorf("listing items: %w", err)
	}

	var match *item.Item
	for i := range items {
		if !strings.HasPrefix(items[i].ID, ref) {
			continue
		}
		if match != nil {
			return item.Item{}, fmt.Errorf("%s: %w", ref, ErrAmbiguousID)
		}
		match = &items[i]
	}
	if match == nil {
		return item.Item{}, fmt.Errorf("%s: %w", ref, item.ErrNotFound)
	}
	return *match, nil
}
