package ui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/projection"
)

// showGutterW is the title column width of the printed timeline.
const showGutterW = 20

func (a *App) showCmd() *cobra.Command {
	var (
		year     int
		viewName string
		width    int
		from     string
		geometry bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the year timeline",
		Long: `Print the timeline of a year as text: one label row and one bar per item.

Week and day views are wider than the terminal; --from picks the first
visible day.`,
		Example: `  almanac show
  almanac show --view=weeks --from=2025-06-01
  almanac show --geometry --width=1000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if year == 0 {
				year = a.config.StartYear()
			}
			if viewName == "" {
				viewName = a.config.Timeline.DefaultView
			}
			mode, err := projection.ParseViewMode(viewName)
			if err != nil {
				return err
			}

			timelineW := width
			if timelineW <= 0 {
				timelineW = termWidth() - showGutterW
			}
			if timelineW < 12 {
				return fmt.Errorf("timeline width %d is too narrow", timelineW)
			}

			items, err := a.repo.ListItemsByYear(context.Background(), year)
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			e := projection.NewEngine(year, mode, float64(timelineW))
			out := cmd.OutOrStdout()

			if geometry {
				PrintGeometry(out, e, items)
				return nil
			}

			offset, err := startOffset(e, from)
			if err != nil {
				return err
			}

			today := -1
			if now := time.Now(); now.Year() == year {
				today = dateutil.DayOffset(e.YearStart(), now)
			}

			fmt.Fprintf(out, "%s  %s\n", formatHeader(fmt.Sprint(year)), formatMuted(mode.String()))
			RenderTimeline(out, e, items, TimelineOpts{GutterW: showGutterW, Offset: offset, Today: today})
			if len(items) == 0 {
				fmt.Fprintln(out, formatMuted("No items."))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to show (default: configured year)")
	cmd.Flags().StringVar(&viewName, "view", "", "View mode: months, weeks or days")
	cmd.Flags().IntVar(&width, "width", 0, "Timeline width in cells (default: terminal width)")
	cmd.Flags().StringVar(&from, "from", "", "First visible day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&geometry, "geometry", false, "Print item positions instead of bars")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// startOffset returns the cell offset that puts from at the left edge.
func startOffset(e *projection.Engine, from string) (int, error) {
	if from == "" {
		return 0, nil
	}
	d, err := dateutil.ParseDate(from)
	if err != nil {
		return 0, err
	}
	if d.Year() != e.Year() {
		return 0, fmt.Errorf("--from %s is outside %d", from, e.Year())
	}
	pos := int(math.Round(e.DayPosition(dateutil.DayOffset(e.YearStart(), d))))
	limit := int(math.Ceil(e.TimelineWidth())) - int(e.ContainerWidth())
	return min(pos, max(0, limit)), nil
}
