package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/summary"
)

// summaryBarW is the width of the per-month coverage bar.
const summaryBarW = 20

func (a *App) summaryCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show how much of a year is planned",
		Long: `Summarize a year: items and covered days per month, the busiest
month and the longest stretch with nothing planned.`,
		Example: `  almanac summary
  almanac summary --year=2025`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if year == 0 {
				year = a.config.StartYear()
			}

			s, err := summary.BuildYearSummary(context.Background(), a.repo, year)
			if err != nil {
				return err
			}
			printYearSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to summarize (default: configured year)")
	return cmd
}

func printYearSummary(w io.Writer, s *summary.YearSummary) {
	fmt.Fprintf(w, "=== %s ===\n", formatHeader(fmt.Sprint(s.Year)))
	if len(s.Items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	for i, m := range s.Months {
		filled := 0
		if m.Days > 0 {
			filled = (m.BusyDays*summaryBarW + m.Days/2) / m.Days
		}
		bar := formatBar(strings.Repeat(glyphBar, filled), i) + strings.Repeat("·", summaryBarW-filled)
		fmt.Fprintf(w, "  %s %s %2d/%2d days  %d items\n",
			m.Month.String()[:3], bar, m.BusyDays, m.Days, m.Items)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Items:       %d\n", len(s.Items))
	fmt.Fprintf(w, "  Planned:     %s, %s free\n", FormatDays(s.BusyDays), FormatDays(s.FreeDays))
	if m, ok := s.Busiest(); ok {
		fmt.Fprintf(w, "  Busiest:     %s (%s)\n", m.Month, FormatDays(m.BusyDays))
	}
	if g := s.LongestGap; g.Days > 0 {
		fmt.Fprintf(w, "  Longest gap: %s → %s (%s)\n",
			g.Start.Format(dateutil.DateLayout), g.End.Format(dateutil.DateLayout), FormatDays(g.Days))
	}
}
