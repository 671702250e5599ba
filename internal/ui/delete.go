package ui

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Long: `Delete an item by ID or unique ID prefix.

Example:
  almanac delete 3f2a9c1d
  almanac delete 3f2a9c1d --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			it, err := a.findItem(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				reader := bufio.NewReader(cmd.InOrStdin())
				if !promptYesNo(reader, out, fmt.Sprintf("Delete %s?", it.String())) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := a.repo.DeleteItem(ctx, it.ID); err != nil {
				return fmt.Errorf("deleting item: %w", err)
			}
			fmt.Fprintf(out, "Deleted %s: %s\n", shortID(it.ID), it.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
