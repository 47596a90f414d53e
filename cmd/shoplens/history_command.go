package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shoplens/internal/library"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				if clear {
					if err := store.ClearHistory(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(out, "History cleared")
					return nil
				}

				entries, err := store.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No history yet")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						formatTimestamp(entry.CreatedAt),
						entry.Feature,
						truncateLabel(entry.Detail, 40),
						strconv.Itoa(entry.Credits),
						entry.ProjectID,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"When", "Feature", "Detail", "Credits", "Project"},
					rows, 3))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many entries (0 shows all retained)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete all retained history")
	return cmd
}
