package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shoplens/internal/credits"
	"shoplens/internal/library"
)

func newUsageCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show storage quota and credit usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *library.Store, ledger *credits.Ledger) error {
				usage, err := store.StorageUsage(cmd.Context())
				if err != nil {
					return err
				}
				sub, err := ledger.Current(cmd.Context(), ctx.accountEmail())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Projects: %d / %d\n", usage.Projects, usage.MaxProjects)
				fmt.Fprintf(out, "Assets:   %d / %d (%d free)\n", usage.Assets, usage.MaxAssets, usage.AssetRoom())
				fmt.Fprintf(out, "Credits:  %d remaining, %d used this period\n", sub.Credits, sub.CreditsUsed)
				if usage.ProjectsFull() {
					fmt.Fprintln(out, "\nProject quota reached; the next save evicts the oldest project")
				}
				return nil
			})
		},
	}
}
