package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shoplens/internal/checkout"
	"shoplens/internal/credits"
	"shoplens/internal/library"
)

func newPlansCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "plans",
		Short:       "Show the subscription plan catalog",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(credits.Plans()))
			for _, plan := range credits.Plans() {
				creditsText := strconv.Itoa(plan.Credits)
				monthly := fmt.Sprintf("$%.0f", plan.PriceMonthly)
				yearly := fmt.Sprintf("$%.0f", plan.PriceYearly)
				if plan.Custom {
					creditsText, monthly, yearly = "custom", "custom", "custom"
				} else if plan.PriceMonthly == 0 {
					monthly, yearly = "free", "-"
				}
				name := plan.Name
				if plan.Popular {
					name += " *"
				}
				rows = append(rows, []string{plan.ID, name, creditsText, monthly, yearly, string(plan.Priority)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Plan", "Credits/mo", "Monthly", "Yearly", "Priority"},
				rows, 2, 3, 4))
			fmt.Fprintln(out, "* most popular")
			return nil
		},
	}
}

func newSubscriptionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "subscription",
		Short: "Show the current subscription and balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *library.Store, ledger *credits.Ledger) error {
				email := ctx.accountEmail()
				sub, err := ledger.Current(cmd.Context(), email)
				if err != nil {
					return err
				}
				plan, err := credits.PlanByID(sub.PlanID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Account:    %s\n", sub.Email)
				fmt.Fprintf(out, "Plan:       %s\n", plan.Name)
				fmt.Fprintf(out, "Credits:    %d\n", sub.Credits)
				fmt.Fprintf(out, "Used:       %d this period\n", sub.CreditsUsed)
				fmt.Fprintf(out, "Renews:     %s\n", formatTimestamp(sub.ExpiresAt))
				if ledger.Unlimited(email) {
					fmt.Fprintln(out, "Unlimited:  yes (admin account)")
				}
				return nil
			})
		},
	}
}

func newUpgradeCommand(ctx *commandContext) *cobra.Command {
	var yearly bool

	cmd := &cobra.Command{
		Use:   "upgrade <plan-id>",
		Short: "Switch to a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLedger(func(store *library.Store, ledger *credits.Ledger) error {
				sub, err := ledger.Upgrade(cmd.Context(), ctx.accountEmail(), args[0], yearly)
				if err != nil {
					return err
				}
				plan, _ := credits.PlanByID(sub.PlanID)
				fmt.Fprintf(cmd.OutOrStdout(), "Now on %s with %d credits, renews %s\n",
					plan.Name, sub.Credits, formatTimestamp(sub.ExpiresAt))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yearly, "yearly", false, "Bill yearly instead of monthly")
	return cmd
}

func newCreditsCommand(ctx *commandContext) *cobra.Command {
	creditsCmd := &cobra.Command{
		Use:   "credits",
		Short: "Credit balance utilities",
	}

	addCmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add credits to the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("amount must be a number: %w", err)
			}
			return ctx.withLedger(func(store *library.Store, ledger *credits.Ledger) error {
				sub, err := ledger.AddCredits(cmd.Context(), ctx.accountEmail(), amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Balance is now %d credits\n", sub.Credits)
				return nil
			})
		},
	}

	creditsCmd.AddCommand(addCmd)
	return creditsCmd
}

func newCheckoutCommand(ctx *commandContext) *cobra.Command {
	var billing string

	cmd := &cobra.Command{
		Use:   "checkout <plan-id>",
		Short: "Print the checkout link for a paid plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			interval, err := checkout.ParseBilling(billing)
			if err != nil {
				return err
			}

			builder := checkout.NewBuilder(cfg.Checkout.StoreDomain)
			url, err := builder.URL(checkout.Request{
				PlanID:     args[0],
				Billing:    interval,
				Email:      cfg.Account.Email,
				SuccessURL: cfg.Checkout.SuccessURL,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&billing, "billing", "monthly", "Billing interval (monthly, yearly)")
	return cmd
}
