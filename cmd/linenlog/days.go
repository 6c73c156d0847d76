package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/linenlog/internal/service"
	"github.com/spf13/cobra"
)

func newDaysCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Manage recorded days",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List days, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					days, err := ledger.Days(ctx)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					printf(w, "NUMBER\tDATE\tITEMS\tID\n")
					for _, day := range days {
						printf(w, "%d\t%s\t%d\t%s\n", day.Number, day.Date.Local().Format("2006-01-02"), len(day.Inventory), day.ID)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "create",
			Short: "Create a new day numbered after the highest existing one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					day, err := ledger.CreateDay(ctx)
					if err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "created day %d (%s)\n", day.Number, day.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show [id]",
			Short: "Print the Markdown report of a day",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					report, ok, err := ledger.DayReport(ctx, args[0])
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("day %s not found", args[0])
					}
					printf(cmd.OutOrStdout(), "%s", report.Markdown)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete [id]",
			Short: "Delete a day",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					if err := ledger.DeleteDay(ctx, args[0]); err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "deleted day %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-qty [id] [item] [quantity]",
			Short: "Set the count of one item in a day",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				quantity, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("invalid quantity %q: %w", args[2], err)
				}
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					if _, ok, err := ledger.Day(ctx, args[0]); err != nil {
						return err
					} else if !ok {
						return fmt.Errorf("day %s not found", args[0])
					}
					if err := ledger.UpdateInventoryItem(ctx, args[0], args[1], quantity); err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "%s = %d\n", args[1], quantity)
					return nil
				})
			},
		},
	)
	return cmd
}
