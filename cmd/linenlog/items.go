package main

import (
	"context"
	"strings"

	"github.com/linenlog/internal/service"
	"github.com/spf13/cobra"
)

func newItemsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the master item list",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the master item list in order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					items, err := ledger.MasterList(ctx)
					if err != nil {
						return err
					}
					for i, item := range items {
						printf(cmd.OutOrStdout(), "%2d. %s\n", i+1, item)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add [name]",
			Short: "Append an item to the master list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					if err := ledger.AddItem(ctx, args[0]); err != nil {
						return err
					}
					items, err := ledger.MasterList(ctx)
					if err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "added %q\n", items[len(items)-1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename [old] [new]",
			Short: "Rename an item and migrate its counts in every day",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					if err := ledger.RenameItem(ctx, args[0], args[1]); err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "renamed %q to %q\n", args[0], strings.TrimSpace(args[1]))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete [name]",
			Short: "Remove an item from the master list; recorded counts are kept",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
					if err := ledger.DeleteItem(ctx, args[0]); err != nil {
						return err
					}
					printf(cmd.OutOrStdout(), "deleted %q\n", args[0])
					return nil
				})
			},
		},
	)
	return cmd
}
