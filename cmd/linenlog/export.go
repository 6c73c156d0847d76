package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linenlog/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the master list and every day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported export format %q", format)
			}

			return c.withLedger(cmd, func(ctx context.Context, ledger *service.LedgerService) error {
				snapshot, err := ledger.Snapshot(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if format == "json" {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(snapshot)
				}

				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snapshot); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}
