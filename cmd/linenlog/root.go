package main

import (
	"context"
	"fmt"
	"io"

	"github.com/linenlog/internal/app"
	"github.com/linenlog/internal/config"
	"github.com/linenlog/internal/logging"
	"github.com/linenlog/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli 保存根命令解析出的配置，子命令共享。
type cli struct {
	cfg    config.AppConfig
	logger *zap.Logger

	storageDriver string
	databasePath  string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "linenlog",
		Short: "Daily linen inventory ledger",
		Long: `linenlog records per-day linen counts against a master list of item names.

Run "linenlog serve" to start the HTTP API, or use the items/days commands
to edit the ledger directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.storageDriver, "storage", "", "storage driver: sqlite, redis or memory (env STORAGE_DRIVER)")
	root.PersistentFlags().StringVar(&c.databasePath, "db", "", "SQLite database path (env DATABASE_PATH)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (env LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(c),
		newItemsCmd(c),
		newDaysCmd(c),
		newExportCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c.cfg = config.Load()

	flags := cmd.Flags()
	if flags.Changed("storage") {
		c.cfg.StorageDriver = c.storageDriver
	}
	if flags.Changed("db") {
		c.cfg.DatabasePath = c.databasePath
	}
	if flags.Changed("log-level") {
		c.cfg.LogLevel = c.logLevel
	}

	logger, err := logging.New(c.cfg.LogLevel, c.cfg.LogFormat)
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// withLedger 打开账本执行 fn，结束后关闭存储。
func (c *cli) withLedger(cmd *cobra.Command, fn func(ctx context.Context, ledger *service.LedgerService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ledger, medium, err := app.OpenLedger(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer medium.Close()

	return fn(ctx, ledger)
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
