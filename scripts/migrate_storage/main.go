package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/linenlog/internal/db"
	"github.com/linenlog/internal/storage"
)

var ledgerKeys = []string{db.KeyMasterItems, db.KeyDays, db.KeyNextDayNumber}

var errDestinationNotEmpty = errors.New("destination already holds ledger data")

// 在两种存储介质之间复制账本，例如从 SQLite 迁移到 Redis
func main() {
	var from, to storage.Options
	var force bool
	flag.StringVar(&from.Driver, "from", storage.DriverSQLite, "source driver")
	flag.StringVar(&from.DatabasePath, "from-db", db.DefaultPath, "source sqlite path")
	flag.StringVar(&from.RedisAddr, "from-redis", "localhost:6379", "source redis address")
	flag.StringVar(&from.RedisPrefix, "from-prefix", "linenlog:", "source redis key prefix")
	flag.StringVar(&to.Driver, "to", storage.DriverRedis, "destination driver")
	flag.StringVar(&to.DatabasePath, "to-db", db.DefaultPath, "destination sqlite path")
	flag.StringVar(&to.RedisAddr, "to-redis", "localhost:6379", "destination redis address")
	flag.StringVar(&to.RedisPrefix, "to-prefix", "linenlog:", "destination redis key prefix")
	flag.BoolVar(&force, "force", false, "overwrite existing destination data")
	flag.Parse()

	ctx := context.Background()
	src, err := storage.Open(ctx, from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open source: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := storage.Open(ctx, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open destination: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	copied, err := copyLedger(ctx, src, dst, force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate ledger: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("done: copied %d keys\n", copied)
}

// copyLedger 一次性写入目标介质，目标已有数据且未指定 force 时拒绝执行。
func copyLedger(ctx context.Context, src, dst storage.Medium, force bool) (int, error) {
	if !force {
		for _, key := range ledgerKeys {
			_, found, err := dst.Load(ctx, key)
			if err != nil {
				return 0, fmt.Errorf("check destination %s: %w", key, err)
			}
			if found {
				return 0, fmt.Errorf("%w: %s", errDestinationNotEmpty, key)
			}
		}
	}

	entries := make([]storage.Entry, 0, len(ledgerKeys))
	for _, key := range ledgerKeys {
		value, found, err := src.Load(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("load %s: %w", key, err)
		}
		if !found {
			continue
		}
		entries = append(entries, storage.Entry{Key: key, Value: value})
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := dst.Save(ctx, entries...); err != nil {
		return 0, fmt.Errorf("save destination: %w", err)
	}
	return len(entries), nil
}
