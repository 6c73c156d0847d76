// Package storage 提供账本使用的键值存储介质。
// 每次 Save 的多个条目要么全部可见，要么全部不可见。
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Entry 为 Save 写入的一个键值。
type Entry struct {
	Key   string
	Value []byte
}

// Medium 是账本依赖的持久化接口。
type Medium interface {
	// Load 读取 key 对应的值；从未写入过时 found 为 false，与空值不同。
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	// Save 原子地写入全部条目。
	Save(ctx context.Context, entries ...Entry) error
	Close() error
}

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// ErrUnknownDriver 表示不支持的驱动名称。
var ErrUnknownDriver = errors.New("unknown storage driver")

// Options 选择并配置存储介质。
type Options struct {
	Driver        string
	DatabasePath  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open 按 opts.Driver 创建存储介质，默认 sqlite。
func Open(ctx context.Context, opts Options) (Medium, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(opts.DatabasePath)
	case DriverRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}

func validateEntries(entries []Entry) error {
	for _, entry := range entries {
		if strings.TrimSpace(entry.Key) == "" {
			return errors.New("storage key is required")
		}
	}
	return nil
}
