package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisPrefix 为共享 Redis 库中账本键的默认前缀。
const DefaultRedisPrefix = "linenlog:"

// RedisOptions 为 Redis 介质的连接参数。
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Redis 将每个账本键保存为普通字符串。
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// OpenRedis 建立连接并 Ping，地址错误时在启动阶段就失败。
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewRedis(client, opts.Prefix), nil
}

// NewRedis 包装已有客户端，prefix 为空时使用默认前缀。
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(name string) string {
	return r.prefix + name
}

// Load 将 redis.Nil 视为键不存在。
func (r *Redis) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return value, true, nil
}

// Save 在同一个 MULTI/EXEC 中写入全部条目。
func (r *Redis) Save(ctx context.Context, entries ...Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, entry := range entries {
			pipe.Set(ctx, r.key(entry.Key), entry.Value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

// Close 关闭客户端连接池。
func (r *Redis) Close() error {
	return r.client.Close()
}
