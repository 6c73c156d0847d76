package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	StorageDriver     string
	DatabasePath      string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RedisPrefix       string
	SessionSecret     string
	AdminPasswordHash string
	GinMode           string
	LogLevel          string
	LogFormat         string
}

// LoadDotEnv 读取工作目录下的 .env（若存在），已设置的环境变量优先。
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := envOr("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	redisDB, err := strconv.Atoi(envOr("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		StorageDriver:     strings.ToLower(envOr("STORAGE_DRIVER", "sqlite")),
		DatabasePath:      envOr("DATABASE_PATH", "linenlog.db"),
		RedisAddr:         envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		RedisDB:           redisDB,
		RedisPrefix:       envOr("REDIS_PREFIX", "linenlog:"),
		SessionSecret:     envOr("SESSION_SECRET", "linenlog-dev-secret"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		GinMode:           envOr("GIN_MODE", "release"),
		LogLevel:          strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(envOr("LOG_FORMAT", "json")),
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
