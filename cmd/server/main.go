package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/linenlog/internal/app"
	"github.com/linenlog/internal/config"
	"github.com/linenlog/internal/logging"
)

func main() {
	// 读取 .env 与环境变量
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 打开存储并运行 Gin 服务器
	if err := app.Serve(ctx, cfg, logger); err != nil {
		logger.Sugar().Fatalf("failed to run server: %v", err)
	}
}
