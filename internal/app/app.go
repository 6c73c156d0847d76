// Package app 将配置、存储与 HTTP 路由组装成可运行的服务。
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/config"
	"github.com/linenlog/internal/handler"
	"github.com/linenlog/internal/router"
	"github.com/linenlog/internal/service"
	"github.com/linenlog/internal/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// StorageOptions 将应用配置映射为存储介质参数。
func StorageOptions(cfg config.AppConfig) storage.Options {
	return storage.Options{
		Driver:        cfg.StorageDriver,
		DatabasePath:  cfg.DatabasePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
	}
}

// OpenLedger 打开存储介质并完成账本初始化，调用方负责关闭返回的 Medium。
func OpenLedger(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) (*service.LedgerService, storage.Medium, error) {
	medium, err := storage.Open(ctx, StorageOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	ledger := service.NewLedgerService(medium, service.WithLogger(logger))
	if err := ledger.Init(ctx); err != nil {
		_ = medium.Close()
		return nil, nil, fmt.Errorf("init ledger: %w", err)
	}
	return ledger, medium, nil
}

// NewServer 构造 HTTP 服务器。
func NewServer(cfg config.AppConfig, ledger *service.LedgerService, logger *zap.Logger) *http.Server {
	gin.SetMode(cfg.GinMode)
	api := handler.NewAPI(ledger, logger, cfg.AdminPasswordHash)
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, cfg.SessionSecret, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve 运行服务直到 ctx 结束，然后优雅退出。
func Serve(ctx context.Context, cfg config.AppConfig, logger *zap.Logger) error {
	ledger, medium, err := OpenLedger(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer medium.Close()

	srv := NewServer(cfg, ledger, logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageDriver),
			zap.Bool("auth", cfg.AdminPasswordHash != ""))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
