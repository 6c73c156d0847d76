package handler

import (
	"github.com/linenlog/internal/service"
	"go.uber.org/zap"
)

// API 汇总 HTTP 处理器共享的依赖。
type API struct {
	ledger       *service.LedgerService
	logger       *zap.Logger
	passwordHash string
}

// NewAPI 构造处理器集合，passwordHash 为空时不校验登录。
func NewAPI(ledger *service.LedgerService, logger *zap.Logger, passwordHash string) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		ledger:       ledger,
		logger:       logger,
		passwordHash: passwordHash,
	}
}
