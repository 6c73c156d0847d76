package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/service"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": localize(c, message)})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func trimmedParam(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Param(key))
}

var rejectionMessages = map[error]string{
	service.ErrItemNameRequired: "物品名称不能为空",
	service.ErrItemExists:       "物品已存在",
	service.ErrItemNotFound:     "物品不存在",
	service.ErrRenameCollision:  "已有记录同时包含新旧名称，无法重命名",
	service.ErrInvalidDayNumber: "序号必须为正整数",
	service.ErrDayNumberTaken:   "序号已被其他记录使用",
	service.ErrInvalidQuantity:  "数量不能为负数",
}

// handleLedgerError 将账本错误映射为 HTTP 状态码，持久化错误统一返回 500。
func (a *API) handleLedgerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		respondError(c, http.StatusNotFound, rejectionMessages[service.ErrItemNotFound])
	case errors.Is(err, service.ErrItemExists),
		errors.Is(err, service.ErrRenameCollision),
		errors.Is(err, service.ErrDayNumberTaken):
		respondError(c, http.StatusConflict, rejectionMessage(err))
	case service.Rejected(err):
		respondError(c, http.StatusBadRequest, rejectionMessage(err))
	default:
		_ = c.Error(err)
		a.logger.Error(fallback, zap.Error(err))
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

func rejectionMessage(err error) string {
	for target, message := range rejectionMessages {
		if errors.Is(err, target) {
			return message
		}
	}
	return err.Error()
}
