package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type itemRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetItems 获取物品主清单
func (a *API) GetItems(c *gin.Context) {
	items, err := a.ledger.MasterList(c.Request.Context())
	if err != nil {
		a.handleLedgerError(c, err, "获取物品清单失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateItem 添加物品
func (a *API) CreateItem(c *gin.Context) {
	var req itemRequest
	if !bindJSON(c, &req, "物品名称不能为空") {
		return
	}

	ctx := c.Request.Context()
	if err := a.ledger.AddItem(ctx, req.Name); err != nil {
		a.handleLedgerError(c, err, "添加物品失败")
		return
	}

	items, err := a.ledger.MasterList(ctx)
	if err != nil {
		a.handleLedgerError(c, err, "获取物品清单失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": localize(c, "物品添加成功"), "items": items})
}

// RenameItem 重命名物品并迁移历史数量
func (a *API) RenameItem(c *gin.Context) {
	oldName := c.Param("name")

	var req itemRequest
	if !bindJSON(c, &req, "物品名称不能为空") {
		return
	}

	ctx := c.Request.Context()
	if err := a.ledger.RenameItem(ctx, oldName, req.Name); err != nil {
		a.handleLedgerError(c, err, "重命名物品失败")
		return
	}

	items, err := a.ledger.MasterList(ctx)
	if err != nil {
		a.handleLedgerError(c, err, "获取物品清单失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": localize(c, "物品重命名成功"), "items": items})
}

// DeleteItem 从清单中删除物品，历史数量保留
func (a *API) DeleteItem(c *gin.Context) {
	if err := a.ledger.DeleteItem(c.Request.Context(), c.Param("name")); err != nil {
		a.handleLedgerError(c, err, "删除物品失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": localize(c, "物品删除成功")})
}
