package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/service"
)

type dayPatchRequest struct {
	Number    *int           `json:"number"`
	Date      *string        `json:"date"`
	Inventory map[string]int `json:"inventory"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type adjustRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// GetDays 返回全部记录，最新在前
func (a *API) GetDays(c *gin.Context) {
	days, err := a.ledger.Days(c.Request.Context())
	if err != nil {
		a.handleLedgerError(c, err, "获取记录列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// CreateDay 新建一天的盘点记录
func (a *API) CreateDay(c *gin.Context) {
	day, err := a.ledger.CreateDay(c.Request.Context())
	if err != nil {
		a.handleLedgerError(c, err, "创建记录失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": localize(c, "记录创建成功"), "day": day})
}

// GetDay 返回单条记录
func (a *API) GetDay(c *gin.Context) {
	day, ok, err := a.ledger.Day(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		a.handleLedgerError(c, err, "获取记录失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// UpdateDay 修改序号、日期或整张库存表，未提供的字段保持不变
func (a *API) UpdateDay(c *gin.Context) {
	var req dayPatchRequest
	if !bindJSON(c, &req, "请求参数错误") {
		return
	}

	patch := service.DayPatch{Number: req.Number, Inventory: req.Inventory}
	if req.Date != nil {
		date, err := service.ParseDayDate(*req.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "日期格式应为 YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	day, ok, err := a.ledger.UpdateDay(c.Request.Context(), trimmedParam(c, "id"), patch)
	if err != nil {
		a.handleLedgerError(c, err, "更新记录失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": localize(c, "记录更新成功"), "day": day})
}

// DeleteDay 删除记录，重复删除同样返回成功
func (a *API) DeleteDay(c *gin.Context) {
	if err := a.ledger.DeleteDay(c.Request.Context(), trimmedParam(c, "id")); err != nil {
		a.handleLedgerError(c, err, "删除记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": localize(c, "记录删除成功")})
}

// SetInventoryItem 直接设置某个物品的数量
func (a *API) SetInventoryItem(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req, "数量不能为空") {
		return
	}

	ctx := c.Request.Context()
	id := trimmedParam(c, "id")
	if err := a.ledger.UpdateInventoryItem(ctx, id, c.Param("item"), *req.Quantity); err != nil {
		a.handleLedgerError(c, err, "更新数量失败")
		return
	}

	day, ok, err := a.ledger.Day(ctx, id)
	if err != nil {
		a.handleLedgerError(c, err, "获取记录失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// AdjustInventoryItem 按增量调整数量，结果不会小于 0
func (a *API) AdjustInventoryItem(c *gin.Context) {
	var req adjustRequest
	if !bindJSON(c, &req, "增量不能为空") {
		return
	}

	item := c.Param("item")
	quantity, ok, err := a.ledger.AdjustInventoryItem(c.Request.Context(), trimmedParam(c, "id"), item, *req.Delta)
	if err != nil {
		a.handleLedgerError(c, err, "更新数量失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "quantity": quantity})
}

// GetDaySheet 按主清单顺序返回盘点表
func (a *API) GetDaySheet(c *gin.Context) {
	rows, ok, err := a.ledger.DaySheet(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		a.handleLedgerError(c, err, "获取盘点表失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// GetDayReport 返回 HTML 报告，format=markdown 时返回原始 Markdown
func (a *API) GetDayReport(c *gin.Context) {
	report, ok, err := a.ledger.DayReport(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		a.handleLedgerError(c, err, "生成报告失败")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "记录不存在")
		return
	}

	c.Header("Last-Modified", report.Day.Date.UTC().Format(http.TimeFormat))
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(report.HTML))
}
