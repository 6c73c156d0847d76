package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/locale"
)

// 响应文案以中文为键
var englishMessages = map[string]string{
	"物品名称不能为空":           "Item name is required",
	"物品已存在":              "Item already exists",
	"物品不存在":              "Item not found",
	"已有记录同时包含新旧名称，无法重命名": "A day already holds both names; rename refused",
	"序号必须为正整数":           "Day number must be a positive integer",
	"序号已被其他记录使用":         "Day number is already used by another day",
	"数量不能为负数":            "Quantity must not be negative",
	"数量不能为空":             "Quantity is required",
	"增量不能为空":             "Delta is required",
	"日期格式应为 YYYY-MM-DD":  "Date must use YYYY-MM-DD",
	"请求参数错误":             "Invalid request body",
	"记录不存在":              "Day not found",
	"密码不能为空":             "Password is required",
	"密码错误":               "Wrong password",
	"请先登录":               "Login required",
	"会话保存失败":             "Failed to save session",
	"登录成功":               "Logged in",
	"已退出登录":              "Logged out",
	"物品添加成功":             "Item added",
	"物品重命名成功":            "Item renamed",
	"物品删除成功":             "Item deleted",
	"记录创建成功":             "Day created",
	"记录更新成功":             "Day updated",
	"记录删除成功":             "Day deleted",
	"获取物品清单失败":           "Failed to load items",
	"添加物品失败":             "Failed to add item",
	"重命名物品失败":            "Failed to rename item",
	"删除物品失败":             "Failed to delete item",
	"获取记录列表失败":           "Failed to load days",
	"获取记录失败":             "Failed to load day",
	"创建记录失败":             "Failed to create day",
	"更新记录失败":             "Failed to update day",
	"删除记录失败":             "Failed to delete day",
	"更新数量失败":             "Failed to update quantity",
	"获取盘点表失败":            "Failed to load sheet",
	"生成报告失败":             "Failed to render report",
}

func localizeMessage(language, text string) string {
	return locale.Pick(language, englishMessages[text], text)
}

func localize(c *gin.Context, text string) string {
	return localizeMessage(requestLanguage(c), text)
}
