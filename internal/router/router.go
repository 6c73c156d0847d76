package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/linenlog/internal/handler"
	"github.com/linenlog/internal/logging"
	"go.uber.org/zap"
)

const sessionName = "linenlog_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinMiddleware(logger), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	root := r.Group("/api")
	root.Use(api.LocaleMiddleware())
	root.POST("/login", api.Login)
	root.POST("/logout", api.Logout)

	auth := root.Group("")
	auth.Use(api.AuthRequired())
	{
		auth.GET("/items", api.GetItems)
		auth.POST("/items", api.CreateItem)
		auth.PUT("/items/:name", api.RenameItem)
		auth.DELETE("/items/:name", api.DeleteItem)

		auth.GET("/days", api.GetDays)
		auth.POST("/days", api.CreateDay)
		auth.GET("/days/:id", api.GetDay)
		auth.PATCH("/days/:id", api.UpdateDay)
		auth.DELETE("/days/:id", api.DeleteDay)
		auth.PUT("/days/:id/items/:item", api.SetInventoryItem)
		auth.POST("/days/:id/items/:item/adjust", api.AdjustInventoryItem)
		auth.GET("/days/:id/sheet", api.GetDaySheet)
		auth.GET("/days/:id/report", api.GetDayReport)
	}

	return r
}
