package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionAdminKey = "admin"

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login 校验管理员密码并写入会话
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "密码不能为空") {
		return
	}

	if a.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "密码错误")
			return
		}
	}

	session := sessions.Default(c)
	session.Set(sessionAdminKey, true)
	if err := session.Save(); err != nil {
		a.logger.Error("会话保存失败", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": localize(c, "登录成功")})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"message": localize(c, "已退出登录")})
}

// AuthRequired 未配置密码时放行所有请求
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.passwordHash == "" {
			c.Next()
			return
		}
		session := sessions.Default(c)
		if session.Get(sessionAdminKey) == nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}
