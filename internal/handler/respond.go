package handler

import (
	"errors"
	"net/http"

	"portfoliohub/internal/service"
	"portfoliohub/internal/service/auth"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/logger"
	"portfoliohub/pkg/rbac"
	"portfoliohub/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// gin context 中保存的认证信息
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// respondError 把业务错误映射为 HTTP 状态码
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *service.ValidationError
	var denied *rbac.PermissionDeniedError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrTokenRevoked), errors.Is(err, auth.ErrUnknownAccount):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.WithTrace(c.Request.Context(), log).Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON 解析请求体，失败时直接返回 400
func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return false
	}
	return true
}

// actor 当前登录用户的 id
func actor(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func claims(c *gin.Context) *util.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*util.Claims)
	return cl
}
