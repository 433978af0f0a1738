package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-dashboard-admin/internal/core/auth"
	"go-dashboard-admin/internal/domain"
	resp "go-dashboard-admin/internal/transport/http/response"
)

const (
	callerKey = "caller"
	roleKey   = "role"
)

// AuthJWT 解析 Bearer 令牌并把登录身份放进请求上下文
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(callerKey, &domain.CallerIdentity{UserID: claims.UID, UserName: claims.UserName})
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequirePermission 按角色 → 能力标签放行
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.RoleHas(c.GetString(roleKey), perm) {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, ""))
			return
		}
		c.Next()
	}
}

// Caller 取当前登录身份；未解析出登录态返回 nil
func Caller(c *gin.Context) *domain.CallerIdentity {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*domain.CallerIdentity)
	return caller
}
