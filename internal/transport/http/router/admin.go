package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-dashboard-admin/internal/core/auth"
	"go-dashboard-admin/internal/transport/http/handler"
	mdw "go-dashboard-admin/internal/transport/http/middleware"
	resp "go-dashboard-admin/internal/transport/http/response"
)

func NewAdminEngine(l *zap.Logger, h *handler.AccountHandler, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(4<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 管理端 v1，先解析登录态，再按能力标签逐路由放行
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter))

	users := admin.Group("/dashboard-users")
	users.GET("", mdw.RequirePermission(auth.PermManagerList), h.List)
	users.GET("/:id", mdw.RequirePermission(auth.PermManagerList), h.Detail)
	users.POST("", mdw.RequirePermission(auth.PermManagerAdd), h.Create)
	users.PUT("/:id", mdw.RequirePermission(auth.PermManagerEdit), h.Update)
	users.PUT("/:id/password", mdw.RequirePermission(auth.PermManagerEdit), h.ChangePassword)
	users.DELETE("/batch", mdw.RequirePermission(auth.PermManagerDelete), h.DeleteBatch)

	return r
}
