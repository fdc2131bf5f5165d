package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jobboard-api/internal/core/auth"
	"jobboard-api/internal/transport/http/handler"
	mdw "jobboard-api/internal/transport/http/middleware"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Job         *handler.JobHandler
	Application *handler.ApplicationHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 登录注册单独收紧每 IP 限速
	public := api.Group("")
	authRoutes := api.Group("", mdw.RateLimitPerIP(5, 10))
	h.Auth.Mount(authRoutes)

	authed := api.Group("", mdw.AuthJWT(jwter))

	h.Job.Mount(public, authed)
	h.Application.Mount(authed)

	return r
}
