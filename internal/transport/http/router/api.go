package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"crud-api/internal/core/config"
	"crud-api/internal/core/server"
	"crud-api/internal/service"
	"crud-api/internal/transport/http/handler"
	mdw "crud-api/internal/transport/http/middleware"
	resp "crud-api/internal/transport/http/response"
)

// 需要登录的路由前缀；未匹配的路径同样先过 guard
const protectedPrefix = "/api/users"

type Deps struct {
	Log   *zap.Logger
	HTTP  config.HTTP
	JWT   mdw.TokenVerifier
	Auth  *service.AuthService
	Users *service.UserService
	Ping  func(ctx context.Context) error // 健康检查，可为空
}

func NewAPIEngine(d Deps) *gin.Engine {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	r := server.NewRouter(d.HTTP.CORSOrigins)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes),
	)
	if d.HTTP.MaxInFlight > 0 {
		r.Use(mdw.ConcurrencyLimit(d.HTTP.MaxInFlight))
	}
	if d.HTTP.HandlerTimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(d.HTTP.HandlerTimeoutSec) * time.Second))
	}

	r.GET("/health", health(d.Ping))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guard := mdw.AuthJWT(d.JWT)
	r.NoRoute(notFound(guard))

	api := r.Group("/api")
	MountAll(api,
		handler.NewAuthHandler(d.Auth),
		handler.NewUserHandler(d.Users, guard),
	)
	return r
}

// notFound 统一 404 为 {error}；受保护前缀下未登录返回 401
func notFound(guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := c.Request.URL.Path; p == protectedPrefix || strings.HasPrefix(p, protectedPrefix+"/") {
			guard(c)
			if c.IsAborted() {
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusNotFound, resp.Error(http.StatusNotFound, ""))
	}
}

func health(ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
