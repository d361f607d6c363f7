package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"crud-api/internal/app"
	"crud-api/internal/core/cache"
	"crud-api/internal/core/config"
	"crud-api/internal/core/database"
	"crud-api/internal/core/server"
	"crud-api/internal/domain"
	"crud-api/internal/repo"
	"crud-api/internal/service"
	"crud-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	switch cfg.App.Env {
	case "local", "dev":
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 数据库（失败直接 Fatal）
	db, err := app.OpenDB(cfg, log)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	jwter := app.NewJWTer(cfg)
	userRepo := repo.NewUserRepo(db)

	// 资料缓存，可选
	var reader domain.UserReader = userRepo
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		defer c.Close()
		pctx, pcancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := c.Ping(pctx); err != nil {
			log.Warn("redis unreachable, reads fall through to db", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		pcancel()
		reader = repo.NewCachedUserReader(userRepo, c, time.Duration(cfg.Redis.UserTTLSec)*time.Second)
		log.Info("user cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	r := router.NewAPIEngine(router.Deps{
		Log:   log,
		HTTP:  cfg.App.HTTP,
		JWT:   jwter,
		Auth:  service.NewAuthService(userRepo, jwter, log),
		Users: service.NewUserService(userRepo, reader),
		Ping:  func(ctx context.Context) error { return database.Ping(ctx, db) },
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("user api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭：先停 HTTP，再关连接池
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		log.Warn("db close", zap.Error(err))
	}
	log.Info("user api stopped gracefully")
}
