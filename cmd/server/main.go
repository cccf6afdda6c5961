package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/order-api/internal/api/handler"
	"github.com/d60-Lab/order-api/internal/api/middleware"
	"github.com/d60-Lab/order-api/internal/api/router"
	"github.com/d60-Lab/order-api/internal/config"
	"github.com/d60-Lab/order-api/internal/repository"
	"github.com/d60-Lab/order-api/internal/service"
	"github.com/d60-Lab/order-api/pkg/database"
	"github.com/d60-Lab/order-api/pkg/logger"
	"github.com/d60-Lab/order-api/pkg/tracing"
)

// @title Order Management API
// @version 1.0
// @description 用户订单管理服务
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()

	var shutdownTracer func(context.Context) error
	if cfg.Trace.Enabled {
		shutdownTracer, err = tracing.Init(ctx, cfg.Trace.Endpoint, cfg.Trace.Service)
		if err != nil {
			logger.Fatal("init tracing", zap.Error(err))
		}
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	if err := database.InitSchema(db); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("ping redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
	}

	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo)
	h := handler.New(orderSvc)

	engine := router.New(h, router.Options{
		Mode:         cfg.Server.Mode,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		RateLimiter:  middleware.NewRateLimiter(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		TraceEnabled: cfg.Trace.Enabled,
		TraceService: cfg.Trace.Service,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if shutdownTracer != nil {
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("tracer shutdown", zap.Error(err))
		}
	}
}
