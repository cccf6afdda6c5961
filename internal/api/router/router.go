package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/order-api/docs"
	"github.com/d60-Lab/order-api/internal/api/handler"
	"github.com/d60-Lab/order-api/internal/api/middleware"
)

// Options 路由装配参数
type Options struct {
	Mode         string
	JWTSecret    string
	JWTIssuer    string
	RateLimiter  *middleware.RateLimiter
	TraceEnabled bool
	TraceService string
}

// New 装配 gin 引擎
func New(h *handler.Handler, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if opts.TraceEnabled {
		r.Use(otelgin.Middleware(opts.TraceService))
	}

	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(opts.JWTSecret, opts.JWTIssuer))
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Handler())
	}
	{
		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
	}
	return r
}
