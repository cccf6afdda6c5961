package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/order-api/pkg/logger"
	"github.com/d60-Lab/order-api/pkg/response"
)

// RateLimiter 每用户（未认证请求按客户端 IP）限流。
// 配置了 redis 时用固定窗口计数，多实例共享额度，窗口上限即 rps；
// redis 不可用时退化为本地令牌桶，不拒绝请求。
// burst 只作用于本地令牌桶的桶容量，固定窗口不使用。
type RateLimiter struct {
	rdb   *redis.Client
	rps   int
	burst int

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter 创建限流器，rdb 可为 nil（纯本地模式）
func NewRateLimiter(rdb *redis.Client, rps, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 50
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{rdb: rdb, rps: rps, burst: burst, local: make(map[string]*rate.Limiter)}
}

// Handler 返回 gin 中间件
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString(ContextUserIDKey)
		if key == "" {
			key = c.ClientIP()
		}
		if !l.allow(c, key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorBody{
				Code:    response.CodeRateLimited,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(c *gin.Context, key string) bool {
	if l.rdb == nil {
		return l.allowLocal(key)
	}
	ctx := c.Request.Context()
	rkey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix())
	pipe := l.rdb.Pipeline()
	incr := pipe.Incr(ctx, rkey)
	pipe.Expire(ctx, rkey, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("ratelimit redis unavailable, fall back to local",
			zap.String("key", key), zap.Error(err))
		return l.allowLocal(key)
	}
	return incr.Val() <= int64(l.rps)
}

func (l *RateLimiter) allowLocal(key string) bool {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.local[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
