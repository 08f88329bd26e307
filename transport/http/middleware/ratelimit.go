package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/ecsig/core/rate"
	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/transport/http/response"
)

// ErrRateLimited 请求超出限流额度
var ErrRateLimited = errors.TooManyRequests("rate limit exceeded")

// RateLimitConfig 限流中间件配置
type RateLimitConfig struct {
	Limiter rate.Limiter
	// KeyFunc 返回限流维度，默认按客户端 IP
	KeyFunc func(c *gin.Context) string
	// SkipPaths 不限流的路径
	SkipPaths []string
	// OnLimited 请求被拒绝时回调
	OnLimited func(c *gin.Context)
}

// RateLimit 令牌桶限流，额度耗尽时返回 429。限流后端出错时放行请求。
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string {
			return c.ClientIP()
		}
	}

	return func(c *gin.Context) {
		if cfg.Limiter == nil || skippedPath(c, cfg.SkipPaths...) {
			c.Next()
			return
		}

		allowed, err := cfg.Limiter.Allow(c.Request.Context(), keyFunc(c))
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, request allowed")
			c.Next()
			return
		}
		if !allowed {
			if cfg.OnLimited != nil {
				cfg.OnLimited(c)
			}
			response.Error(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
