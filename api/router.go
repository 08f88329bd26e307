package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kochabx/ecsig/core/rate"
	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/transport/http/metrics"
	"github.com/kochabx/ecsig/transport/http/middleware"
	"github.com/kochabx/ecsig/transport/http/response"
)

// RouterConfig 路由配置
type RouterConfig struct {
	// MaxBodyBytes 请求体上限，0 表示不限制
	MaxBodyBytes int64
	// Limiter 为 nil 时不限流
	Limiter rate.Limiter
	// Metrics 为 nil 时不采集 HTTP 指标
	Metrics *metrics.Prometheus
	// Cors 为 nil 时不处理跨域
	Cors *middleware.CorsConfig
	// TrustRequestID 沿用客户端传入的 X-Request-Id
	TrustRequestID bool
	// SkipPaths 不记录日志、不限流的路径
	SkipPaths []string
}

// NewRouter 创建挂载签名接口的 gin 引擎
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(middleware.RequestIDConfig{TrustIncoming: cfg.TrustRequestID}),
		middleware.LoggerWithConfig(middleware.LoggerConfig{SkipPaths: cfg.SkipPaths}),
		middleware.Recovery(),
	)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	if cfg.Cors != nil {
		r.Use(middleware.Cors(*cfg.Cors))
	}
	if cfg.Limiter != nil {
		limit := middleware.RateLimitConfig{Limiter: cfg.Limiter, SkipPaths: cfg.SkipPaths}
		if cfg.Metrics != nil {
			limit.OnLimited = func(*gin.Context) { cfg.Metrics.IncRateLimited() }
		}
		r.Use(middleware.RateLimit(limit))
	}

	v1 := r.Group("/v1/signatures", middleware.BodyLimit(cfg.MaxBodyBytes))
	{
		v1.POST("/convert", h.Convert)
		v1.POST("/detect", h.Detect)
		v1.POST("/inspect", h.Inspect)
		v1.POST("/batch", h.Batch)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, errors.NotFound("route %s not found", c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, errors.MethodNotAllowed("method %s not allowed", c.Request.Method))
	})

	return r
}
