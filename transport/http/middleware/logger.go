package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LoggerConfig 日志中间件配置
type LoggerConfig struct {
	// HeaderEnabled 是否记录请求头信息
	HeaderEnabled bool
	// HandlerEnabled 是否记录处理器名称
	HandlerEnabled bool
	// SkipPaths 跳过记录的路径列表
	SkipPaths []string
}

// DefaultLoggerConfig 默认日志配置
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// Logger 创建默认的 Gin 日志中间件
func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

// LoggerWithConfig 根据配置创建 Gin 日志中间件，级别随状态码升高
func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skippedPath(c, config.SkipPaths...) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Dur("duration", duration).
			Int("size", c.Writer.Size()).
			Str("client_ip", c.ClientIP())

		if id := c.GetString(RequestIDKey); id != "" {
			event = event.Str("request_id", id)
		}
		if config.HeaderEnabled {
			event = event.Any("headers", c.Request.Header)
		}
		if config.HandlerEnabled {
			event = event.Str("handler", c.HandlerName())
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.Msg("request")
	}
}
