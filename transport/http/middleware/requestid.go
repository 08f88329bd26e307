package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID 请求 ID 头
	HeaderRequestID = "X-Request-Id"
	// RequestIDKey gin 上下文中的请求 ID 键
	RequestIDKey = "request_id"
)

type requestIDKey struct{}

// RequestIDFromContext 返回 RequestID 中间件写入的请求 ID，不存在时为空
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestIDConfig 请求 ID 中间件配置
type RequestIDConfig struct {
	// TrustIncoming 为 true 时沿用请求头中已有的 ID
	TrustIncoming bool
	// Generate 生成新 ID，默认 UUIDv7
	Generate func() string
}

// RequestID 生成或透传请求 ID，同时写入请求头、响应头与上下文
func RequestID(cfg RequestIDConfig) gin.HandlerFunc {
	generate := cfg.Generate
	if generate == nil {
		generate = func() string {
			return uuid.Must(uuid.NewV7()).String()
		}
	}

	return func(c *gin.Context) {
		var id string
		if cfg.TrustIncoming {
			id = c.GetHeader(HeaderRequestID)
		}
		if id == "" {
			id = generate()
		}

		c.Request.Header.Set(HeaderRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, id))

		c.Next()
	}
}
