package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/transport/http/response"
)

// BodyLimit 限制请求体大小。Content-Length 已超限时直接返回 413，
// 否则以 http.MaxBytesReader 包装请求体，由读取方处理 *http.MaxBytesError。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, errors.RequestEntityTooLarge("request body exceeds %d bytes", maxBytes))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
