package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	klog "github.com/kochabx/ecsig/log"
)

var (
	log = klog.G
)

// SetLogger 设置中间件使用的日志记录器
func SetLogger(logger *klog.Logger) {
	if logger != nil {
		log = logger
	}
}

// skippedPath 判断请求路径是否等于或位于任一前缀之下
func skippedPath(c *gin.Context, prefixes ...string) bool {
	path := c.Request.URL.Path
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}
