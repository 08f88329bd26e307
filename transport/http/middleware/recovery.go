package middleware

import (
	"fmt"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/transport/http/response"
)

// RecoveryConfig Recovery 中间件配置
type RecoveryConfig struct {
	StackTrace bool // 是否记录堆栈信息
}

// Recovery 捕获 panic，记录日志并返回 500 响应
func Recovery(cfgs ...RecoveryConfig) gin.HandlerFunc {
	cfg := RecoveryConfig{StackTrace: true}
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			request, _ := httputil.DumpRequest(c.Request, false)

			// 连接已断开，无法再写响应
			if isBrokenPipe(rec) {
				log.Warn().
					Str("error", fmt.Sprint(rec)).
					Bytes("request", request).
					Msg("broken pipe")
				_ = c.Error(fmt.Errorf("%v", rec))
				c.Abort()
				return
			}

			event := log.Error().
				Str("error", fmt.Sprint(rec)).
				Str("request_id", c.GetString(RequestIDKey)).
				Bytes("request", request)
			if cfg.StackTrace {
				event = event.Bytes("stack", debug.Stack())
			}
			event.Msg("panic recovered")

			response.Error(c, errors.Internal("internal server error"))
		}()
		c.Next()
	}
}

// isBrokenPipe 检查是否为断开的连接错误
func isBrokenPipe(rec any) bool {
	ne, ok := rec.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}

	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
