package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 暴露 Prometheus 注册表
type Metrics interface {
	Registry() *prometheus.Registry
}

// Recorder 记录签名转换指标
type Recorder interface {
	// ObserveConversion 记录一次操作，result 为 ok 或错误码
	ObserveConversion(operation, from, to, result string, d time.Duration)
	// IncRateLimited 记录一次被限流的请求
	IncRateLimited()
}

// Result 将错误映射为指标标签
func Result(code int) string {
	if code == 0 {
		return "ok"
	}
	return strconv.Itoa(code)
}

// Middleware 记录 HTTP 请求数与耗时
func (p *Prometheus) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		p.requests.WithLabelValues(c.Request.Method, route, status).Inc()
		p.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
