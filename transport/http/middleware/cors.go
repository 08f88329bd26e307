package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins     []string `json:"allow_origins" mapstructure:"allow_origins"`
	AllowMethods     []string `json:"allow_methods" mapstructure:"allow_methods" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string `json:"allow_headers" mapstructure:"allow_headers" default:"Origin,Content-Type,Accept,X-Request-Id"`
	ExposeHeaders    []string `json:"expose_headers" mapstructure:"expose_headers" default:"X-Request-Id"`
	AllowCredentials bool     `json:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `json:"max_age" mapstructure:"max_age" default:"43200"`
}

// Cors 跨域中间件，AllowOrigins 包含 "*" 时放行任意来源
func Cors(config CorsConfig) gin.HandlerFunc {
	anyOrigin := slices.Contains(config.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || (!anyOrigin && !slices.Contains(config.AllowOrigins, origin)) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Add("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowMethods, ","))
		h.Set("Access-Control-Allow-Headers", strings.Join(config.AllowHeaders, ","))
		h.Set("Access-Control-Expose-Headers", strings.Join(config.ExposeHeaders, ","))
		h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
		if config.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
