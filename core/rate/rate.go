package rate

import (
	"context"
	"fmt"
)

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

const (
	BackendLocal = "local"
	BackendRedis = "redis"
)

// Config 限流配置
type Config struct {
	Enabled bool        `json:"enabled" mapstructure:"enabled"`
	Backend string      `json:"backend" mapstructure:"backend" default:"local" validate:"oneof=local redis"`
	Rate    float64     `json:"rate" mapstructure:"rate" default:"100" validate:"gt=0"`
	Burst   int         `json:"burst" mapstructure:"burst" default:"200" validate:"gt=0"`
	Redis   RedisConfig `json:"redis" mapstructure:"redis"`
}

// RedisConfig Redis 令牌桶配置
type RedisConfig struct {
	Addr     string `json:"addr" mapstructure:"addr" default:"localhost:6379"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	DB       int    `json:"db" mapstructure:"db"`
	Prefix   string `json:"prefix" mapstructure:"prefix" default:"ecsig:ratelimit:"`
}

// New 根据配置创建限流器
func New(ctx context.Context, c Config) (Limiter, error) {
	switch c.Backend {
	case BackendLocal, "":
		return NewLocal(c.Rate, c.Burst), nil
	case BackendRedis:
		return NewRedis(ctx, c.Redis, c.Rate, c.Burst)
	default:
		return nil, fmt.Errorf("unsupported rate limit backend %q", c.Backend)
	}
}
