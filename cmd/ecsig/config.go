package main

import (
	"time"

	"github.com/kochabx/ecsig/config"
	"github.com/kochabx/ecsig/core/rate"
	klog "github.com/kochabx/ecsig/log"
	khttp "github.com/kochabx/ecsig/transport/http"
	"github.com/kochabx/ecsig/transport/http/middleware"
)

// Config 服务配置
type Config struct {
	Server  ServerConfig          `json:"server" mapstructure:"server"`
	Convert ConvertConfig         `json:"convert" mapstructure:"convert"`
	Limit   rate.Config           `json:"limit" mapstructure:"limit"`
	Log     klog.Config           `json:"log" mapstructure:"log"`
	Metrics khttp.MetricsOption   `json:"metrics" mapstructure:"metrics"`
	Health  khttp.HealthOption    `json:"health" mapstructure:"health"`
	Cors    middleware.CorsConfig `json:"cors" mapstructure:"cors"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Name            string        `json:"name" mapstructure:"name" default:"ecsig"`
	Addr            string        `json:"addr" mapstructure:"addr" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" mapstructure:"shutdown_timeout" default:"30s"`
	MaxBodyBytes    int64         `json:"max_body_bytes" mapstructure:"max_body_bytes" default:"1048576" validate:"gte=0"`
	TrustRequestID  bool          `json:"trust_request_id" mapstructure:"trust_request_id"`
}

// ConvertConfig 转换配置
type ConvertConfig struct {
	MaxInputSize     int    `json:"max_input_size" mapstructure:"max_input_size" default:"16384" validate:"gte=0"`
	BatchConcurrency int    `json:"batch_concurrency" mapstructure:"batch_concurrency" default:"8" validate:"gte=0"`
	Lang             string `json:"lang" mapstructure:"lang" default:"en" validate:"oneof=en zh"`
}

// loadConfig 读取配置文件，path 为空时在当前目录查找可选的 config.yaml
func loadConfig(path string, opts ...config.Option) (*Config, *config.Config, error) {
	cfg := &Config{}

	base := []config.Option{config.WithWatch(false)}
	if path != "" {
		base = append(base, config.WithFile(path))
	} else {
		base = append(base, config.WithOptional())
	}

	c := config.New(cfg, append(base, opts...)...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}
