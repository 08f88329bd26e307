package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/kochabx/ecsig/api"
	"github.com/kochabx/ecsig/app"
	"github.com/kochabx/ecsig/config"
	"github.com/kochabx/ecsig/core/crypto/ecsig"
	"github.com/kochabx/ecsig/core/rate"
	"github.com/kochabx/ecsig/log"
	khttp "github.com/kochabx/ecsig/transport/http"
	"github.com/kochabx/ecsig/transport/http/metrics"
	"github.com/kochabx/ecsig/transport/http/middleware"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP conversion service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the log level when the config file changes",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	gin.SetMode(gin.ReleaseMode)

	var (
		cfg  *Config
		c    *config.Config
		opts []config.Option
	)
	if cmd.Bool("watch") {
		opts = append(opts, config.WithWatch(true), config.WithOnChange(func() {
			c.Read(func() {
				if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
					log.SetGlobalLevel(level)
				}
			})
		}))
	}

	cfg, c, err := loadConfig(cmd.String("config"), opts...)
	if err != nil {
		return err
	}

	application, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	c.Watch()
	return application.Start()
}

// newService 根据配置组装 HTTP 服务
func newService(ctx context.Context, cfg *Config) (*app.Application, error) {
	logger, err := log.FromConfig(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.SetGlobalLogger(logger)
	middleware.SetLogger(logger)

	closeLogger := func(context.Context) error { return logger.Close() }
	opts := []app.Option{
		app.WithContext(ctx),
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		app.WithClose("logger", closeLogger, 0),
	}

	routerCfg := api.RouterConfig{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Metrics:        metrics.Prom,
		TrustRequestID: cfg.Server.TrustRequestID,
		SkipPaths:      []string{cfg.Health.Path, cfg.Metrics.Path},
	}
	if len(cfg.Cors.AllowOrigins) > 0 {
		routerCfg.Cors = &cfg.Cors
	}

	if cfg.Limit.Enabled {
		limiter, err := rate.New(ctx, cfg.Limit)
		if err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("init rate limiter: %w", err)
		}
		routerCfg.Limiter = limiter
		opts = append(opts, app.WithClose("limiter", func(context.Context) error { return limiter.Close() }, 0))
	}

	handler := api.NewHandler(
		api.WithConverter(ecsig.NewConverter(ecsig.WithMaxInputSize(cfg.Convert.MaxInputSize))),
		api.WithBatchConcurrency(cfg.Convert.BatchConcurrency),
		api.WithLang(cfg.Convert.Lang),
		api.WithRecorder(metrics.Prom),
	)

	server := khttp.NewServer(cfg.Server.Addr, api.NewRouter(handler, routerCfg),
		khttp.WithMeta(khttp.Meta{Name: cfg.Server.Name}),
		khttp.WithMetricsOptions(cfg.Metrics),
		khttp.WithHealthOptions(cfg.Health),
	)

	return app.New(append(opts, app.WithServer(server))...), nil
}
