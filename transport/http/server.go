package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kochabx/ecsig/log"
	"github.com/kochabx/ecsig/transport"
	"github.com/kochabx/ecsig/transport/http/metrics"
)

var _ transport.Server = (*Server)(nil)

const (
	defaultName              = "http"
	defaultAddr              = ":8080"
	defaultReadHeaderTimeout = 10 * time.Second
)

// Meta is the metadata of the server.
type Meta struct {
	Name string
}

type Server struct {
	meta     Meta
	options  Options
	registry *metrics.Prometheus
	server   *http.Server
	listener net.Listener
}

type Option func(*Server)

func WithMeta(meta Meta) Option {
	return func(s *Server) {
		s.meta = meta
	}
}

// WithRegistry sets the registry served on the metrics path, default metrics.Prom.
func WithRegistry(p *metrics.Prometheus) Option {
	return func(s *Server) {
		if p != nil {
			s.registry = p
		}
	}
}

func WithMetricsOptions(metrics MetricsOption) Option {
	return func(s *Server) {
		if err := metrics.init(); err != nil {
			log.Error().Err(err).Send()
			return
		}
		s.options.Metrics = metrics
	}
}

func WithHealthOptions(health HealthOption) Option {
	return func(s *Server) {
		if err := health.init(); err != nil {
			log.Error().Err(err).Send()
			return
		}
		s.options.Health = health
	}
}

// WithListener serves on l instead of listening on the address.
func WithListener(l net.Listener) Option {
	return func(s *Server) {
		s.listener = l
	}
}

func NewServer(addr string, handler http.Handler, opts ...Option) *Server {
	s := &Server{
		registry: metrics.Prom,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	additionalHandlers(s)

	return s
}

func (s *Server) Run() error {
	if s.meta.Name == "" {
		s.meta.Name = defaultName
	}

	if s.listener != nil {
		log.Info().Msgf("%s server listening on %s", s.meta.Name, s.listener.Addr())
		return s.server.Serve(s.listener)
	}

	if ok := transport.ValidateAddress(s.server.Addr); !ok {
		log.Warn().Msgf("invalid address %s, using default address: %s", s.server.Addr, defaultAddr)
		s.server.Addr = defaultAddr
	}
	log.Info().Msgf("%s server listening on %s", s.meta.Name, s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func additionalHandlers(s *Server) {
	if r, ok := s.server.Handler.(*gin.Engine); ok {
		handleMetrics(s, r)
		handleHealth(s, r)
	}
}

func handleMetrics(s *Server, r *gin.Engine) {
	if s.options.Metrics.Enabled {
		if s.options.Metrics.EnabledGoCollector {
			s.registry.WithGoCollectorRuntimeMetrics()
		}
		if s.options.Metrics.EnabledBuildInfoCollector {
			s.registry.WithBuildInfoCollector()
		}

		r.GET(s.options.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.registry.Registry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})))
	}
}

func handleHealth(s *Server, r *gin.Engine) {
	if s.options.Health.Enabled {
		r.GET(s.options.Health.Path, func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}
}
