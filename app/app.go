package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/ecsig/log"
	"github.com/kochabx/ecsig/transport"
)

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrClosePanic     = errors.New("close function panicked")
)

const (
	defaultShutdownTimeout = 30 * time.Second
	defaultCloseTimeout    = 10 * time.Second
)

// Application 管理服务器与关闭函数的生命周期
type Application struct {
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownTimeout time.Duration
	closeTimeout    time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closeFuncs      []CloseFunc
	mu              sync.RWMutex
	started         bool
}

// CloseFunc 关闭函数，Timeout 为 0 时使用应用默认值
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

type Option func(*Application)

// WithContext 设置根上下文，上下文结束即触发关闭
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithShutdownTimeout 设置服务器关闭超时
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithCloseTimeout 设置关闭函数默认超时
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

// WithSignals 设置触发优雅关闭的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = slices.Clone(signals)
		}
	}
}

// WithServer 添加服务器
func WithServer(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, server := range servers {
			if server != nil {
				app.servers = append(app.servers, server)
			}
		}
	}
}

// WithClose 添加关闭函数
func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			log.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	}
}

// New 创建应用
func New(options ...Option) *Application {
	app := &Application{
		shutdownTimeout: defaultShutdownTimeout,
		closeTimeout:    defaultCloseTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range options {
		opt(app)
	}

	return app
}

// RegisterClose 启动前追加关闭函数
func (app *Application) RegisterClose(name string, fn func(context.Context) error, timeout time.Duration) error {
	if fn == nil {
		return errors.New("close function cannot be nil")
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if app.started {
		return ErrAlreadyStarted
	}
	app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})

	return nil
}

// Start 启动所有服务器并阻塞，直到收到信号、上下文结束或任一服务器出错。
// 返回前按注册的逆序执行关闭函数。
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	servers := slices.Clone(app.servers)
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, app.signals...)
	defer signal.Stop(sigCh)

	eg, ctx := errgroup.WithContext(app.ctx)

	for _, server := range servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		eg.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-ctx.Done():
		}
		return nil
	})

	err := eg.Wait()
	app.runCloseTasks()

	return err
}

// Stop 触发优雅关闭
func (app *Application) Stop() {
	app.cancel()
}

func (app *Application) runCloseTasks() {
	app.mu.RLock()
	closeFuncs := slices.Clone(app.closeFuncs)
	app.mu.RUnlock()

	// 后注册的先关闭，日志等基础设施最后释放
	for _, close := range slices.Backward(closeFuncs) {
		_ = app.runCloseTask(close)
	}
}

func (app *Application) runCloseTask(close CloseFunc) error {
	timeout := close.Timeout
	if timeout <= 0 {
		timeout = app.closeTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("close", close.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- close.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("close", close.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		log.Warn().Str("close", close.Name).Msg("close function timed out")
		return ctx.Err()
	}
}

// Info 返回应用状态
func (app *Application) Info() Info {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return Info{
		Started:     app.started,
		ServerCount: len(app.servers),
		CloseCount:  len(app.closeFuncs),
	}
}

// Info 应用状态
type Info struct {
	Started     bool `json:"started"`
	ServerCount int  `json:"server_count"`
	CloseCount  int  `json:"close_count"`
}
