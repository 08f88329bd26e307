package config

import (
	"reflect"
	"sync"

	"github.com/spf13/viper"

	"github.com/kochabx/ecsig/core/validator"
	"github.com/kochabx/ecsig/errors"
	"github.com/kochabx/ecsig/log"
)

// Config manages application configuration
type Config struct {
	mu       sync.RWMutex        // protects concurrent access to target
	loadMu   sync.Mutex          // serializes viper reads
	viper    *viper.Viper        // viper instance for configuration management
	validate validator.Validator // validator for configuration validation
	target   any                 // destination the configuration is unmarshalled into
	source   Source              // where the configuration comes from
	watch    bool                // whether Watch installs a file watcher
	onChange []func()            // invoked after a successful reload
}

// New creates a new Config instance with the given options.
// Without options the configuration is read from ./config.yaml and
// environment variables prefixed with ECSIG_.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		source:   Source{Name: "config.yaml", Paths: []string{"."}, EnvPrefix: DefaultEnvPrefix},
		watch:    true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load reads the configuration into a fresh value of the target's type and
// swaps it in only after validation succeeds, so a failed load leaves the
// target untouched.
func (c *Config) Load() error {
	rv := reflect.ValueOf(c.target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(500, "config target must be a non-nil pointer, got %T", c.target)
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	fresh := reflect.New(rv.Type().Elem())
	if err := newFileLoader(c.viper, c.validate, c.source).Load(fresh.Interface()); err != nil {
		return err
	}

	c.mu.Lock()
	rv.Elem().Set(fresh.Elem())
	c.mu.Unlock()
	return nil
}

// Reload re-reads the configuration into the target and notifies listeners
func (c *Config) Reload() error {
	if err := c.Load(); err != nil {
		return err
	}

	for _, fn := range c.onChange {
		fn()
	}
	return nil
}

// Watch reloads the configuration whenever the file changes. It is a no-op
// when watching is disabled or no file was read.
func (c *Config) Watch() {
	if !c.watch || c.viper.ConfigFileUsed() == "" {
		return
	}

	newFileLoader(c.viper, c.validate, c.source).Watch(func() {
		log.Info().Str("file", c.viper.ConfigFileUsed()).Msg("config change detected")

		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
	})
}

// Read runs fn with the target under a read lock, guarding against a
// concurrent reload
func (c *Config) Read(fn func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn()
}

// Viper returns the underlying viper instance
func (c *Config) Viper() *viper.Viper {
	return c.viper
}
