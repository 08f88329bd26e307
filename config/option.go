package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/ecsig/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator; nil disables validation
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithFile reads the configuration from an explicit path, which must exist
func WithFile(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.source.File = path
		}
	}
}

// WithName searches the named file in the given directories
func WithName(name string, paths ...string) Option {
	return func(c *Config) {
		c.source.Name = name
		if len(paths) > 0 {
			c.source.Paths = paths
		}
	}
}

// WithOptional tolerates a missing file found by name search; defaults and
// the environment still apply
func WithOptional() Option {
	return func(c *Config) {
		c.source.Optional = true
	}
}

// WithEnvPrefix sets the environment variable prefix
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.source.EnvPrefix = prefix
	}
}

// WithWatch enables or disables configuration watching
func WithWatch(enable bool) Option {
	return func(c *Config) {
		c.watch = enable
	}
}

// WithOnChange registers a callback run after each successful reload
func WithOnChange(fn func()) Option {
	return func(c *Config) {
		if fn != nil {
			c.onChange = append(c.onChange, fn)
		}
	}
}
