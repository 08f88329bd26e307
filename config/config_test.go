package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/ecsig/core/validator"
	"github.com/kochabx/ecsig/errors"
)

type server struct {
	Addr            string        `mapstructure:"addr" default:":8080"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"30s"`
}

type convert struct {
	MaxInputSize int `mapstructure:"max_input_size" default:"16384" validate:"gte=0"`
	Concurrency  int `mapstructure:"concurrency" default:"4" validate:"gt=0"`
}

type mock struct {
	Server  server  `mapstructure:"server"`
	Convert convert `mapstructure:"convert"`
	Debug   bool    `mapstructure:"debug"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", `
server:
  addr: "127.0.0.1:9000"
convert:
  concurrency: 2
`)

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile(p)).Load())

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 16384, cfg.Convert.MaxInputSize)
	assert.Equal(t, 2, cfg.Convert.Concurrency)
}

func TestEnvOverride(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "server:\n  addr: \":9000\"\n")

	t.Setenv("ECSIG_SERVER_ADDR", ":7000")
	t.Setenv("ECSIG_CONVERT_MAX_INPUT_SIZE", "1024")
	t.Setenv("ECSIG_SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("ECSIG_DEBUG", "true")

	cfg := new(mock)
	require.NoError(t, New(cfg, WithFile(p)).Load())

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 1024, cfg.Convert.MaxInputSize)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Debug)
}

func TestOptionalFile(t *testing.T) {
	cfg := new(mock)
	err := New(cfg, WithName("absent.yaml", t.TempDir()), WithOptional()).Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	err = New(new(mock), WithName("absent.yaml", t.TempDir())).Load()
	assert.Equal(t, 404, errors.FromError(err).Code)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err = New(new(mock), WithFile(missing)).Load()
	e := errors.FromError(err)
	assert.Equal(t, 404, e.Code)
	assert.Equal(t, missing, e.Metadata["file"])
	assert.Error(t, stderrors.Unwrap(err))
}

func TestValidation(t *testing.T) {
	p := writeFile(t, t.TempDir(), "config.yaml", "convert:\n  concurrency: -1\n")

	err := New(new(mock), WithFile(p)).Load()
	require.Error(t, err)
	assert.Equal(t, 400, errors.FromError(err).Code)
	assert.Equal(t, "config validation failed", errors.FromError(err).Message)
	assert.True(t, validator.IsValidationError(err))

	require.NoError(t, New(new(mock), WithFile(p), WithValidator(nil)).Load())
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "convert:\n  concurrency: 2\n")

	var calls int
	cfg := new(mock)
	c := New(cfg, WithFile(p), WithWatch(false), WithOnChange(func() { calls++ }))
	require.NoError(t, c.Load())

	writeFile(t, dir, "config.yaml", "convert:\n  concurrency: 3\n")
	require.NoError(t, c.Reload())

	var concurrency int
	c.Read(func() { concurrency = cfg.Convert.Concurrency })
	assert.Equal(t, 3, concurrency)
	assert.Equal(t, 1, calls)

	c.Watch()
	assert.NotNil(t, c.Viper())
}

func TestReloadKeepsTargetOnFailure(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "server:\n  addr: \":9000\"\nconvert:\n  concurrency: 2\n")

	var calls int
	cfg := new(mock)
	c := New(cfg, WithFile(p), WithWatch(false), WithOnChange(func() { calls++ }))
	require.NoError(t, c.Load())

	writeFile(t, dir, "config.yaml", "server:\n  addr: \":7000\"\nconvert:\n  concurrency: 0\n")
	err := c.Reload()
	require.Error(t, err)
	assert.Equal(t, 400, errors.FromError(err).Code)

	c.Read(func() {
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, 2, cfg.Convert.Concurrency)
	})
	assert.Zero(t, calls)
}

func TestLoadRejectsNonPointer(t *testing.T) {
	err := New(mock{}).Load()
	require.Error(t, err)
	assert.Equal(t, 500, errors.FromError(err).Code)

	var nilTarget *mock
	require.Error(t, New(nilTarget).Load())
}

func TestKeys(t *testing.T) {
	got := keys(reflect.TypeOf(new(mock)), "")
	assert.ElementsMatch(t, []string{
		"server.addr",
		"server.shutdown_timeout",
		"convert.max_input_size",
		"convert.concurrency",
		"debug",
	}, got)
}
