package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/ecsig/core/crypto/ecsig"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(strings.NewReader(stdin), &out).Run(context.Background(), append([]string{"ecsig"}, args...))
	return out.String(), err
}

func TestNewApp(t *testing.T) {
	cmd := newApp(nil, nil)
	require.Equal(t, "ecsig", cmd.Name)

	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"convert", "detect", "inspect", "batch", "serve"}, names)
}

func TestConvert(t *testing.T) {
	out, err := run(t, "", "convert", "--from", "json", "--to", "asn1hex", "--input", `{"r":"01","s":"01"}`)
	require.NoError(t, err)
	assert.Equal(t, "3006020101020101\n", out)

	out, err = run(t, "01020304\n", "convert", "--from", "p1363hex", "--to", "asn1hex")
	require.NoError(t, err)
	assert.Equal(t, "30080202010202020304\n", out)

	out, err = run(t, "", "convert", "--to", "p1363hex", "3006020101020101")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("0", 62)+"01"+strings.Repeat("0", 62)+"01\n", out)
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.txt")
	require.NoError(t, os.WriteFile(path, []byte("3006020101020101\n"), 0o600))

	out, err := run(t, "", "convert", "--to", "json", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, `{"r":"01","s":"01"}`+"\n", out)
}

func TestConvertErrors(t *testing.T) {
	_, err := run(t, "", "convert", "--from", "asn1hex", "--to", "jws", "--input", "300602010102")
	assert.ErrorIs(t, err, ecsig.ErrDERFormat)

	_, err = run(t, "", "convert", "--to", "pem", "--input", "3006020101020101")
	assert.ErrorIs(t, err, ecsig.ErrUnknownFormat)

	_, err = run(t, "", "convert", "--to", "jws")
	assert.ErrorIs(t, err, errEmptyInput)

	_, err = run(t, "", "--max-input-size", "8", "convert", "--to", "jws", "--input", "3006020101020101")
	assert.ErrorIs(t, err, ecsig.ErrSizeLimit)
}

func TestDetect(t *testing.T) {
	tests := map[string]string{
		"3006020101020101":    "asn1hex",
		"01020304":            "p1363hex",
		`{"r":"01","s":"01"}`: "json",
		"AQIDBA":              "jws",
	}

	for input, want := range tests {
		out, err := run(t, "", "detect", "--input", input)
		require.NoError(t, err, input)
		assert.Equal(t, want+"\n", out)
	}

	_, err := run(t, "", "detect", "--input", "###")
	assert.ErrorIs(t, err, ecsig.ErrFormatDetection)
}

func TestInspect(t *testing.T) {
	out, err := run(t, "", "inspect", "--input", "3006020101020101")
	require.NoError(t, err)
	assert.Contains(t, out, "asn1hex")
	assert.Contains(t, out, "32 bytes (P-256)")

	out, err = run(t, "", "inspect", "--json", "--input", "3006020101020101")
	require.NoError(t, err)

	var report ecsig.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, ecsig.FormatASN1Hex, report.Format)
	assert.Equal(t, "01", report.R)
	assert.Equal(t, 32, report.Width)
	assert.Equal(t, `{"r":"01","s":"01"}`, report.Encodings.JSON)
}

func TestBatch(t *testing.T) {
	stdin := "3006020101020101\n\n# comment\n{\"r\":\"02\",\"s\":\"03\"}\n"
	out, err := run(t, stdin, "batch", "--to", "asn1hex", "--concurrency", "2")
	require.NoError(t, err)
	assert.Equal(t, "3006020101020101\n3006020102020103\n", out)

	out, err = run(t, "3006020101020101\nzz!!\n", "batch", "--to", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 conversions failed")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"r":"01","s":"01"}`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "error:"))
}

func TestBatchSkipsComments(t *testing.T) {
	out, err := run(t, "###\n# 3006020101020101\n\n01020304\n", "batch", "--from", "p1363hex", "--to", "asn1hex")
	require.NoError(t, err)
	assert.Equal(t, "30080202010202020304\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "detect", "--input", "01020304")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  addr: ":9090"
  shutdown_timeout: 5s
convert:
  max_input_size: 4096
limit:
  enabled: true
  rate: 10
log:
  level: debug
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, _, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "ecsig", cfg.Server.Name)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 4096, cfg.Convert.MaxInputSize)
	assert.Equal(t, 8, cfg.Convert.BatchConcurrency)
	assert.True(t, cfg.Limit.Enabled)
	assert.Equal(t, 10.0, cfg.Limit.Rate)
	assert.Equal(t, 200, cfg.Limit.Burst)
	assert.Equal(t, "local", cfg.Limit.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "/health", cfg.Health.Path)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("ECSIG_SERVER_ADDR", ":7070")
	t.Setenv("ECSIG_CONVERT_LANG", "zh")
	t.Chdir(t.TempDir())

	cfg, _, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "zh", cfg.Convert.Lang)
	assert.Equal(t, 16384, cfg.Convert.MaxInputSize)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limit:\n  backend: memcached\n"), 0o600))

	_, _, err := loadConfig(path)
	assert.Error(t, err)

	_, _, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, _, err := loadConfig("")
	require.NoError(t, err)
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Limit.Enabled = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := newService(ctx, cfg)
	require.NoError(t, err)

	info := application.Info()
	assert.Equal(t, 1, info.ServerCount)
	assert.Equal(t, 2, info.CloseCount)
}
