package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode 日志轮转模式
type RotateMode string

const (
	// RotateModeTime 按时间轮转
	RotateModeTime RotateMode = "time"
	// RotateModeSize 按大小轮转
	RotateModeSize RotateMode = "size"
)

// RotateConfig 日志轮转配置
type RotateConfig struct {
	Mode RotateMode
	Dir  string
	Name string
	Ext  string

	// 按时间轮转
	MaxAge       time.Duration
	RotationTime time.Duration

	// 按大小轮转
	MaxSizeMB  int
	MaxBackups int
	MaxDays    int
	Compress   bool
}

// File 创建文件输出 writer，返回值同时实现 io.Closer
func File(c RotateConfig) (io.WriteCloser, error) {
	switch c.Mode {
	case RotateModeTime:
		w, err := rotatelogs.New(
			c.path("%Y%m%d%H%M"),
			rotatelogs.WithLinkName(c.path("")),
			rotatelogs.WithMaxAge(c.MaxAge),
			rotatelogs.WithRotationTime(c.RotationTime),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create time rotate writer: %w", err)
		}
		return w, nil
	case RotateModeSize:
		return &lumberjack.Logger{
			Filename:   c.path(""),
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxDays,
			Compress:   c.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %q", c.Mode)
	}
}

// path 返回日志文件路径，pattern 非空时插入在文件名与扩展名之间
func (c *RotateConfig) path(pattern string) string {
	var b strings.Builder
	b.WriteString(c.Name)
	if pattern != "" {
		b.WriteByte('.')
		b.WriteString(pattern)
	}
	b.WriteByte('.')
	b.WriteString(c.Ext)
	return filepath.Join(c.Dir, b.String())
}
