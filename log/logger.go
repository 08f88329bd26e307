package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kochabx/ecsig/core/tag"
	"github.com/kochabx/ecsig/log/writer"
)

// Logger 日志记录器
type Logger struct {
	zerolog.Logger
	closer io.Closer // 文件 writer，用于资源清理
}

// Close 关闭日志记录器，释放资源
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func init() {
	zerolog.TimeFieldFormat = time.DateTime
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
}

// NewWithWriter 创建输出到 w 的 Logger
func NewWithWriter(w io.Writer, opts ...Option) *Logger {
	logger := &Logger{
		Logger: zerolog.New(w).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}

// New 创建新的 Logger 实例，输出到控制台
func New(opts ...Option) *Logger {
	return NewWithWriter(writer.Console(nil), opts...)
}

// NewFile 创建文件输出的 Logger
func NewFile(c FileConfig, opts ...Option) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	w, err := writer.File(c.rotateConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := NewWithWriter(w, opts...)
	logger.closer = w
	return logger, nil
}

// FromConfig 根据配置创建 Logger：console 或 json 格式写入 stderr，启用文件时同时写入文件。
// 日志级别通过 SetGlobalLevel 设置，以便运行期调整。
func FromConfig(c Config) (*Logger, error) {
	if err := tag.ApplyDefaults(&c); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	SetGlobalLevel(level)

	var opts []Option
	if c.Caller {
		opts = append(opts, WithCaller())
	}

	var out io.Writer = os.Stderr
	if c.Format == "console" {
		out = writer.Console(os.Stderr)
	}

	if !c.File.Enabled {
		return NewWithWriter(out, opts...), nil
	}

	fw, err := writer.File(c.File.rotateConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create file writer: %w", err)
	}

	logger := NewWithWriter(zerolog.MultiLevelWriter(out, fw), opts...)
	logger.closer = fw
	return logger, nil
}

// ParseLevel 解析日志级别名称，空字符串视为 info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
