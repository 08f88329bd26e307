package log

import (
	"github.com/rs/zerolog"
)

var (
	// G 全局日志实例
	G *Logger
)

func init() {
	G = New()
}

// SetGlobalLogger 设置全局日志记录器
func SetGlobalLogger(logger *Logger) {
	if logger != nil {
		G = logger
	}
}

// SetGlobalLevel 设置全局日志级别，对所有 Logger 生效，可在运行期并发调用
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Debug 返回 debug 级别的日志事件
func Debug() *zerolog.Event {
	return G.Debug()
}

// Info 返回 info 级别的日志事件
func Info() *zerolog.Event {
	return G.Info()
}

// Warn 返回 warn 级别的日志事件
func Warn() *zerolog.Event {
	return G.Warn()
}

// Error 返回 error 级别的日志事件（带堆栈）
func Error() *zerolog.Event {
	return G.Error().Stack()
}

// Fatal 返回 fatal 级别的日志事件（带堆栈）
func Fatal() *zerolog.Event {
	return G.Fatal().Stack()
}

// Infof 格式化输出 info 日志
func Infof(format string, args ...any) {
	G.Info().Msgf(format, args...)
}

// Warnf 格式化输出 warn 日志
func Warnf(format string, args ...any) {
	G.Warn().Msgf(format, args...)
}

// Errorf 格式化输出 error 日志（带堆栈）
func Errorf(format string, args ...any) {
	G.Error().Stack().Msgf(format, args...)
}
