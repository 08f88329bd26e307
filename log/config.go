package log

import (
	"time"

	"github.com/kochabx/ecsig/log/writer"
)

// Config 日志配置
type Config struct {
	Level  string     `json:"level" mapstructure:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string     `json:"format" mapstructure:"format" default:"console" validate:"oneof=console json"`
	Caller bool       `json:"caller" mapstructure:"caller"`
	File   FileConfig `json:"file" mapstructure:"file"`
}

// FileConfig 日志文件配置
type FileConfig struct {
	Enabled          bool             `json:"enabled" mapstructure:"enabled"`
	Filepath         string           `json:"filepath" mapstructure:"filepath" default:"log"`
	Filename         string           `json:"filename" mapstructure:"filename" default:"ecsig"`
	FileExt          string           `json:"file_ext" mapstructure:"file_ext" default:"log"`
	RotateMode       string           `json:"rotate_mode" mapstructure:"rotate_mode" default:"size" validate:"oneof=time size"`
	RotatelogsConfig RotatelogsConfig `json:"rotatelogs_config" mapstructure:"rotatelogs_config"`
	LumberjackConfig LumberjackConfig `json:"lumberjack_config" mapstructure:"lumberjack_config"`
}

// RotatelogsConfig 按时间轮转配置
type RotatelogsConfig struct {
	MaxAge       time.Duration `json:"max_age" mapstructure:"max_age" default:"24h"`
	RotationTime time.Duration `json:"rotation_time" mapstructure:"rotation_time" default:"1h"`
}

// LumberjackConfig 按大小轮转配置
type LumberjackConfig struct {
	MaxSize    int  `json:"max_size" mapstructure:"max_size" default:"100"`
	MaxBackups int  `json:"max_backups" mapstructure:"max_backups" default:"5"`
	MaxAge     int  `json:"max_age" mapstructure:"max_age" default:"30"`
	Compress   bool `json:"compress" mapstructure:"compress"`
}

func (c *FileConfig) rotateConfig() writer.RotateConfig {
	return writer.RotateConfig{
		Mode:         writer.RotateMode(c.RotateMode),
		Dir:          c.Filepath,
		Name:         c.Filename,
		Ext:          c.FileExt,
		MaxAge:       c.RotatelogsConfig.MaxAge,
		RotationTime: c.RotatelogsConfig.RotationTime,
		MaxSizeMB:    c.LumberjackConfig.MaxSize,
		MaxBackups:   c.LumberjackConfig.MaxBackups,
		MaxDays:      c.LumberjackConfig.MaxAge,
		Compress:     c.LumberjackConfig.Compress,
	}
}
