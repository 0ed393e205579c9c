// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"strings"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别：debug / info / warn / error
	// 默认值: info
	Level string `json:"level" yaml:"level" toml:"level"`

	// Format 输出格式：text / json
	// 默认值: text
	Format string `json:"format" yaml:"format" toml:"format"`

	// File 日志文件路径，为空时输出到 stderr
	File string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`

	// MaxSizeMB 单个日志文件最大大小（MB）
	// 默认值: 50
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`

	// MaxBackups 保留的旧日志文件数
	// 默认值: 10
	MaxBackups int `json:"max_backups" yaml:"max_backups" toml:"max_backups"`

	// MaxAgeDays 旧日志文件保留天数
	// 默认值: 14
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`

	// Compress 是否压缩轮转后的日志
	// 默认值: true
	Compress bool `json:"compress" yaml:"compress" toml:"compress"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  50,
		MaxBackups: 10,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Validate 验证日志配置的有效性
func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("log: rotation limits must not be negative")
	}
	return nil
}
