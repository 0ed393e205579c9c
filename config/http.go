// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"time"
)

// HTTPConfig eventd HTTP 接口配置
type HTTPConfig struct {
	// Addr 监听地址
	// 默认值: :8080
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// MaxWait 单个 wait 请求允许的最长超时
	// 默认值: 30s
	MaxWait Duration `json:"max_wait" yaml:"max_wait" toml:"max_wait"`

	// ShutdownTimeout 优雅关闭的最长等待时间
	// 默认值: 5s
	ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// DefaultHTTPConfig 返回默认的 HTTP 配置
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Addr:            ":8080",
		MaxWait:         Duration(30 * time.Second),
		ShutdownTimeout: Duration(5 * time.Second),
	}
}

// Validate 验证 HTTP 配置的有效性
func (c *HTTPConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("http: addr is required")
	}
	if c.MaxWait <= 0 {
		return fmt.Errorf("http: max_wait must be positive, got %s", c.MaxWait)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("http: shutdown_timeout must not be negative")
	}
	return nil
}
