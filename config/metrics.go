// Package config 提供统一的配置管理
package config

import (
	"fmt"
	"regexp"
)

// metricNamespacePattern Prometheus 指标名前缀的合法格式
var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 Prometheus 指标
	// 默认值: true
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`

	// Namespace 指标名前缀
	// 默认值: goevent
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
}

// DefaultMetricsConfig 返回默认的指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "goevent",
	}
}

// Validate 验证指标配置的有效性
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !metricNamespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("metrics: invalid namespace %q", c.Namespace)
	}
	return nil
}
