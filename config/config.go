// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML / TOML 加载配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Metrics.Namespace = "myapp"
//
//	// 从文件加载（按扩展名选择格式）
//	cfg, err := config.Load("eventd.yaml")
package config

import "go.uber.org/multierr"

// Config 是 go-event 宿主进程的完整配置结构
//
// 配置按照功能模块组织：
//   - Log: 日志输出与轮转
//   - Metrics: Prometheus 指标
//   - HTTP: eventd 的 HTTP 接口
//   - Events: 预先声明的事件对象
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log" yaml:"log" toml:"log"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`

	// HTTP HTTP 接口配置
	HTTP HTTPConfig `json:"http" yaml:"http" toml:"http"`

	// Events 事件声明列表
	//
	// 启动时按顺序创建并注册到 Registry。
	Events []EventSpec `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，不声明任何事件。
func NewConfig() *Config {
	return &Config{
		Log:     DefaultLogConfig(),
		Metrics: DefaultMetricsConfig(),
		HTTP:    DefaultHTTPConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置，返回合并后的全部错误而不是第一个错误。
func (c *Config) Validate() error {
	err := multierr.Combine(
		c.Log.Validate(),
		c.Metrics.Validate(),
		c.HTTP.Validate(),
	)

	seen := make(map[string]struct{}, len(c.Events))
	for i := range c.Events {
		spec := &c.Events[i]
		err = multierr.Append(err, spec.Validate())
		if _, dup := seen[spec.Name]; dup {
			err = multierr.Append(err, duplicateEventError(spec.Name))
		}
		seen[spec.Name] = struct{}{}
	}
	return err
}
