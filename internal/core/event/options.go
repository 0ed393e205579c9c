package event

import (
	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-event/config"
	"github.com/dep2p/go-event/internal/core/metrics"
)

// Option 事件构造选项
type Option func(*options) error

// options 内部选项结构
type options struct {
	name     string
	fields   map[string]any
	clock    clock.Clock
	reporter metrics.Reporter
	disabled bool
}

// IsReservedField 返回字段名是否为保留名称
func IsReservedField(key string) bool {
	return config.IsReservedField(key)
}

// WithName 设置事件名称，用于日志、指标与注册表
func WithName(name string) Option {
	return func(o *options) error {
		o.name = name
		return nil
	}
}

// WithFields 设置自定义字段
//
// 与事件 API 同名的字段会被拒绝，返回 ErrReservedField。
func WithFields(fields map[string]any) Option {
	return func(o *options) error {
		if err := config.CheckFields(fields); err != nil {
			return err
		}
		if o.fields == nil {
			o.fields = make(map[string]any, len(fields))
		}
		for key, value := range fields {
			o.fields[key] = value
		}
		return nil
	}
}

// WithClock 设置时钟，测试中可传入 clock.NewMock()
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c != nil {
			o.clock = c
		}
		return nil
	}
}

// WithReporter 设置指标上报器
func WithReporter(r metrics.Reporter) Option {
	return func(o *options) error {
		if r != nil {
			o.reporter = r
		}
		return nil
	}
}

// WithDisabled 创建时即处于禁用状态
func WithDisabled() Option {
	return func(o *options) error {
		o.disabled = true
		return nil
	}
}

// applyOptions 应用选项并填充默认值
func applyOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.reporter == nil {
		o.reporter = metrics.Nop{}
	}
	return o, nil
}
