package event

import (
	"github.com/benbjohnson/clock"

	coreevent "github.com/dep2p/go-event/internal/core/event"
	"github.com/dep2p/go-event/internal/core/metrics"
)

// Option 事件构造选项
type Option = coreevent.Option

// WithName 设置事件名称
//
// 名称用于日志、指标标签以及 Registry 查找。
func WithName(name string) Option {
	return coreevent.WithName(name)
}

// WithFields 设置自定义字段
//
// 字段名不能与事件 API 同名（bind、fire、wait 等），否则构造失败并返回
// ErrReservedField。
//
// 示例：
//
//	ev, err := event.New(event.WithFields(map[string]any{"color": "red"}))
func WithFields(fields map[string]any) Option {
	return coreevent.WithFields(fields)
}

// WithClock 设置时钟
//
// 间隔策略与 Wait 超时都使用此时钟，测试中可传入 clock.NewMock()。
func WithClock(c clock.Clock) Option {
	return coreevent.WithClock(c)
}

// WithReporter 设置指标上报器
func WithReporter(r metrics.Reporter) Option {
	return coreevent.WithReporter(r)
}

// WithDisabled 创建时即处于禁用状态
func WithDisabled() Option {
	return coreevent.WithDisabled()
}

// IsReservedField 返回字段名是否为保留名称
func IsReservedField(key string) bool {
	return coreevent.IsReservedField(key)
}
