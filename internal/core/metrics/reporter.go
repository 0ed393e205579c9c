package metrics

import "time"

// Reporter 提供记录事件对象指标的方法
//
// event 参数为事件名称，匿名事件使用 AnonymousEvent。
type Reporter interface {
	// FireDispatched 记录一次成功分发的触发
	FireDispatched(event string)

	// FireSuppressed 记录一次因事件禁用而被抑制的触发
	FireSuppressed(event string)

	// FireCoalesced 记录一次被间隔策略吞掉的触发
	FireCoalesced(event string)

	// HandlerInvoked 记录一次处理函数调用
	HandlerInvoked(event string)

	// HandlerSkipped 记录一次因订阅禁用而跳过的调用
	HandlerSkipped(event string)

	// HandlerPanicked 记录一次处理函数 panic
	HandlerPanicked(event string)

	// WaitResolved 记录一次 Wait 完成
	WaitResolved(event string, elapsed time.Duration, timedOut bool)
}

// AnonymousEvent 未命名事件使用的标签值
const AnonymousEvent = "anonymous"

// EventLabel 返回事件名对应的标签值
func EventLabel(name string) string {
	if name == "" {
		return AnonymousEvent
	}
	return name
}

// Nop 丢弃所有指标的 Reporter
type Nop struct{}

func (Nop) FireDispatched(string) {}
func (Nop) FireSuppressed(string) {}
func (Nop) FireCoalesced(string) {}
func (Nop) HandlerInvoked(string) {}
func (Nop) HandlerSkipped(string) {}
func (Nop) HandlerPanicked(string) {}
func (Nop) WaitResolved(string, time.Duration, bool) {}

// 确保实现 Reporter 接口
var (
	_ Reporter = Nop{}
	_ Reporter = (*Counter)(nil)
	_ Reporter = (*PrometheusReporter)(nil)
)
