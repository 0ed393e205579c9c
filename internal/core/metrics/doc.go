// Package metrics 提供事件对象的监控指标收集
//
// metrics 模块定义 Reporter 接口，由事件核心在以下时机回调：
//   - 触发被分发 / 因禁用被抑制 / 被间隔策略合并
//   - 订阅处理函数被调用 / 因禁用被跳过 / 发生 panic
//   - Wait 被唤醒（触发或超时）
//
// 提供三种实现：
//   - PrometheusReporter: 导出为 Prometheus 指标
//   - Counter: 进程内原子计数，附带最近 60 秒的触发速率（RateMeter）
//   - Nop: 丢弃所有指标
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	reporter, err := metrics.NewPrometheusReporter("goevent", reg)
//	if err != nil {
//	    return err
//	}
//
//	ev, _ := event.New(event.WithName("tap"), event.WithReporter(reporter))
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(r metrics.Reporter) { ... }),
//	)
//
// # 并发安全
//
// 所有实现均可被多个 goroutine 同时调用。
package metrics
