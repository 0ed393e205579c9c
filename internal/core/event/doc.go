// Package event 实现进程内事件对象
//
// 事件对象是一个轻量的发布/订阅原语，支持：
//   - 具名订阅（同名覆盖）与匿名订阅
//   - 每次触发为每个订阅启动独立 goroutine（不等待、不回收结果）
//   - 阻塞等待下一次触发，可设置超时
//   - 事件级与订阅级的启用/禁用
//   - 两种时间窗口触发策略：固定窗口重复（Interval）与滑动序列（IntervalSequence）
//
// # 快速开始
//
//	ev, _ := event.New(event.WithName("clicked"))
//
//	// 绑定处理函数
//	ev.Bind("logger", func(args ...any) {
//	    fmt.Println("clicked", args)
//	})
//
//	// 触发
//	ev.Fire(10, 20)
//
//	// 等待下一次触发，最多 2 秒
//	res, _ := ev.Wait(ctx, 2*time.Second)
//	if res.TimedOut {
//	    // ...
//	}
//
// # 间隔策略
//
//	// 1 秒内连续 3 次调用才真正触发
//	triple, _ := event.NewInterval(3, time.Second)
//
//	// 相邻调用间隔不超过 300ms，累计 2 次触发
//	double, _ := event.NewIntervalSequence(2, 300*time.Millisecond)
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    event.Module(),
//	    fx.Invoke(func(f *event.Factory, r *event.Registry) { ... }),
//	)
//
// # 并发安全
//
// Event 使用 sync.Mutex 和 atomic 保证并发安全：
//   - 订阅序列：Mutex 保护，Fire 开始时取快照，进行中的 Fire 不受 Bind/Unbind 影响
//   - 启用状态与计数器：atomic
//   - 等待者：每个等待者带一个原子闩锁，触发、超时、取消三者只有一个生效
//   - 间隔策略：独立的 Mutex
package event
