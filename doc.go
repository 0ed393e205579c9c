// Package event 提供进程内事件对象
//
// go-event 是一个轻量的发布/订阅原语，面向需要"具名订阅 + 等待下一次触发"
// 语义的进程内组件，例如输入事件、定时信号、状态变化通知。
//
// # 核心概念
//
//   - Event: 事件对象，持有有序的订阅序列、计数器与等待者
//   - Connection: 订阅记录，可按名称查找，可单独启用/禁用
//   - 间隔策略: Interval（固定窗口重复）与 IntervalSequence（滑动序列）
//
// # 快速开始
//
//	import event "github.com/dep2p/go-event"
//
//	// 1. 创建事件对象
//	clicked, err := event.New(event.WithName("clicked"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 2. 绑定处理函数（同名绑定会替换旧订阅）
//	clicked.Bind("ui", func(args ...any) {
//	    fmt.Println("clicked at", args)
//	})
//
//	// 3. 触发：每个启用的订阅在独立 goroutine 中执行
//	clicked.Fire(10, 20)
//
//	// 4. 等待下一次触发，最多 2 秒
//	res, err := clicked.Wait(ctx, 2*time.Second)
//	if err == nil && !res.TimedOut {
//	    fmt.Println("next click", res.Args, "after", res.Elapsed)
//	}
//
// # 间隔策略
//
//	// 1 秒内连续 3 次调用才真正触发一次
//	triple, _ := event.NewInterval(3, time.Second)
//
//	// 相邻调用间隔不超过 300ms，累计 2 次触发一次
//	double, _ := event.NewIntervalSequence(2, 300*time.Millisecond)
//
// repetitions <= 1 时构造失败，返回 ErrInvalidRepetitions。
//
// # 宿主进程
//
// NewApp 按统一配置组装 Fx 应用：指标模块、事件模块与配置中声明的事件。
// cmd/eventd 在此基础上提供 HTTP 接口。
package event
