// Package interfaces 定义 go-event 的公共接口
//
// 接口文件：
//   - event.go  - Event / Connection / Enableable / Handler / WaitResult
//
// 实现位于 internal/core/event，根包 event 以类型别名的方式对外导出。
//
// # 设计原则
//
//   - Enableable 作为小接口被 Event 和 Connection 组合，而不是继承
//   - Handler 的参数原样来自 Fire，处理函数在独立 goroutine 中执行
//   - Wait 接收 context.Context，超时不视为错误，通过 WaitResult.TimedOut 表示
package interfaces
