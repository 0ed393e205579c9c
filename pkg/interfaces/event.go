// Package interfaces 定义 go-event 公共接口
//
// 本文件定义 Event 接口，提供进程内事件对象的绑定、触发与等待功能。
package interfaces

import (
	"context"
	"time"
)

// Handler 事件处理函数
//
// Fire 的参数原样传递给每个被调用的 Handler。
type Handler func(args ...any)

// Enableable 启用/禁用能力
//
// Event 和 Connection 共享此能力：禁用 Event 会抑制全部分发与等待唤醒，
// 禁用单个 Connection 只会跳过该订阅。
type Enableable interface {
	// Enable 启用
	Enable()

	// Disable 禁用
	Disable()

	// SetEnabled 设置启用状态
	SetEnabled(enabled bool)

	// IsEnabled 返回当前启用状态
	IsEnabled() bool
}

// Connection 定义事件订阅记录接口
type Connection interface {
	Enableable

	// Name 返回订阅名称，匿名订阅返回空字符串
	Name() string

	// ID 返回订阅的唯一标识
	ID() string

	// TimesFired 返回该订阅被调用的次数
	TimesFired() uint64

	// TimesFiredWhileDisabled 返回该订阅在禁用状态下被跳过的次数
	TimesFiredWhileDisabled() uint64
}

// WaitResult 等待结果
type WaitResult struct {
	// Elapsed 从调用 Wait 到被唤醒经过的时间
	Elapsed time.Duration

	// Args 唤醒该等待者的 Fire 参数，超时时为 nil
	Args []any

	// TimedOut 是否因超时被唤醒
	TimedOut bool
}

// Event 定义事件对象接口
type Event interface {
	Enableable

	// Bind 绑定处理函数
	//
	// name 为空表示匿名订阅；同名订阅会被替换。
	Bind(name string, handler Handler)

	// Unbind 解绑指定名称的订阅，name 为空时解绑全部
	Unbind(name string)

	// UnbindAll 解绑全部订阅
	UnbindAll()

	// FindConnectionByName 按名称查找订阅及其位置
	FindConnectionByName(name string) (Connection, int, bool)

	// Fire 触发事件
	Fire(args ...any)

	// Wait 阻塞直到下一次触发、超时或 ctx 取消
	//
	// timeout <= 0 表示不设超时。
	Wait(ctx context.Context, timeout time.Duration) (WaitResult, error)

	// TimesFired 返回事件成功触发的次数
	TimesFired() uint64

	// TimesFiredWhileDisabled 返回事件在禁用状态下被触发的次数
	TimesFiredWhileDisabled() uint64
}
