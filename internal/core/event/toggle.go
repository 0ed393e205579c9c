package event

import "sync/atomic"

// toggle 启用/禁用状态
//
// 零值为启用状态，Event 与 Connection 通过嵌入共享此实现。
type toggle struct {
	disabled atomic.Bool
}

// Enable 启用
func (t *toggle) Enable() {
	t.disabled.Store(false)
}

// Disable 禁用
func (t *toggle) Disable() {
	t.disabled.Store(true)
}

// SetEnabled 设置启用状态
func (t *toggle) SetEnabled(enabled bool) {
	t.disabled.Store(!enabled)
}

// IsEnabled 返回当前启用状态
func (t *toggle) IsEnabled() bool {
	return !t.disabled.Load()
}
