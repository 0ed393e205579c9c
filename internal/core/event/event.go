// Package event 实现进程内事件对象
package event

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-event/internal/core/metrics"
	pkgif "github.com/dep2p/go-event/pkg/interfaces"
	"github.com/dep2p/go-event/pkg/lib/log"
)

var logger = log.Logger("core/event")

// ============================================================================
// Event 实现
// ============================================================================

// Event 事件对象
type Event struct {
	toggle

	name     string
	label    string
	fields   map[string]any
	clock    clock.Clock
	reporter metrics.Reporter
	policy   firePolicy

	// mu 保护订阅序列
	mu    sync.Mutex
	conns []*Connection

	waiters waiterSet

	timesFired              atomic.Uint64
	timesFiredWhileDisabled atomic.Uint64
}

// dispatch Fire 开始时冻结的一条分发记录
type dispatch struct {
	conn    *Connection
	handler pkgif.Handler
}

// newEvent 按选项组装事件对象
func newEvent(policy firePolicy, opts []Option) (*Event, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	e := &Event{
		name:     o.name,
		label:    metrics.EventLabel(o.name),
		fields:   o.fields,
		clock:    o.clock,
		reporter: o.reporter,
		policy:   policy,
	}
	if o.disabled {
		e.Disable()
	}
	return e, nil
}

// Name 返回事件名称
func (e *Event) Name() string {
	return e.name
}

// ============================================================================
// 订阅管理
// ============================================================================

// Bind 绑定处理函数
//
// name 为空表示匿名订阅。已存在同名订阅时，旧订阅先被移除（记录警告），
// 新订阅追加到序列末尾。
func (e *Event) Bind(name string, handler pkgif.Handler) {
	if handler == nil {
		logger.Warn("忽略空处理函数", "event", e.label, "name", name)
		return
	}

	conn := newConnection(name, handler)

	e.mu.Lock()
	var evicted *Connection
	if name != "" {
		if i := e.indexLocked(name); i >= 0 {
			evicted = e.removeLocked(i)
		}
	}
	e.conns = append(e.conns, conn)
	e.mu.Unlock()

	if evicted != nil {
		logger.Warn("覆盖同名订阅",
			"event", e.label,
			"name", name,
			"old", evicted.ID(),
			"new", conn.ID())
	}
}

// Unbind 解绑指定名称的订阅
//
// name 为空时按序列顺序解绑全部订阅；名称不存在时不做任何操作。
func (e *Event) Unbind(name string) {
	e.mu.Lock()
	removed := 0
	if name == "" {
		for len(e.conns) > 0 {
			e.removeLocked(0)
			removed++
		}
	} else if i := e.indexLocked(name); i >= 0 {
		e.removeLocked(i)
		removed++
	}
	e.mu.Unlock()

	if removed > 0 {
		logger.Debug("解绑订阅", "event", e.label, "name", name, "count", removed)
	}
}

// UnbindAll 解绑全部订阅
func (e *Event) UnbindAll() {
	e.Unbind("")
}

// FindConnectionByName 按名称查找订阅及其在序列中的位置
//
// 未找到时返回 (nil, -1, false)。匿名订阅无法通过名称查找。
func (e *Event) FindConnectionByName(name string) (pkgif.Connection, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(name)
	if i < 0 {
		return nil, -1, false
	}
	return e.conns[i], i, true
}

// Connections 返回当前订阅序列的快照
func (e *Event) Connections() []*Connection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.conns)
}

// indexLocked 查找名称对应的位置，调用方需持有 mu
func (e *Event) indexLocked(name string) int {
	if name == "" {
		return -1
	}
	for i, c := range e.conns {
		if c.name == name {
			return i
		}
	}
	return -1
}

// removeLocked 移除指定位置的订阅并清空其处理函数，调用方需持有 mu
func (e *Event) removeLocked(i int) *Connection {
	conn := e.conns[i]
	e.conns = slices.Delete(e.conns, i, i+1)
	conn.release()
	return conn
}

// snapshot 冻结当前订阅序列及其处理函数
func (e *Event) snapshot() []dispatch {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]dispatch, 0, len(e.conns))
	for _, c := range e.conns {
		out = append(out, dispatch{conn: c, handler: c.loadHandler()})
	}
	return out
}

// ============================================================================
// 触发
// ============================================================================

// Fire 触发事件
//
// 带间隔策略的事件先由策略决定是否放行。放行后：
//   - 事件禁用：只增加 TimesFiredWhileDisabled
//   - 事件启用：增加 TimesFired，唤醒全部等待者，然后按绑定顺序为每个
//     启用的订阅启动独立 goroutine 调用处理函数
func (e *Event) Fire(args ...any) {
	if e.policy != nil && !e.policy.admit(e.clock.Now()) {
		e.reporter.FireCoalesced(e.label)
		return
	}
	e.fire(args)
}

// fire 事件核心的分发逻辑
func (e *Event) fire(args []any) {
	if !e.IsEnabled() {
		e.timesFiredWhileDisabled.Add(1)
		e.reporter.FireSuppressed(e.label)
		return
	}

	e.timesFired.Add(1)
	e.reporter.FireDispatched(e.label)

	targets := e.snapshot()

	// 先唤醒等待者，再分发订阅
	e.waiters.broadcast(args)

	for _, d := range targets {
		if !d.conn.IsEnabled() {
			d.conn.timesFiredWhileDisabled.Add(1)
			e.reporter.HandlerSkipped(e.label)
			continue
		}
		d.conn.timesFired.Add(1)
		e.reporter.HandlerInvoked(e.label)
		go e.invoke(d, cloneArgs(args))
	}
}

// invoke 在独立 goroutine 中调用处理函数，捕获 panic 防止影响其他订阅
func (e *Event) invoke(d dispatch, args []any) {
	defer func() {
		if r := recover(); r != nil {
			e.reporter.HandlerPanicked(e.label)
			logger.Error("处理函数 panic",
				"event", e.label,
				"connection", d.conn.label(),
				"panic", r)
		}
	}()
	d.handler(args...)
}

// ============================================================================
// 等待
// ============================================================================

// Wait 阻塞直到下一次成功触发、超时或 ctx 取消
//
// timeout <= 0 表示不设超时。超时时返回 TimedOut=true 与空参数，
// 不视为错误；ctx 取消时返回 ctx.Err()。
func (e *Event) Wait(ctx context.Context, timeout time.Duration) (pkgif.WaitResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := e.clock.Now()
	w := newWaiter()

	if timeout > 0 {
		timer := e.clock.AfterFunc(timeout, func() {
			w.resolve(wake{timedOut: true})
		})
		defer timer.Stop()
	}

	e.waiters.add(w)
	defer e.waiters.remove(w)

	select {
	case wk := <-w.ch:
		return e.finishWait(start, wk), nil
	case <-ctx.Done():
		if w.claim() {
			return pkgif.WaitResult{Elapsed: e.clock.Since(start)}, ctx.Err()
		}
		// 取消与唤醒同时发生，唤醒已生效
		return e.finishWait(start, <-w.ch), nil
	}
}

// finishWait 生成等待结果并记录日志与指标
func (e *Event) finishWait(start time.Time, wk wake) pkgif.WaitResult {
	elapsed := e.clock.Since(start)
	if wk.timedOut {
		logger.Warn("等待超时", "event", e.label, "elapsed", elapsed)
	}
	e.reporter.WaitResolved(e.label, elapsed, wk.timedOut)
	return pkgif.WaitResult{
		Elapsed:  elapsed,
		Args:     wk.args,
		TimedOut: wk.timedOut,
	}
}

// ============================================================================
// 计数与状态
// ============================================================================

// TimesFired 返回事件成功触发的次数
func (e *Event) TimesFired() uint64 {
	return e.timesFired.Load()
}

// TimesFiredWhileDisabled 返回事件在禁用状态下被触发的次数
func (e *Event) TimesFiredWhileDisabled() uint64 {
	return e.timesFiredWhileDisabled.Load()
}

// Field 返回自定义字段
func (e *Event) Field(key string) (any, bool) {
	v, ok := e.fields[key]
	return v, ok
}

// Fields 返回自定义字段的副本
func (e *Event) Fields() map[string]any {
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Mode 返回事件的触发模式
func (e *Event) Mode() Mode {
	if e.policy == nil {
		return ModePlain
	}
	return e.policy.state().Mode
}

// Stats 事件状态快照
type Stats struct {
	Name                    string       `json:"name"`
	Mode                    Mode         `json:"mode"`
	Enabled                 bool         `json:"enabled"`
	TimesFired              uint64       `json:"times_fired"`
	TimesFiredWhileDisabled uint64       `json:"times_fired_while_disabled"`
	Connections             int          `json:"connections"`
	Waiters                 int          `json:"waiters"`
	Policy                  *PolicyState `json:"policy,omitempty"`
}

// Snapshot 返回事件当前状态
func (e *Event) Snapshot() Stats {
	e.mu.Lock()
	conns := len(e.conns)
	e.mu.Unlock()

	s := Stats{
		Name:                    e.name,
		Mode:                    ModePlain,
		Enabled:                 e.IsEnabled(),
		TimesFired:              e.TimesFired(),
		TimesFiredWhileDisabled: e.TimesFiredWhileDisabled(),
		Connections:             conns,
		Waiters:                 e.waiters.len(),
	}
	if e.policy != nil {
		ps := e.policy.state()
		s.Mode = ps.Mode
		s.Policy = &ps
	}
	return s
}

// 确保实现接口
var _ pkgif.Event = (*Event)(nil)
