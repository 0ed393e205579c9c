package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// eventCounters 单个事件的原子计数器组
type eventCounters struct {
	dispatched    atomic.Int64
	suppressed    atomic.Int64
	coalesced     atomic.Int64
	invoked       atomic.Int64
	skipped       atomic.Int64
	panicked      atomic.Int64
	waitsFired    atomic.Int64
	waitsTimedOut atomic.Int64
	waitNanos     atomic.Int64

	fireRate *RateMeter
}

// Counter 进程内事件计数器
//
// Counter 按事件名分别计数，使用原子操作实现并发安全。
// 计数器按需创建，首次出现的事件名会分配一组新的计数器。
type Counter struct {
	mu     sync.RWMutex
	clock  clock.Clock
	events map[string]*eventCounters
}

// NewCounter 创建新的 Counter
func NewCounter() *Counter {
	return NewCounterWithClock(clock.New())
}

// NewCounterWithClock 创建使用指定时钟计算触发速率的 Counter
func NewCounterWithClock(clk clock.Clock) *Counter {
	return &Counter{
		clock:  clk,
		events: make(map[string]*eventCounters),
	}
}

// get 获取或创建事件计数器
func (c *Counter) get(event string) *eventCounters {
	c.mu.RLock()
	ec := c.events[event]
	c.mu.RUnlock()
	if ec != nil {
		return ec
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ec = c.events[event]; ec == nil {
		ec = &eventCounters{fireRate: NewRateMeter(c.clock)}
		c.events[event] = ec
	}
	return ec
}

// FireDispatched 记录一次成功分发的触发
func (c *Counter) FireDispatched(event string) {
	ec := c.get(event)
	ec.dispatched.Add(1)
	ec.fireRate.Add(1)
}

// FireSuppressed 记录一次被抑制的触发
func (c *Counter) FireSuppressed(event string) { c.get(event).suppressed.Add(1) }

// FireCoalesced 记录一次被合并的触发
func (c *Counter) FireCoalesced(event string) { c.get(event).coalesced.Add(1) }

// HandlerInvoked 记录一次处理函数调用
func (c *Counter) HandlerInvoked(event string) { c.get(event).invoked.Add(1) }

// HandlerSkipped 记录一次跳过的调用
func (c *Counter) HandlerSkipped(event string) { c.get(event).skipped.Add(1) }

// HandlerPanicked 记录一次处理函数 panic
func (c *Counter) HandlerPanicked(event string) { c.get(event).panicked.Add(1) }

// WaitResolved 记录一次 Wait 完成
func (c *Counter) WaitResolved(event string, elapsed time.Duration, timedOut bool) {
	ec := c.get(event)
	if timedOut {
		ec.waitsTimedOut.Add(1)
	} else {
		ec.waitsFired.Add(1)
	}
	ec.waitNanos.Add(int64(elapsed))
}

// Stats 返回指定事件的指标快照
func (c *Counter) Stats(event string) Stats {
	c.mu.RLock()
	ec := c.events[event]
	c.mu.RUnlock()
	if ec == nil {
		return Stats{}
	}
	return Stats{
		Dispatched:    ec.dispatched.Load(),
		Suppressed:    ec.suppressed.Load(),
		Coalesced:     ec.coalesced.Load(),
		Invoked:       ec.invoked.Load(),
		Skipped:       ec.skipped.Load(),
		Panicked:      ec.panicked.Load(),
		WaitsFired:    ec.waitsFired.Load(),
		WaitsTimedOut: ec.waitsTimedOut.Load(),
		WaitTimeTotal: time.Duration(ec.waitNanos.Load()),
		FireRate:      ec.fireRate.Rate(),
	}
}

// Events 返回所有已记录的事件名
func (c *Counter) Events() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.events))
	for name := range c.events {
		names = append(names, name)
	}
	return names
}

// Reset 重置所有统计
func (c *Counter) Reset() {
	c.mu.Lock()
	c.events = make(map[string]*eventCounters)
	c.mu.Unlock()
}
