package event

import (
	"sync"
	"time"
)

// intervalPolicy 固定窗口重复策略
//
// 第一次调用打开窗口；窗口内累计到 repetitions 次时放行并关闭窗口；
// 窗口过期后的调用作为新窗口的第一次。
type intervalPolicy struct {
	mu sync.Mutex

	repetitions int
	interval    time.Duration

	current     int
	started     bool
	windowStart time.Time
}

func newIntervalPolicy(repetitions int, interval time.Duration) *intervalPolicy {
	return &intervalPolicy{
		repetitions: repetitions,
		interval:    interval,
	}
}

func (p *intervalPolicy) admit(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++

	if !p.started {
		p.started = true
		p.windowStart = now
		return false
	}

	if now.Sub(p.windowStart) > p.interval {
		// 窗口过期，本次调用成为新窗口的第一次
		p.current = 1
		p.windowStart = now
		return false
	}

	if p.current >= p.repetitions {
		p.current = 0
		p.started = false
		return true
	}
	return false
}

func (p *intervalPolicy) state() PolicyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PolicyState{
		Mode:        ModeInterval,
		Repetitions: p.repetitions,
		Interval:    p.interval,
		Current:     p.current,
	}
}
