package event

import (
	"sync"
	"time"
)

// sequencePolicy 滑动序列策略
//
// 与上一次调用的间隔不超过 interval 时累加，否则从 1 重新计数；
// 累计到 repetitions 次时放行并清空进度。
type sequencePolicy struct {
	mu sync.Mutex

	repetitions int
	interval    time.Duration

	current   int
	hasLast   bool
	lastFired time.Time
}

func newSequencePolicy(repetitions int, interval time.Duration) *sequencePolicy {
	return &sequencePolicy{
		repetitions: repetitions,
		interval:    interval,
	}
}

func (p *sequencePolicy) admit(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hasLast && now.Sub(p.lastFired) <= p.interval {
		p.current++
	} else {
		p.current = 1
	}

	if p.current >= p.repetitions {
		p.current = 0
		p.hasLast = false
		p.lastFired = time.Time{}
		return true
	}

	p.lastFired = now
	p.hasLast = true
	return false
}

func (p *sequencePolicy) state() PolicyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PolicyState{
		Mode:        ModeSequence,
		Repetitions: p.repetitions,
		Interval:    p.interval,
		Current:     p.current,
	}
}
