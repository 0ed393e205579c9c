package event

import (
	"sync"
	"sync/atomic"
)

// wake 等待者被唤醒时收到的内容
type wake struct {
	args     []any
	timedOut bool
}

// waiter 单个阻塞等待者
//
// resolved 是一次性闩锁：触发唤醒、超时唤醒、ctx 取消三者中
// 只有第一个成功置位的一方生效。
type waiter struct {
	resolved atomic.Bool
	ch       chan wake
}

func newWaiter() *waiter {
	return &waiter{ch: make(chan wake, 1)}
}

// resolve 置位闩锁并投递唤醒内容，已被其他来源唤醒时返回 false
func (w *waiter) resolve(wk wake) bool {
	if !w.resolved.CompareAndSwap(false, true) {
		return false
	}
	w.ch <- wk
	return true
}

// claim 只置位闩锁不投递，用于 ctx 取消
func (w *waiter) claim() bool {
	return w.resolved.CompareAndSwap(false, true)
}

// waiterSet 一次性广播：每次 broadcast 唤醒当前全部等待者并清空集合
type waiterSet struct {
	mu      sync.Mutex
	waiters map[*waiter]struct{}
}

func (s *waiterSet) add(w *waiter) {
	s.mu.Lock()
	if s.waiters == nil {
		s.waiters = make(map[*waiter]struct{})
	}
	s.waiters[w] = struct{}{}
	s.mu.Unlock()
}

func (s *waiterSet) remove(w *waiter) {
	s.mu.Lock()
	delete(s.waiters, w)
	s.mu.Unlock()
}

func (s *waiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiters)
}

// broadcast 唤醒当前全部等待者，返回实际被唤醒的数量
func (s *waiterSet) broadcast(args []any) int {
	s.mu.Lock()
	current := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	woken := 0
	for w := range current {
		if w.resolve(wake{args: cloneArgs(args)}) {
			woken++
		}
	}
	return woken
}

// cloneArgs 复制参数切片，空参数返回 nil
func cloneArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	copy(out, args)
	return out
}
