package event

import (
	"fmt"
	"slices"
	"sync"
)

// Registry 具名事件注册表
//
// 宿主进程按名称查找事件对象，Names 按注册顺序返回。
type Registry struct {
	mu     sync.RWMutex
	events map[string]*Event
	order  []string
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		events: make(map[string]*Event),
	}
}

// Register 注册事件对象
func (r *Registry) Register(e *Event) error {
	if e == nil || e.Name() == "" {
		return ErrUnnamedEvent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[e.name]; exists {
		return fmt.Errorf("%w: %s", ErrEventExists, e.name)
	}
	r.events[e.name] = e
	r.order = append(r.order, e.name)

	logger.Debug("注册事件", "event", e.name, "mode", e.Mode())
	return nil
}

// Get 按名称查找事件对象
func (r *Registry) Get(name string) (*Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[name]
	return e, ok
}

// Remove 移除事件对象并解绑其全部订阅
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	e, ok := r.events[name]
	if ok {
		delete(r.events, name)
		r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	}
	r.mu.Unlock()

	if ok {
		e.UnbindAll()
	}
	return ok
}

// Names 按注册顺序返回全部事件名称
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len 返回已注册的事件数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Close 解绑全部事件的订阅
func (r *Registry) Close() error {
	r.mu.RLock()
	events := make([]*Event, 0, len(r.order))
	for _, name := range r.order {
		events = append(events, r.events[name])
	}
	r.mu.RUnlock()

	for _, e := range events {
		e.UnbindAll()
	}
	return nil
}
