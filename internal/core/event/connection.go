package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	pkgif "github.com/dep2p/go-event/pkg/interfaces"
)

// ============================================================================
// Connection 实现
// ============================================================================

// Connection 订阅记录
//
// 由 Bind 创建，由 Unbind 或同名 Bind 移除。移除后处理函数被清空，
// 不会再被新的 Fire 调用。
type Connection struct {
	toggle

	id   string
	name string

	mu      sync.Mutex
	handler pkgif.Handler

	timesFired              atomic.Uint64
	timesFiredWhileDisabled atomic.Uint64
}

// newConnection 创建订阅记录
func newConnection(name string, handler pkgif.Handler) *Connection {
	return &Connection{
		id:      uuid.NewString(),
		name:    name,
		handler: handler,
	}
}

// Name 返回订阅名称，匿名订阅返回空字符串
func (c *Connection) Name() string {
	return c.name
}

// ID 返回订阅的唯一标识
func (c *Connection) ID() string {
	return c.id
}

// TimesFired 返回该订阅被调用的次数
func (c *Connection) TimesFired() uint64 {
	return c.timesFired.Load()
}

// TimesFiredWhileDisabled 返回该订阅在禁用状态下被跳过的次数
func (c *Connection) TimesFiredWhileDisabled() uint64 {
	return c.timesFiredWhileDisabled.Load()
}

// Bound 返回订阅是否仍持有处理函数
func (c *Connection) Bound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler != nil
}

// loadHandler 读取当前处理函数
func (c *Connection) loadHandler() pkgif.Handler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler
}

// release 清空处理函数引用
func (c *Connection) release() {
	c.mu.Lock()
	c.handler = nil
	c.mu.Unlock()
}

// label 返回用于日志的订阅标识
func (c *Connection) label() string {
	if c.name != "" {
		return c.name
	}
	return c.id
}

// 确保实现接口
var _ pkgif.Connection = (*Connection)(nil)
