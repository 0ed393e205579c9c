package event

import (
	"time"

	coreevent "github.com/dep2p/go-event/internal/core/event"
	"github.com/dep2p/go-event/internal/core/metrics"
	pkgif "github.com/dep2p/go-event/pkg/interfaces"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = coreevent.Version

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "go-event " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Event 事件对象
	Event = coreevent.Event

	// Connection 订阅记录
	Connection = coreevent.Connection

	// Handler 事件处理函数
	Handler = pkgif.Handler

	// WaitResult Wait 的返回结果
	WaitResult = pkgif.WaitResult

	// Stats 事件状态快照
	Stats = coreevent.Stats

	// Mode 触发模式
	Mode = coreevent.Mode

	// Factory 带默认选项的事件构造器
	Factory = coreevent.Factory

	// Registry 具名事件注册表
	Registry = coreevent.Registry

	// Reporter 指标上报接口
	Reporter = metrics.Reporter
)

// 触发模式
const (
	ModePlain    = coreevent.ModePlain
	ModeInterval = coreevent.ModeInterval
	ModeSequence = coreevent.ModeSequence
)

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建普通事件对象
func New(opts ...Option) (*Event, error) {
	return coreevent.New(opts...)
}

// NewInterval 创建固定窗口重复事件
//
// 同一个 interval 窗口内累计 repetitions 次调用才真正触发一次。
func NewInterval(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	return coreevent.NewInterval(repetitions, interval, opts...)
}

// NewIntervalSequence 创建滑动序列事件
//
// 相邻调用间隔不超过 interval，累计 repetitions 次才真正触发一次。
func NewIntervalSequence(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	return coreevent.NewIntervalSequence(repetitions, interval, opts...)
}

// NewFactory 创建带默认选项的 Factory
func NewFactory(defaults ...Option) *Factory {
	return coreevent.NewFactory(defaults...)
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return coreevent.NewRegistry()
}

// NewCounter 创建进程内指标计数器，可通过 WithReporter 传入
func NewCounter() *metrics.Counter {
	return metrics.NewCounter()
}
