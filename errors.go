package event

import coreevent "github.com/dep2p/go-event/internal/core/event"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 构造错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidRepetitions 重复次数必须大于 1
	ErrInvalidRepetitions = coreevent.ErrInvalidRepetitions

	// ErrInvalidInterval 时间窗口必须为正
	ErrInvalidInterval = coreevent.ErrInvalidInterval

	// ErrReservedField 自定义字段使用了保留名称
	ErrReservedField = coreevent.ErrReservedField

	// ErrUnknownMode 未知的触发模式
	ErrUnknownMode = coreevent.ErrUnknownMode

	// ────────────────────────────────────────────────────────────────────────
	// 注册表错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrUnnamedEvent 注册表只接受具名事件
	ErrUnnamedEvent = coreevent.ErrUnnamedEvent

	// ErrEventExists 注册表中已存在同名事件
	ErrEventExists = coreevent.ErrEventExists
)
