package event

import (
	"errors"

	"github.com/dep2p/go-event/config"
)

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrInvalidRepetitions 重复次数必须大于 1
	ErrInvalidRepetitions = errors.New("repetitions must be greater than 1")
	// ErrInvalidInterval 时间窗口必须为正
	ErrInvalidInterval = errors.New("interval must be positive")
	// ErrReservedField 自定义字段使用了保留名称
	ErrReservedField = config.ErrReservedField
	// ErrUnknownMode 未知的触发模式
	ErrUnknownMode = errors.New("unknown event mode")
	// ErrUnnamedEvent 注册表只接受具名事件
	ErrUnnamedEvent = errors.New("event has no name")
	// ErrEventExists 注册表中已存在同名事件
	ErrEventExists = errors.New("event already registered")
)
