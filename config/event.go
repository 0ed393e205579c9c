// Package config 提供统一的配置管理
package config

import (
	"errors"
	"fmt"
	"sort"
)

// EventMode 事件触发模式
type EventMode string

const (
	// ModePlain 每次 Fire 都直接分发
	ModePlain EventMode = "plain"
	// ModeInterval 固定窗口内重复指定次数才分发
	ModeInterval EventMode = "interval"
	// ModeSequence 相邻调用间隔不超过 interval 且累计达到次数才分发
	ModeSequence EventMode = "sequence"
)

var (
	// ErrDuplicateEvent 事件名重复
	ErrDuplicateEvent = errors.New("duplicate event name")

	// ErrReservedField 自定义字段使用了保留名称
	ErrReservedField = errors.New("field name is reserved")
)

// reservedFields 不允许被自定义字段占用的名称
var reservedFields = map[string]struct{}{
	"bind":                    {},
	"unbind":                  {},
	"unbindAll":               {},
	"fire":                    {},
	"wait":                    {},
	"findConnectionByName":    {},
	"enable":                  {},
	"disable":                 {},
	"setEnabled":              {},
	"isEnabled":               {},
	"timesFired":              {},
	"timesFiredWhileDisabled": {},
	"connections":             {},
}

// IsReservedField 返回字段名是否与事件 API 同名
func IsReservedField(key string) bool {
	_, ok := reservedFields[key]
	return ok
}

// CheckFields 检查自定义字段，返回按字典序第一个保留名称对应的错误
func CheckFields(fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if IsReservedField(key) {
			return fmt.Errorf("%w: %q", ErrReservedField, key)
		}
	}
	return nil
}

// EventSpec 单个事件对象的声明
type EventSpec struct {
	// Name 事件名称，在同一配置中唯一
	Name string `json:"name" yaml:"name" toml:"name"`

	// Mode 触发模式：plain / interval / sequence
	// 默认值: plain
	Mode EventMode `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`

	// Repetitions 触发所需的重复次数（interval / sequence 模式，必须大于 1）
	Repetitions int `json:"repetitions,omitempty" yaml:"repetitions,omitempty" toml:"repetitions,omitempty"`

	// Interval 时间窗口（interval / sequence 模式）
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty" toml:"interval,omitempty"`

	// Disabled 创建后是否处于禁用状态
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`

	// Fields 附加到事件对象上的自定义字段
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// EffectiveMode 返回生效的模式，空值视为 plain
func (s *EventSpec) EffectiveMode() EventMode {
	if s.Mode == "" {
		return ModePlain
	}
	return s.Mode
}

// Validate 验证事件声明的有效性
func (s *EventSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("events: name is required")
	}
	if err := CheckFields(s.Fields); err != nil {
		return fmt.Errorf("events[%s]: %w", s.Name, err)
	}
	switch s.EffectiveMode() {
	case ModePlain:
		return nil
	case ModeInterval, ModeSequence:
		if s.Repetitions <= 1 {
			return fmt.Errorf("events[%s]: repetitions must be greater than 1, got %d", s.Name, s.Repetitions)
		}
		if s.Interval <= 0 {
			return fmt.Errorf("events[%s]: interval must be positive, got %s", s.Name, s.Interval)
		}
		return nil
	default:
		return fmt.Errorf("events[%s]: unknown mode %q", s.Name, s.Mode)
	}
}

func duplicateEventError(name string) error {
	return fmt.Errorf("events[%s]: %w", name, ErrDuplicateEvent)
}
