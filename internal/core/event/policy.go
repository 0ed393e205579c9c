package event

import "time"

// Mode 触发模式
type Mode string

const (
	// ModePlain 每次 Fire 都直接分发
	ModePlain Mode = "plain"
	// ModeInterval 固定窗口重复
	ModeInterval Mode = "interval"
	// ModeSequence 滑动序列
	ModeSequence Mode = "sequence"
)

// firePolicy 触发策略
//
// Fire 在进入事件核心之前先询问策略；admit 返回 false 时本次调用被吞掉。
type firePolicy interface {
	// admit 记录一次调用并判断是否放行
	admit(now time.Time) bool

	// state 返回策略当前状态
	state() PolicyState
}

// PolicyState 策略状态快照
type PolicyState struct {
	Mode        Mode          `json:"mode"`
	Repetitions int           `json:"repetitions"`
	Interval    time.Duration `json:"interval"`
	Current     int           `json:"current"`
}
