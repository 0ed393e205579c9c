package event

import (
	"fmt"
	"time"

	"github.com/dep2p/go-event/config"
)

// ============================================================================
// 构造函数
// ============================================================================

// New 创建普通事件对象，每次 Fire 都直接分发
func New(opts ...Option) (*Event, error) {
	return newEvent(nil, opts)
}

// NewInterval 创建固定窗口重复事件
//
// 只有在同一个 interval 窗口内累计 repetitions 次调用才会真正触发。
// repetitions 必须大于 1，interval 必须为正。
func NewInterval(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	if err := checkPolicyParams(ModeInterval, repetitions, interval); err != nil {
		return nil, err
	}
	return newEvent(newIntervalPolicy(repetitions, interval), opts)
}

// NewIntervalSequence 创建滑动序列事件
//
// 相邻调用间隔不超过 interval 且累计 repetitions 次才会真正触发。
// repetitions 必须大于 1，interval 必须为正。
func NewIntervalSequence(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	if err := checkPolicyParams(ModeSequence, repetitions, interval); err != nil {
		return nil, err
	}
	return newEvent(newSequencePolicy(repetitions, interval), opts)
}

// checkPolicyParams 校验间隔策略参数
func checkPolicyParams(mode Mode, repetitions int, interval time.Duration) error {
	if repetitions <= 1 {
		logger.Warn("重复次数必须大于 1", "mode", mode, "repetitions", repetitions)
		return fmt.Errorf("%w: got %d", ErrInvalidRepetitions, repetitions)
	}
	if interval <= 0 {
		logger.Warn("时间窗口必须为正", "mode", mode, "interval", interval)
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	return nil
}

// ============================================================================
// Factory
// ============================================================================

// Factory 带默认选项的事件构造器
//
// 默认选项（时钟、指标上报器）在每次构造时先于调用方选项应用。
type Factory struct {
	defaults []Option
}

// NewFactory 创建 Factory
func NewFactory(defaults ...Option) *Factory {
	return &Factory{defaults: defaults}
}

func (f *Factory) merge(opts []Option) []Option {
	out := make([]Option, 0, len(f.defaults)+len(opts))
	out = append(out, f.defaults...)
	return append(out, opts...)
}

// New 创建普通事件对象
func (f *Factory) New(opts ...Option) (*Event, error) {
	return New(f.merge(opts)...)
}

// NewInterval 创建固定窗口重复事件
func (f *Factory) NewInterval(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	return NewInterval(repetitions, interval, f.merge(opts)...)
}

// NewIntervalSequence 创建滑动序列事件
func (f *Factory) NewIntervalSequence(repetitions int, interval time.Duration, opts ...Option) (*Event, error) {
	return NewIntervalSequence(repetitions, interval, f.merge(opts)...)
}

// FromSpec 按配置声明创建事件对象
func (f *Factory) FromSpec(spec config.EventSpec) (*Event, error) {
	opts := []Option{WithName(spec.Name)}
	if len(spec.Fields) > 0 {
		opts = append(opts, WithFields(spec.Fields))
	}
	if spec.Disabled {
		opts = append(opts, WithDisabled())
	}

	var (
		e   *Event
		err error
	)
	switch spec.EffectiveMode() {
	case config.ModePlain:
		e, err = f.New(opts...)
	case config.ModeInterval:
		e, err = f.NewInterval(spec.Repetitions, spec.Interval.Duration(), opts...)
	case config.ModeSequence:
		e, err = f.NewIntervalSequence(spec.Repetitions, spec.Interval.Duration(), opts...)
	default:
		return nil, fmt.Errorf("event %q: %w: %s", spec.Name, ErrUnknownMode, spec.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", spec.Name, err)
	}
	return e, nil
}
