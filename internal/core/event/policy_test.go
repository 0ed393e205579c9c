package event

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-event/internal/core/metrics"
)

// ============================================================================
// 固定窗口策略测试
// ============================================================================

// TestIntervalPolicy_Admit 测试固定窗口的状态迁移
func TestIntervalPolicy_Admit(t *testing.T) {
	p := newIntervalPolicy(3, time.Second)
	t0 := time.Unix(1000, 0)

	assert.False(t, p.admit(t0), "第一次调用只打开窗口")
	assert.False(t, p.admit(t0.Add(300*time.Millisecond)))
	assert.True(t, p.admit(t0.Add(600*time.Millisecond)))
	assert.Equal(t, 0, p.state().Current)

	// 过期窗口重新计数
	assert.False(t, p.admit(t0.Add(2*time.Second)))
	assert.False(t, p.admit(t0.Add(4*time.Second)))
	assert.Equal(t, 1, p.state().Current)
}

// TestEvent_Interval_ThreeInWindow 测试窗口内 3 次调用触发一次
func TestEvent_Interval_ThreeInWindow(t *testing.T) {
	mock := clock.NewMock()
	counter := metrics.NewCounter()
	e, err := NewInterval(3, time.Second, WithName("triple"), WithClock(mock), WithReporter(counter))
	require.NoError(t, err)

	var rec recorder
	e.Bind("h", rec.handler())

	e.Fire("a")
	mock.Add(200 * time.Millisecond)
	e.Fire("b")
	mock.Add(200 * time.Millisecond)
	assert.Zero(t, e.TimesFired())

	e.Fire("c")
	assert.Equal(t, uint64(1), e.TimesFired())
	require.Eventually(t, func() bool { return rec.count() == 1 }, eventuallyWait, eventuallyTick)
	assert.Equal(t, []any{"c"}, rec.last(), "放行的调用携带自己的参数")

	// 窗口内第 4 次调用不会额外触发
	mock.Add(100 * time.Millisecond)
	e.Fire("d")
	assert.Equal(t, uint64(1), e.TimesFired())
	assert.Equal(t, int64(3), counter.Stats("triple").Coalesced)
}

// TestEvent_Interval_GapResets 测试间隔超过窗口时从 1 重新计数
func TestEvent_Interval_GapResets(t *testing.T) {
	mock := clock.NewMock()
	e, err := NewInterval(3, time.Second, WithClock(mock))
	require.NoError(t, err)

	e.Fire()
	mock.Add(200 * time.Millisecond)
	e.Fire()
	mock.Add(1500 * time.Millisecond)

	e.Fire()
	assert.Equal(t, 1, e.Snapshot().Policy.Current)
	e.Fire()
	assert.Zero(t, e.TimesFired())
	e.Fire()
	assert.Equal(t, uint64(1), e.TimesFired())
}

// TestEvent_Interval_Disabled 测试策略放行后仍受事件禁用状态约束
func TestEvent_Interval_Disabled(t *testing.T) {
	mock := clock.NewMock()
	e, err := NewInterval(2, time.Second, WithClock(mock), WithDisabled())
	require.NoError(t, err)

	e.Fire()
	e.Fire()
	assert.Zero(t, e.TimesFired())
	assert.Equal(t, uint64(1), e.TimesFiredWhileDisabled())
}

// ============================================================================
// 滑动序列策略测试
// ============================================================================

// TestSequencePolicy_Admit 测试滑动序列的状态迁移
func TestSequencePolicy_Admit(t *testing.T) {
	p := newSequencePolicy(3, 300*time.Millisecond)
	t0 := time.Unix(1000, 0)

	assert.False(t, p.admit(t0))
	assert.False(t, p.admit(t0.Add(250*time.Millisecond)))
	// 不以窗口起点计时，只看与上一次调用的间隔
	assert.True(t, p.admit(t0.Add(500*time.Millisecond)))

	s := p.state()
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, ModeSequence, s.Mode)
	assert.False(t, p.hasLast)
}

// TestEvent_Sequence_CloseCalls 测试间隔 0.1s 的两次调用触发一次
func TestEvent_Sequence_CloseCalls(t *testing.T) {
	mock := clock.NewMock()
	e, err := NewIntervalSequence(2, 300*time.Millisecond, WithClock(mock))
	require.NoError(t, err)

	var rec recorder
	e.Bind("h", rec.handler())

	e.Fire(1)
	mock.Add(100 * time.Millisecond)
	e.Fire(2)

	assert.Equal(t, uint64(1), e.TimesFired())
	require.Eventually(t, func() bool { return rec.count() == 1 }, eventuallyWait, eventuallyTick)
	assert.Equal(t, []any{2}, rec.last())
}

// TestEvent_Sequence_SlowCalls 测试间隔 0.5s 的调用永远不触发
func TestEvent_Sequence_SlowCalls(t *testing.T) {
	mock := clock.NewMock()
	e, err := NewIntervalSequence(2, 300*time.Millisecond, WithClock(mock))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		e.Fire(i)
		assert.Equal(t, 1, e.Snapshot().Policy.Current)
		mock.Add(500 * time.Millisecond)
	}
	assert.Zero(t, e.TimesFired())
}

// TestEvent_Sequence_WakesWaiter 测试策略放行的触发唤醒等待者
func TestEvent_Sequence_WakesWaiter(t *testing.T) {
	mock := clock.NewMock()
	e, err := NewIntervalSequence(2, 300*time.Millisecond, WithClock(mock))
	require.NoError(t, err)

	ch := startWait(t, e, context.Background(), 0, 0)
	e.Fire("first")
	assert.Equal(t, 1, e.waiters.len(), "被吞掉的调用不唤醒等待者")

	mock.Add(100 * time.Millisecond)
	e.Fire("second")

	o := receive(t, ch)
	require.NoError(t, o.err)
	assert.Equal(t, []any{"second"}, o.res.Args)
}
