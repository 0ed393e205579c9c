package metrics

import "time"

// Stats 单个事件的指标快照
//
// Stats 表示某个时间点的累计计数，由 Counter 生成。
type Stats struct {
	Dispatched    int64         // 成功分发的触发数
	Suppressed    int64         // 因事件禁用被抑制的触发数
	Coalesced     int64         // 被间隔策略合并的触发数
	Invoked       int64         // 处理函数调用数
	Skipped       int64         // 因订阅禁用跳过的调用数
	Panicked      int64         // 处理函数 panic 数
	WaitsFired    int64         // 被触发唤醒的 Wait 数
	WaitsTimedOut int64         // 超时的 Wait 数
	WaitTimeTotal time.Duration // Wait 累计耗时
	FireRate      float64       // 最近 60 秒的平均触发速率（次/秒）
}
