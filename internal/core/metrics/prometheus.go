package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusReporter 将事件指标导出为 Prometheus 指标
//
// 导出的指标（<ns> 为命名空间）：
//   - <ns>_event_fires_total{event,result}          result = dispatched|suppressed|coalesced
//   - <ns>_event_handler_calls_total{event,result}  result = invoked|skipped|panicked
//   - <ns>_event_wait_duration_seconds{event,outcome} outcome = fired|timeout
type PrometheusReporter struct {
	fires    *prometheus.CounterVec
	handlers *prometheus.CounterVec
	waits    *prometheus.HistogramVec
}

// NewPrometheusReporter 创建并注册 Prometheus 指标
//
// reg 为 nil 时使用 prometheus.DefaultRegisterer。
// 如果同名指标已注册，复用已注册的收集器。
func NewPrometheusReporter(namespace string, reg prometheus.Registerer) (*PrometheusReporter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &PrometheusReporter{
		fires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "event",
				Name:      "fires_total",
				Help:      "Total number of fire calls by outcome",
			},
			[]string{"event", "result"},
		),
		handlers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "event",
				Name:      "handler_calls_total",
				Help:      "Total number of subscription handler calls by outcome",
			},
			[]string{"event", "result"},
		),
		waits: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "event",
				Name:      "wait_duration_seconds",
				Help:      "Time spent blocked in Wait",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"event", "outcome"},
		),
	}

	var err error
	if r.fires, err = registerCounterVec(reg, r.fires); err != nil {
		return nil, err
	}
	if r.handlers, err = registerCounterVec(reg, r.handlers); err != nil {
		return nil, err
	}
	if err = reg.Register(r.waits); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("register wait histogram: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, fmt.Errorf("register wait histogram: %w", err)
		}
		r.waits = existing
	}
	return r, nil
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register counter: %w", err)
	}
	return cv, nil
}

// FireDispatched 记录一次成功分发的触发
func (r *PrometheusReporter) FireDispatched(event string) {
	r.fires.WithLabelValues(event, "dispatched").Inc()
}

// FireSuppressed 记录一次被抑制的触发
func (r *PrometheusReporter) FireSuppressed(event string) {
	r.fires.WithLabelValues(event, "suppressed").Inc()
}

// FireCoalesced 记录一次被合并的触发
func (r *PrometheusReporter) FireCoalesced(event string) {
	r.fires.WithLabelValues(event, "coalesced").Inc()
}

// HandlerInvoked 记录一次处理函数调用
func (r *PrometheusReporter) HandlerInvoked(event string) {
	r.handlers.WithLabelValues(event, "invoked").Inc()
}

// HandlerSkipped 记录一次跳过的调用
func (r *PrometheusReporter) HandlerSkipped(event string) {
	r.handlers.WithLabelValues(event, "skipped").Inc()
}

// HandlerPanicked 记录一次处理函数 panic
func (r *PrometheusReporter) HandlerPanicked(event string) {
	r.handlers.WithLabelValues(event, "panicked").Inc()
}

// WaitResolved 记录一次 Wait 完成
func (r *PrometheusReporter) WaitResolved(event string, elapsed time.Duration, timedOut bool) {
	outcome := "fired"
	if timedOut {
		outcome = "timeout"
	}
	r.waits.WithLabelValues(event, outcome).Observe(elapsed.Seconds())
}
