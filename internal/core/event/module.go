package event

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-event/config"
	"github.com/dep2p/go-event/internal/core/metrics"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	Reporter   metrics.Reporter `optional:"true"`
	Clock      clock.Clock      `optional:"true"`
	UnifiedCfg *config.Config   `optional:"true"`
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideFactory, ProvideRegistry),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideFactory 提供带默认时钟与指标上报器的 Factory
func ProvideFactory(p Params) *Factory {
	return NewFactory(WithClock(p.Clock), WithReporter(p.Reporter))
}

// ProvideRegistry 按统一配置中的事件声明创建注册表
func ProvideRegistry(p Params, f *Factory) (*Registry, error) {
	reg := NewRegistry()
	if p.UnifiedCfg == nil {
		return reg, nil
	}

	for _, spec := range p.UnifiedCfg.Events {
		e, err := f.FromSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(e); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	Registry *Registry
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("事件注册表已就绪", "events", input.Registry.Len())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return input.Registry.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "v0.1.0"
	// Name 模块名称
	Name = "event"
	// Description 模块描述
	Description = "事件对象模块，提供具名订阅、等待与间隔触发策略"
)
