package event

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-event/config"
	coreevent "github.com/dep2p/go-event/internal/core/event"
	"github.com/dep2p/go-event/internal/core/metrics"
	"github.com/dep2p/go-event/pkg/lib/log"
)

var fxLogger = log.Logger("event/fx")

// Module 返回事件与指标的 Fx 模块
//
// 提供 *Factory、*Registry 与 Reporter。*config.Config 可选，
// 存在时按其中的事件声明填充 Registry。
func Module() fx.Option {
	return fx.Options(
		metrics.Module,
		coreevent.Module(),
	)
}

// NewApp 按统一配置构建 Fx 应用
//
// 加载顺序：
//  1. 配置验证（前置）
//  2. 配置注入
//  3. 指标模块、事件模块
//  4. 调用方的扩展选项（例如 HTTP 接口）
func NewApp(cfg *config.Config, extra ...fx.Option) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg),
		Module(),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 扩展模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, extra...)

	// ════════════════════════════════════════════════════════════════════════
	// 4. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	fxLogger.Debug("Fx 应用已构建", "events", len(cfg.Events), "extra", len(extra))
	return app, nil
}
