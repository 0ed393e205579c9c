package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-event/config"
	coreevent "github.com/dep2p/go-event/internal/core/event"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	Registry     *coreevent.Registry
	PromRegistry *prometheus.Registry `optional:"true"`
	UnifiedCfg   *config.Config       `optional:"true"`
}

// Module 返回 Fx 模块
//
// 启动时监听 config.HTTP.Addr，停止时在 ShutdownTimeout 内优雅关闭。
func Module() fx.Option {
	return fx.Module("httpapi",
		fx.Provide(ProvideServer),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideServer 提供 HTTP 接口
func ProvideServer(p Params) (*Server, error) {
	cfg := config.NewConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg
	}

	sc := Config{
		MaxWait:   cfg.HTTP.MaxWait.Duration(),
		Namespace: cfg.Metrics.Namespace,
	}
	if p.PromRegistry != nil {
		sc.Gatherer = p.PromRegistry
		if cfg.Metrics.Enabled {
			sc.Registerer = p.PromRegistry
		}
	}
	return NewServer(p.Registry, sc)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC         fx.Lifecycle
	Server     *Server
	UnifiedCfg *config.Config `optional:"true"`
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	cfg := config.DefaultHTTPConfig()
	if input.UnifiedCfg != nil {
		cfg = input.UnifiedCfg.HTTP
	}

	// 关闭时取消基础 ctx，使阻塞中的 wait 请求立即返回
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        cfg.Addr,
		Handler:     input.Server.Handler(),
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 同步监听，端口冲突在启动阶段即返回
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				cancelBase()
				return err
			}
			logger.Info("HTTP 接口已启动", "addr", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP 服务异常退出", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if d := cfg.ShutdownTimeout.Duration(); d > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
			logger.Info("HTTP 接口关闭中")
			cancelBase()
			return srv.Shutdown(ctx)
		},
	})
}
