package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	event "github.com/dep2p/go-event"
	"github.com/dep2p/go-event/config"
	"github.com/dep2p/go-event/internal/api/httpapi"
	"github.com/dep2p/go-event/pkg/lib/log"
)

var logger = log.Logger("eventd")

// flags 命令行参数
//
// 命令行参数只做运行时覆盖，持久化配置写在配置文件中。
type flags struct {
	configFile string
	addr       string
	logLevel   string
	logFile    string
}

// newRootCmd 构建命令树
func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "eventd",
		Short:         "进程内事件对象的 HTTP 宿主",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "配置文件路径（.yaml/.json/.toml）")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 接口",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), f, cmd.OutOrStdout())
		},
	}
	serve.Flags().StringVar(&f.addr, "addr", "", "监听地址，覆盖配置文件中的 http.addr")
	serve.Flags().StringVar(&f.logLevel, "log-level", "", "日志级别: debug|info|warn|error")
	serve.Flags().StringVar(&f.logFile, "log-file", "", "日志文件路径，覆盖配置文件中的 log.file")

	check := &cobra.Command{
		Use:   "check",
		Short: "验证配置文件",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(f, cmd.OutOrStdout())
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), event.VersionInfo())
		},
	}

	root.AddCommand(serve, check, version)
	return root
}

// loadConfig 加载配置文件，未指定时使用默认配置
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}
	return cfg, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// check
// ═══════════════════════════════════════════════════════════════════════════

func runCheck(f *flags, out io.Writer) error {
	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		problems := config.Problems(err)
		for _, p := range problems {
			fmt.Fprintf(out, "  ✗ %v\n", p)
		}
		return fmt.Errorf("配置无效: %d 个问题", len(problems))
	}

	fmt.Fprintf(out, "✓ 配置有效，声明了 %d 个事件\n", len(cfg.Events))
	for _, spec := range cfg.Events {
		fmt.Fprintf(out, "  - %s (%s)\n", spec.Name, spec.EffectiveMode())
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// serve
// ═══════════════════════════════════════════════════════════════════════════

func runServe(ctx context.Context, f *flags, out io.Writer) error {
	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return err
	}

	// 命令行覆盖
	if f.addr != "" {
		cfg.HTTP.Addr = f.addr
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}

	closer, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	app, err := event.NewApp(cfg, httpapi.Module())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📦 %s\n", event.VersionInfo())
	logger.Info("启动 eventd", "version", event.Version, "addr", cfg.HTTP.Addr, "events", len(cfg.Events))

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	fmt.Fprintf(out, "eventd 已启动，监听 %s，按 Ctrl+C 退出\n", cfg.HTTP.Addr)
	waitForSignal(ctx)

	fmt.Fprintln(out, "\n正在关闭 eventd...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration()+5*time.Second)
	defer stopCancel()
	return app.Stop(stopCtx)
}

// waitForSignal 等待退出信号或 ctx 结束
func waitForSignal(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
