package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-event/config"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试模块加载
func TestModule_Load(t *testing.T) {
	var reporter Reporter

	app := fxtest.New(t,
		Module,
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	_, ok := reporter.(*PrometheusReporter)
	assert.True(t, ok, "默认应提供 PrometheusReporter, got %T", reporter)
}

// TestModule_Disabled 测试禁用指标时提供 Nop
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var reporter Reporter
	app := fxtest.New(t,
		Module,
		fx.Supply(cfg),
		fx.Populate(&reporter),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, Nop{}, reporter)
}

// TestConfigFromUnified 测试统一配置转换
func TestConfigFromUnified(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigFromUnified(nil))

	cfg := config.NewConfig()
	cfg.Metrics.Namespace = "custom"
	assert.Equal(t, "custom", ConfigFromUnified(cfg).Namespace)
}
