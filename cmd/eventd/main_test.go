package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	event "github.com/dep2p/go-event"
	"github.com/dep2p/go-event/config"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestVersionCmd 测试 version 子命令
func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, event.Version)
}

// TestCheckCmd 测试 check 子命令
func TestCheckCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := writeConfig(t, "ok.yaml", `
events:
  - name: tap
    mode: interval
    repetitions: 3
    interval: 1s
  - name: ping
`)
		out, err := execute(t, "check", "--config", p)
		require.NoError(t, err)
		assert.Contains(t, out, "2 个事件")
		assert.Contains(t, out, "tap (interval)")
		assert.Contains(t, out, "ping (plain)")
	})

	t.Run("invalid", func(t *testing.T) {
		p := writeConfig(t, "bad.json", `{"events":[{"name":"x","mode":"sequence","repetitions":1,"interval":"1s"},{"name":"x"}]}`)
		out, err := execute(t, "check", "-c", p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 个问题")
		assert.Contains(t, out, "repetitions must be greater than 1")
	})

	t.Run("reserved field", func(t *testing.T) {
		p := writeConfig(t, "fields.yaml", `
events:
  - name: x
    fields:
      fire: 1
`)
		out, err := execute(t, "check", "--config", p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 个问题")
		assert.Contains(t, out, "field name is reserved")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "check", "--config", filepath.Join(t.TempDir(), "none.toml"))
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		out, err := execute(t, "check")
		require.NoError(t, err)
		assert.Contains(t, out, "0 个事件")
	})
}

// TestServeCmd 测试 serve 在 ctx 结束后优雅退出
func TestServeCmd(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logFile := filepath.Join(t.TempDir(), "eventd.log")
	p := writeConfig(t, "serve.toml", `
[http]
addr = "127.0.0.1:0"
shutdown_timeout = "1s"

[[events]]
name = "tap"
`)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"serve", "--config", p, "--log-file", logFile, "--log-level", "debug"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "eventd 已启动")
	assert.FileExists(t, logFile)
}

// TestSetupLogging 测试日志配置
func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	cfg := config.DefaultLogConfig()
	closer, err := setupLogging(cfg)
	require.NoError(t, err)
	assert.Nil(t, closer)

	cfg.Level = "loud"
	_, err = setupLogging(cfg)
	assert.Error(t, err)

	cfg = config.DefaultLogConfig()
	cfg.Format = "json"
	cfg.File = filepath.Join(t.TempDir(), "x", "eventd.log")
	closer, err = setupLogging(cfg)
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
}
