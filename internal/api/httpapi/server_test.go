package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-event/config"
	coreevent "github.com/dep2p/go-event/internal/core/event"
	"github.com/dep2p/go-event/internal/core/metrics"
)

func newTestServer(t *testing.T, names ...string) (*Server, *coreevent.Registry, *prometheus.Registry) {
	t.Helper()
	reg := coreevent.NewRegistry()
	for _, name := range names {
		e, err := coreevent.New(coreevent.WithName(name))
		require.NoError(t, err)
		require.NoError(t, reg.Register(e))
	}

	prom := prometheus.NewRegistry()
	s, err := NewServer(reg, Config{
		MaxWait:    time.Second,
		Namespace:  "test",
		Registerer: prom,
		Gatherer:   prom,
	})
	require.NoError(t, err)
	return s, reg, prom
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ============================================================================
// 路由测试
// ============================================================================

// TestServer_Healthz 测试存活检查
func TestServer_Healthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	w := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

// TestServer_List 测试事件列表
func TestServer_List(t *testing.T) {
	s, _, _ := newTestServer(t, "b", "a")

	w := do(t, s.Handler(), http.MethodGet, "/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body struct {
		Events []coreevent.Stats `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 2)
	assert.Equal(t, "b", body.Events[0].Name)
	assert.Equal(t, "a", body.Events[1].Name)
}

// TestServer_Get 测试单个事件详情
func TestServer_Get(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	e, _ := reg.Get("tap")
	e.Bind("ui", func(...any) {})

	w := do(t, s.Handler(), http.MethodGet, "/events/tap", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view eventView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "tap", view.Name)
	assert.True(t, view.Enabled)
	require.Len(t, view.Subscribers, 1)
	assert.Equal(t, "ui", view.Subscribers[0].Name)
}

// TestServer_NotFound 测试未知事件返回 404
func TestServer_NotFound(t *testing.T) {
	s, _, _ := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/events/missing"},
		{http.MethodPost, "/events/missing/fire"},
		{http.MethodGet, "/events/missing/wait"},
		{http.MethodPost, "/events/missing/enable"},
	} {
		w := do(t, s.Handler(), tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)

		var body errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, body.Code)
		assert.Contains(t, body.Error, "missing")
	}
}

// TestServer_Fire 测试触发
func TestServer_Fire(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	e, _ := reg.Get("tap")

	got := make(chan []any, 1)
	e.Bind("h", func(args ...any) { got <- args })

	w := do(t, s.Handler(), http.MethodPost, "/events/tap/fire", `{"args":["x",2]}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp fireResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.TimesFired)

	select {
	case args := <-got:
		assert.Equal(t, []any{"x", float64(2)}, args)
	case <-time.After(2 * time.Second):
		t.Fatal("处理函数未被调用")
	}

	// 空 body 也可以触发
	w = do(t, s.Handler(), http.MethodPost, "/events/tap/fire", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, uint64(2), e.TimesFired())

	w = do(t, s.Handler(), http.MethodPost, "/events/tap/fire", `{"args":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestServer_Wait_Timeout 测试 wait 超时
func TestServer_Wait_Timeout(t *testing.T) {
	s, _, _ := newTestServer(t, "tap")

	w := do(t, s.Handler(), http.MethodGet, "/events/tap/wait?timeout=20ms", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp waitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.TimedOut)
	assert.Empty(t, resp.Args)
}

// TestServer_Wait_Fired 测试 wait 收到触发参数
func TestServer_Wait_Fired(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	e, _ := reg.Get("tap")

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, s.Handler(), http.MethodGet, "/events/tap/wait?timeout=1s", "")
	}()

	require.Eventually(t, func() bool { return e.Snapshot().Waiters == 1 }, 2*time.Second, 5*time.Millisecond)
	e.Fire("hello")

	var w *httptest.ResponseRecorder
	select {
	case w = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("wait 请求未返回")
	}
	require.Equal(t, http.StatusOK, w.Code)

	var resp waitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.TimedOut)
	assert.Equal(t, []any{"hello"}, resp.Args)
}

// TestServer_Wait_BadTimeout 测试非法 timeout
func TestServer_Wait_BadTimeout(t *testing.T) {
	s, _, _ := newTestServer(t, "tap")

	for _, v := range []string{"soon", "-1s", "0s"} {
		w := do(t, s.Handler(), http.MethodGet, "/events/tap/wait?timeout="+v, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, v)
	}
}

// TestServer_Toggle 测试启用与禁用
func TestServer_Toggle(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	e, _ := reg.Get("tap")

	w := do(t, s.Handler(), http.MethodPost, "/events/tap/disable", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, e.IsEnabled())

	do(t, s.Handler(), http.MethodPost, "/events/tap/fire", "")
	assert.Equal(t, uint64(1), e.TimesFiredWhileDisabled())

	w = do(t, s.Handler(), http.MethodPost, "/events/tap/enable", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, e.IsEnabled())

	var stats coreevent.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.Enabled)
}

// ============================================================================
// 指标测试
// ============================================================================

// TestServer_Metrics 测试请求指标与 /metrics 输出
func TestServer_Metrics(t *testing.T) {
	s, _, prom := newTestServer(t, "tap")

	do(t, s.Handler(), http.MethodPost, "/events/tap/fire", "")
	do(t, s.Handler(), http.MethodPost, "/events/tap/fire", "")

	count := testutil.ToFloat64(s.metrics.requests.WithLabelValues("/events/{name}/fire", http.MethodPost, "202"))
	assert.Equal(t, float64(2), count)

	w := do(t, s.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")

	// 同一 Registerer 上再创建 Server 复用已注册的收集器
	_, err := NewServer(coreevent.NewRegistry(), Config{Namespace: "test", Registerer: prom, Gatherer: prom})
	assert.NoError(t, err)
}

// TestNewServer_NilRegistry 测试缺少注册表
func TestNewServer_NilRegistry(t *testing.T) {
	_, err := NewServer(nil, Config{})
	assert.Error(t, err)
}

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Lifecycle 测试模块启动与关闭
func TestModule_Lifecycle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Events = []config.EventSpec{{Name: "tap"}}

	var srv *Server
	app := fxtest.New(t,
		fx.Supply(cfg),
		metrics.Module,
		coreevent.Module(),
		Module(),
		fx.Populate(&srv),
	)
	app.RequireStart()

	w := do(t, srv.Handler(), http.MethodGet, "/events/tap", "")
	assert.Equal(t, http.StatusOK, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Stop(ctx))
}
