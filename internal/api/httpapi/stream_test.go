package httpapi

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 流式订阅测试
// ============================================================================

func streamURL(srv *httptest.Server, name string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/events/" + name + "/stream"
}

// TestServer_Stream 测试 WebSocket 推送触发
func TestServer_Stream(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(streamURL(srv, "tap"), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	defer conn.Close()

	e, ok := reg.Get("tap")
	require.True(t, ok)
	require.Eventually(t, func() bool { return e.Snapshot().Connections == 1 }, 2*time.Second, 10*time.Millisecond)

	e.Fire("hello", 1)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "tap", msg.Event)
	assert.Equal(t, uint64(1), msg.Seq)
	assert.Equal(t, []any{"hello", float64(1)}, msg.Args)

	// 客户端断开后订阅被解绑
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return e.Snapshot().Connections == 0 }, 2*time.Second, 10*time.Millisecond)
}

// TestServer_Stream_Rejected 测试未知事件与非 WebSocket 请求
func TestServer_Stream_Rejected(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")

	w := do(t, s.Handler(), http.MethodGet, "/events/nope/stream", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s.Handler(), http.MethodGet, "/events/tap/stream", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	e, _ := reg.Get("tap")
	assert.Zero(t, e.Snapshot().Connections)
}

// TestServer_Stream_Shutdown 测试服务关闭时流式订阅发送关闭帧并解绑
func TestServer_Stream_Shutdown(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := httptest.NewUnstartedServer(s.Handler())
	srv.Config.BaseContext = func(net.Listener) context.Context { return baseCtx }
	srv.Start()
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(streamURL(srv, "tap"), nil)
	require.NoError(t, err)
	defer conn.Close()

	e, _ := reg.Get("tap")
	require.Eventually(t, func() bool { return e.Snapshot().Connections == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	require.Eventually(t, func() bool { return e.Snapshot().Connections == 0 }, 2*time.Second, 10*time.Millisecond)
}

// TestServer_Stream_BrokenConn 测试底层连接断开后写入失败的订阅被解绑
func TestServer_Stream_BrokenConn(t *testing.T) {
	s, reg, _ := newTestServer(t, "tap")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(streamURL(srv, "tap"), nil)
	require.NoError(t, err)

	e, _ := reg.Get("tap")
	require.Eventually(t, func() bool { return e.Snapshot().Connections == 1 }, 2*time.Second, 10*time.Millisecond)

	// 不发送关闭帧，直接断开 TCP
	require.NoError(t, conn.UnderlyingConn().Close())

	require.Eventually(t, func() bool {
		e.Fire("tick")
		return e.Snapshot().Connections == 0
	}, 2*time.Second, 10*time.Millisecond)
}
