package httpapi

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// streamBuffer 每个流式订阅缓存的触发数，溢出的触发被丢弃
	streamBuffer = 64

	// streamWriteWait 单条消息的写超时
	streamWriteWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// streamMessage 推送给 WebSocket 客户端的一次触发
type streamMessage struct {
	Event string `json:"event"`
	Seq   uint64 `json:"seq"`
	Args  []any  `json:"args"`
}

// handleStream 把 WebSocket 连接绑定为事件的一个具名订阅
//
// 每次触发推送一条 JSON 消息，连接关闭时解绑。处理函数在各自的 goroutine 中
// 运行，跨触发的推送顺序不做保证，Seq 表示推送顺序。
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade 已写入错误响应
		logger.Debug("websocket 升级失败", "event", e.Name(), "err", err)
		return
	}
	defer conn.Close()

	name := "ws:" + uuid.NewString()
	msgs := make(chan []any, streamBuffer)
	var dropped atomic.Uint64

	e.Bind(name, func(args ...any) {
		select {
		case msgs <- args:
		default:
			dropped.Add(1)
		}
	})
	defer e.Unbind(name)

	logger.Info("流式订阅建立", "event", e.Name(), "subscriber", name, "remote", r.RemoteAddr)
	defer func() {
		logger.Info("流式订阅关闭", "event", e.Name(), "subscriber", name, "dropped", dropped.Load())
	}()

	// 客户端不发送数据，读循环只用于感知关闭
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var seq uint64
	for {
		select {
		case args := <-msgs:
			seq++
			if args == nil {
				args = []any{}
			}
			if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
				logger.Debug("websocket 写入失败", "event", e.Name(), "err", err)
				return
			}
			if err := conn.WriteJSON(streamMessage{Event: e.Name(), Seq: seq, Args: args}); err != nil {
				logger.Debug("websocket 写入失败", "event", e.Name(), "err", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(time.Second))
			return
		}
	}
}
