// Package httpapi 通过 HTTP 暴露事件注册表
//
// 路由：
//   - GET  /events                 列出全部事件的状态
//   - GET  /events/{name}          单个事件的状态与订阅列表
//   - POST /events/{name}/fire     触发事件，body 为 {"args": [...]}（可选）
//   - GET  /events/{name}/wait     等待下一次触发，?timeout=5s
//   - GET  /events/{name}/stream   WebSocket，每次触发推送一条消息
//   - POST /events/{name}/enable   启用事件
//   - POST /events/{name}/disable  禁用事件
//   - GET  /healthz                存活检查
//   - GET  /metrics                Prometheus 指标
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coreevent "github.com/dep2p/go-event/internal/core/event"
	"github.com/dep2p/go-event/pkg/lib/log"
)

var logger = log.Logger("api/http")

// maxBodyBytes fire 请求体的最大字节数
const maxBodyBytes int64 = 1 << 20

// Config 服务配置
type Config struct {
	// MaxWait wait 请求允许的最长超时，未指定 timeout 时也使用此值
	MaxWait time.Duration

	// Namespace HTTP 指标名前缀
	Namespace string

	// Registerer 注册 HTTP 指标，为 nil 时不记录
	Registerer prometheus.Registerer

	// Gatherer /metrics 的数据来源，为 nil 时使用 prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Server HTTP 接口
type Server struct {
	registry *coreevent.Registry
	cfg      Config
	metrics  *httpMetrics
	router   chi.Router
}

// NewServer 创建 HTTP 接口
func NewServer(registry *coreevent.Registry, cfg Config) (*Server, error) {
	if registry == nil {
		return nil, errors.New("httpapi: registry is required")
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{registry: registry, cfg: cfg}
	if cfg.Registerer != nil {
		m, err := newHTTPMetrics(cfg.Namespace, cfg.Registerer)
		if err != nil {
			return nil, err
		}
		s.metrics = m
	}
	s.router = s.routes()
	return s, nil
}

// Handler 返回路由
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/fire", s.handleFire)
			r.Get("/wait", s.handleWait)
			r.Get("/stream", s.handleStream)
			r.Post("/enable", s.handleToggle(true))
			r.Post("/disable", s.handleToggle(false))
		})
	})
	return r
}

// ============================================================================
// 响应结构
// ============================================================================

type connectionView struct {
	Name                    string `json:"name,omitempty"`
	ID                      string `json:"id"`
	Enabled                 bool   `json:"enabled"`
	TimesFired              uint64 `json:"times_fired"`
	TimesFiredWhileDisabled uint64 `json:"times_fired_while_disabled"`
}

type eventView struct {
	coreevent.Stats
	Fields      map[string]any   `json:"fields,omitempty"`
	Subscribers []connectionView `json:"subscribers"`
}

type fireRequest struct {
	Args []any `json:"args"`
}

type fireResponse struct {
	Event      string `json:"event"`
	TimesFired uint64 `json:"times_fired"`
}

type waitResponse struct {
	Event     string `json:"event"`
	Elapsed   string `json:"elapsed"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Args      []any  `json:"args"`
	TimedOut  bool   `json:"timed_out"`
}

// ============================================================================
// 处理函数
// ============================================================================

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	names := s.registry.Names()
	out := make([]coreevent.Stats, 0, len(names))
	for _, name := range names {
		if e, ok := s.registry.Get(name); ok {
			out = append(out, e.Snapshot())
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conns := e.Connections()
	view := eventView{
		Stats:       e.Snapshot(),
		Fields:      e.Fields(),
		Subscribers: make([]connectionView, 0, len(conns)),
	}
	for _, c := range conns {
		view.Subscribers = append(view.Subscribers, connectionView{
			Name:                    c.Name(),
			ID:                      c.ID(),
			Enabled:                 c.IsEnabled(),
			TimesFired:              c.TimesFired(),
			TimesFiredWhileDisabled: c.TimesFiredWhileDisabled(),
		})
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req fireRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	e.Fire(req.Args...)
	writeJSON(w, http.StatusAccepted, fireResponse{Event: e.Name(), TimesFired: e.TimesFired()})
}

func (s *Server) handleWait(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}

	timeout := s.cfg.MaxWait
	if v := r.URL.Query().Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeJSONError(w, http.StatusBadRequest, "timeout must be a positive duration")
			return
		}
		timeout = min(d, s.cfg.MaxWait)
	}

	res, err := e.Wait(r.Context(), timeout)
	if err != nil {
		// 客户端断开
		logger.Debug("wait 请求取消", "event", e.Name(), "err", err)
		return
	}

	args := res.Args
	if args == nil {
		args = []any{}
	}
	writeJSON(w, http.StatusOK, waitResponse{
		Event:     e.Name(),
		Elapsed:   res.Elapsed.String(),
		ElapsedMS: res.Elapsed.Milliseconds(),
		Args:      args,
		TimedOut:  res.TimedOut,
	})
}

func (s *Server) handleToggle(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := s.lookup(w, r)
		if !ok {
			return
		}
		e.SetEnabled(enabled)
		logger.Info("事件状态变更", "event", e.Name(), "enabled", enabled)
		writeJSON(w, http.StatusOK, e.Snapshot())
	}
}

// lookup 按路径参数查找事件，未找到时写入 404
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*coreevent.Event, bool) {
	name := chi.URLParam(r, "name")
	e, ok := s.registry.Get(name)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "event not found: "+name)
		return nil, false
	}
	return e, true
}
