package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dep2p/go-event/config"
	"github.com/dep2p/go-event/pkg/lib/log"
)

// setupLogging 按日志配置设置默认 logger
//
// 配置了 File 时输出到按大小轮转的文件，返回的 Closer 需要在退出时关闭；
// 否则输出到 stderr，返回 nil。
func setupLogging(cfg config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if cfg.File != "" {
		rw, err := log.NewRotatingWriter(log.RotateOptions{
			Filename:   cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		if err != nil {
			return nil, err
		}
		w, closer = rw, rw
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		log.SetDefault(log.NewJSON(w, opts))
	} else {
		log.SetDefault(log.New(w, opts))
	}
	return closer, nil
}
