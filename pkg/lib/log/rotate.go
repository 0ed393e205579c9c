package log

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateOptions 日志轮转配置
type RotateOptions struct {
	// Filename 日志文件路径
	Filename string
	// MaxSizeMB 单个文件最大大小（MB）
	MaxSizeMB int
	// MaxBackups 保留的旧文件数
	MaxBackups int
	// MaxAgeDays 旧文件保留天数
	MaxAgeDays int
	// Compress 是否压缩轮转后的文件
	Compress bool
}

// NewRotatingWriter 创建按大小轮转的日志 Writer
//
// 返回的 Writer 同时实现 io.Closer，调用方负责在退出时关闭。
func NewRotatingWriter(opts RotateOptions) (io.WriteCloser, error) {
	if dir := filepath.Dir(opts.Filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}, nil
}
