// Package lib 包含基础设施工具库
//
// 本目录包含与事件语义无关的通用工具库：
//
//   - log: 基于 log/slog 的日志封装，支持按大小轮转的文件输出
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 事件对象的公共接口
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import "github.com/dep2p/go-event/pkg/lib/log"
//
//	var logger = log.Logger("core/event")
package lib
