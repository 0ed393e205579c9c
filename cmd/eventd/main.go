// Package main 提供 eventd 命令行入口
//
// eventd 按配置文件创建事件对象，并通过 HTTP 暴露触发、等待与启用控制。
//
//	eventd serve --config eventd.yaml
//	eventd check --config eventd.yaml
//	eventd version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
