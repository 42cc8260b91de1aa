// basectl 基地模拟的命令行工具：查看属性表、无界面运行模拟、检查基地布局
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
