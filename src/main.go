package main

import (
	"github.com/ProjectsTask/EasySwapAuction/src/cmd"
)

// main 是程序的入口函数
// 当执行 go run main.go daemon 时，会从这里开始执行
func main() {
	// 调用 cmd 包的 Execute 方法，解析命令行参数并执行相应的命令
	cmd.Execute()
}
