// xraysend 是 X-Ray daemon 的冒烟测试工具。
//
// 向指定 daemon 地址发送一条一次性 subsegment（进入 + 结束两个数据报），
// 用于验证 daemon/collector 链路是否打通。
//
// 用法:
//
//	xraysend [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-a, --address  daemon 地址 host:port (默认: $AWS_XRAY_DAEMON_ADDRESS)
//	-H, --header   追踪头文本 (默认: $_X_AMZN_TRACE_ID)
//	-p, --prefix   custom subsegment 的名称前缀
//
// 命令:
//
//	custom <name>                   发送自定义 subsegment
//	remote <name> <method> <url>    发送远端调用 subsegment
//	aws <service> <operation>       发送 AWS 服务操作 subsegment
//
// 退出码:
//
//	0: 发送成功
//	1: 发送失败（daemon 不可达、地址或追踪头无效）
//	2: 参数错误（缺少必需参数、未知命令等）
//
// 示例:
//
//	xraysend -a 127.0.0.1:2000 -H "Root=1-65dfb5a1-0123456789abcdef01234567" custom smoke-test
//	xraysend remote example.com GET https://example.com/
//	xraysend aws S3 GetObject
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xraykit/pkg/observability/xray"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xraysend",
		Usage:   "X-Ray daemon 冒烟测试工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "daemon 地址 host:port",
				Sources: cli.EnvVars(xray.DaemonAddressEnv),
			},
			&cli.StringFlag{
				Name:    "header",
				Aliases: []string{"H"},
				Usage:   "追踪头文本（Root=...;Parent=...;Sampled=...）",
				Sources: cli.EnvVars(xray.TraceHeaderEnv),
			},
			&cli.StringFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "custom subsegment 的名称前缀",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
	}
}

func run() int {
	app := createApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
