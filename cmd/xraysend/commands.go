package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xraykit/pkg/observability/xray"
)

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "custom",
			Usage:     "发送自定义 subsegment",
			ArgsUsage: "<name>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				args := cmd.Args().Slice()
				if len(args) != 1 {
					return &usageError{msg: "custom 需要 1 个参数: <name>"}
				}
				return send(cmd, xray.NewCustomNamespace(args[0]))
			},
		},
		{
			Name:      "remote",
			Usage:     "发送远端调用 subsegment",
			ArgsUsage: "<name> <method> <url>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				args := cmd.Args().Slice()
				if len(args) != 3 {
					return &usageError{msg: "remote 需要 3 个参数: <name> <method> <url>"}
				}
				return send(cmd, xray.NewRemoteNamespace(args[0], args[1], args[2]))
			},
		},
		{
			Name:      "aws",
			Usage:     "发送 AWS 服务操作 subsegment",
			ArgsUsage: "<service> <operation>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				args := cmd.Args().Slice()
				if len(args) != 2 {
					return &usageError{msg: "aws 需要 2 个参数: <service> <operation>"}
				}
				return send(cmd, xray.NewAwsNamespace(args[0], args[1]))
			},
		},
	}
}

// send 构建上下文并完成一次 进入→结束 的完整会话。
//
// 冒烟场景下首次发送失败应当可见，因此不走 Infallible 降级路径，
// 而是把 failed 态报告为错误。
func send(cmd *cli.Command, namespace xray.Namespace) error {
	address := cmd.String("address")
	if address == "" {
		return &usageError{msg: "缺少 daemon 地址（--address 或 $" + xray.DaemonAddressEnv + "）"}
	}
	headerText := cmd.String("header")
	if headerText == "" {
		return &usageError{msg: "缺少追踪头（--header 或 $" + xray.TraceHeaderEnv + "）"}
	}

	client, err := xray.NewDaemonClient(address)
	if err != nil {
		return err
	}
	defer client.Close()

	header, err := xray.ParseHeader(headerText)
	if err != nil {
		return err
	}

	ctx := xray.NewSubsegmentContext(client, header,
		xray.WithNamePrefix(cmd.String("prefix")))

	session := ctx.EnterSubsegment(namespace)
	defer session.Close()

	derived := session.XAmznTraceID()
	if derived == "" {
		return fmt.Errorf("发送失败: daemon %s 不可达", address)
	}
	fmt.Println(derived)
	return nil
}
