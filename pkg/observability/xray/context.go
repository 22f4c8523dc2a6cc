package xray

import (
	"fmt"
	"log/slog"
	"os"
)

// TraceHeaderEnv 入站追踪头的环境变量名（Lambda 运行时注入）。
const TraceHeaderEnv = "_X_AMZN_TRACE_ID"

// Context 追踪上下文，会话的工厂。
type Context interface {
	// EnterSubsegment 进入一个新的 subsegment。
	//
	// 返回的会话在 Close 时结束并上报该 subsegment，调用方应
	// defer session.Close()。
	EnterSubsegment(namespace Namespace) *SubsegmentSession
}

// HeaderFromEnv 读取并解析当前进程的入站追踪头。
//
// 要求 _X_AMZN_TRACE_ID 已设置；缺失返回 ErrMissingTraceHeader，
// 解析失败返回包装了 ErrInvalidTraceHeader 的错误。
func HeaderFromEnv() (Header, error) {
	value := os.Getenv(TraceHeaderEnv)
	if value == "" {
		return Header{}, ErrMissingTraceHeader
	}
	header, err := ParseHeader(value)
	if err != nil {
		return Header{}, fmt.Errorf("parse %s: %w", TraceHeaderEnv, err)
	}
	return header, nil
}

// =============================================================================
// SubsegmentContext
// =============================================================================

// SubsegmentContext 以现有 segment 为父节点的追踪上下文。
//
// 持有客户端句柄与解析后的入站追踪头；由它进入的每个 subsegment
// 都嵌套在头部指定的 trace/parent 之下。上下文可被多个 goroutine
// 并发使用（自身不可变，客户端句柄天然支持并发 Send）。
type SubsegmentContext struct {
	client     Client
	header     Header
	namePrefix string
	logger     *slog.Logger
}

// NewSubsegmentContext 从客户端与已解析的追踪头创建上下文。
func NewSubsegmentContext(client Client, header Header, opts ...Option) *SubsegmentContext {
	o := applyOptions(opts)
	return &SubsegmentContext{
		client:     client,
		header:     header,
		namePrefix: o.namePrefix,
		logger:     o.logger,
	}
}

// ContextFromEnv 从 Lambda 环境变量创建上下文。
//
// 追踪头来自 _X_AMZN_TRACE_ID，错误语义同 [HeaderFromEnv]。
// 调用方通常把返回值交给 [NewInfallibleContext]，将构造失败降级为
// 追踪整体禁用而非业务中断。
func ContextFromEnv(client Client, opts ...Option) (*SubsegmentContext, error) {
	header, err := HeaderFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSubsegmentContext(client, header, opts...), nil
}

// EnterSubsegment 实现 Context。
func (c *SubsegmentContext) EnterSubsegment(namespace Namespace) *SubsegmentSession {
	return newSubsegmentSession(c.client, c.header, namespace, c.namePrefix, c.logger)
}

// =============================================================================
// InfallibleContext
// =============================================================================

// InfallibleContext 把可能失败的上下文构造降级为永久 no-op 的包装。
//
//	ctx := xray.NewInfallibleContext(xray.ContextFromEnv(client))
//
// 构造成功时透传底层上下文；失败时 EnterSubsegment 恒返回 failed 态
// 会话：不传播追踪头、不暴露命名空间、Close 为空操作。
type InfallibleContext struct {
	ctx Context // nil 表示 no-op 态
}

// NewInfallibleContext 从 (Context, error) 构造对中创建包装。
func NewInfallibleContext(ctx Context, err error) InfallibleContext {
	if err != nil || ctx == nil {
		return InfallibleContext{}
	}
	return InfallibleContext{ctx: ctx}
}

// EnterSubsegment 实现 Context。
func (c InfallibleContext) EnterSubsegment(namespace Namespace) *SubsegmentSession {
	if c.ctx == nil {
		return failedSession()
	}
	return c.ctx.EnterSubsegment(namespace)
}
