package xray

import "log/slog"

// SubsegmentSession 一个被追踪工作单元的会话。
//
// 会话在创建时即落入两种状态之一，且不再迁移：
//   - entered: 首条 in-progress 记录已发出。持有客户端句柄、派生追踪头
//     （Parent 已替换为本 subsegment 的 ID）、在途记录与命名空间。
//   - failed: 首次发送失败。不持有任何东西，所有操作退化为空。
//
// 会话归创建者独占，不得跨 goroutine 共享；一个会话只对应一个在途
// subsegment。Close 必须在每条退出路径上恰好执行一次，惯用写法：
//
//	session := ctx.EnterSubsegment(ns)
//	defer session.Close()
type SubsegmentSession struct {
	client     Client
	header     Header
	subsegment *Subsegment
	namespace  Namespace
	logger     *slog.Logger

	entered bool
	closed  bool
}

// newSubsegmentSession 构建记录、应用装饰并发送首条 in-progress 记录。
// 发送成功进入 entered 态，派生头以本 subsegment 的 ID 为新 Parent；
// 失败则静默落入 failed 态。
func newSubsegmentSession(client Client, header Header, namespace Namespace, namePrefix string, logger *slog.Logger) *SubsegmentSession {
	sub := BeginSubsegment(header.TraceID, header.ParentID, namespace.Name(namePrefix))
	namespace.Decorate(sub)
	if err := client.Send(sub); err != nil {
		return failedSession()
	}
	return &SubsegmentSession{
		client:     client,
		header:     header.WithParentID(sub.ID),
		subsegment: sub,
		namespace:  namespace,
		logger:     logger,
		entered:    true,
	}
}

// failedSession 返回 failed 态会话。
func failedSession() *SubsegmentSession {
	return &SubsegmentSession{}
}

// XAmznTraceID 返回传播给下游调用的 X-Amzn-Trace-Id 头值。
//
// failed 态返回空字符串：调用方应直接跳过头注入（下游不再接入本链路），
// 而不应将其视为业务错误。
func (s *SubsegmentSession) XAmznTraceID() string {
	if !s.entered {
		return ""
	}
	return s.header.String()
}

// Namespace 返回存活的命名空间，供会话存续期间回填元数据
// （如响应状态码、request ID）。failed 态返回 nil，调用方按
// nil 判空跳过即可。
func (s *SubsegmentSession) Namespace() Namespace {
	if !s.entered {
		return nil
	}
	return s.namespace
}

// Close 结束会话：结束记录、再次应用装饰（捕获回填的字段）、
// 发送最终记录。发送失败只记录日志——链路此刻已经走完，任何错误
// 都不值得再打扰调用方。failed 态与重复调用均为空操作。
func (s *SubsegmentSession) Close() {
	if !s.entered || s.closed {
		return
	}
	s.closed = true

	s.subsegment.End()
	s.namespace.Decorate(s.subsegment)
	if err := s.client.Send(s.subsegment); err != nil {
		s.logger.Warn("xray: failed to end subsegment",
			slog.String("id", s.subsegment.ID),
			slog.String("name", s.subsegment.Name),
			slog.Any("error", err))
	}
}
