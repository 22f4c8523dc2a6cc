// Package xray 提供轻量级、尽力而为（best-effort）的 AWS X-Ray 追踪客户端。
//
// # 概述
//
// xray 运行在请求处理进程内（典型场景：Lambda 函数调用），从宿主环境读取
// 入站追踪头（X-Amzn-Trace-Id），并为每个被追踪的工作单元向本地 X-Ray
// daemon 发送 subsegment 记录。传输层为 UDP，发送即忘（fire-and-forget）：
// daemon 不可用时追踪数据会丢失，但被追踪的业务逻辑永远不受影响。
//
// 核心能力：
//   - 追踪头的解析与序列化（Root/Parent/Sampled/附加键值对）
//   - Segment/Subsegment 数据模型及其 JSON 线上格式
//   - Subsegment 会话生命周期（进入时上报 in_progress，结束时上报完成）
//   - UDP daemon 客户端（单 socket、非阻塞语义、不重试不缓冲）
//   - Namespace 装饰策略（aws / remote / custom）
//
// # 错误处理契约
//
// 两种错误域：
//   - 构造期（从环境/配置构建 Client 或 Context）：返回带哨兵的类型化错误，
//     调用方通常通过 Infallible 包装降级为永久 no-op，而非中断业务。
//   - 运行期（单条 segment 发送、装饰）：永不向调用方传播。首次发送失败使
//     会话进入 failed 态（该工作单元的追踪被静默禁用）；结束时的发送失败
//     仅记录日志。追踪绝不改变被追踪业务的成败结果。
//
// # 快速开始
//
// Lambda 环境下追踪一次 AWS 服务调用：
//
//	client, err := xray.DaemonClientFromEnv() // 读取 AWS_XRAY_DAEMON_ADDRESS
//	if err != nil { /* 降级处理 */ }
//	ctx := xray.NewInfallibleContext(xray.ContextFromEnv(client)) // 读取 _X_AMZN_TRACE_ID
//
//	ns := xray.NewAwsNamespace("S3", "GetObject")
//	session := ctx.EnterSubsegment(ns)
//	defer session.Close()
//
//	// 发起 S3 调用，出站请求携带 session.XAmznTraceID() ...
//	// 收到响应后回填元数据（failed 态下调用无害，会被忽略）：
//	ns.SetRequestID(requestID)
//
// # 并发模型
//
// 核心无锁。每个会话独占自己的 Header/Subsegment/Namespace 状态，唯一共享
// 资源是 DaemonClient 的 UDP socket——每次 Send 是一次独立的完整写入，
// *net.UDPConn 本身支持并发调用，无需额外同步。会话对象本身不可跨 goroutine
// 共享（一个会话 = 一个所有者 = 一个在途 subsegment）。
package xray
