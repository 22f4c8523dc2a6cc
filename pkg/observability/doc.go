// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xray: 尽力而为的 AWS X-Ray 追踪客户端（追踪头编解码、
//     subsegment 数据模型与上报、UDP daemon 传输）
//
// 设计原则：
//   - 追踪永不改变被追踪业务的成败结果与时延
//   - 传输发送即忘，不重试、不缓冲
//   - 采样决策只解析透传，不自行计算
package observability
