package xray

import "errors"

// =============================================================================
// 构造期错误（环境/配置）
// =============================================================================

var (
	// ErrMissingDaemonAddress daemon 地址缺失：环境变量
	// AWS_XRAY_DAEMON_ADDRESS 未设置，或配置文件中 daemon_address 为空。
	ErrMissingDaemonAddress = errors.New("xray: missing daemon address")

	// ErrInvalidDaemonAddress daemon 地址无法解析为 host:port。
	ErrInvalidDaemonAddress = errors.New("xray: invalid daemon address")

	// ErrMissingTraceHeader 环境变量 _X_AMZN_TRACE_ID 未设置或为空。
	ErrMissingTraceHeader = errors.New("xray: missing _X_AMZN_TRACE_ID env var")

	// ErrInvalidTraceHeader 追踪头文本不符合语法。
	// 解析错误会通过 %w 包装此哨兵并附上违例片段。
	ErrInvalidTraceHeader = errors.New("xray: invalid trace header")
)

// =============================================================================
// 运行期错误（发送）
// =============================================================================

var (
	// ErrNoopClient 表示 InfallibleClient 处于永久 no-op 态。
	//
	// 设计决策: no-op 客户端的 Send 返回错误而非静默成功。若静默成功，
	// 基于它的会话会进入 entered 态并向下游传播追踪头，但数据从未上报，
	// 等于在链路上凭空制造断裂节点。返回错误使会话统一落入 failed 态，
	// 追踪被整体禁用，下游不会收到悬空的 Parent 引用。
	ErrNoopClient = errors.New("xray: no-op client")
)

// =============================================================================
// 配置文件错误
// =============================================================================

var (
	// ErrEmptyConfigPath 配置文件路径为空。
	ErrEmptyConfigPath = errors.New("xray: empty config path")

	// ErrUnsupportedConfigFormat 配置文件扩展名不是 .yaml/.yml/.json。
	ErrUnsupportedConfigFormat = errors.New("xray: unsupported config format")

	// ErrConfigLoadFailed 配置文件读取或解析失败。
	ErrConfigLoadFailed = errors.New("xray: config load failed")
)
