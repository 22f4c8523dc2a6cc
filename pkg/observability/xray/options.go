package xray

import "log/slog"

// =============================================================================
// Context 配置
// =============================================================================

// options 内部配置结构。
type options struct {
	namePrefix string
	logger     *slog.Logger
}

// Option Context 配置选项函数。
type Option func(*options)

// WithNamePrefix 设置名称前缀。
//
// 前缀会拼接在每个 custom subsegment 名称之前；只有与
// [CustomNamespace] 关联的 subsegment 受影响，aws/remote 命名空间
// 忽略前缀。
func WithNamePrefix(prefix string) Option {
	return func(o *options) {
		o.namePrefix = prefix
	}
}

// WithLogger 设置结束阶段发送失败时使用的 logger。
//
// 默认为 slog.Default()。传入 nil 会被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
