package xray

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// HeaderName X-Ray 追踪数据对应的 HTTP 头名称。
//
// 头的取值即 Header.String() 的序列化结果。
const HeaderName = "X-Amzn-Trace-Id"

// =============================================================================
// 采样决策
// =============================================================================

// SamplingDecision 采样决策。
//
// 决策只来源于追踪头的解析，本包永不自行计算采样结果。
type SamplingDecision int

const (
	// SamplingUnknown 未携带采样决策（零值）。
	SamplingUnknown SamplingDecision = iota

	// SamplingSampled 当前 segment 已被采样，将上报给 X-Ray daemon。
	SamplingSampled

	// SamplingNotSampled 当前 segment 未被采样。
	SamplingNotSampled

	// SamplingRequested 采样决策委托给下游服务，由响应回传。
	SamplingRequested
)

// samplingToken 各决策对应的头片段字面量。Unknown 不参与序列化。
func (d SamplingDecision) samplingToken() string {
	switch d {
	case SamplingSampled:
		return "Sampled=1"
	case SamplingNotSampled:
		return "Sampled=0"
	case SamplingRequested:
		return "Sampled=?"
	default:
		return ""
	}
}

// parseSamplingDecision 按字面量匹配采样片段。
// 任何以 Sampled= 开头但不匹配三种已知取值的片段按 Unknown 处理。
func parseSamplingDecision(part string) SamplingDecision {
	switch part {
	case "Sampled=1":
		return SamplingSampled
	case "Sampled=0":
		return SamplingNotSampled
	case "Sampled=?":
		return SamplingRequested
	default:
		return SamplingUnknown
	}
}

// =============================================================================
// Header
// =============================================================================

// Header X-Amzn-Trace-Id 请求头的解析结果。
//
// TraceID 与 ParentID 是不透明标识：本包只做透传，不校验内部结构。
// 空字符串表示缺省。AdditionalData 保存所有无法识别的 key=value 片段，
// 用于向前兼容的透传（保留字段 Self=... 在解析时被有意丢弃）。
type Header struct {
	TraceID          string
	ParentID         string
	SamplingDecision SamplingDecision
	AdditionalData   map[string]string
}

// NewHeader 创建仅携带 trace ID 的 Header。
func NewHeader(traceID string) Header {
	return Header{TraceID: traceID}
}

// ParseHeader 解析追踪头文本。
//
// 语法：按 ";" 切分，每个片段依次尝试：
//   - "Root=<id>"     设置 TraceID
//   - "Parent=<id>"   设置 ParentID
//   - "Sampled=..."   按字面量匹配采样决策（未知取值按 Unknown）
//   - "Self=..."      同 segment 透传标记，有意忽略
//   - 其余片段必须含 "="，按首个 "=" 切为 key/value 存入 AdditionalData；
//     缺失 "=" 是硬错误，errors.Is(err, ErrInvalidTraceHeader) 成立，
//     错误信息指明违例片段。
//
// 解析对片段顺序不敏感。
func ParseHeader(s string) (Header, error) {
	var h Header
	for _, part := range strings.Split(s, ";") {
		switch {
		case strings.HasPrefix(part, "Root="):
			h.TraceID = strings.TrimPrefix(part, "Root=")
		case strings.HasPrefix(part, "Parent="):
			h.ParentID = strings.TrimPrefix(part, "Parent=")
		case strings.HasPrefix(part, "Sampled="):
			h.SamplingDecision = parseSamplingDecision(part)
		case strings.HasPrefix(part, "Self="):
			// 保留字段，丢弃
		default:
			key, value, found := strings.Cut(part, "=")
			if !found {
				return Header{}, fmt.Errorf("%w: no `=` found in %q", ErrInvalidTraceHeader, part)
			}
			if h.AdditionalData == nil {
				h.AdditionalData = make(map[string]string)
			}
			h.AdditionalData[key] = value
		}
	}
	return h, nil
}

// String 序列化为追踪头文本，是 ParseHeader 的逆操作。
//
// 顺序固定：Root 总在最前，随后是 Parent（如有）、采样决策（非 Unknown 时）、
// 附加键值对（按 key 字典序，保证确定性输出）。
// 对任意合法输入，ParseHeader(h.String()) 与原 Header 相等。
func (h Header) String() string {
	var b strings.Builder
	b.WriteString("Root=")
	b.WriteString(h.TraceID)
	if h.ParentID != "" {
		b.WriteString(";Parent=")
		b.WriteString(h.ParentID)
	}
	if token := h.SamplingDecision.samplingToken(); token != "" {
		b.WriteString(";")
		b.WriteString(token)
	}
	keys := make([]string, 0, len(h.AdditionalData))
	for k := range h.AdditionalData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(";")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(h.AdditionalData[k])
	}
	return b.String()
}

// WithParentID 返回替换了 ParentID 的新 Header，原 Header 不变。
func (h Header) WithParentID(parentID string) Header {
	h.ParentID = parentID
	h.AdditionalData = maps.Clone(h.AdditionalData)
	return h
}

// WithSamplingDecision 返回替换了采样决策的新 Header，原 Header 不变。
func (h Header) WithSamplingDecision(decision SamplingDecision) Header {
	h.SamplingDecision = decision
	h.AdditionalData = maps.Clone(h.AdditionalData)
	return h
}

// InsertData 向 AdditionalData 写入一个键值对，返回自身以便链式调用。
func (h *Header) InsertData(key, value string) *Header {
	if h.AdditionalData == nil {
		h.AdditionalData = make(map[string]string)
	}
	h.AdditionalData[key] = value
	return h
}
