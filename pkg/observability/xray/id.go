package xray

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// =============================================================================
// ID 生成
//
// Segment ID 为 16 位小写十六进制字符（64-bit），Trace ID 为
// "1-<8 位十六进制纪元秒>-<24 位十六进制随机数>"。两者都是 X-Ray
// 协议规定的固定宽度格式。
// =============================================================================

const segmentIDSize = 8 // 8 bytes -> 16 hex chars

// NewSegmentID 生成一个新的 segment/subsegment ID。
//
// 使用 crypto/rand 保证随机性。
//
// Panic 策略：熵源不可用（内核级故障）时 panic。这是有意的选择：
// 此时系统已无法提供安全随机数，继续运行没有意义，且与标准追踪 SDK
// 的处理方式一致。
func NewSegmentID() string {
	var buf [segmentIDSize]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("xray: crypto/rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(buf[:])
}

// NewTraceID 生成一个新的 trace ID。
//
// 格式: "1-<8 位十六进制纪元秒>-<24 位十六进制随机数>"
// 示例: "1-65dfb5a1-0123456789abcdef01234567"
//
// 通常 trace ID 由上游（如 Lambda 运行时）下发并原样透传，仅在本进程
// 作为链路起点时才需要生成。
func NewTraceID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("xray: crypto/rand.Read failed: " + err.Error())
	}
	return fmt.Sprintf("1-%08x-%s", time.Now().Unix(), hex.EncodeToString(buf[:]))
}
