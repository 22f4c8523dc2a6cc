package xray

import "time"

// Seconds Unix 纪元秒数（浮点，含小数部分）。
//
// X-Ray 线上格式要求 start_time/end_time 为浮点秒数，
// JSON 序列化时直接编码为数字。
type Seconds float64

// Now 返回当前墙钟时间对应的纪元秒数。
func Now() Seconds {
	return Time(time.Now())
}

// Time 将 time.Time 转换为纪元秒数。
func Time(t time.Time) Seconds {
	return Seconds(float64(t.UnixNano()) / float64(time.Second))
}
