package xray

import (
	"encoding/json"
	"errors"
	"fmt"
)

// =============================================================================
// Mock 实现 - 用于单元测试
// =============================================================================

var errSendRefused = errors.New("send refused")

// recordingClient 在 Send 时刻对记录做 JSON 快照。
// 快照按发送时的字段值固化，后续对同一 *Subsegment 的改动不会回写历史。
type recordingClient struct {
	packets []json.RawMessage
}

func (c *recordingClient) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	c.packets = append(c.packets, json.RawMessage(data))
	return nil
}

// record 将第 i 个快照还原为 Subsegment。
func (c *recordingClient) record(i int) (Subsegment, error) {
	var sub Subsegment
	if err := json.Unmarshal(c.packets[i], &sub); err != nil {
		return Subsegment{}, err
	}
	return sub, nil
}

// failingClient 所有 Send 都失败。
type failingClient struct {
	attempts int
}

func (c *failingClient) Send(_ any) error {
	c.attempts++
	return errSendRefused
}
