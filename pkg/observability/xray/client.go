package xray

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// DaemonAddressEnv X-Ray daemon 地址的环境变量名（Lambda 运行时注入）。
const DaemonAddressEnv = "AWS_XRAY_DAEMON_ADDRESS"

// packetPreamble daemon 协议的定长前导：格式声明 + 换行，之后紧跟
// JSON 编码的记录本体，三者拼成一个完整 UDP 数据报。
const packetPreamble = `{"format": "json", "version": 1}` + "\n"

// Client X-Ray 上报客户端接口。
//
// 实现必须满足：每次 Send 是一次独立的完整操作，可被多个会话并发调用；
// 句柄可廉价复制（多个会话共享同一底层资源）。
type Client interface {
	// Send 将一条记录序列化后发送给 daemon。
	// 序列化失败与传输失败同等对待，永不重试、永不缓冲。
	Send(v any) error
}

// =============================================================================
// DaemonClient
// =============================================================================

// DaemonClient 基于 UDP 的 daemon 客户端。
//
// 整个生命周期持有一个出站 socket。UDP 发送要么在本地立即成功、
// 要么立即失败（如缓冲区满、无监听方），不会等待远端 daemon，
// 因此 Send 无超时也不阻塞调用方。
// *net.UDPConn 可安全并发写入，DaemonClient 句柄复制后共享同一 socket。
type DaemonClient struct {
	conn *net.UDPConn
}

// NewDaemonClient 创建连接到指定地址的 daemon 客户端。
//
// addr 为 host:port 形式。解析失败返回包装了 ErrInvalidDaemonAddress
// 的错误。
func NewDaemonClient(addr string) (*DaemonClient, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidDaemonAddress, addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("xray: dial daemon: %w", err)
	}
	return &DaemonClient{conn: conn}, nil
}

// DaemonClientFromEnv 从 Lambda 环境变量创建 daemon 客户端。
//
// 要求 AWS_XRAY_DAEMON_ADDRESS 已设置；缺失返回 ErrMissingDaemonAddress，
// 无法解析返回包装了 ErrInvalidDaemonAddress 的错误。
func DaemonClientFromEnv() (*DaemonClient, error) {
	addr := os.Getenv(DaemonAddressEnv)
	if addr == "" {
		return nil, ErrMissingDaemonAddress
	}
	return NewDaemonClient(addr)
}

// Send 实现 Client：编码记录并以单个数据报发出。
func (c *DaemonClient) Send(v any) error {
	pkt, err := packet(v)
	if err != nil {
		return err
	}
	if _, err := c.conn.Write(pkt); err != nil {
		return fmt.Errorf("xray: send packet: %w", err)
	}
	return nil
}

// Close 关闭底层 socket。
//
// 仅在确认不再有任何会话持有该客户端后调用；Lambda 场景下通常
// 随进程存亡，无需显式关闭。
func (c *DaemonClient) Close() error {
	return c.conn.Close()
}

// packet 组装完整数据报：前导 + JSON 记录。
func packet(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("xray: marshal record: %w", err)
	}
	pkt := make([]byte, 0, len(packetPreamble)+len(body))
	pkt = append(pkt, packetPreamble...)
	pkt = append(pkt, body...)
	return pkt, nil
}

// =============================================================================
// InfallibleClient
// =============================================================================

// InfallibleClient 把可能失败的客户端构造降级为永久 no-op 的包装。
//
// 典型用法是直接吞掉构造错误：
//
//	client := xray.NewInfallibleClient(xray.DaemonClientFromEnv())
//
// 构造成功时透传底层客户端；失败时 Send 恒返回 ErrNoopClient，
// 基于它创建的所有会话都会进入 failed 态（见 ErrNoopClient 的设计决策）。
type InfallibleClient struct {
	client Client // nil 表示 no-op 态
}

// NewInfallibleClient 从 (Client, error) 构造对中创建包装。
func NewInfallibleClient(client Client, err error) InfallibleClient {
	if err != nil || client == nil {
		return InfallibleClient{}
	}
	return InfallibleClient{client: client}
}

// Send 实现 Client。
func (c InfallibleClient) Send(v any) error {
	if c.client == nil {
		return ErrNoopClient
	}
	return c.client.Send(v)
}
