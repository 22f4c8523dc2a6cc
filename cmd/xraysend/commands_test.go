package main

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/omeyang/xraykit/pkg/observability/xray"
)

func TestUsageError(t *testing.T) {
	err := &usageError{msg: "test error"}
	if err.Error() != "test error" {
		t.Errorf("usageError.Error() = %q, want %q", err.Error(), "test error")
	}

	var target *usageError
	if !errors.As(err, &target) {
		t.Error("errors.As failed for *usageError")
	}
}

func TestCreateCommands(t *testing.T) {
	cmds := createCommands()
	if len(cmds) == 0 {
		t.Fatal("createCommands returned empty slice")
	}

	names := make(map[string]bool)
	for _, cmd := range cmds {
		names[cmd.Name] = true
	}

	expected := []string{"custom", "remote", "aws"}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestRunMissingArgs(t *testing.T) {
	t.Setenv(xray.DaemonAddressEnv, "")
	t.Setenv(xray.TraceHeaderEnv, "")

	tests := []struct {
		name string
		args []string
	}{
		{"custom_no_args", []string{"xraysend", "custom"}},
		{"custom_extra_args", []string{"xraysend", "custom", "a", "b"}},
		{"remote_too_few", []string{"xraysend", "remote", "name", "GET"}},
		{"aws_too_few", []string{"xraysend", "aws", "dynamodb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := createApp().Run(context.Background(), tt.args)
			if err == nil {
				t.Fatal("expected error for missing args")
			}

			var usageErr *usageError
			if !errors.As(err, &usageErr) {
				t.Fatalf("expected *usageError, got %T: %v", err, err)
			}
		})
	}
}

func TestRunMissingAddress(t *testing.T) {
	t.Setenv(xray.DaemonAddressEnv, "")
	t.Setenv(xray.TraceHeaderEnv, "")

	err := createApp().Run(context.Background(),
		[]string{"xraysend", "custom", "readCache"})
	if err == nil {
		t.Fatal("expected error without daemon address")
	}

	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
	if !strings.Contains(usageErr.Error(), xray.DaemonAddressEnv) {
		t.Errorf("error should mention %s: %v", xray.DaemonAddressEnv, err)
	}
}

func TestRunMissingHeader(t *testing.T) {
	t.Setenv(xray.DaemonAddressEnv, "")
	t.Setenv(xray.TraceHeaderEnv, "")

	err := createApp().Run(context.Background(),
		[]string{"xraysend", "--address", "127.0.0.1:2000", "custom", "readCache"})
	if err == nil {
		t.Fatal("expected error without trace header")
	}

	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

func TestRunInvalidHeader(t *testing.T) {
	t.Setenv(xray.DaemonAddressEnv, "")
	t.Setenv(xray.TraceHeaderEnv, "")

	err := createApp().Run(context.Background(), []string{
		"xraysend",
		"--address", "127.0.0.1:2000",
		"--header", "Root",
		"custom", "readCache",
	})
	if err == nil {
		t.Fatal("expected error for malformed trace header")
	}
	if !errors.Is(err, xray.ErrInvalidTraceHeader) {
		t.Errorf("expected ErrInvalidTraceHeader, got: %v", err)
	}

	// 头格式错误属于运行期输入错误而非用法错误
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		t.Error("malformed header should not be usageError")
	}
}

func TestRunSendToLocalDaemon(t *testing.T) {
	t.Setenv(xray.DaemonAddressEnv, "")
	t.Setenv(xray.TraceHeaderEnv, "")

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = conn.Close() }() //nolint:errcheck // test cleanup

	received := make(chan []byte, 4)
	go func() {
		buf := make([]byte, 64*1024)
		for {
			n, _, readErr := conn.ReadFromUDP(buf)
			if readErr != nil {
				return
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			received <- data
		}
	}()

	err = createApp().Run(context.Background(), []string{
		"xraysend",
		"--address", conn.LocalAddr().String(),
		"--header", "Root=1-5759e988-bd862e3fe1be46a994272793;Sampled=1",
		"--prefix", "cli.",
		"aws", "dynamodb", "GetItem",
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 完整会话应产生 进入+结束 两个数据报
	for i := 0; i < 2; i++ {
		select {
		case data := <-received:
			if !strings.HasPrefix(string(data), `{"format": "json", "version": 1}`+"\n") {
				t.Errorf("datagram %d missing preamble: %q", i, data)
			}
			if !strings.Contains(string(data), `"dynamodb"`) {
				t.Errorf("datagram %d missing namespace name: %q", i, data)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for datagram %d", i)
		}
	}
}
