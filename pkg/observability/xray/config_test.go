package xray

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		data := []byte("daemon_address: 127.0.0.1:2000\nname_prefix: app.\n")
		cfg, err := ParseConfig(data, ConfigFormatYAML)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:2000", cfg.DaemonAddress)
		assert.Equal(t, "app.", cfg.NamePrefix)
		assert.Empty(t, cfg.TraceHeader)
	})

	t.Run("json", func(t *testing.T) {
		data := []byte(`{"daemon_address": "127.0.0.1:2000", "trace_header": "Root=R;Sampled=1"}`)
		cfg, err := ParseConfig(data, ConfigFormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:2000", cfg.DaemonAddress)
		assert.Equal(t, "Root=R;Sampled=1", cfg.TraceHeader)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := ParseConfig([]byte("{}"), ConfigFormat("toml"))
		require.ErrorIs(t, err, ErrUnsupportedConfigFormat)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := ParseConfig([]byte("{not json"), ConfigFormatJSON)
		require.ErrorIs(t, err, ErrConfigLoadFailed)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		require.ErrorIs(t, err, ErrEmptyConfigPath)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig("xray.toml")
		require.ErrorIs(t, err, ErrUnsupportedConfigFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, ErrConfigLoadFailed)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xray.yaml")
		require.NoError(t, os.WriteFile(path, []byte("daemon_address: 127.0.0.1:2000\n"), 0o600))
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:2000", cfg.DaemonAddress)
	})
}

func TestNewDaemonClientFromConfig(t *testing.T) {
	t.Run("missing address", func(t *testing.T) {
		_, err := NewDaemonClientFromConfig(Config{})
		require.ErrorIs(t, err, ErrMissingDaemonAddress)
	})

	t.Run("valid address", func(t *testing.T) {
		client, err := NewDaemonClientFromConfig(Config{DaemonAddress: "127.0.0.1:2000"})
		require.NoError(t, err)
		defer client.Close()
	})
}

func TestContextFromConfig(t *testing.T) {
	t.Run("header from config", func(t *testing.T) {
		rec := &recordingClient{}
		ctx, err := ContextFromConfig(rec, Config{
			TraceHeader: "Root=R;Parent=P;Sampled=1",
			NamePrefix:  "cfg.",
		})
		require.NoError(t, err)

		session := ctx.EnterSubsegment(NewCustomNamespace("work"))
		defer session.Close()
		sub, err := rec.record(0)
		require.NoError(t, err)
		assert.Equal(t, "cfg.work", sub.Name)
		assert.Equal(t, "R", sub.TraceID)
	})

	t.Run("falls back to env header", func(t *testing.T) {
		t.Setenv(TraceHeaderEnv, "Root=ENV;Sampled=1")
		ctx, err := ContextFromConfig(&recordingClient{}, Config{})
		require.NoError(t, err)

		session := ctx.EnterSubsegment(NewCustomNamespace("work"))
		defer session.Close()
		assert.Contains(t, session.XAmznTraceID(), "Root=ENV")
	})

	t.Run("malformed config header", func(t *testing.T) {
		_, err := ContextFromConfig(&recordingClient{}, Config{TraceHeader: "nonsense"})
		require.ErrorIs(t, err, ErrInvalidTraceHeader)
	})
}
