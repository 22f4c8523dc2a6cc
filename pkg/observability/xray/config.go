package xray

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// =============================================================================
// 配置文件加载
//
// Lambda 之外的部署形态（自建容器、本地联调）没有运行时注入的环境变量，
// 通过 YAML/JSON 配置文件提供 daemon 地址等构造参数。
// =============================================================================

// ConfigFormat 配置文件格式。
type ConfigFormat string

const (
	// ConfigFormatYAML YAML 格式（.yaml/.yml）。
	ConfigFormatYAML ConfigFormat = "yaml"

	// ConfigFormatJSON JSON 格式（.json）。
	ConfigFormatJSON ConfigFormat = "json"
)

// Config 客户端构造配置。
type Config struct {
	// DaemonAddress X-Ray daemon 的 host:port 地址。必填。
	DaemonAddress string `koanf:"daemon_address"`

	// TraceHeader 入站追踪头文本。可选；为空时从 _X_AMZN_TRACE_ID 读取。
	TraceHeader string `koanf:"trace_header"`

	// NamePrefix custom subsegment 的名称前缀。可选。
	NamePrefix string `koanf:"name_prefix"`
}

// LoadConfig 从文件加载配置，按扩展名自动检测格式。
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyConfigPath
	}
	format, err := detectConfigFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}
	return ParseConfig(data, format)
}

// ParseConfig 从字节数据解析配置。
func ParseConfig(data []byte, format ConfigFormat) (Config, error) {
	var parser koanf.Parser
	switch format {
	case ConfigFormatYAML:
		parser = yaml.Parser()
	case ConfigFormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}
	return cfg, nil
}

// detectConfigFormat 根据文件扩展名检测格式。
func detectConfigFormat(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ConfigFormatYAML, nil
	case ".json":
		return ConfigFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, filepath.Ext(path))
	}
}

// NewDaemonClientFromConfig 从配置创建 daemon 客户端。
//
// DaemonAddress 为空返回 ErrMissingDaemonAddress。
func NewDaemonClientFromConfig(cfg Config) (*DaemonClient, error) {
	if cfg.DaemonAddress == "" {
		return nil, ErrMissingDaemonAddress
	}
	return NewDaemonClient(cfg.DaemonAddress)
}

// ContextFromConfig 从配置创建上下文。
//
// TraceHeader 非空时解析配置中的头文本，否则回退到 _X_AMZN_TRACE_ID
// 环境变量。NamePrefix 自动生效，显式传入的选项可覆盖。
func ContextFromConfig(client Client, cfg Config, opts ...Option) (*SubsegmentContext, error) {
	var (
		header Header
		err    error
	)
	if cfg.TraceHeader != "" {
		header, err = ParseHeader(cfg.TraceHeader)
		if err != nil {
			return nil, fmt.Errorf("parse trace_header: %w", err)
		}
	} else {
		header, err = HeaderFromEnv()
		if err != nil {
			return nil, err
		}
	}
	merged := make([]Option, 0, len(opts)+1)
	merged = append(merged, WithNamePrefix(cfg.NamePrefix))
	merged = append(merged, opts...)
	return NewSubsegmentContext(client, header, merged...), nil
}
