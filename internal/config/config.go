package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Default values.
const (
	DefaultServerPort      = ":5500"
	DefaultUpstreamBaseURL = "https://api.openai.com/v1"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds application configuration loaded from environment and file.
// Priority: CLI flags → Env vars → config file → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":5500")
	ServerPort string

	// UpstreamBaseURL is the provider API root
	UpstreamBaseURL string

	// UpstreamTimeout bounds each upstream call; zero means no explicit limit
	UpstreamTimeout time.Duration

	// EnableWebUI serves the landing page at / and /api/index
	EnableWebUI bool

	// EnableMetrics exposes Prometheus metrics at /metrics
	EnableMetrics bool

	LogLevel  string
	LogFormat string

	// LogFile additionally writes logs to a size-rotated file
	LogFile string

	// OTLPEndpoint enables trace export when set (host:port, gRPC)
	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads configuration from the file at path and environment variables.
// An empty path selects ConfigPath(). A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	fileConfig, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config file %s: %w", path, err)
	}

	timeout, err := getEnvDurationOrFile("UPSTREAM_TIMEOUT", fileConfig.UpstreamTimeout)
	if err != nil {
		return nil, err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, DefaultServerPort)
	}

	return &Config{
		ServerPort:      NormalizeAddr(port),
		UpstreamBaseURL: getEnvOrFile("UPSTREAM_BASE_URL", fileConfig.UpstreamBaseURL, DefaultUpstreamBaseURL),
		UpstreamTimeout: timeout,
		EnableWebUI:     getEnvBoolOrFile("ENABLE_WEB_UI", fileConfig.EnableWebUI, true),
		EnableMetrics:   getEnvBoolOrFile("ENABLE_METRICS", fileConfig.EnableMetrics, true),
		LogLevel:        getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, DefaultLogLevel),
		LogFormat:       getEnvOrFile("LOG_FORMAT", fileConfig.LogFormat, DefaultLogFormat),
		LogFile:         getEnvOrFile("LOG_FILE", fileConfig.LogFile, ""),
		OTLPEndpoint:    getEnvOrFile("OTEL_EXPORTER_OTLP_ENDPOINT", fileConfig.OTLPEndpoint, ""),
		OTLPInsecure:    getEnvBoolOrFile("OTEL_EXPORTER_OTLP_INSECURE", fileConfig.OTLPInsecure, false),
	}, nil
}

// NormalizeAddr turns a bare port such as "5500" into ":5500".
func NormalizeAddr(addr string) string {
	if addr == "" || strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvDurationOrFile parses a duration from env or file; empty means zero.
func getEnvDurationOrFile(key, fileValue string) (time.Duration, error) {
	raw := getEnvOrFile(key, fileValue, "")
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(key), raw, err)
	}
	return d, nil
}
