package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file structure. TOML is the
// default format; files ending in .yaml or .yml are read as YAML.
type FileConfig struct {
	ServerPort      string `toml:"server_port" yaml:"server_port"`
	UpstreamBaseURL string `toml:"upstream_base_url" yaml:"upstream_base_url"`
	UpstreamTimeout string `toml:"upstream_timeout" yaml:"upstream_timeout"`
	EnableWebUI     *bool  `toml:"enable_web_ui" yaml:"enable_web_ui"`
	EnableMetrics   *bool  `toml:"enable_metrics" yaml:"enable_metrics"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
	LogFormat       string `toml:"log_format" yaml:"log_format"`
	LogFile         string `toml:"log_file" yaml:"log_file"`
	OTLPEndpoint    string `toml:"otel_endpoint" yaml:"otel_endpoint"`
	OTLPInsecure    *bool  `toml:"otel_insecure" yaml:"otel_insecure"`
}

// ConfigPath returns the path to the default config file (~/.keyprobe/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from a TOML or YAML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path) // #nosec G304 -- path from flag or home dir
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# keyprobe configuration
# server_port = ":5500"
# upstream_base_url = "https://api.openai.com/v1"
# upstream_timeout = "30s"
# enable_web_ui = true
# enable_metrics = true

# log_level = "info"      # debug, info, warn, error
# log_format = "text"     # text or json
# log_file = "/var/log/keyprobe.log"

# otel_endpoint = "localhost:4317"
# otel_insecure = true
`

	return os.WriteFile(path, []byte(defaultConfig), 0o600)
}
