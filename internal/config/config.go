package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Export      ExportConfig      `yaml:"export"`
}

type EngineConfig struct {
	GraceMS int `yaml:"grace_ms"`
}

type ServerConfig struct {
	Addr              string `yaml:"addr"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	// RecordDir, when set, receives one capture file per live session.
	RecordDir string `yaml:"record_dir"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type ExportConfig struct {
	Docx      bool `yaml:"docx"`
	Summarize bool `yaml:"summarize"`
}

// GracePeriod returns the chunk grace period as a duration.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.Engine.GraceMS) * time.Millisecond
}

// SessionTTL returns how long an idle session is kept.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLMinutes) * time.Minute
}

// Load reads a YAML config file, applies environment overrides (including a
// local .env file when present) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// A missing .env is normal.
	_ = godotenv.Load()
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns a validated config for running without a config file.
func Default() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		Paths: PathsConfig{Output: "data/output"},
	}
	applyEnvOverrides(cfg)
	_ = cfg.Validate()
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CAPTIONFLOW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CAPTIONFLOW_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CAPTIONFLOW_GEMINI_API_KEYS"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		cfg.Gemini.APIKeys = keys
	}
}

func (c *Config) Validate() error {
	if c.Engine.GraceMS < 0 {
		return fmt.Errorf("engine.grace_ms must not be negative")
	}
	if c.Server.SessionTTLMinutes < 0 {
		return fmt.Errorf("server.session_ttl_minutes must not be negative")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Export.Summarize && len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required when export.summarize is enabled")
	}

	if c.Engine.GraceMS == 0 {
		c.Engine.GraceMS = 2000
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SessionTTLMinutes == 0 {
		c.Server.SessionTTLMinutes = 120
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
