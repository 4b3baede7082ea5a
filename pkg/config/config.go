package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Target selection
	BaseURL       string            `yaml:"base_url"`
	DefaultServer string            `yaml:"default_server"`
	Servers       map[string]string `yaml:"servers"`

	// Request behavior
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`

	// Latency test
	PingCount      int `yaml:"ping_count"`
	PingIntervalMS int `yaml:"ping_interval_ms"`

	// Transfer tests
	DownloadSizeMB int `yaml:"download_size_mb"`
	UploadSizeMB   int `yaml:"upload_size_mb"`
	Attempts       int `yaml:"attempts"`
	AttemptPauseMS int `yaml:"attempt_pause_ms"`

	// Monitoring
	MonitorIntervalSeconds int `yaml:"monitor_interval_seconds"`

	// History
	SaveHistory      bool `yaml:"save_history"`
	HistoryRetention int  `yaml:"history_retention"`

	// UI Settings
	ColorTheme   string `yaml:"color_theme"`
	OutputFormat string `yaml:"output_format"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:                "http://localhost:8000",
		Servers:                make(map[string]string),
		TimeoutSeconds:         30,
		UserAgent:              "speedprobe",
		PingCount:              10,
		PingIntervalMS:         100,
		DownloadSizeMB:         5,
		UploadSizeMB:           5,
		Attempts:               3,
		AttemptPauseMS:         500,
		MonitorIntervalSeconds: 60,
		SaveHistory:            true,
		HistoryRetention:       50,
		ColorTheme:             "auto",
		OutputFormat:           "table",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults, not an error
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Servers == nil {
		cfg.Servers = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "speedprobe"
	}
	if cfg.PingCount <= 0 {
		cfg.PingCount = 10
	}
	if cfg.PingIntervalMS <= 0 {
		cfg.PingIntervalMS = 100
	}
	if cfg.DownloadSizeMB <= 0 {
		cfg.DownloadSizeMB = 5
	}
	if cfg.UploadSizeMB <= 0 {
		cfg.UploadSizeMB = 5
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.AttemptPauseMS <= 0 {
		cfg.AttemptPauseMS = 500
	}
	if cfg.MonitorIntervalSeconds <= 0 {
		cfg.MonitorIntervalSeconds = 60
	}
	if cfg.HistoryRetention <= 0 {
		cfg.HistoryRetention = 50
	}
	if !isValidOutputFormat(cfg.OutputFormat) {
		cfg.OutputFormat = "table"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResolveServer returns the base URL to test against. An explicit name
// must exist in the servers map; otherwise the default server is used
// when set, falling back to base_url.
func (c *Config) ResolveServer(name string) (string, error) {
	if name != "" {
		url, ok := c.Servers[name]
		if !ok {
			return "", fmt.Errorf("unknown server %q (defined servers: %d)", name, len(c.Servers))
		}
		return url, nil
	}
	if c.DefaultServer != "" {
		if url, ok := c.Servers[c.DefaultServer]; ok {
			return url, nil
		}
	}
	return c.BaseURL, nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PingInterval returns the pause between pings.
func (c *Config) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalMS) * time.Millisecond
}

// AttemptPause returns the pause between transfer attempts.
func (c *Config) AttemptPause() time.Duration {
	return time.Duration(c.AttemptPauseMS) * time.Millisecond
}

// MonitorInterval returns the pause between monitor runs.
func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalSeconds) * time.Second
}

func isValidOutputFormat(format string) bool {
	switch format {
	case "table", "json":
		return true
	}
	return false
}
