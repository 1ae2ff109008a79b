package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	libconfig "prostage/libs/config"
)

// Config defines booking client configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"baseUrl" env:"PROSTAGE_API_URL"`
		Path    string `yaml:"path" env:"PROSTAGE_API_PATH"`
	} `yaml:"api"`
	HTTPClient struct {
		TimeoutSeconds int `yaml:"timeoutSeconds" env:"PROSTAGE_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
	Session struct {
		File string `yaml:"file" env:"PROSTAGE_SESSION_FILE"`
	} `yaml:"session"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.API.BaseURL = "http://127.0.0.1:8000"
	cfg.API.Path = "/api"
	cfg.HTTPClient.TimeoutSeconds = 10

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, fmt.Errorf("config: api base url required")
	}
	return cfg, nil
}

// APIBase returns the full API root, origin plus path prefix.
func (c *Config) APIBase() string {
	base := strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	path := strings.TrimSpace(c.API.Path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + strings.TrimRight(path, "/")
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPClient.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTPClient.TimeoutSeconds) * time.Second
}

// SessionFile returns the durable token path, defaulting under the home dir.
func (c *Config) SessionFile() string {
	if strings.TrimSpace(c.Session.File) != "" {
		return c.Session.File
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".prostage", "auth_token")
	}
	return filepath.Join(home, ".prostage", "auth_token")
}
