// Package models defines the report, request and configuration types
// shared by the fact-check clients.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingEndpoint  = errors.New("endpoint is required")
	ErrInvalidBackend   = errors.New("selection.backend must be one of: memory, file, redis")
	ErrMissingRedisURL  = errors.New("selection.redis_url is required for the redis backend")
	ErrMissingSlotPath  = errors.New("selection.path is required for the file backend")
	ErrInvalidTimeout   = errors.New("client.timeout must be non-negative")
	ErrInvalidLogLevel  = errors.New("log.level must be one of: debug, info, warn, error")
	ErrMissingAddr      = errors.New("server.addr is required")
	ErrInvalidSelectTTL = errors.New("selection.ttl must be non-negative")
)

// Selection backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds runtime configuration, loaded from config.yaml and
// overridden by CLI flags.
type Config struct {
	Popup     EndpointConfig  `yaml:"popup"`
	Page      EndpointConfig  `yaml:"page"`
	Client    ClientConfig    `yaml:"client"`
	Server    ServerConfig    `yaml:"server"`
	Selection SelectionConfig `yaml:"selection"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

// EndpointConfig is the fact-check endpoint of one deployment.
type EndpointConfig struct {
	Endpoint string `yaml:"endpoint"`
	Field    string `yaml:"field"`
}

// ClientConfig tunes the HTTP transport. A zero timeout means no timeout.
type ClientConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the companion web server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SelectionConfig configures the pending selection slot.
type SelectionConfig struct {
	Backend  string        `yaml:"backend"`
	Path     string        `yaml:"path"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

// HistoryConfig configures the report history database.
// An empty path places the database next to the binary.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Popup: EndpointConfig{
			Endpoint: "http://127.0.0.1:8000/fact-check",
			Field:    FieldAnswer,
		},
		Page: EndpointConfig{
			Endpoint: "http://127.0.0.1:5000/fact-check",
			Field:    FieldText,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Selection: SelectionConfig{
			Backend: BackendMemory,
			Path:    pendingSelectionPath(),
			TTL:     10 * time.Minute,
		},
		Log: LogConfig{Level: "info"},
	}
}

func pendingSelectionPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sachai", "selection.json")
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	for name, ep := range map[string]EndpointConfig{DeploymentPopup: c.Popup, DeploymentPage: c.Page} {
		if ep.Endpoint == "" {
			return fmt.Errorf("%s: %w", name, ErrMissingEndpoint)
		}
		if err := ValidateField(ep.Field); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if c.Client.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Server.Addr == "" {
		return ErrMissingAddr
	}

	switch c.Selection.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Selection.Path == "" {
			return ErrMissingSlotPath
		}
	case BackendRedis:
		if c.Selection.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return ErrInvalidBackend
	}
	if c.Selection.TTL < 0 {
		return ErrInvalidSelectTTL
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// Endpoint returns the endpoint configuration of a deployment.
func (c *Config) Endpoint(deployment string) EndpointConfig {
	if deployment == DeploymentPage {
		return c.Page
	}
	return c.Popup
}
