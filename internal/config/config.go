// Package config defines the engine's configuration structures. No I/O or
// parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/database/redis"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/storage/minio"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP and gRPC server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// Logging converts to the logger's own config.
func (l LogConfig) Logging() logging.LogConfig {
	cfg := logging.LogConfig{Level: l.Level, Format: l.Format}
	if l.Output != "" {
		cfg.OutputPaths = []string{l.Output}
	}
	return cfg
}

// CorpusConfig locates the reference corpus.
type CorpusConfig struct {
	// Source is a file path or s3://bucket/key. Empty disables comparables.
	Source string `mapstructure:"source"`
	TopK   int    `mapstructure:"top_k"`
}

// PredictorConfig enables the remote score source.
type PredictorConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryMax     int           `mapstructure:"retry_max"`
	CacheEnabled bool          `mapstructure:"cache_enabled"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// MetricsConfig controls the Prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig      `mapstructure:"server"`
	Log       LogConfig         `mapstructure:"log"`
	Corpus    CorpusConfig      `mapstructure:"corpus"`
	Predictor PredictorConfig   `mapstructure:"predictor"`
	Redis     redis.RedisConfig `mapstructure:"redis"`
	MinIO     minio.MinIOConfig `mapstructure:"minio"`
	Metrics   MetricsConfig     `mapstructure:"metrics"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("config: server.grpc_port %d is out of range [0, 65535]", c.Server.GRPCPort)
	}
	if c.Server.GRPCPort != 0 && c.Server.GRPCPort == c.Server.Port {
		return fmt.Errorf("config: server.grpc_port must differ from server.port")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Corpus
	if c.Corpus.TopK < 1 {
		return fmt.Errorf("config: corpus.top_k must be ≥ 1, got %d", c.Corpus.TopK)
	}

	// Predictor
	if c.Predictor.Enabled {
		if c.Predictor.BaseURL == "" {
			return fmt.Errorf("config: predictor.base_url is required when the predictor is enabled")
		}
		u, err := url.Parse(c.Predictor.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: predictor.base_url %q must be an absolute http(s) URL", c.Predictor.BaseURL)
		}
	}
	if c.Predictor.Timeout <= 0 {
		return fmt.Errorf("config: predictor.timeout must be > 0, got %s", c.Predictor.Timeout)
	}
	if c.Predictor.RetryMax < 0 {
		return fmt.Errorf("config: predictor.retry_max must be ≥ 0, got %d", c.Predictor.RetryMax)
	}

	// Redis
	if c.Predictor.CacheEnabled {
		if c.Redis.Addr == "" && len(c.Redis.ClusterAddrs) == 0 && len(c.Redis.SentinelAddrs) == 0 {
			return fmt.Errorf("config: redis address is required when predictor.cache_enabled is set")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
		}
	}

	return nil
}

// DefaultSource is the score source used when a request names none.
func (c *Config) DefaultSource() string {
	if c.Predictor.Enabled {
		return "remote"
	}
	return "local"
}

//Personal.AI order the ending
