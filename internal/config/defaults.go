package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 1 << 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultCorpusSource = "configs/reference_corpus.json"
	DefaultCorpusTopK   = 5

	DefaultPredictorTimeout  = 10 * time.Second
	DefaultPredictorCacheTTL = 10 * time.Minute

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisMode = "standalone"

	DefaultMinIOBucket = "mfr-corpus"

	DefaultMetricsNamespace = "mfr"
	DefaultMetricsPath      = "/metrics"
)

// DefaultCORSOrigins are the local frontend dev-server origins.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Metrics.Enabled = true
	cfg.Corpus.Source = DefaultCorpusSource
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Corpus ────────────────────────────────────────────────────────────────
	if cfg.Corpus.TopK == 0 {
		cfg.Corpus.TopK = DefaultCorpusTopK
	}

	// ── Predictor ─────────────────────────────────────────────────────────────
	if cfg.Predictor.Timeout == 0 {
		cfg.Predictor.Timeout = DefaultPredictorTimeout
	}
	if cfg.Predictor.CacheTTL == 0 {
		cfg.Predictor.CacheTTL = DefaultPredictorCacheTTL
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Mode == "" {
		cfg.Redis.Mode = DefaultRedisMode
	}
	if cfg.Redis.Addr == "" && cfg.Redis.Mode == DefaultRedisMode {
		cfg.Redis.Addr = DefaultRedisAddr
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

//Personal.AI order the ending
