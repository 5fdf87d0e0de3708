package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "MFR"

// newViper builds a pre-configured Viper instance: YAML file type, MFR_ env
// prefix, automatic env binding, and a key replacer that maps "." → "_" so
// that nested keys like "predictor.base_url" resolve to
// "MFR_PREDICTOR_BASE_URL".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

// registerDefaults makes every key known to viper. Unmarshal only consults
// the environment for known keys.
func registerDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.grpc_port", d.Server.GRPCPort)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)

	v.SetDefault("corpus.source", d.Corpus.Source)
	v.SetDefault("corpus.top_k", d.Corpus.TopK)

	v.SetDefault("predictor.enabled", d.Predictor.Enabled)
	v.SetDefault("predictor.base_url", d.Predictor.BaseURL)
	v.SetDefault("predictor.timeout", d.Predictor.Timeout)
	v.SetDefault("predictor.retry_max", d.Predictor.RetryMax)
	v.SetDefault("predictor.cache_enabled", d.Predictor.CacheEnabled)
	v.SetDefault("predictor.cache_ttl", d.Predictor.CacheTTL)

	v.SetDefault("redis.mode", d.Redis.Mode)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.username", d.Redis.Username)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.tls_enabled", d.Redis.TLSEnabled)

	v.SetDefault("minio.endpoint", d.MinIO.Endpoint)
	v.SetDefault("minio.access_key_id", d.MinIO.AccessKeyID)
	v.SetDefault("minio.secret_access_key", d.MinIO.SecretAccessKey)
	v.SetDefault("minio.use_ssl", d.MinIO.UseSSL)
	v.SetDefault("minio.region", d.MinIO.Region)
	v.SetDefault("minio.bucket", d.MinIO.Bucket)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.subsystem", d.Metrics.Subsystem)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Load reads the YAML file at configPath, merges any MFR_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MFR_* environment variables,
// with no config file required.
//
//	MFR_<SECTION>_<FIELD>   e.g.  MFR_SERVER_PORT, MFR_PREDICTOR_BASE_URL
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrEnv loads configPath when given, otherwise the environment alone.
func LoadOrEnv(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config on every write. Invalid edits are reported to onError and the
// callback is skipped. Watch is non-blocking; viper owns the goroutine.
// Callers should apply only the safe subset of changes, such as log level.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	var mu sync.Mutex
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
