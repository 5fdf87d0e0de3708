// Package app assembles the assessment engine, its collaborators and its
// servers from a Config. Both entry points and the CLI build through it.
package app

import (
	"context"
	stderrors "errors"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/database/redis"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/predictor"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/storage/minio"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// App owns every long-lived dependency. Close releases them.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	// Metrics is nil when metrics are disabled.
	Metrics *prometheus.AppMetrics
	Engine  *assessment.Engine
	// CorpusSource is nil when no corpus is configured.
	CorpusSource corpus.Source

	configPath string
	closers    []func() error
}

// Option configures New.
type Option func(*App)

// WithConfigPath enables log-level hot reload in Serve.
func WithConfigPath(path string) Option {
	return func(a *App) { a.configPath = path }
}

// New wires the engine and loads the corpus. A corpus that cannot be reached
// leaves the engine empty; only a broken predictor or cache configuration is
// fatal.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	a := &App{Config: cfg, Logger: logger}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			Subsystem:            cfg.Metrics.Subsystem,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		a.Collector = collector
		a.Metrics = prometheus.NewAppMetrics(collector)
	}

	engineOpts := []assessment.Option{
		assessment.WithLogger(logger.Named("engine")),
		assessment.WithTopK(cfg.Corpus.TopK),
		assessment.WithDefaultSource(assessment.Source(cfg.DefaultSource())),
	}
	if a.Metrics != nil {
		engineOpts = append(engineOpts, assessment.WithMetrics(a.Metrics))
	}

	if cfg.Predictor.Enabled {
		p, err := a.newPredictor()
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		engineOpts = append(engineOpts, assessment.WithPredictor(p))
	}

	a.Engine = assessment.NewEngine(nil, engineOpts...)

	src, err := a.newCorpusSource()
	if err != nil {
		logger.Warn("reference corpus source unavailable", logging.String("source", cfg.Corpus.Source), logging.Err(err))
	}
	a.CorpusSource = src
	a.Engine.LoadOrEmpty(ctx, src)
	return a, nil
}

func (a *App) newPredictor() (assessment.Predictor, error) {
	cfg := a.Config.Predictor
	opts := []predictor.Option{
		predictor.WithTimeout(cfg.Timeout),
		predictor.WithRetryMax(cfg.RetryMax),
		predictor.WithLogger(a.Logger.Named("predictor")),
	}
	if a.Metrics != nil {
		opts = append(opts, predictor.WithObserver(a.Metrics))
	}
	client, err := predictor.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}
	if !cfg.CacheEnabled {
		return client, nil
	}

	rc, err := redis.NewClient(&a.Config.Redis, a.Logger.Named("redis"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rc.Close)

	var observer predictor.CacheObserver
	if a.Metrics != nil {
		observer = a.Metrics
	}
	cache := redis.NewRedisCache(rc, a.Logger.Named("cache"), redis.WithDefaultTTL(cfg.CacheTTL))
	return predictor.NewCachedPredictor(client, cache, cfg.CacheTTL, observer), nil
}

func (a *App) newCorpusSource() (corpus.Source, error) {
	location := a.Config.Corpus.Source
	switch {
	case location == "":
		return nil, nil
	case minio.IsObjectURI(location):
		store, err := a.ObjectStore()
		if err != nil {
			return nil, err
		}
		src, err := minio.NewCorpusSource(store, location, store.DefaultBucket())
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return corpus.FileSource{Path: location}, nil
	}
}

// ObjectStore connects to the configured MinIO endpoint. The client is
// closed with the App.
func (a *App) ObjectStore() (*minio.MinIOClient, error) {
	mc, err := minio.NewMinIOClient(&a.Config.MinIO, a.Logger.Named("minio"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, mc.Close)
	return mc, nil
}

// Close releases every client opened by the App.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return stderrors.Join(errs...)
}

//Personal.AI order the ending
