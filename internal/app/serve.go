package app

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	grpcserver "github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/grpc"
	httpserver "github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http/handlers"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http/middleware"
)

// Handler builds the HTTP route tree.
func (a *App) Handler() http.Handler {
	logCfg := middleware.DefaultLoggingConfig()
	health := handlers.NewHealthHandler(Version, handlers.CorpusCheck(a.Engine.Ready))

	rc := httpserver.RouterConfig{
		AssessmentHandler: handlers.NewAssessmentHandler(a.Engine, a.Logger.Named("http"), a.Config.Server.MaxBodySize),
		HealthHandler:     health,
		CORS:              middleware.CORS(middleware.DefaultCORSConfig(a.Config.Server.CORSOrigins...)),
	}
	if a.Metrics != nil {
		logCfg.Observer = a.Metrics
		health.WithObserver(a.Metrics)
		rc.MetricsHandler = a.Collector.Handler()
		rc.MetricsPath = a.Config.Metrics.Path
	}
	rc.Logging = middleware.RequestLogging(a.Logger.Named("http"), logCfg)
	return httpserver.NewRouter(rc)
}

// Serve runs the HTTP server, the gRPC health server when a gRPC port is
// configured, and the config watcher, until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Config.Server
	httpSrv := httpserver.NewServer(cfg, a.Handler(), a.Logger.Named("http"))

	var grpcSrv *grpcserver.Server
	if cfg.GRPCPort > 0 {
		var err error
		grpcSrv, err = grpcserver.NewServer(fmt.Sprintf(":%d", cfg.GRPCPort),
			grpcserver.WithLogger(a.Logger.Named("grpc")),
			grpcserver.WithReadiness(a.Engine.Ready, 0),
			grpcserver.WithGracefulTimeout(cfg.ShutdownTimeout),
		)
		if err != nil {
			return err
		}
	}

	if a.configPath != "" {
		a.watchConfig()
	}

	a.Logger.Info("risk engine starting",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.Int("http_port", cfg.Port),
		logging.Int("grpc_port", cfg.GRPCPort),
		logging.Int("corpus_records", a.Engine.Corpus().Len()),
		logging.String("default_source", a.Engine.DefaultSource().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(httpSrv.Start)
	if grpcSrv != nil {
		g.Go(grpcSrv.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if grpcSrv != nil {
			_ = grpcSrv.Stop(shutdownCtx)
		}
		return httpSrv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.Logger.Info("risk engine stopped")
	return err
}

// watchConfig applies log level changes from the config file. Other changes
// need a restart.
func (a *App) watchConfig() {
	setter, ok := a.Logger.(logging.LevelSetter)
	if !ok {
		return
	}
	err := config.Watch(a.configPath, func(c *config.Config) {
		if err := setter.SetLevel(c.Log.Level); err != nil {
			a.Logger.Warn("ignoring invalid log level", logging.String("level", c.Log.Level), logging.Err(err))
			return
		}
		a.Logger.Info("log level reloaded", logging.String("level", c.Log.Level))
	}, func(err error) {
		a.Logger.Warn("config reload rejected", logging.Err(err))
	})
	if err != nil {
		a.Logger.Warn("config watch disabled", logging.Err(err))
	}
}

//Personal.AI order the ending
