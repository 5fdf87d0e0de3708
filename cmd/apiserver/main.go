// API server entry point for the MFR risk engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/app"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file (empty: MFR_* environment only)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	grpcPort := flag.Int("grpc-port", -1, "gRPC health port, 0 disables (overrides config)")
	flag.Parse()

	if err := run(*configPath, *httpPort, *grpcPort); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, httpPort, grpcPort int) error {
	if _, err := os.Stat(configPath); configPath != "" && err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s not readable, using environment only: %v\n", configPath, err)
		configPath = ""
	}
	cfg, err := config.LoadOrEnv(configPath)
	if err != nil {
		return err
	}
	if httpPort > 0 {
		cfg.Server.Port = httpPort
	}
	if grpcPort >= 0 {
		cfg.Server.GRPCPort = grpcPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.Logging())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, app.WithConfigPath(configPath))
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close failed", logging.Err(err))
		}
	}()
	return a.Serve(ctx)
}

//Personal.AI order the ending
