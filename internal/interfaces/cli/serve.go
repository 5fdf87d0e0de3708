package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/app"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

// NewServeCmd creates the serve command. The server logs with the configured
// log settings, not the CLI's console logger.
func NewServeCmd() *cobra.Command {
	var port, grpcPort int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the risk engine HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("grpc-port") {
				cfg.Server.GRPCPort = grpcPort
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Log.Logging())
			if err != nil {
				return fmt.Errorf("logger initialization failed: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, &cfg, logger, app.WithConfigPath(cliCtx.ConfigPath))
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	cmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC health port, 0 disables (overrides config)")
	return cmd
}

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mfrrisk %s (commit: %s)\n", app.Version, app.GitCommit)
			return nil
		},
	}
}

//Personal.AI order the ending
