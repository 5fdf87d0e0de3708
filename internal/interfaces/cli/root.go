// Package cli implements the mfrrisk command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/app"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/client"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Timeout    time.Duration
	ServerAddr string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	ConfigPath string
	Config     *config.Config
	Logger     logging.Logger
	// Client is set only when --server is given; commands then run against
	// that server instead of an in-process engine.
	Client  *client.Client
	Timeout time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mfrrisk",
		Short: "Fire-resistance risk scoring for materials",
		Long: "mfrrisk scores the relative fire failure risk of a material under a thermal\n" +
			"exposure and lists the most similar specimens from a reference corpus.",
		Version: fmt.Sprintf("%s (commit: %s)", app.Version, app.GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: MFR_* environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "global operation timeout")
	pf.StringVar(&opts.ServerAddr, "server", "", "run against a risk engine API server instead of in-process")

	cmd.AddCommand(
		NewAssessCmd(),
		NewCorpusCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger, and client, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.LoadOrEnv(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            strings.ToLower(opts.LogLevel),
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		ConfigPath: opts.ConfigPath,
		Config:     cfg,
		Logger:     logger,
		Timeout:    opts.Timeout,
	}
	if opts.ServerAddr != "" {
		c, err := client.NewClient(opts.ServerAddr, client.WithTimeout(opts.Timeout))
		if err != nil {
			return fmt.Errorf("API client initialization failed: %w", err)
		}
		cliCtx.Client = c
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeInternal, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// localApp builds an in-process engine for one-shot commands. Metrics are
// not collected.
func (c *CLIContext) localApp(ctx context.Context) (*app.App, error) {
	cfg := *c.Config
	cfg.Metrics.Enabled = false
	return app.New(ctx, &cfg, c.Logger)
}

// Execute is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// printJSON outputs data as indented JSON to stdout.
func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// validateOutput accepts text and json.
func validateOutput(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return errors.New(errors.ErrCodeValidation, "invalid output format").WithDetail(format + " (must be text or json)")
	}
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
