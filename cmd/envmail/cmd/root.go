package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/envmail/envmail/internal/config"
	"github.com/envmail/envmail/internal/query"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "envmail",
	Short: "Read-only query tools for the Apple Mail envelope database",
	Long: `envmail exposes the local Apple Mail message index (the Envelope Index
SQLite database) as a set of read-only search tools.

The same operations are available as CLI commands and, via 'envmail mcp',
as MCP tools over stdio for Claude Desktop or any MCP client. The database
is always opened read-only; envmail never writes to Mail's data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout may carry MCP protocol traffic, so all logging goes
		// to stderr.
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if !cfg.MailDirExists() {
			logger.Warn("mail directory not found",
				"path", cfg.Mail.Directory,
				"hint", "set mail.directory in config.toml")
		}

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newEngine builds the query engine from the loaded configuration.
func newEngine() *query.EnvelopeEngine {
	return query.NewEnvelopeEngine(cfg, logger)
}

// printReport writes an engine result to stdout. Diagnostics render to
// their informational text, matching the soft-error behavior of the MCP
// surface; only unexpected errors propagate.
func printReport(text string, err error) error {
	if err != nil {
		if diag, ok := query.AsDiagnostic(err); ok {
			fmt.Println(diag.Message)
			return nil
		}
		return err
	}
	fmt.Println(text)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.envmail/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
