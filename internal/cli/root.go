// Package cli implements the finance-tracker command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/finance-tracker/backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options are shared by all commands. cfg is populated before any
// command runs.
type options struct {
	configFile string
	cfg        config.Config
}

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "finance-tracker",
		Short: "Personal finance tracking API",
		Long: `finance-tracker serves a JSON API to track income and expenses,
categorize them, keep budgets and analyze spending over time.

Configuration is read from an optional file and from environment
variables prefixed with ` + config.EnvPrefix + `_.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(o.configFile)
			if err != nil {
				return err
			}
			o.cfg = cfg

			switch cfg.Server.Mode {
			case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
			default:
				return fmt.Errorf("invalid server mode %q, must be debug, release or test", cfg.Server.Mode)
			}
			gin.SetMode(cfg.Server.Mode)
			return setupLogging(cmd.ErrOrStderr(), cfg.Log)
		},
	}

	cmd.PersistentFlags().StringVar(&o.configFile, "config", "", "config file (yaml, json or toml)")

	cmd.AddCommand(serveCmd(o))
	cmd.AddCommand(seedCmd(o))
	cmd.AddCommand(versionCmd())

	return cmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the context of
// the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging configures the global logger. Without an explicit format,
// output is human readable in gin's debug mode and JSON otherwise.
func setupLogging(w io.Writer, c config.Log) error {
	output := w
	switch c.Format {
	case "human":
		output = zerolog.ConsoleWriter{Out: w}
	case "json":
	case "":
		if gin.IsDebugging() {
			output = zerolog.ConsoleWriter{Out: w}
		}
	default:
		return fmt.Errorf("invalid log format %q, must be human or json", c.Format)
	}

	level := zerolog.InfoLevel
	if gin.IsDebugging() {
		level = zerolog.DebugLevel
	}

	if c.Level != "" {
		parsed, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}
