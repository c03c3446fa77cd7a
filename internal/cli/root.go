// Package cli implements the petdocs command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bjaus/petdocs/internal/petstore"
	"github.com/bjaus/petdocs/internal/server"
)

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the command tree. The root command serves the API.
func NewRootCmd() *cobra.Command {
	cfg := server.DefaultConfig()
	var verbose bool

	cmd := &cobra.Command{
		Use:           "petdocs",
		Short:         "Serve the pet store API and its generated documentation",
		Long:          "petdocs serves an in-memory pet store, a few request echo endpoints and an OpenAPI document describing them, browsable at /docs.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				return newUsageError(fmt.Sprintf("unexpected argument %q\n\n%s", args[0], c.UsageString()))
			}
			return nil
		},
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if cfg.Port < 0 || cfg.Port > 65535 {
				return newUsageError(fmt.Sprintf("invalid port %d\n\n%s", cfg.Port, c.UsageString()))
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			logger := newLogger(c.ErrOrStderr(), verbose)
			srv := server.New(cfg, logger, petstore.NewSeeded())
			if err := srv.Run(c.Context()); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			logger.Info("stopped")
			return nil
		},
	}

	addServerFlags(cmd.PersistentFlags(), &cfg)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	cmd.AddCommand(newSpecCmd(&cfg))

	for _, sub := range append(cmd.Commands(), cmd) {
		sub.SetFlagErrorFunc(flagError)
	}

	return cmd
}

// flagError turns pflag parse failures into usage errors that carry the
// command's help text.
func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

func addServerFlags(fs *pflag.FlagSet, cfg *server.Config) {
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Host to bind (default all interfaces)")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
