// Command rustbible builds the search index and sitemap of the Rust Bible
// content tree and serves a local preview API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"rustbible/internal/config"
	"rustbible/internal/store"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "rustbible",
	Short: "Content pipeline for the Rust Bible site",
	Long: `Scans public/Books and public/Lessons, writes search-index.json and
sitemap.xml, and serves a preview API over the same content.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		configureLogging(cfg)
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(buildCmd, serveCmd, searchCmd, verseCmd, routesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// configureLogging installs the default slog logger with the configured
// level and format.
func configureLogging(cfg *config.Config) {
	level, _ := config.ParseLogLevel(cfg.LogLevel) // Validated by config.Load
	opts := &slog.HandlerOptions{
		Level: level,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", level.String(), "format", cfg.LogFormat, "go_version", runtime.Version())
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

func contentStore(cfg *config.Config) *store.Store {
	return store.New(cfg.PublicDir)
}
