package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"rustbible/internal/http"
	"rustbible/internal/metrics"
	"rustbible/internal/service"
	"rustbible/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the preview API and the public directory",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFrom(cmd)

	// Initialize database
	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	m := metrics.New(version, runtime.Version())
	siteService := service.NewSiteService(
		contentStore(cfg),
		storage.NewStateRepo(db),
		m,
		service.SiteConfig{
			VersePolicy: cfg.VersePolicy,
			SearchLimit: cfg.SearchLimit,
		},
	)

	router := http.NewRouter(&http.Deps{
		SiteService: siteService,
		Metrics:     m,
		DB:          db,
		PublicDir:   cfg.PublicDir,
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr, "public_dir", cfg.PublicDir)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
