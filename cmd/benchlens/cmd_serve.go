package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/benchlens/benchlens/infrastructure/httpapi"
	"github.com/benchlens/benchlens/infrastructure/middleware"
	"github.com/benchlens/benchlens/infrastructure/records"
	"github.com/benchlens/benchlens/internal/engine"
)

// serveConfig is read from the environment with the BENCHLENS prefix.
type serveConfig struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	EnableMetrics   bool          `envconfig:"ENABLE_METRICS" default:"true"`
}

func newServeCmd() *cobra.Command {
	var (
		catalogPath string
		recordsPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve computed scores as a read-only JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg serveConfig
			if err := envconfig.Process("benchlens", &cfg); err != nil {
				return fmt.Errorf("failed to read environment config: %w", err)
			}

			opts := []engine.Option{
				middleware.WithTracing(),
			}
			if cfg.EnableMetrics {
				opts = append(opts, engine.WithMetrics(middleware.NewPrometheusMetrics()))
			}

			eng, err := buildEngine(catalogPath, opts...)
			if err != nil {
				return err
			}

			server := httpapi.NewServer(eng, records.NewFileSource(recordsPath), httpapi.Config{
				AllowedOrigins: cfg.AllowedOrigins,
				EnableMetrics:  cfg.EnableMetrics,
			})

			httpServer := &http.Server{
				Addr:              cfg.Addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("benchlens listening on %s", cfg.Addr)
				errCh <- httpServer.ListenAndServe()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case sig := <-sigCh:
				log.Printf("received %s, shutting down", sig)
				ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "Path to the category catalog YAML")
	cmd.Flags().StringVar(&recordsPath, "records", "models.json", "Path to the merged model records JSON")
	return cmd
}
