package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mandalnilabja/keyprobe/internal/app"
	"github.com/mandalnilabja/keyprobe/internal/telemetry"
	"github.com/mandalnilabja/keyprobe/internal/version"
)

// shutdownTimeout bounds the wait for in-flight requests on exit.
const shutdownTimeout = 15 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closer, err := setupLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupProvider(ctx, telemetry.Config{
		ServiceName:    "keyprobe",
		ServiceVersion: version.Version,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}

	srv := app.NewServer(cfg, app.NewHandler(cfg, logger), logger)

	printStartupBanner(cfg)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
		_ = shutdownTracing(context.Background())
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if tErr := shutdownTracing(shutdownCtx); tErr != nil {
		logger.Warn("tracing shutdown failed", "error", tErr)
	}
	if err != nil {
		return err
	}
	return <-errCh
}
