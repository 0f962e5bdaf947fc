package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/internal/logger"
	"github.com/huangsam/wellscore/internal/scheduler"
	"github.com/huangsam/wellscore/internal/server"
)

const (
	shutdownTimeout   = 10 * time.Second
	scheduledScoreMax = 30 * time.Minute
)

// serveCmd runs the HTTP API with optional scheduled scoring.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring API over HTTP",
	Long: `Start an HTTP server exposing evaluation, batch scoring, explanations,
score series and burnout projections.

With --schedule and --input, the dataset is re-read and scored on the cron
schedule and every run is recorded in zone history.

Endpoints:
  GET  /health
  GET  /api/factors
  POST /api/evaluate[?record=true]
  POST /api/batch[?record=true&limit=N]
  GET  /api/history/status
  GET  /api/employees/{id}/explanation
  GET  /api/employees/{id}/burnout[?days=N]
  GET  /api/employees/{id}/readiness[?days=N]
  GET  /api/employees/{id}/prediction[?horizon=N&days=N]

Examples:
  # Serve on the default port
  wellscore serve

  # Score team.json every morning at 06:00
  wellscore serve --port 9090 --schedule "0 6 * * *" --input team.json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runServe(rootCtx)
	},
}

func runServe(parent context.Context) error {
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if cfg.Schedule != "" && cfg.InputPath == "" {
		return errors.New("--schedule requires --input")
	}

	srv, err := server.New(server.Config{Log: log, Config: cfg, Manager: historyManager})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sched := scheduler.New(log)
	if cfg.Schedule != "" {
		job := scheduler.NewDailyScoringJob(scheduler.DailyScoringConfig{
			Log:     log,
			Config:  cfg,
			Manager: historyManager,
			Timeout: scheduledScoreMax,
		})
		if err := sched.AddJob(cfg.Schedule, job); err != nil {
			return fmt.Errorf("invalid --schedule: %w", err)
		}
		sched.Start()
		log.Info().Str("schedule", cfg.Schedule).Str("input", cfg.InputPath).Msg("Scheduled scoring enabled")
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		sched.Stop()
		return err
	case <-ctx.Done():
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
