package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// ScoreFunc scores a dataset and records it as one run.
type ScoreFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.RunSummary, int64, error)

// DailyScoringJob scores the configured dataset into zone history.
type DailyScoringJob struct {
	log     zerolog.Logger
	cfg     *contract.Config
	mgr     contract.HistoryManager
	score   ScoreFunc
	timeout time.Duration
}

// DailyScoringConfig holds configuration for the daily scoring job
type DailyScoringConfig struct {
	Log     zerolog.Logger
	Config  *contract.Config
	Manager contract.HistoryManager
	Timeout time.Duration // 0 means no timeout
}

// NewDailyScoringJob creates a new daily scoring job. The job reads the
// dataset at Config.InputPath on every run so the file can be refreshed
// between runs.
func NewDailyScoringJob(cfg DailyScoringConfig) *DailyScoringJob {
	return &DailyScoringJob{
		log:     cfg.Log.With().Str("job", "daily_scoring").Logger(),
		cfg:     cfg.Config,
		mgr:     cfg.Manager,
		score:   core.RunScheduledScoring,
		timeout: cfg.Timeout,
	}
}

// Name returns the job name
func (j *DailyScoringJob) Name() string {
	return "daily_scoring"
}

// Run scores the dataset and records the outcome.
func (j *DailyScoringJob) Run() error {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	j.log.Info().Str("input", j.cfg.InputPath).Msg("Starting scoring run")
	start := time.Now()

	summary, runID, err := j.score(ctx, j.cfg, j.mgr)
	if err != nil {
		j.log.Error().Err(err).Msg("Scoring run failed")
		return err
	}

	j.log.Info().
		Int64("run_id", runID).
		Int("scored", summary.Scored).
		Int("insufficient", summary.Insufficient).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("Scoring run completed")
	return nil
}
