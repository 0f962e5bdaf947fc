// Package core has core logic for personalization, scoring and explanation.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/wellscore/core/synth"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/internal/outwriter"
	"github.com/huangsam/wellscore/schema"
)

// ExecutorFunc defines the function signature for executing the scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ErrHistoryDisabled is returned by history lookups when no store is configured.
var ErrHistoryDisabled = errors.New("zone history is disabled")

// ErrArchetypeMismatch is returned by the demo when a synthetic employee lands
// outside its expected zone.
var ErrArchetypeMismatch = errors.New("synthetic employees landed outside their expected zone")

// NewEngineFromConfig builds an engine from the configured factor table and
// scaling constant, falling back to the defaults for unset values.
func NewEngineFromConfig(cfg *contract.Config) (*Engine, error) {
	table := cfg.FactorTable
	if len(table) == 0 {
		table = schema.DefaultFactorTable
	}
	scaling := cfg.Scaling
	if scaling == 0 {
		scaling = schema.DefaultScaling
	}
	return NewEngine(table, scaling)
}

// historyStore returns the store behind mgr, or nil when history is off.
func historyStore(mgr contract.HistoryManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// GetEvaluationResult scores one employee-day and records it when cfg.Record is set.
func GetEvaluationResult(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, in schema.EvaluationInput) (*schema.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if in.Day().IsZero() {
		in.AsOf = cfg.AsOf
	}
	result, err := engine.Evaluate(in)
	if err != nil {
		return nil, err
	}
	if cfg.Record {
		recordResult(historyStore(mgr), result)
	}
	return result, nil
}

// recordResult stores a single scored day outside of any scoring run.
func recordResult(store contract.HistoryStore, result *schema.ScoreResult) {
	if store == nil || result.InsufficientData() {
		return
	}
	rec, err := schema.NewZoneHistoryRecord(result, 0, time.Now())
	if err != nil {
		contract.LogWarn("Skipping history record", err)
		return
	}
	if err := store.RecordResult(rec); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to record history for %s", result.EmployeeID), err)
	}
}

// ExecuteEvaluate scores the employee-day at cfg.InputPath and prints the explanation.
// It serves as the main entry point for the 'evaluate' command.
func ExecuteEvaluate(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	in, err := LoadInput(cfg.InputPath)
	if err != nil {
		return err
	}
	result, err := GetEvaluationResult(ctx, cfg, mgr, in)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteEvaluation(result, cfg, duration)
}

// GetBatchReport scores every employee in ds, records the outcome inside a
// scoring run when cfg.Record is set, and ranks the scored employees.
func GetBatchReport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, ds schema.Dataset) (outwriter.BatchReport, error) {
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return outwriter.BatchReport{}, err
	}

	asOf := cfg.AsOf
	if asOf.IsZero() {
		asOf = ds.AsOf
	}
	inputs := applyAsOf(ds.Employees, asOf)
	if cfg.Output == schema.TextOut && !shouldSuppressHeader(ctx) {
		logBatchHeader(cfg, asOf, len(inputs))
	}

	items := ScoreBatch(ctx, engine, inputs, cfg.Workers)
	if err := ctx.Err(); err != nil {
		return outwriter.BatchReport{}, err
	}

	var store contract.HistoryStore
	if cfg.Record {
		store = historyStore(mgr)
	}
	summary, runID := RecordBatch(store, cfg, items)

	return outwriter.BatchReport{
		AsOf:     asOf,
		RunID:    runID,
		Results:  schema.RankResults(rankResults(items, cfg.ResultLimit)),
		Summary:  summary,
		Failures: failures(items),
	}, nil
}

// logBatchHeader prints a concise, 2-line header for a batch.
func logBatchHeader(cfg *contract.Config, asOf schema.Date, employees int) {
	day := "per employee"
	if !asOf.IsZero() {
		day = asOf.String()
	}
	fmt.Printf("🔎 Dataset: %s (%d employees)\n", cfg.InputPath, employees)
	fmt.Printf("📅 Day: %s\n", day)
}

// ExecuteBatch scores the dataset at cfg.InputPath and prints the ranking.
// It serves as the main entry point for the 'batch' command.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	ds, err := LoadDataset(cfg.InputPath)
	if err != nil {
		return err
	}
	report, err := GetBatchReport(ctx, cfg, mgr, ds)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteBatch(report, cfg, duration)
}

// RunScheduledScoring scores the dataset at cfg.InputPath for today (unless
// cfg.AsOf is set) and always records the run. Background jobs use it.
func RunScheduledScoring(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) (schema.RunSummary, int64, error) {
	ds, err := LoadDataset(cfg.InputPath)
	if err != nil {
		return schema.RunSummary{}, 0, err
	}
	runCfg := cfg.Clone()
	runCfg.Record = true
	if runCfg.AsOf.IsZero() && ds.AsOf.IsZero() {
		runCfg.AsOf = schema.NewDate(time.Now())
	}
	report, err := GetBatchReport(WithSuppressHeader(ctx), runCfg, mgr, ds)
	if err != nil {
		return schema.RunSummary{}, 0, err
	}
	return report.Summary, report.RunID, nil
}

// ExecuteFactors prints the factor table the engine scores with.
func ExecuteFactors(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteFactors(engine.Table(), engine.Scaling(), cfg)
}

// GetDemoChecks fabricates synthetic employees, optionally writes them out as a
// dataset, and scores each against its archetype's expected zone.
func GetDemoChecks(ctx context.Context, cfg *contract.Config) ([]synth.Check, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	perArchetype := cfg.PerArchetype
	if perArchetype <= 0 {
		perArchetype = contract.DefaultPerArchetype
	}
	samples := synth.Generate(cfg.AsOf, perArchetype, cfg.Seed)
	if cfg.DatasetOut != "" {
		ds := synth.Dataset(samples[0].Input.AsOf, samples)
		if err := SaveDataset(cfg.DatasetOut, ds); err != nil {
			return nil, fmt.Errorf("cannot write dataset: %w", err)
		}
	}
	engine, err := NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return synth.Verify(engine, samples)
}

// ExecuteDemo runs the synthetic archetype acceptance check and prints it.
// A mismatch is reported after the output is written.
func ExecuteDemo(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	checks, err := GetDemoChecks(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	if err := outwriter.WriteDemo(checks, cfg, duration); err != nil {
		return err
	}
	if n := synth.Mismatches(checks); n > 0 {
		return fmt.Errorf("%w: %d of %d", ErrArchetypeMismatch, n, len(checks))
	}
	return nil
}

// GetHistoryTrend returns up to cfg.ResultLimit recorded days for an employee,
// newest first, and a burnout projection cfg.Horizon days out. The projection
// is nil when there is not enough history to fit a trend.
func GetHistoryTrend(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, employeeID string) ([]schema.ZoneHistoryRecord, *schema.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	store := historyStore(mgr)
	if store == nil {
		return nil, nil, ErrHistoryDisabled
	}
	records, err := store.GetHistory(employeeID, cfg.ResultLimit)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no history for employee %s: %w", employeeID, contract.ErrNotFound)
	}

	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = schema.DefaultHorizon
	}
	prediction, err := PredictTrend(employeeID, records, horizon)
	if errors.Is(err, ErrInsufficientHistory) {
		return records, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return records, prediction, nil
}

// GetLatestResult rebuilds the most recent scored day for an employee from history.
func GetLatestResult(ctx context.Context, mgr contract.HistoryManager, employeeID string) (*schema.ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	store := historyStore(mgr)
	if store == nil {
		return nil, ErrHistoryDisabled
	}
	rec, err := store.GetLatest(employeeID)
	if err != nil {
		return nil, err
	}
	return rec.ScoreResult(), nil
}

// ExecuteHistoryShow prints an employee's recorded days and trend.
func ExecuteHistoryShow(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, employeeID string) error {
	records, prediction, err := GetHistoryTrend(ctx, cfg, mgr, employeeID)
	if err != nil {
		return err
	}
	return outwriter.WriteHistory(records, prediction, cfg)
}
