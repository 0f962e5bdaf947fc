package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// ScoreBatch evaluates every input using a pool of workers. Evaluations are
// independent, so items are written in place and keep the input order.
func ScoreBatch(ctx context.Context, engine *Engine, inputs []schema.EvaluationInput, workers int) []schema.BatchItem {
	items := make([]schema.BatchItem, len(inputs))
	if workers <= 0 {
		workers = 1
	}
	idxCh := make(chan int, len(inputs))
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				items[i] = scoreOne(ctx, engine, inputs[i])
			}
		})
	}

	for i := range inputs {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return items
}

func scoreOne(ctx context.Context, engine *Engine, in schema.EvaluationInput) schema.BatchItem {
	item := schema.BatchItem{EmployeeID: in.EmployeeID}
	if err := ctx.Err(); err != nil {
		item.Error = err.Error()
		return item
	}
	res, err := engine.Evaluate(in)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Result = res
	return item
}

// Summarize counts the outcome of a batch.
func Summarize(items []schema.BatchItem) schema.RunSummary {
	var s schema.RunSummary
	for _, it := range items {
		switch {
		case it.Error != "":
			s.Failed++
		case it.Result.InsufficientData():
			s.Insufficient++
		default:
			s.Scored++
		}
	}
	return s
}

// RecordBatch persists scored items inside a scoring run and returns the run ID,
// or zero when nothing was tracked. Store failures are logged as warnings and
// never fail the batch.
func RecordBatch(store contract.HistoryStore, cfg *contract.Config, items []schema.BatchItem) (schema.RunSummary, int64) {
	summary := Summarize(items)
	if store == nil {
		return summary, 0
	}

	configParams := map[string]any{
		"as_of":     cfg.AsOf.String(),
		"workers":   cfg.Workers,
		"scaling":   cfg.Scaling,
		"overrides": len(cfg.FactorOverrides),
		"input":     cfg.InputPath,
	}
	runID, err := store.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Scoring run tracking initialization failed", err)
	}

	now := time.Now()
	for _, it := range items {
		if it.Result == nil || it.Result.InsufficientData() {
			continue
		}
		rec, err := schema.NewZoneHistoryRecord(it.Result, runID, now)
		if err != nil {
			contract.LogWarn("Skipping history record", err)
			continue
		}
		if err := store.RecordResult(rec); err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to record history for %s", it.EmployeeID), err)
		}
	}

	if runID > 0 {
		if err := store.EndRun(runID, time.Now(), summary); err != nil {
			contract.LogWarn("Failed to finalize scoring run", err)
		}
	}
	return summary, runID
}

// rankResults keeps scored results ordered by burnout, highest first.
func rankResults(items []schema.BatchItem, limit int) []*schema.ScoreResult {
	var scored []*schema.ScoreResult
	for _, it := range items {
		if it.Result != nil && !it.Result.InsufficientData() {
			scored = append(scored, it.Result)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].BurnoutScore != scored[j].BurnoutScore {
			return scored[i].BurnoutScore > scored[j].BurnoutScore
		}
		return scored[i].EmployeeID < scored[j].EmployeeID
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// failures returns items that could not be scored.
func failures(items []schema.BatchItem) []schema.BatchItem {
	var out []schema.BatchItem
	for _, it := range items {
		if it.Error != "" {
			out = append(out, it)
		}
	}
	return out
}
