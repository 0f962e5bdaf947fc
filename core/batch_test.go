package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/internal/history"
	"github.com/huangsam/wellscore/schema"
)

func batchDay() schema.Date {
	d, err := schema.ParseDate("2026-03-10")
	if err != nil {
		panic(err)
	}
	return d
}

func invalidInput() schema.EvaluationInput {
	in := greenInput()
	in.EmployeeID = "emp-invalid"
	in.Health.SleepHours = f(30)
	return in
}

func emptyInput() schema.EvaluationInput {
	return schema.EvaluationInput{EmployeeID: "emp-empty", AsOf: batchDay()}
}

func batchInputs() []schema.EvaluationInput {
	return applyAsOf([]schema.EvaluationInput{greenInput(), redInput(), invalidInput(), emptyInput()}, batchDay())
}

func TestScoreBatchPreservesOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		items := ScoreBatch(context.Background(), DefaultEngine, batchInputs(), workers)
		require.Len(t, items, 4)

		assert.Equal(t, "emp-green", items[0].EmployeeID)
		assert.Equal(t, schema.ZoneGreen, items[0].Result.Zone)
		assert.Equal(t, "emp-red", items[1].EmployeeID)
		assert.Equal(t, schema.ZoneRed, items[1].Result.Zone)
		assert.Equal(t, "emp-invalid", items[2].EmployeeID)
		assert.Nil(t, items[2].Result)
		assert.Contains(t, items[2].Error, "health.sleep_hours")
		assert.Equal(t, "emp-empty", items[3].EmployeeID)
		assert.True(t, items[3].Result.InsufficientData())
	}
}

func TestScoreBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := ScoreBatch(ctx, DefaultEngine, batchInputs(), 2)
	for _, it := range items {
		assert.Nil(t, it.Result)
		assert.Equal(t, context.Canceled.Error(), it.Error)
	}
}

func TestSummarize(t *testing.T) {
	items := ScoreBatch(context.Background(), DefaultEngine, batchInputs(), 2)
	assert.Equal(t, schema.RunSummary{Scored: 2, Insufficient: 1, Failed: 1}, Summarize(items))
	assert.Equal(t, schema.RunSummary{}, Summarize(nil))
}

func TestRecordBatch(t *testing.T) {
	items := ScoreBatch(context.Background(), DefaultEngine, batchInputs(), 2)
	cfg := &contract.Config{AsOf: batchDay(), Workers: 2, Scaling: schema.DefaultScaling}
	want := schema.RunSummary{Scored: 2, Insufficient: 1, Failed: 1}

	t.Run("nil store only summarizes", func(t *testing.T) {
		summary, runID := RecordBatch(nil, cfg, items)
		assert.Equal(t, want, summary)
		assert.Zero(t, runID)
	})

	t.Run("records scored items inside a run", func(t *testing.T) {
		store := &history.MockStore{}
		store.On("BeginRun", mock.Anything, mock.MatchedBy(func(p map[string]any) bool {
			return p["as_of"] == "2026-03-10" && p["workers"] == 2
		})).Return(int64(7), nil)
		store.On("RecordResult", mock.MatchedBy(func(r schema.ZoneHistoryRecord) bool {
			return r.RunID == 7 && (r.EmployeeID == "emp-green" || r.EmployeeID == "emp-red")
		})).Return(nil).Twice()
		store.On("EndRun", int64(7), mock.Anything, want).Return(nil)

		summary, runID := RecordBatch(store, cfg, items)
		assert.Equal(t, want, summary)
		assert.Equal(t, int64(7), runID)
		store.AssertExpectations(t)
	})

	t.Run("store failures do not fail the batch", func(t *testing.T) {
		store := &history.MockStore{}
		store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
		store.On("RecordResult", mock.Anything).Return(errors.New("db down")).Twice()

		summary, runID := RecordBatch(store, cfg, items)
		assert.Equal(t, want, summary)
		assert.Zero(t, runID)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRankResults(t *testing.T) {
	items := ScoreBatch(context.Background(), DefaultEngine, batchInputs(), 2)

	ranked := rankResults(items, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, "emp-red", ranked[0].EmployeeID)
	assert.Equal(t, "emp-green", ranked[1].EmployeeID)

	limited := rankResults(items, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "emp-red", limited[0].EmployeeID)
}

func TestRankResultsTiesByEmployee(t *testing.T) {
	items := []schema.BatchItem{
		{EmployeeID: "b", Result: &schema.ScoreResult{EmployeeID: "b", Status: schema.StatusScored, BurnoutScore: 50}},
		{EmployeeID: "a", Result: &schema.ScoreResult{EmployeeID: "a", Status: schema.StatusScored, BurnoutScore: 50}},
		{EmployeeID: "c", Result: &schema.ScoreResult{EmployeeID: "c", Status: schema.StatusScored, BurnoutScore: 60}},
	}
	ranked := rankResults(items, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{ranked[0].EmployeeID, ranked[1].EmployeeID, ranked[2].EmployeeID})
}

func TestFailures(t *testing.T) {
	items := ScoreBatch(context.Background(), DefaultEngine, batchInputs(), 2)
	failed := failures(items)
	require.Len(t, failed, 1)
	assert.Equal(t, "emp-invalid", failed[0].EmployeeID)
}

func BenchmarkScoreBatch(b *testing.B) {
	inputs := make([]schema.EvaluationInput, 0, 200)
	for range 100 {
		inputs = append(inputs, greenInput(), redInput())
	}
	inputs = applyAsOf(inputs, batchDay())
	for b.Loop() {
		_ = ScoreBatch(context.Background(), DefaultEngine, inputs, 4)
	}
}
