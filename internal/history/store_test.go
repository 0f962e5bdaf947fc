package history

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

func day(s string) schema.Date {
	d, err := schema.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func record(employeeID, on string, burnout float64, runID int64) schema.ZoneHistoryRecord {
	return schema.ZoneHistoryRecord{
		EmployeeID:     employeeID,
		Day:            day(on),
		Zone:           schema.ZoneForScore(burnout),
		BurnoutScore:   burnout,
		ReadinessScore: 100 - burnout,
		Explanation: schema.Explanation{
			Zone:           schema.ZoneForScore(burnout),
			BurnoutScore:   burnout,
			ReadinessScore: 100 - burnout,
			Factors: []schema.Factor{
				{Key: schema.FactorSleepHours, Name: "Sleep Duration", Impact: schema.ImpactNegative, Weight: 1},
			},
		},
		RunID:      runID,
		RecordedAt: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
	}
}

func newMemoryStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_NoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, time.Now(), schema.RunSummary{Scored: 1}))
	assert.NoError(t, store.RecordResult(record("emp-1", "2026-03-01", 50, 0)))

	history, err := store.GetHistory("emp-1", 10)
	assert.NoError(t, err)
	assert.Empty(t, history)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	assert.NoError(t, store.Close())
}

func TestStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestStore_RunLifecycle(t *testing.T) {
	store := newMemoryStore(t)

	start := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(start, map[string]any{"workers": 4, "input": "team.json"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	summary := schema.RunSummary{Scored: 3, Insufficient: 1, Failed: 2}
	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), summary))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, int32(3), run.EmployeesScored)
	assert.Equal(t, int32(1), run.InsufficientCount)
	assert.Equal(t, int32(2), run.FailedCount)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, `"workers":4`)
}

func TestStore_EndRunUnknown(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndRun(99, time.Now(), schema.RunSummary{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, contract.ErrNotFound))
}

func TestStore_RecordAndHistory(t *testing.T) {
	store := newMemoryStore(t)

	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-01", 30, 1)))
	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-03", 72.5, 2)))
	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-02", 45, 0)))
	require.NoError(t, store.RecordResult(record("emp-2", "2026-03-01", 10, 1)))

	history, err := store.GetHistory("emp-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2026-03-03", history[0].Day.String())
	assert.Equal(t, "2026-03-02", history[1].Day.String())
	assert.Equal(t, "2026-03-01", history[2].Day.String())

	assert.Equal(t, schema.ZoneRed, history[0].Zone)
	assert.Equal(t, 72.5, history[0].BurnoutScore)
	assert.Equal(t, int64(2), history[0].RunID)
	assert.Equal(t, int64(0), history[1].RunID)
	require.Len(t, history[0].Explanation.Factors, 1)
	assert.Equal(t, schema.FactorSleepHours, history[0].Explanation.Factors[0].Key)
	assert.True(t, history[0].RecordedAt.Equal(time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)))

	limited, err := store.GetHistory("emp-1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	latest, err := store.GetLatest("emp-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", latest.Day.String())

	all, err := store.GetAllHistory()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "emp-1", all[0].EmployeeID)
	assert.Equal(t, "2026-03-01", all[0].Day.String())
	assert.Equal(t, "emp-2", all[3].EmployeeID)
}

func TestStore_RecordUpsertsSameDay(t *testing.T) {
	store := newMemoryStore(t)

	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-01", 30, 1)))
	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-01", 80, 2)))

	history, err := store.GetHistory("emp-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 80.0, history[0].BurnoutScore)
	assert.Equal(t, schema.ZoneRed, history[0].Zone)
	assert.Equal(t, int64(2), history[0].RunID)
}

func TestStore_RecordRejectsIncomplete(t *testing.T) {
	store := newMemoryStore(t)
	rec := record("", "2026-03-01", 30, 0)
	assert.Error(t, store.RecordResult(rec))
}

func TestStore_GetLatestNotFound(t *testing.T) {
	store := newMemoryStore(t)
	_, err := store.GetLatest("nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestStore_Status(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 0, status.TotalRuns)

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-01", 30, runID)))
	require.NoError(t, store.RecordResult(record("emp-1", "2026-03-02", 75, runID)))
	require.NoError(t, store.RecordResult(record("emp-2", "2026-03-01", 50, runID)))
	require.NoError(t, store.EndRun(runID, time.Now(), schema.RunSummary{Scored: 3}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.Equal(t, 3, status.TotalRecords)
	assert.Equal(t, 2, status.TotalEmployees)
	assert.Equal(t, 1, status.ZoneCounts[schema.ZoneGreen])
	assert.Equal(t, 1, status.ZoneCounts[schema.ZoneYellow])
	assert.Equal(t, 1, status.ZoneCounts[schema.ZoneRed])
	assert.Equal(t, int64(3), status.TableSizes[zoneHistoryTable])
}

func TestRebind(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "SELECT * FROM t WHERE a = ? AND b = ?"},
		{schema.MySQLBackend, "SELECT * FROM t WHERE a = ? AND b = ?"},
		{schema.PostgreSQLBackend, "SELECT * FROM t WHERE a = $1 AND b = $2"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, rebind("SELECT * FROM t WHERE a = ? AND b = ?", tt.backend))
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`zone_history`", quoteTableName(zoneHistoryTable, schema.MySQLBackend))
	assert.Equal(t, `"zone_history"`, quoteTableName(zoneHistoryTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"zone_history"`, quoteTableName(zoneHistoryTable, schema.SQLiteBackend))
}
