// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"errors"
	"time"

	"github.com/huangsam/wellscore/schema"
)

// ErrNotFound is returned by history lookups that match no rows.
var ErrNotFound = errors.New("not found")

// HistoryManager defines the interface for reaching the zone history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for persisting scored days and scoring runs.
type HistoryStore interface {
	// BeginRun creates a new scoring run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the scoring run with completion data
	EndRun(runID int64, endTime time.Time, summary schema.RunSummary) error

	// RecordResult upserts the score for one employee-day
	RecordResult(record schema.ZoneHistoryRecord) error

	// GetLatest returns the most recent record for an employee, or ErrNotFound
	GetLatest(employeeID string) (*schema.ZoneHistoryRecord, error)

	// GetHistory returns up to limit records for an employee, newest first.
	// A limit of zero or less returns everything.
	GetHistory(employeeID string, limit int) ([]schema.ZoneHistoryRecord, error)

	// GetAllHistory returns every record ordered by employee and day
	GetAllHistory() ([]schema.ZoneHistoryRecord, error)

	// GetAllRuns returns every scoring run ordered by ID
	GetAllRuns() ([]schema.ScoringRunRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
