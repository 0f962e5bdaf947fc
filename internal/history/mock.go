package history

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// MockManager is a mock implementation of HistoryManager for testing.
type MockManager struct {
	mock.Mock
}

var _ contract.HistoryManager = &MockManager{} // Compile-time check

// GetHistoryStore implements the HistoryManager interface.
func (m *MockManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockStore is a mock implementation of HistoryStore for testing.
type MockStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockStore) EndRun(runID int64, endTime time.Time, summary schema.RunSummary) error {
	args := m.Called(runID, endTime, summary)
	return args.Error(0)
}

// RecordResult implements the HistoryStore interface.
func (m *MockStore) RecordResult(record schema.ZoneHistoryRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// GetLatest implements the HistoryStore interface.
func (m *MockStore) GetLatest(employeeID string) (*schema.ZoneHistoryRecord, error) {
	args := m.Called(employeeID)
	record, _ := args.Get(0).(*schema.ZoneHistoryRecord)
	return record, args.Error(1)
}

// GetHistory implements the HistoryStore interface.
func (m *MockStore) GetHistory(employeeID string, limit int) ([]schema.ZoneHistoryRecord, error) {
	args := m.Called(employeeID, limit)
	records, _ := args.Get(0).([]schema.ZoneHistoryRecord)
	return records, args.Error(1)
}

// GetAllHistory implements the HistoryStore interface.
func (m *MockStore) GetAllHistory() ([]schema.ZoneHistoryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ZoneHistoryRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockStore) GetAllRuns() ([]schema.ScoringRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ScoringRunRecord)
	return runs, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
