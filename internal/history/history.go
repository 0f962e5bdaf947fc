// Package history persists scored days and batch scoring runs.
package history

import (
	"sync"

	"github.com/huangsam/wellscore/internal/contract"
)

// Table names for zone history tracking.
const (
	scoringRunsTable = "scoring_runs"
	zoneHistoryTable = "zone_history"
)

// StoreManager holds the process-wide HistoryStore.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &StoreManager{} // Compile-time check

// GetHistoryStore returns the configured HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// NewManager wraps an existing store. Useful for servers and tests that
// manage the store lifecycle themselves.
func NewManager(store contract.HistoryStore) *StoreManager {
	return &StoreManager{store: store}
}
