package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/internal/parquet"
)

// ExportParquet writes every scoring run and history record from the store
// into two Parquet files next to outputFile.
func ExportParquet(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("zone history is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRecords == 0 && status.TotalRuns == 0 {
		return errors.New("no zone history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}
	records, err := store.GetAllHistory()
	if err != nil {
		return fmt.Errorf("failed to retrieve zone history: %w", err)
	}

	parquetRuns := parquet.ConvertScoringRunRecords(runs)
	parquetHistory, err := parquet.ConvertZoneHistoryRecords(records)
	if err != nil {
		return err
	}

	runsFile := outputFile + ".scoring_runs.parquet"
	if err := parquet.WriteScoringRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scoring runs to: %s\n", len(parquetRuns), runsFile)

	historyFile := outputFile + ".zone_history.parquet"
	if err := parquet.WriteZoneHistoryParquet(parquetHistory, historyFile); err != nil {
		return fmt.Errorf("failed to write zone history: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d zone history records to: %s\n", len(parquetHistory), historyFile)

	return nil
}
