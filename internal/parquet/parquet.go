// Package parquet provides data structures and functions for exporting zone
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/wellscore/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoringRun represents a single batch scoring run with metadata.
// This struct maps to the scoring_runs database table.
type ScoringRun struct {
	// RunID is the unique identifier for this scoring run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	EmployeesScored   int32 `parquet:"employees_scored,snappy"`
	InsufficientCount int32 `parquet:"insufficient_count,snappy"`
	FailedCount       int32 `parquet:"failed_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ZoneHistory represents the score of one employee-day.
// This struct maps to the zone_history database table.
type ZoneHistory struct {
	EmployeeID string `parquet:"employee_id,snappy,dict"`

	// Day is the scored calendar day in YYYY-MM-DD form
	Day string `parquet:"day,snappy"`

	Zone           string  `parquet:"zone,snappy,dict"`
	BurnoutScore   float64 `parquet:"burnout_score,snappy"`
	ReadinessScore float64 `parquet:"readiness_score,snappy"`
	WellnessScore  float64 `parquet:"wellness_score,snappy"`

	// TopRisk names the largest negative factor, or "-" when there is none
	TopRisk string `parquet:"top_risk,snappy"`

	// Explanation is the JSON-encoded explanation
	Explanation string `parquet:"explanation,snappy"`

	// RunID references the parent scoring run (nullable for single evaluations)
	RunID *int64 `parquet:"run_id,optional,snappy"`

	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// writeParquet writes rows of any struct type to a Parquet file.
func writeParquet[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteScoringRunsParquet writes scoring runs to a Parquet file.
func WriteScoringRunsParquet(data []ScoringRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteZoneHistoryParquet writes zone history rows to a Parquet file.
func WriteZoneHistoryParquet(data []ZoneHistory, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertScoringRunRecords converts schema.ScoringRunRecord to ScoringRun for Parquet export.
func ConvertScoringRunRecords(records []schema.ScoringRunRecord) []ScoringRun {
	result := make([]ScoringRun, len(records))
	for i, record := range records {
		result[i] = ScoringRun{
			RunID:             record.RunID,
			StartTime:         record.StartTime,
			EndTime:           record.EndTime,
			RunDurationMs:     record.RunDurationMs,
			EmployeesScored:   record.EmployeesScored,
			InsufficientCount: record.InsufficientCount,
			FailedCount:       record.FailedCount,
			ConfigParams:      record.ConfigParams,
		}
	}
	return result
}

// ConvertZoneHistoryRecords converts schema.ZoneHistoryRecord to ZoneHistory for Parquet export.
func ConvertZoneHistoryRecords(records []schema.ZoneHistoryRecord) ([]ZoneHistory, error) {
	result := make([]ZoneHistory, len(records))
	for i, record := range records {
		explanation, err := record.ExplanationJSON()
		if err != nil {
			return nil, fmt.Errorf("cannot encode explanation for %s on %s: %w", record.EmployeeID, record.Day, err)
		}
		var runID *int64
		if record.RunID > 0 {
			id := record.RunID
			runID = &id
		}
		result[i] = ZoneHistory{
			EmployeeID:     record.EmployeeID,
			Day:            record.Day.String(),
			Zone:           string(record.Zone),
			BurnoutScore:   record.BurnoutScore,
			ReadinessScore: record.ReadinessScore,
			WellnessScore:  schema.WellnessFromBurnout(record.BurnoutScore),
			TopRisk:        schema.TopRisk(record.ScoreResult()),
			Explanation:    explanation,
			RunID:          runID,
			RecordedAt:     record.RecordedAt,
		}
	}
	return result, nil
}
