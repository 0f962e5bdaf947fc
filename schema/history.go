package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// ZoneHistoryRecord is a persisted score for one employee-day.
type ZoneHistoryRecord struct {
	EmployeeID     string      `json:"employee_id"`
	Day            Date        `json:"day"`
	Zone           Zone        `json:"zone"`
	BurnoutScore   float64     `json:"burnout_score"`
	ReadinessScore float64     `json:"readiness_score"`
	Explanation    Explanation `json:"explanation"`
	RunID          int64       `json:"run_id,omitempty"`
	RecordedAt     time.Time   `json:"recorded_at"`
}

// NewZoneHistoryRecord converts a scored result into its persisted form.
func NewZoneHistoryRecord(result *ScoreResult, runID int64, recordedAt time.Time) (ZoneHistoryRecord, error) {
	if result == nil || result.InsufficientData() || result.Explanation == nil {
		return ZoneHistoryRecord{}, fmt.Errorf("only scored results can be recorded")
	}
	if result.EmployeeID == "" {
		return ZoneHistoryRecord{}, fmt.Errorf("result has no employee id")
	}
	if result.Day.IsZero() {
		return ZoneHistoryRecord{}, fmt.Errorf("result for %s has no day", result.EmployeeID)
	}
	return ZoneHistoryRecord{
		EmployeeID:     result.EmployeeID,
		Day:            result.Day,
		Zone:           result.Zone,
		BurnoutScore:   result.BurnoutScore,
		ReadinessScore: result.ReadinessScore,
		Explanation:    *result.Explanation,
		RunID:          runID,
		RecordedAt:     recordedAt,
	}, nil
}

// ScoreResult rebuilds the engine output from a persisted record.
func (r ZoneHistoryRecord) ScoreResult() *ScoreResult {
	explanation := r.Explanation
	return &ScoreResult{
		EmployeeID:     r.EmployeeID,
		Day:            r.Day,
		Status:         StatusScored,
		BurnoutScore:   r.BurnoutScore,
		ReadinessScore: r.ReadinessScore,
		Zone:           r.Zone,
		Explanation:    &explanation,
	}
}

// ExplanationJSON serializes the explanation column.
func (r ZoneHistoryRecord) ExplanationJSON() (string, error) {
	data, err := json.Marshal(r.Explanation)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseExplanationJSON restores the explanation column.
func ParseExplanationJSON(data string) (Explanation, error) {
	var e Explanation
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return Explanation{}, fmt.Errorf("cannot decode explanation: %w", err)
	}
	return e, nil
}

// ScoringRunRecord represents a row from the scoring_runs table.
type ScoringRunRecord struct {
	RunID             int64      `json:"run_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	RunDurationMs     *int32     `json:"run_duration_ms,omitempty"`
	EmployeesScored   int32      `json:"employees_scored"`
	InsufficientCount int32      `json:"insufficient_count"`
	FailedCount       int32      `json:"failed_count"`
	ConfigParams      *string    `json:"config_params,omitempty"`
}

// RunSummary counts the outcome of a batch.
type RunSummary struct {
	Scored       int `json:"scored"`
	Insufficient int `json:"insufficient"`
	Failed       int `json:"failed"`
}

// HistoryStatus represents the status of the zone history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	TotalRecords   int              `json:"total_records"`
	TotalEmployees int              `json:"total_employees"`
	ZoneCounts     map[Zone]int     `json:"zone_counts"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// Prediction is a projected burnout trend built from zone history.
type Prediction struct {
	EmployeeID        string  `json:"employee_id"`
	HorizonDays       int     `json:"horizon_days"`
	DataPoints        int     `json:"data_points"`
	SlopePerDay       float64 `json:"slope_per_day"`
	Trend             string  `json:"trend"`
	CurrentBurnout    float64 `json:"current_burnout"`
	ProjectedBurnout  float64 `json:"projected_burnout"`
	ProjectedZone     Zone    `json:"projected_zone"`
	ProjectedWellness float64 `json:"projected_wellness"`
	MeanBurnout       float64 `json:"mean_burnout"`
	StdDevBurnout     float64 `json:"stddev_burnout"`
}

// Trend labels.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)
