package schema

import "strings"

// Dataset is a batch of employee-days read from or written to disk.
type Dataset struct {
	AsOf      Date              `json:"as_of,omitzero"`
	Employees []EvaluationInput `json:"employees"`
}

// BatchItem is the outcome of scoring one dataset entry.
type BatchItem struct {
	EmployeeID string       `json:"employee_id"`
	Result     *ScoreResult `json:"result,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// RankedResult adds presentation data to a scored result.
type RankedResult struct {
	Rank     int     `json:"rank"`
	Label    string  `json:"label"`
	Wellness float64 `json:"wellness"`
	TopRisk  string  `json:"top_risk"`
	*ScoreResult
}

// GetPlainLabel returns a plain text label for a burnout score.
func GetPlainLabel(burnout float64) string {
	switch ZoneForScore(burnout) {
	case ZoneRed:
		return "At Risk"
	case ZoneYellow:
		return "Watch"
	default:
		return "Healthy"
	}
}

// RankResults adds rank and labels to already sorted, scored results.
func RankResults(results []*ScoreResult) []RankedResult {
	output := make([]RankedResult, len(results))
	for i, r := range results {
		output[i] = RankedResult{
			Rank:        i + 1,
			Label:       GetPlainLabel(r.BurnoutScore),
			Wellness:    WellnessFromBurnout(r.BurnoutScore),
			TopRisk:     TopRisk(r),
			ScoreResult: r,
		}
	}
	return output
}

// TopRisk names the largest negative factor of a result, or "-" if none.
func TopRisk(r *ScoreResult) string {
	if r == nil || r.Explanation == nil {
		return "-"
	}
	for _, f := range r.Explanation.Factors {
		if f.Impact == ImpactNegative {
			return f.Name
		}
	}
	return "-"
}

// TruncateText shortens s to width runes, adding an ellipsis when cut.
func TruncateText(s string, width int) string {
	r := []rune(s)
	if width <= 3 || len(r) <= width {
		return s
	}
	return strings.TrimSpace(string(r[:width-3])) + "..."
}
