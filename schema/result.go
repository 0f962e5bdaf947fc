package schema

import "math"

// Factor is one explained contributor to the scores.
type Factor struct {
	Key                   FactorKey `json:"key"`
	Name                  string    `json:"name"`
	Category              Category  `json:"category"`
	Impact                Impact    `json:"impact"`
	Value                 string    `json:"value"`
	Description           string    `json:"description"`
	Weight                float64   `json:"weight"`
	BurnoutContribution   float64   `json:"burnout_contribution"`
	ReadinessContribution float64   `json:"readiness_contribution"`
}

// Recommendations are the zone-appropriate suggestions for the employee and
// their manager.
type Recommendations struct {
	Personal   []string `json:"personal"`
	Leadership []string `json:"leadership"`
}

// LifeEventNote summarizes an active life event for display.
type LifeEventNote struct {
	Title  string `json:"title"`
	Impact string `json:"impact"`
}

// TargetAdjustment records how personalization moved one factor's target.
type TargetAdjustment struct {
	Factor  FactorKey `json:"factor"`
	From    float64   `json:"from"`
	To      float64   `json:"to"`
	Percent float64   `json:"percent"`
	Sources []string  `json:"sources,omitempty"`
}

// WeightAdjustment records a non-neutral preference multiplier.
type WeightAdjustment struct {
	Dimension  PreferenceDimension `json:"dimension"`
	Multiplier float64             `json:"multiplier"`
}

// Calibration explains how personalization changed the comparison points.
type Calibration struct {
	Summary string             `json:"summary"`
	Targets []TargetAdjustment `json:"targets,omitempty"`
	Weights []WeightAdjustment `json:"weights,omitempty"`
	Clamps  []string           `json:"clamps,omitempty"`
}

// ExplanationContext carries informational, non-scoring annotations.
type ExplanationContext struct {
	DaysSinceRestDay *int            `json:"days_since_rest_day,omitempty"`
	LifeEvents       []LifeEventNote `json:"life_events,omitempty"`
	Calibration      *Calibration    `json:"calibration,omitempty"`
}

// Explanation is the human-readable account of a score.
type Explanation struct {
	Zone            Zone               `json:"zone"`
	BurnoutScore    float64            `json:"burnout_score"`
	ReadinessScore  float64            `json:"readiness_score"`
	Factors         []Factor           `json:"factors"`
	Recommendations Recommendations    `json:"recommendations"`
	Context         ExplanationContext `json:"context"`
}

// ScoreResult is the engine output for one employee-day.
type ScoreResult struct {
	EmployeeID     string       `json:"employee_id,omitempty"`
	Day            Date         `json:"day,omitzero"`
	Status         ResultStatus `json:"status"`
	BurnoutScore   float64      `json:"burnout_score"`
	ReadinessScore float64      `json:"readiness_score"`
	Zone           Zone         `json:"zone,omitempty"`
	Explanation    *Explanation `json:"explanation,omitempty"`
}

// InsufficientData reports whether the day had nothing to score.
func (r *ScoreResult) InsufficientData() bool {
	return r.Status == StatusInsufficientData
}

// Wellness is the display-layer inverse of the burnout score. Every surface
// that shows a wellness percentage goes through this function. It is nil when
// the day had nothing to score.
func (r *ScoreResult) Wellness() *float64 {
	if r.InsufficientData() {
		return nil
	}
	w := WellnessFromBurnout(r.BurnoutScore)
	return &w
}

// WellnessFromBurnout converts a stored burnout score to a wellness percentage.
func WellnessFromBurnout(burnout float64) float64 {
	return math.Max(0, math.Min(100, 100-burnout))
}

// NegativeFactors returns the factors that worsened the day.
func (e *Explanation) NegativeFactors() []Factor {
	var out []Factor
	for _, f := range e.Factors {
		if f.Impact == ImpactNegative {
			out = append(out, f)
		}
	}
	return out
}
