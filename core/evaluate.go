package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/wellscore/schema"
)

// Engine evaluates employee-days against a fixed factor table. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	table   schema.FactorTable
	scaling float64
}

// DefaultEngine uses the calibrated factor table and scaling constant.
var DefaultEngine = &Engine{table: schema.DefaultFactorTable, scaling: schema.DefaultScaling}

// NewEngine validates a factor table and scaling constant.
func NewEngine(table schema.FactorTable, scaling float64) (*Engine, error) {
	if len(table) == 0 {
		return nil, errors.New("factor table is empty")
	}
	if scaling <= 0 {
		return nil, fmt.Errorf("scaling must be positive, got %v", scaling)
	}
	for _, f := range table {
		switch {
		case f.Extract == nil:
			return nil, fmt.Errorf("factor %s has no extractor", f.Key)
		case f.Scale <= 0:
			return nil, fmt.Errorf("factor %s scale must be positive, got %v", f.Key, f.Scale)
		case f.Cap <= 0:
			return nil, fmt.Errorf("factor %s cap must be positive, got %v", f.Key, f.Cap)
		case f.BurnoutWeight < 0 || f.ReadinessWeight < 0:
			return nil, fmt.Errorf("factor %s weights must be non-negative", f.Key)
		}
	}
	return &Engine{table: table.Clone(), scaling: scaling}, nil
}

// Table returns the engine's factor table.
func (e *Engine) Table() schema.FactorTable {
	return e.table.Clone()
}

// Scaling returns the engine's scaling constant.
func (e *Engine) Scaling() float64 {
	return e.scaling
}

// Evaluate scores one employee-day with the default engine.
func Evaluate(in schema.EvaluationInput) (*schema.ScoreResult, error) {
	return DefaultEngine.Evaluate(in)
}

// Evaluate runs personalization, target resolution, deviation, aggregation
// and explanation for one employee-day. Invalid inputs return an error
// wrapping ErrInvalidInput. A day with nothing scorable returns the
// insufficient-data variant.
func (e *Engine) Evaluate(in schema.EvaluationInput) (*schema.ScoreResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	day := in.Day()
	result := &schema.ScoreResult{EmployeeID: in.EmployeeID, Day: day}

	p := Personalize(e.table, in.Baseline, in.Preferences, in.LifeEvents, day)
	targets := ResolveTargets(e.table, p, in.Preferences)
	devs := ComputeDeviations(in.Health, in.Work, targets, p.Weights)
	if len(devs) == 0 {
		result.Status = schema.StatusInsufficientData
		return result, nil
	}

	scores := Aggregate(devs, e.scaling)
	result.Status = schema.StatusScored
	result.BurnoutScore = scores.Burnout
	result.ReadinessScore = scores.Readiness
	result.Zone = scores.Zone
	result.Explanation = Explain(e.table, in, p, devs, scores)
	return result, nil
}
