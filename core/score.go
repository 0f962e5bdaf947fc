package core

import (
	"math"

	"github.com/huangsam/wellscore/schema"
)

// Scores are the aggregated outputs of one evaluation.
type Scores struct {
	Burnout   float64
	Readiness float64
	Zone      schema.Zone
}

// Aggregate centers both scores at 50 and pushes them by the scaled sum of
// contributions. The zone is derived from the final burnout score.
func Aggregate(devs []Deviation, scaling float64) Scores {
	var burnout, readiness float64
	for _, d := range devs {
		burnout += d.Burnout
		readiness += d.Readiness
	}
	b := roundScore(clamp(50+burnout*scaling, 0, 100))
	r := roundScore(clamp(50+readiness*scaling, 0, 100))
	return Scores{Burnout: b, Readiness: r, Zone: schema.ZoneForScore(b)}
}

// roundScore keeps two decimals so stored and recomputed scores agree.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
