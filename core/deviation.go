package core

import "github.com/huangsam/wellscore/schema"

// Deviation is one present factor's normalized distance from its target and
// the bounded contributions that follow from it.
type Deviation struct {
	Target      Target
	Actual      float64
	Raw         float64 // (actual - target) / band
	Directional float64 // clamp(direction * raw, -cap, +cap); positive is bad
	Multiplier  float64 // preference multiplier
	Burnout     float64 // raises burnout when positive
	Readiness   float64 // raises readiness when positive
}

// Weight is the effective burnout weight applied to the factor.
func (d Deviation) Weight() float64 {
	return d.Target.Factor.BurnoutWeight * d.Multiplier
}

// Impact classifies the deviation against the materiality threshold.
func (d Deviation) Impact() schema.Impact {
	switch {
	case d.Directional >= schema.MaterialityThreshold:
		return schema.ImpactNegative
	case d.Directional <= -schema.MaterialityThreshold:
		return schema.ImpactPositive
	default:
		return schema.ImpactNeutral
	}
}

// ComputeDeviations scores every factor whose metric is present. Absent
// metrics are skipped, never defaulted.
func ComputeDeviations(h schema.DailyHealthMetrics, w schema.DailyWorkMetrics, targets []Target, weights EffectiveWeights) []Deviation {
	devs := make([]Deviation, 0, len(targets))
	for _, t := range targets {
		f := t.Factor
		if f.Extract == nil {
			continue
		}
		actual := f.Extract(h, w)
		if actual == nil {
			continue
		}
		raw := (*actual - t.Value()) / t.Band
		directional := clamp(f.Direction.Sign()*raw, -f.Cap, f.Cap)
		mult := weights.Multiplier(f.Preference)
		devs = append(devs, Deviation{
			Target:      t,
			Actual:      *actual,
			Raw:         raw,
			Directional: directional,
			Multiplier:  mult,
			Burnout:     directional * f.BurnoutWeight * mult,
			Readiness:   -directional * f.ReadinessWeight * mult,
		})
	}
	return devs
}
