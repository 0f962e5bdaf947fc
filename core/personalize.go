package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/wellscore/schema"
)

// BaselineValue is the comparison point for one factor after personalization.
type BaselineValue struct {
	Value    float64  // effective target
	Original float64  // personal baseline or population reference before adjustment
	Personal bool     // Original came from the employee's rolling baseline
	Sources  []string // life events that moved the target
}

// Adjusted reports whether personalization moved the target.
func (b BaselineValue) Adjusted() bool {
	return math.Abs(b.Value-b.Original) > 1e-9
}

// EffectiveBaseline maps each factor to its personalized comparison point.
type EffectiveBaseline map[schema.FactorKey]BaselineValue

// EffectiveWeights maps preference dimensions to contribution multipliers.
type EffectiveWeights map[schema.PreferenceDimension]float64

// Multiplier returns the weight multiplier for a dimension, 1.0 when unset.
func (w EffectiveWeights) Multiplier(dim schema.PreferenceDimension) float64 {
	if m, ok := w[dim]; ok {
		return m
	}
	return 1.0
}

// Personalization is the output of the adjuster stage.
type Personalization struct {
	Baseline     EffectiveBaseline
	Weights      EffectiveWeights
	ActiveEvents []schema.LifeEvent
	Percent      map[schema.AdjustmentDimension]float64 // summed and clamped
	Clamps       []string
}

// preferenceMultiplier maps a [0,100] preference onto [0.5,1.5] with 50 as neutral.
func preferenceMultiplier(weight float64) float64 {
	return 0.5 + weight/100
}

var preferenceDimensions = []schema.PreferenceDimension{
	schema.PreferenceSleep,
	schema.PreferenceExercise,
	schema.PreferenceWorkload,
	schema.PreferenceMeetings,
	schema.PreferenceHeart,
}

// Personalize applies life events and preference weights to the baseline.
// Adjustments on the same dimension are summed, then clamped.
func Personalize(table schema.FactorTable, baseline *schema.PersonalBaseline, prefs *schema.PersonalPreferences, events []schema.LifeEvent, day schema.Date) Personalization {
	p := Personalization{
		Baseline: make(EffectiveBaseline, len(table)),
		Weights:  make(EffectiveWeights, len(preferenceDimensions)),
		Percent:  make(map[schema.AdjustmentDimension]float64, len(schema.AdjustmentDimensions)),
	}

	if prefs == nil {
		defaults := schema.DefaultPreferences()
		prefs = &defaults
	}
	for _, dim := range preferenceDimensions {
		p.Weights[dim] = preferenceMultiplier(prefs.Weights.Get(dim))
	}

	sources := make(map[schema.AdjustmentDimension][]string)
	for _, e := range events {
		if !e.ActiveOn(day) {
			continue
		}
		p.ActiveEvents = append(p.ActiveEvents, e)
		for _, dim := range schema.AdjustmentDimensions {
			if pct := e.Adjustment(dim); pct != 0 {
				p.Percent[dim] += pct
				sources[dim] = append(sources[dim], e.Title)
			}
		}
	}
	for _, dim := range schema.AdjustmentDimensions {
		sum := p.Percent[dim]
		if clamped := clamp(sum, -schema.LifeEventClampPercent, schema.LifeEventClampPercent); clamped != sum {
			p.Clamps = append(p.Clamps, fmt.Sprintf("Combined %s adjustments of %+.0f%% capped at %+.0f%%", dim, sum, clamped))
			p.Percent[dim] = clamped
		}
	}

	for _, f := range table {
		bv := BaselineValue{Original: f.Reference}
		if v := baseline.Value(f.Baseline); v != nil {
			bv.Original = *v
			bv.Personal = true
		}
		target := bv.Original
		if pct := p.Percent[f.Adjustment]; f.Adjustment != schema.AdjustNone && pct != 0 {
			target = bv.Original * (1 + pct/100)
			bv.Sources = sources[f.Adjustment]
		}
		if bounded := clamp(target, f.MinTarget, f.MaxTarget); bounded != target {
			p.Clamps = append(p.Clamps, fmt.Sprintf("%s target %s held at %s",
				f.Label, f.FormatValue(target), f.FormatValue(bounded)))
			target = bounded
		}
		bv.Value = target
		p.Baseline[f.Key] = bv
	}

	return p
}

// eventImpact summarizes a life event's adjustments, e.g. "sleep -30%, work -20%".
func eventImpact(e schema.LifeEvent) string {
	var parts []string
	for _, dim := range schema.AdjustmentDimensions {
		if pct := e.Adjustment(dim); pct != 0 {
			parts = append(parts, fmt.Sprintf("%s %+.0f%%", dim, pct))
		}
	}
	if len(parts) == 0 {
		return "no baseline change"
	}
	return strings.Join(parts, ", ")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
