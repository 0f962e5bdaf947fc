package core

import "github.com/huangsam/wellscore/schema"

// Target is the resolved comparison point for one factor.
type Target struct {
	Factor   schema.FactorSpec
	Baseline BaselineValue
	Band     float64  // acceptable-deviation width, the factor's reference scale
	Ideal    *float64 // stated aspiration, surfaced in recommendations only
}

// Value is the number the day's actual is compared against.
func (t Target) Value() float64 {
	return t.Baseline.Value
}

// Phrase describes the comparison point for factor text, e.g. "your 7.0 hrs baseline".
func (t Target) Phrase() string {
	v := t.Factor.FormatValue(t.Value())
	switch {
	case t.Baseline.Personal && t.Baseline.Adjusted():
		return "your adjusted " + v + " baseline"
	case t.Baseline.Personal:
		return "your " + v + " baseline"
	case t.Baseline.Adjusted():
		return "the adjusted " + v + " target"
	default:
		return "the " + v + " target"
	}
}

// noun is the short label used in value strings, "baseline" or "target".
func (t Target) noun() string {
	if t.Baseline.Personal {
		return "baseline"
	}
	return "target"
}

// idealFor returns the stated ideal that pairs with a factor, if any.
func idealFor(key schema.FactorKey, prefs *schema.PersonalPreferences) *float64 {
	if prefs == nil {
		return nil
	}
	switch key {
	case schema.FactorSleepHours:
		return prefs.IdealSleepHours
	case schema.FactorHoursWorked:
		return prefs.IdealWorkHours
	case schema.FactorExercise:
		return prefs.IdealExerciseMinutes
	}
	return nil
}

// ResolveTargets pairs every factor with its effective baseline. The rolling
// baseline is the comparison point. Ideals ride along but are not blended in.
func ResolveTargets(table schema.FactorTable, p Personalization, prefs *schema.PersonalPreferences) []Target {
	targets := make([]Target, 0, len(table))
	for _, f := range table {
		targets = append(targets, Target{
			Factor:   f,
			Baseline: p.Baseline[f.Key],
			Band:     f.Scale,
			Ideal:    idealFor(f.Key, prefs),
		})
	}
	return targets
}
