package schema

import (
	"fmt"
	"strings"
)

// Templates are the one-sentence descriptions for a factor. Placeholders:
// {actual}, {target} and {delta}.
type Templates struct {
	Higher string `json:"higher"`
	Lower  string `json:"lower"`
	Steady string `json:"steady"`
}

// Extractor pulls a factor's actual value out of the day's metrics.
type Extractor func(h DailyHealthMetrics, w DailyWorkMetrics) *float64

// FactorSpec is the declarative scoring policy for one factor.
type FactorSpec struct {
	Key             FactorKey           `json:"key"`
	Label           string              `json:"label"`
	Unit            string              `json:"unit"`
	Decimals        int                 `json:"decimals"`
	DisplayScale    float64             `json:"display_scale,omitempty"`
	Category        Category            `json:"category"`
	Direction       Direction           `json:"direction"`
	Scale           float64             `json:"scale"`
	Cap             float64             `json:"cap"`
	BurnoutWeight   float64             `json:"burnout_weight"`
	ReadinessWeight float64             `json:"readiness_weight"`
	Reference       float64             `json:"reference"`
	Baseline        BaselineField       `json:"baseline,omitempty"`
	Preference      PreferenceDimension `json:"preference,omitempty"`
	Adjustment      AdjustmentDimension `json:"adjustment,omitempty"`
	MinTarget       float64             `json:"min_target"`
	MaxTarget       float64             `json:"max_target"`
	Templates       Templates           `json:"templates"`
	Extract         Extractor           `json:"-"`
}

// FormatValue renders v in the factor's display unit.
func (f FactorSpec) FormatValue(v float64) string {
	if f.DisplayScale != 0 {
		v *= f.DisplayScale
	}
	num := fmt.Sprintf("%.*f", f.Decimals, v)
	switch f.Unit {
	case "":
		return num
	case "%", "/100":
		return num + f.Unit
	default:
		return num + " " + f.Unit
	}
}

// Describe fills the template matching the sign of the raw deviation.
func (f FactorSpec) Describe(actual, target, deviation float64, targetPhrase string) string {
	tmpl := f.Templates.Steady
	switch {
	case deviation >= MaterialityThreshold:
		tmpl = f.Templates.Higher
	case deviation <= -MaterialityThreshold:
		tmpl = f.Templates.Lower
	}
	delta := actual - target
	if delta < 0 {
		delta = -delta
	}
	return strings.NewReplacer(
		"{actual}", f.FormatValue(actual),
		"{target}", targetPhrase,
		"{delta}", f.FormatValue(delta),
	).Replace(tmpl)
}

// FactorTable is the ordered set of scored factors.
type FactorTable []FactorSpec

// Lookup finds a factor by key.
func (t FactorTable) Lookup(key FactorKey) (FactorSpec, bool) {
	for _, f := range t {
		if f.Key == key {
			return f, true
		}
	}
	return FactorSpec{}, false
}

// Keys returns the factor keys in table order.
func (t FactorTable) Keys() []FactorKey {
	keys := make([]FactorKey, len(t))
	for i, f := range t {
		keys[i] = f.Key
	}
	return keys
}

// Clone returns a copy that can be modified without touching t.
func (t FactorTable) Clone() FactorTable {
	out := make(FactorTable, len(t))
	copy(out, t)
	return out
}

// FactorDefinition is the published view of a factor's scoring policy.
type FactorDefinition struct {
	Key             FactorKey `json:"key"`
	Label           string    `json:"label"`
	Category        Category  `json:"category"`
	Direction       string    `json:"direction"`
	Unit            string    `json:"unit,omitempty"`
	Reference       float64   `json:"reference"`
	Scale           float64   `json:"scale"`
	Cap             float64   `json:"cap"`
	BurnoutWeight   float64   `json:"burnout_weight"`
	ReadinessWeight float64   `json:"readiness_weight"`
	MinTarget       float64   `json:"min_target"`
	MaxTarget       float64   `json:"max_target"`
}

// FactorReport is a factor table with the scaling constant it scores with.
type FactorReport struct {
	Scaling float64            `json:"scaling"`
	Factors []FactorDefinition `json:"factors"`
}

// Definitions returns the published view of every factor in table order.
func (t FactorTable) Definitions() []FactorDefinition {
	defs := make([]FactorDefinition, 0, len(t))
	for _, f := range t {
		defs = append(defs, FactorDefinition{
			Key:             f.Key,
			Label:           f.Label,
			Category:        f.Category,
			Direction:       f.Direction.String(),
			Unit:            f.Unit,
			Reference:       f.Reference,
			Scale:           f.Scale,
			Cap:             f.Cap,
			BurnoutWeight:   f.BurnoutWeight,
			ReadinessWeight: f.ReadinessWeight,
			MinTarget:       f.MinTarget,
			MaxTarget:       f.MaxTarget,
		})
	}
	return defs
}

// FactorOverride replaces selected numeric policy of one factor.
type FactorOverride struct {
	BurnoutWeight   *float64
	ReadinessWeight *float64
	Scale           *float64
	Cap             *float64
}

// WithOverrides returns a copy of t with overrides applied.
func (t FactorTable) WithOverrides(overrides map[FactorKey]FactorOverride) FactorTable {
	out := t.Clone()
	for i := range out {
		o, ok := overrides[out[i].Key]
		if !ok {
			continue
		}
		if o.BurnoutWeight != nil {
			out[i].BurnoutWeight = *o.BurnoutWeight
		}
		if o.ReadinessWeight != nil {
			out[i].ReadinessWeight = *o.ReadinessWeight
		}
		if o.Scale != nil {
			out[i].Scale = *o.Scale
		}
		if o.Cap != nil {
			out[i].Cap = *o.Cap
		}
	}
	return out
}

// taskRatio is tasks completed over tasks assigned, defined only when both
// are present and something was assigned.
func taskRatio(_ DailyHealthMetrics, w DailyWorkMetrics) *float64 {
	if w.TasksCompleted == nil || w.TasksAssigned == nil || *w.TasksAssigned <= 0 {
		return nil
	}
	r := *w.TasksCompleted / *w.TasksAssigned
	return &r
}

// DefaultFactorTable is the calibrated scoring policy. Scales are chosen so a
// deviation of 1.0 is a noticeable shift for that metric.
var DefaultFactorTable = FactorTable{
	{
		Key: FactorSleepHours, Label: "Sleep Duration", Unit: "hrs", Decimals: 1,
		Category: CategorySleep, Direction: HigherIsBetter,
		Scale: 1, Cap: 2, BurnoutWeight: 1.0, ReadinessWeight: 0.8,
		Reference: 7.5, Baseline: BaselineSleepHours,
		Preference: PreferenceSleep, Adjustment: AdjustSleep,
		MinTarget: 3, MaxTarget: 12,
		Templates: Templates{
			Higher: "Slept {delta} more than {target}.",
			Lower:  "Slept {delta} less than {target}, which adds to fatigue.",
			Steady: "Sleep duration was in line with {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.SleepHours },
	},
	{
		Key: FactorSleepQuality, Label: "Sleep Quality", Unit: "/100", Decimals: 0,
		Category: CategorySleep, Direction: HigherIsBetter,
		Scale: 10, Cap: 2, BurnoutWeight: 0.8, ReadinessWeight: 1.2,
		Reference: 70, Baseline: BaselineSleepQuality,
		Preference: PreferenceSleep,
		MinTarget:  0, MaxTarget: 100,
		Templates: Templates{
			Higher: "Sleep quality was {delta} points above {target}.",
			Lower:  "Sleep quality was {delta} points below {target}, so rest was less restorative.",
			Steady: "Sleep quality matched {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.SleepQualityScore },
	},
	{
		Key: FactorHRV, Label: "Heart Rate Variability", Unit: "ms", Decimals: 0,
		Category: CategoryStress, Direction: HigherIsBetter,
		Scale: 10, Cap: 2, BurnoutWeight: 0.8, ReadinessWeight: 1.2,
		Reference: 50, Baseline: BaselineHRV,
		Preference: PreferenceHeart,
		MinTarget:  5, MaxTarget: 200,
		Templates: Templates{
			Higher: "HRV was {delta} above {target}, a sign of good recovery.",
			Lower:  "HRV was {delta} below {target}, a common marker of physiological stress.",
			Steady: "HRV was close to {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.HRV },
	},
	{
		Key: FactorRestingHR, Label: "Resting Heart Rate", Unit: "bpm", Decimals: 0,
		Category: CategoryStress, Direction: HigherIsWorse,
		Scale: 5, Cap: 2, BurnoutWeight: 0.6, ReadinessWeight: 0.8,
		Reference: 62, Baseline: BaselineRestingHR,
		Preference: PreferenceHeart,
		MinTarget:  30, MaxTarget: 120,
		Templates: Templates{
			Higher: "Resting heart rate was {delta} above {target}, which often accompanies strain.",
			Lower:  "Resting heart rate was {delta} below {target}.",
			Steady: "Resting heart rate was close to {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.RestingHR },
	},
	{
		Key: FactorRecovery, Label: "Recovery Score", Unit: "/100", Decimals: 0,
		Category: CategoryStress, Direction: HigherIsBetter,
		Scale: 10, Cap: 2, BurnoutWeight: 0.6, ReadinessWeight: 1.4,
		Reference: 60,
		MinTarget: 0, MaxTarget: 100,
		Templates: Templates{
			Higher: "Recovery was {delta} points above {target}.",
			Lower:  "Recovery was {delta} points below {target}, so the body has not fully bounced back.",
			Steady: "Recovery was near {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.RecoveryScore },
	},
	{
		Key: FactorStressLevel, Label: "Stress Level", Unit: "/100", Decimals: 0,
		Category: CategoryStress, Direction: HigherIsWorse,
		Scale: 10, Cap: 2, BurnoutWeight: 0.8, ReadinessWeight: 0.6,
		Reference: 40, Adjustment: AdjustStress,
		MinTarget: 10, MaxTarget: 90,
		Templates: Templates{
			Higher: "Stress was {delta} points above {target}.",
			Lower:  "Stress was {delta} points below {target}.",
			Steady: "Stress was near {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.StressLevel },
	},
	{
		Key: FactorExercise, Label: "Exercise", Unit: "min", Decimals: 0,
		Category: CategoryExercise, Direction: HigherIsBetter,
		Scale: 15, Cap: 1.5, BurnoutWeight: 0.4, ReadinessWeight: 0.4,
		Reference: 30, Preference: PreferenceExercise, Adjustment: AdjustExercise,
		MinTarget: 5, MaxTarget: 120,
		Templates: Templates{
			Higher: "Exercised {delta} more than {target}.",
			Lower:  "Exercised {delta} less than {target}.",
			Steady: "Exercise was close to {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.ExerciseMinutes },
	},
	{
		Key: FactorSteps, Label: "Daily Steps", Unit: "steps", Decimals: 0,
		Category: CategoryExercise, Direction: HigherIsBetter,
		Scale: 2000, Cap: 1.5, BurnoutWeight: 0.2, ReadinessWeight: 0.3,
		Reference: 7000, Preference: PreferenceExercise,
		MinTarget: 1000, MaxTarget: 20000,
		Templates: Templates{
			Higher: "Walked {delta} more than {target}.",
			Lower:  "Walked {delta} fewer than {target}.",
			Steady: "Step count was near {target}.",
		},
		Extract: func(h DailyHealthMetrics, _ DailyWorkMetrics) *float64 { return h.Steps },
	},
	{
		Key: FactorHoursWorked, Label: "Hours Worked", Unit: "hrs", Decimals: 1,
		Category: CategoryWorkload, Direction: HigherIsWorse,
		Scale: 1, Cap: 2, BurnoutWeight: 1.0, ReadinessWeight: 0.3,
		Reference: 8, Baseline: BaselineHoursWorked,
		Preference: PreferenceWorkload, Adjustment: AdjustWork,
		MinTarget: 2, MaxTarget: 16,
		Templates: Templates{
			Higher: "Worked {delta} longer than {target}.",
			Lower:  "Worked {delta} less than {target}.",
			Steady: "Working hours matched {target}.",
		},
		Extract: func(_ DailyHealthMetrics, w DailyWorkMetrics) *float64 { return w.HoursWorked },
	},
	{
		Key: FactorOvertime, Label: "Overtime", Unit: "hrs", Decimals: 1,
		Category: CategoryWorkload, Direction: HigherIsWorse,
		Scale: 1, Cap: 2, BurnoutWeight: 0.8, ReadinessWeight: 0.3,
		Reference: 0, Preference: PreferenceWorkload,
		MinTarget: 0, MaxTarget: 8,
		Templates: Templates{
			Higher: "Logged {actual} of overtime.",
			Lower:  "Overtime was below {target}.",
			Steady: "No meaningful overtime.",
		},
		Extract: func(_ DailyHealthMetrics, w DailyWorkMetrics) *float64 { return w.OvertimeHours },
	},
	{
		Key: FactorTaskCompletion, Label: "Task Completion", Unit: "%", Decimals: 0, DisplayScale: 100,
		Category: CategoryWorkload, Direction: HigherIsBetter,
		Scale: 0.25, Cap: 2, BurnoutWeight: 0.5, ReadinessWeight: 0.1,
		Reference: 1, Preference: PreferenceWorkload,
		MinTarget: 0.1, MaxTarget: 2,
		Templates: Templates{
			Higher: "Completed more tasks than assigned ({actual}).",
			Lower:  "Completed {actual} of assigned tasks, a backlog is building.",
			Steady: "Kept pace with assigned tasks.",
		},
		Extract: taskRatio,
	},
	{
		Key: FactorMeetings, Label: "Meeting Load", Unit: "meetings", Decimals: 0,
		Category: CategoryMeetings, Direction: HigherIsWorse,
		Scale: 2, Cap: 2, BurnoutWeight: 0.5, ReadinessWeight: 0.2,
		Reference: 4, Preference: PreferenceMeetings,
		MinTarget: 0, MaxTarget: 12,
		Templates: Templates{
			Higher: "Attended {delta} more than {target}, leaving less time for focused work.",
			Lower:  "Attended {delta} fewer than {target}.",
			Steady: "Meeting load was typical.",
		},
		Extract: func(_ DailyHealthMetrics, w DailyWorkMetrics) *float64 { return w.MeetingsAttended },
	},
	{
		Key: FactorFocusTime, Label: "Focus Time", Unit: "hrs", Decimals: 1,
		Category: CategoryMeetings, Direction: HigherIsBetter,
		Scale: 1, Cap: 1.5, BurnoutWeight: 0.3, ReadinessWeight: 0.2,
		Reference: 2, Preference: PreferenceMeetings,
		MinTarget: 0.5, MaxTarget: 8,
		Templates: Templates{
			Higher: "Had {delta} more focus time than {target}.",
			Lower:  "Had {delta} less focus time than {target}.",
			Steady: "Focus time was near {target}.",
		},
		Extract: func(_ DailyHealthMetrics, w DailyWorkMetrics) *float64 { return w.FocusTimeHours },
	},
}
