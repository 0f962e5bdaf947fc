package core

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/schema"
)

var f = schema.Float

func greenInput() schema.EvaluationInput {
	return schema.EvaluationInput{
		EmployeeID: "emp-green",
		Health: schema.DailyHealthMetrics{
			SleepHours: f(7.8), SleepQualityScore: f(85), HRV: f(55), RestingHR: f(58),
			ExerciseMinutes: f(45), RecoveryScore: f(80),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(7.5), OvertimeHours: f(0), TasksCompleted: f(8), TasksAssigned: f(7), MeetingsAttended: f(3),
		},
		Baseline: &schema.PersonalBaseline{
			SleepHours: f(7.8), SleepQuality: f(85), HRV: f(55), RestingHR: f(58), HoursWorked: f(7.5),
		},
	}
}

func redInput() schema.EvaluationInput {
	return schema.EvaluationInput{
		EmployeeID: "emp-red",
		Health: schema.DailyHealthMetrics{
			SleepHours: f(5.5), SleepQualityScore: f(50), HRV: f(32), RestingHR: f(75),
			ExerciseMinutes: f(10), RecoveryScore: f(40),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(10.5), OvertimeHours: f(2.5), TasksCompleted: f(5), TasksAssigned: f(10), MeetingsAttended: f(7),
		},
		Baseline: &schema.PersonalBaseline{
			SleepHours: f(7), SleepQuality: f(70), HRV: f(45), RestingHR: f(65), HoursWorked: f(8),
		},
	}
}

func factorByKey(t *testing.T, r *schema.ScoreResult, key schema.FactorKey) schema.Factor {
	t.Helper()
	require.NotNil(t, r.Explanation)
	for _, fc := range r.Explanation.Factors {
		if fc.Key == key {
			return fc
		}
	}
	t.Fatalf("factor %s not found", key)
	return schema.Factor{}
}

func TestEvaluateGreenScenario(t *testing.T) {
	r, err := Evaluate(greenInput())
	require.NoError(t, err)

	assert.Equal(t, schema.StatusScored, r.Status)
	assert.Equal(t, schema.ZoneGreen, r.Zone)
	assert.Less(t, r.BurnoutScore, schema.YellowThreshold)
	assert.Greater(t, r.ReadinessScore, 50.0)
	assert.Equal(t, "emp-green", r.EmployeeID)
}

func TestEvaluateRedScenario(t *testing.T) {
	r, err := Evaluate(redInput())
	require.NoError(t, err)

	assert.Equal(t, schema.ZoneRed, r.Zone)
	assert.Greater(t, r.BurnoutScore, 70.0)
	assert.Less(t, r.ReadinessScore, 50.0)

	require.NotNil(t, r.Explanation)
	assert.NotEmpty(t, r.Explanation.NegativeFactors())
	assert.NotEmpty(t, r.Explanation.Recommendations.Personal)
	assert.NotEmpty(t, r.Explanation.Recommendations.Leadership)
	assert.LessOrEqual(t, len(r.Explanation.Recommendations.Personal), 3)
	assert.LessOrEqual(t, len(r.Explanation.Recommendations.Leadership), 2)

	sleep := factorByKey(t, r, schema.FactorSleepHours)
	assert.Equal(t, schema.ImpactNegative, sleep.Impact)
	assert.Equal(t, "5.5 hrs vs 7.0 hrs baseline", sleep.Value)
	assert.Equal(t, "Sleep Duration", sleep.Name)
}

func TestEvaluateLifeEventLowersSleepBaseline(t *testing.T) {
	without, err := Evaluate(redInput())
	require.NoError(t, err)

	in := redInput()
	in.LifeEvents = []schema.LifeEvent{{Title: "New baby", IsActive: true, SleepAdjustment: -30}}
	with, err := Evaluate(in)
	require.NoError(t, err)

	before := factorByKey(t, without, schema.FactorSleepHours)
	after := factorByKey(t, with, schema.FactorSleepHours)
	assert.Less(t, after.BurnoutContribution, before.BurnoutContribution)
	assert.NotEqual(t, schema.ImpactNegative, after.Impact)
	assert.Contains(t, after.Value, "4.9 hrs")
	assert.LessOrEqual(t, with.BurnoutScore, without.BurnoutScore)

	cal := with.Explanation.Context.Calibration
	require.NotNil(t, cal)
	assert.Contains(t, cal.Summary, "Sleep Duration expectation lowered 30%")
	assert.Contains(t, cal.Summary, "New baby")
	require.Len(t, cal.Targets, 1)
	assert.Equal(t, schema.FactorSleepHours, cal.Targets[0].Factor)
	assert.InDelta(t, 7.0, cal.Targets[0].From, 1e-9)
	assert.InDelta(t, 4.9, cal.Targets[0].To, 1e-9)
	assert.InDelta(t, -30.0, cal.Targets[0].Percent, 1e-9)

	require.Len(t, with.Explanation.Context.LifeEvents, 1)
	assert.Equal(t, "sleep -30%", with.Explanation.Context.LifeEvents[0].Impact)
	assert.Nil(t, without.Explanation.Context.Calibration)
}

func TestEvaluateInsufficientData(t *testing.T) {
	r, err := Evaluate(schema.EvaluationInput{EmployeeID: "emp-empty"})
	require.NoError(t, err)
	assert.True(t, r.InsufficientData())
	assert.Empty(t, r.Zone)
	assert.Nil(t, r.Explanation)

	// informational fields alone are not scorable
	r, err = Evaluate(schema.EvaluationInput{
		Health: schema.DailyHealthMetrics{DeepSleepHours: f(1.2)},
		Work:   schema.DailyWorkMetrics{EmailsSent: f(40)},
	})
	require.NoError(t, err)
	assert.True(t, r.InsufficientData())
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.EvaluationInput)
		field  string
	}{
		{"stress above scale", func(in *schema.EvaluationInput) { in.Health.StressLevel = f(140) }, "health.stress_level"},
		{"negative sleep", func(in *schema.EvaluationInput) { in.Health.SleepHours = f(-1) }, "health.sleep_hours"},
		{"quality NaN", func(in *schema.EvaluationInput) { in.Health.SleepQualityScore = f(math.NaN()) }, "health.sleep_quality_score"},
		{"negative tasks", func(in *schema.EvaluationInput) { in.Work.TasksCompleted = f(-2) }, "work.tasks_completed"},
		{"preference weight", func(in *schema.EvaluationInput) {
			p := schema.DefaultPreferences()
			p.Weights.Sleep = f(120)
			in.Preferences = &p
		}, "preferences.weights.sleep"},
		{"event adjustment", func(in *schema.EvaluationInput) {
			in.LifeEvents = []schema.LifeEvent{{Title: "x", IsActive: true, WorkAdjustment: -150}}
		}, "life_events[0].work_adjustment"},
		{"zero baseline", func(in *schema.EvaluationInput) { in.Baseline.HoursWorked = f(0) }, "baseline.hours_worked"},
		{"baseline below work minimum", func(in *schema.EvaluationInput) { in.Baseline.HoursWorked = f(0.5) }, "baseline.hours_worked"},
		{"baseline above sleep maximum", func(in *schema.EvaluationInput) { in.Baseline.SleepHours = f(14) }, "baseline.sleep_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := greenInput()
			tt.mutate(&in)
			r, err := Evaluate(in)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestEvaluateRejectsInvertedEventDates(t *testing.T) {
	start, _ := schema.ParseDate("2026-05-10")
	end, _ := schema.ParseDate("2026-05-01")
	in := greenInput()
	in.LifeEvents = []schema.LifeEvent{{Title: "Trip", IsActive: true, StartDate: start, EndDate: &end}}
	_, err := Evaluate(in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	in := redInput()
	in.LifeEvents = []schema.LifeEvent{{Title: "Move", IsActive: true, SleepAdjustment: -10, StressAdjustment: 20}}
	a, err := Evaluate(in)
	require.NoError(t, err)
	b, err := Evaluate(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateZoneConsistencyAndSigns(t *testing.T) {
	for _, in := range []schema.EvaluationInput{greenInput(), redInput()} {
		r, err := Evaluate(in)
		require.NoError(t, err)
		assert.Equal(t, schema.ZoneForScore(r.BurnoutScore), r.Zone)
		assert.Equal(t, r.Zone, r.Explanation.Zone)
		assert.Equal(t, r.BurnoutScore, r.Explanation.BurnoutScore)

		for _, fc := range r.Explanation.Factors {
			switch fc.Impact {
			case schema.ImpactNegative:
				assert.True(t, fc.BurnoutContribution > 0 || fc.ReadinessContribution < 0, fc.Key)
			case schema.ImpactPositive:
				assert.True(t, fc.BurnoutContribution < 0 || fc.ReadinessContribution > 0, fc.Key)
			}
		}
	}
}

func TestEvaluateFactorOrdering(t *testing.T) {
	r, err := Evaluate(redInput())
	require.NoError(t, err)
	factors := r.Explanation.Factors
	for i := 1; i < len(factors); i++ {
		assert.GreaterOrEqual(t, math.Abs(factors[i-1].BurnoutContribution), math.Abs(factors[i].BurnoutContribution))
	}
}

func TestEvaluateExcludesMissingMetrics(t *testing.T) {
	in := greenInput()
	in.Health.HRV = nil
	in.Work.MeetingsAttended = nil
	in.Work.TasksAssigned = nil

	r, err := Evaluate(in)
	require.NoError(t, err)
	require.NotEmpty(t, r.Explanation.Factors)
	for _, fc := range r.Explanation.Factors {
		assert.NotEqual(t, schema.FactorHRV, fc.Key)
		assert.NotEqual(t, schema.FactorMeetings, fc.Key)
		assert.NotEqual(t, schema.FactorTaskCompletion, fc.Key)
	}
}

func TestEvaluateSingleMetricYieldsFactor(t *testing.T) {
	r, err := Evaluate(schema.EvaluationInput{Work: schema.DailyWorkMetrics{OvertimeHours: f(3)}})
	require.NoError(t, err)
	require.Len(t, r.Explanation.Factors, 1)
	assert.Equal(t, schema.FactorOvertime, r.Explanation.Factors[0].Key)
	assert.Equal(t, schema.ImpactNegative, r.Explanation.Factors[0].Impact)
	assert.Equal(t, "3.0 hrs vs 0.0 hrs target", r.Explanation.Factors[0].Value)
}

func TestEvaluateSleepMonotonicity(t *testing.T) {
	prev := -1.0
	for sleep := 9.0; sleep >= 0; sleep -= 0.25 {
		in := greenInput()
		in.Health.SleepHours = f(sleep)
		r, err := Evaluate(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.BurnoutScore, prev, "sleep %.2f", sleep)
		prev = r.BurnoutScore
	}
}

func TestEvaluateNoBaselineUsesReference(t *testing.T) {
	in := greenInput()
	in.Baseline = nil
	r, err := Evaluate(in)
	require.NoError(t, err)
	sleep := factorByKey(t, r, schema.FactorSleepHours)
	assert.Equal(t, "7.8 hrs vs 7.5 hrs target", sleep.Value)
}

func TestEvaluatePreferenceWeightsScaleContribution(t *testing.T) {
	neutral, err := Evaluate(redInput())
	require.NoError(t, err)

	in := redInput()
	prefs := schema.DefaultPreferences()
	prefs.Weights.Sleep = f(100)
	in.Preferences = &prefs
	heavy, err := Evaluate(in)
	require.NoError(t, err)

	in.Preferences.Weights.Sleep = f(0)
	light, err := Evaluate(in)
	require.NoError(t, err)

	n := factorByKey(t, neutral, schema.FactorSleepHours)
	h := factorByKey(t, heavy, schema.FactorSleepHours)
	l := factorByKey(t, light, schema.FactorSleepHours)
	assert.InDelta(t, n.BurnoutContribution*1.5, h.BurnoutContribution, 1e-3)
	assert.InDelta(t, n.BurnoutContribution*0.5, l.BurnoutContribution, 1e-3)
	assert.Equal(t, schema.ImpactNegative, l.Impact)

	cal := heavy.Explanation.Context.Calibration
	require.NotNil(t, cal)
	assert.Contains(t, cal.Summary, "Sleep factors weighted up to 1.50x")
}

func TestEvaluatePartialPreferencesKeepNeutralWeights(t *testing.T) {
	base, err := Evaluate(redInput())
	require.NoError(t, err)

	for _, raw := range []string{
		`{"ideal_sleep_hours":8}`,
		`{"ideal_sleep_hours":8,"weights":{}}`,
	} {
		t.Run(raw, func(t *testing.T) {
			var prefs schema.PersonalPreferences
			require.NoError(t, json.Unmarshal([]byte(raw), &prefs))
			in := redInput()
			in.Preferences = &prefs

			r, err := Evaluate(in)
			require.NoError(t, err)
			assert.InDelta(t, base.BurnoutScore, r.BurnoutScore, 1e-9)
			assert.Equal(t, base.Zone, r.Zone)
			if cal := r.Explanation.Context.Calibration; cal != nil {
				assert.NotContains(t, cal.Summary, "weighted")
			}
		})
	}

	t.Run("one weight set", func(t *testing.T) {
		var prefs schema.PersonalPreferences
		require.NoError(t, json.Unmarshal([]byte(`{"weights":{"sleep":100}}`), &prefs))
		in := redInput()
		in.Preferences = &prefs

		r, err := Evaluate(in)
		require.NoError(t, err)
		cal := r.Explanation.Context.Calibration
		require.NotNil(t, cal)
		assert.Contains(t, cal.Summary, "Sleep factors weighted up to 1.50x")
		assert.NotContains(t, cal.Summary, "Heart factors")
		assert.InDelta(t, factorByKey(t, base, schema.FactorHRV).BurnoutContribution,
			factorByKey(t, r, schema.FactorHRV).BurnoutContribution, 1e-9)
	})
}

func TestEvaluateDaysSinceRestDay(t *testing.T) {
	in := greenInput()
	in.AsOf, _ = schema.ParseDate("2026-10-19")
	d1, _ := schema.ParseDate("2026-10-18")
	d2, _ := schema.ParseDate("2026-10-15")
	d3, _ := schema.ParseDate("2026-10-12")
	in.RecentWork = []schema.DailyWorkMetrics{
		{Date: d1, HoursWorked: f(8)},
		{Date: d2, HoursWorked: f(0)},
		{Date: d3, HoursWorked: f(0)},
	}

	r, err := Evaluate(in)
	require.NoError(t, err)
	require.NotNil(t, r.Explanation.Context.DaysSinceRestDay)
	assert.Equal(t, 4, *r.Explanation.Context.DaysSinceRestDay)
	assert.Equal(t, "2026-10-19", r.Day.String())

	in.RecentWork = nil
	r, err = Evaluate(in)
	require.NoError(t, err)
	assert.Nil(t, r.Explanation.Context.DaysSinceRestDay)
}

func TestEvaluateEventOutsideWindowIgnored(t *testing.T) {
	in := redInput()
	in.AsOf, _ = schema.ParseDate("2026-10-19")
	start, _ := schema.ParseDate("2026-01-01")
	end, _ := schema.ParseDate("2026-02-01")
	in.LifeEvents = []schema.LifeEvent{{Title: "Old", IsActive: true, StartDate: start, EndDate: &end, SleepAdjustment: -30}}

	r, err := Evaluate(in)
	require.NoError(t, err)
	assert.Empty(t, r.Explanation.Context.LifeEvents)
	assert.Nil(t, r.Explanation.Context.Calibration)
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine(nil, 7)
	assert.Error(t, err)
	_, err = NewEngine(schema.DefaultFactorTable, 0)
	assert.Error(t, err)

	bad := schema.DefaultFactorTable.Clone()
	bad[0].Scale = 0
	_, err = NewEngine(bad, 7)
	assert.ErrorContains(t, err, "scale must be positive")

	e, err := NewEngine(schema.DefaultFactorTable, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, e.Scaling())
	assert.Len(t, e.Table(), len(schema.DefaultFactorTable))
}

func TestEngineScalingChangesSpread(t *testing.T) {
	soft, err := NewEngine(schema.DefaultFactorTable, 1)
	require.NoError(t, err)
	r, err := soft.Evaluate(redInput())
	require.NoError(t, err)
	hard, err := Evaluate(redInput())
	require.NoError(t, err)
	assert.Less(t, r.BurnoutScore, hard.BurnoutScore)
}

func BenchmarkEvaluate(b *testing.B) {
	in := redInput()
	in.LifeEvents = []schema.LifeEvent{{Title: "Move", IsActive: true, SleepAdjustment: -10}}
	for b.Loop() {
		_, _ = Evaluate(in)
	}
}
