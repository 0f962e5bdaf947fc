package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/schema"
)

func TestPersonalizeNoEventsPassesThrough(t *testing.T) {
	baseline := &schema.PersonalBaseline{SleepHours: f(7.2), HoursWorked: f(8)}
	p := Personalize(schema.DefaultFactorTable, baseline, nil, nil, schema.Date{})

	sleep := p.Baseline[schema.FactorSleepHours]
	assert.Equal(t, 7.2, sleep.Value)
	assert.True(t, sleep.Personal)
	assert.False(t, sleep.Adjusted())

	hrv := p.Baseline[schema.FactorHRV]
	assert.Equal(t, 50.0, hrv.Value)
	assert.False(t, hrv.Personal)

	for _, m := range p.Weights {
		assert.Equal(t, 1.0, m)
	}
	assert.Empty(t, p.Clamps)
	assert.Empty(t, p.ActiveEvents)
}

func TestPersonalizeSumsAndClampsEvents(t *testing.T) {
	events := []schema.LifeEvent{
		{Title: "Newborn", IsActive: true, SleepAdjustment: -40},
		{Title: "Illness", IsActive: true, SleepAdjustment: -30, StressAdjustment: 10},
		{Title: "Closed", IsActive: false, SleepAdjustment: -20},
	}
	baseline := &schema.PersonalBaseline{SleepHours: f(8)}
	p := Personalize(schema.DefaultFactorTable, baseline, nil, events, schema.Date{})

	assert.Len(t, p.ActiveEvents, 2)
	assert.Equal(t, -50.0, p.Percent[schema.AdjustSleep])
	assert.Equal(t, 10.0, p.Percent[schema.AdjustStress])
	require.NotEmpty(t, p.Clamps)
	assert.Contains(t, p.Clamps[0], "Combined sleep adjustments of -70% capped at -50%")

	sleep := p.Baseline[schema.FactorSleepHours]
	assert.InDelta(t, 4.0, sleep.Value, 1e-9)
	assert.Equal(t, []string{"Newborn", "Illness"}, sleep.Sources)

	stress := p.Baseline[schema.FactorStressLevel]
	assert.InDelta(t, 44.0, stress.Value, 1e-9)
}

func TestPersonalizeHoldsPhysicalBounds(t *testing.T) {
	events := []schema.LifeEvent{{Title: "Surgery", IsActive: true, SleepAdjustment: -50}}
	baseline := &schema.PersonalBaseline{SleepHours: f(5)}
	p := Personalize(schema.DefaultFactorTable, baseline, nil, events, schema.Date{})

	assert.Equal(t, 3.0, p.Baseline[schema.FactorSleepHours].Value)
	require.Len(t, p.Clamps, 1)
	assert.Equal(t, "Sleep Duration target 2.5 hrs held at 3.0 hrs", p.Clamps[0])
}

func TestPersonalizeAcceptedBaselinesStayInBounds(t *testing.T) {
	tests := []struct {
		name     string
		baseline schema.PersonalBaseline
	}{
		{"lowest", schema.PersonalBaseline{SleepHours: f(3), SleepQuality: f(1), HRV: f(5), RestingHR: f(30), HoursWorked: f(2)}},
		{"highest", schema.PersonalBaseline{SleepHours: f(12), SleepQuality: f(100), HRV: f(200), RestingHR: f(120), HoursWorked: f(16)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := schema.EvaluationInput{Baseline: &tt.baseline}
			require.NoError(t, ValidateInput(in))

			p := Personalize(schema.DefaultFactorTable, &tt.baseline, nil, nil, schema.Date{})
			assert.Empty(t, p.Clamps)
		})
	}
}

func TestPersonalizeWeights(t *testing.T) {
	prefs := &schema.PersonalPreferences{Weights: schema.PreferenceWeights{
		Sleep: f(0), Exercise: f(100), Meetings: f(25), Heart: f(75),
	}}
	p := Personalize(schema.DefaultFactorTable, nil, prefs, nil, schema.Date{})

	assert.Equal(t, 0.5, p.Weights.Multiplier(schema.PreferenceSleep))
	assert.Equal(t, 1.5, p.Weights.Multiplier(schema.PreferenceExercise))
	assert.Equal(t, 1.0, p.Weights.Multiplier(schema.PreferenceWorkload))
	assert.Equal(t, 0.75, p.Weights.Multiplier(schema.PreferenceMeetings))
	assert.Equal(t, 1.25, p.Weights.Multiplier(schema.PreferenceHeart))
	assert.Equal(t, 1.0, p.Weights.Multiplier(schema.PreferenceNone))
}

func TestResolveTargetsKeepsIdealsSeparate(t *testing.T) {
	prefs := schema.DefaultPreferences()
	prefs.IdealSleepHours = f(9)
	baseline := &schema.PersonalBaseline{SleepHours: f(7)}
	p := Personalize(schema.DefaultFactorTable, baseline, &prefs, nil, schema.Date{})
	targets := ResolveTargets(schema.DefaultFactorTable, p, &prefs)

	require.Len(t, targets, len(schema.DefaultFactorTable))
	for _, tg := range targets {
		if tg.Factor.Key == schema.FactorSleepHours {
			assert.Equal(t, 7.0, tg.Value())
			require.NotNil(t, tg.Ideal)
			assert.Equal(t, 9.0, *tg.Ideal)
			assert.Equal(t, 1.0, tg.Band)
			assert.Equal(t, "your 7.0 hrs baseline", tg.Phrase())
		}
		if tg.Factor.Key == schema.FactorHRV {
			assert.Nil(t, tg.Ideal)
			assert.Equal(t, "the 50 ms target", tg.Phrase())
		}
	}
}

func TestEventImpact(t *testing.T) {
	assert.Equal(t, "sleep -30%, work -20%", eventImpact(schema.LifeEvent{SleepAdjustment: -30, WorkAdjustment: -20}))
	assert.Equal(t, "stress +15%", eventImpact(schema.LifeEvent{StressAdjustment: 15}))
	assert.Equal(t, "no baseline change", eventImpact(schema.LifeEvent{}))
}
