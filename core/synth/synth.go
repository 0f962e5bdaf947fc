// Package synth fabricates employee-days from archetype profiles for demos
// and acceptance checks.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/huangsam/wellscore/schema"
)

// jitter is the relative spread applied to continuous metrics.
const jitter = 0.02

// Archetype is a representative employee profile with the zone it should land in.
type Archetype struct {
	Name         string
	ExpectedZone schema.Zone
	Health       schema.DailyHealthMetrics
	Work         schema.DailyWorkMetrics
	Baseline     schema.PersonalBaseline
	Preferences  *schema.PersonalPreferences
	LifeEvents   []schema.LifeEvent
	RestGap      int // days since the last rest day, 0 for none on record
}

// Archetypes are the built-in profiles.
var Archetypes = []Archetype{
	{
		Name:         "thriving",
		ExpectedZone: schema.ZoneGreen,
		Health: schema.DailyHealthMetrics{
			SleepHours: f(8.0), SleepQualityScore: f(85), HRV: f(60), RestingHR: f(58),
			RecoveryScore: f(80), StressLevel: f(25), ExerciseMinutes: f(45), Steps: f(10000),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(7.5), OvertimeHours: f(0), TasksCompleted: f(9), TasksAssigned: f(8),
			MeetingsAttended: f(2), FocusTimeHours: f(3),
		},
		Baseline: standardBaseline(),
		RestGap:  2,
	},
	{
		Name:         "balanced",
		ExpectedZone: schema.ZoneGreen,
		Health: schema.DailyHealthMetrics{
			SleepHours: f(7.5), SleepQualityScore: f(75), HRV: f(50), RestingHR: f(62),
			RecoveryScore: f(72), StressLevel: f(28), ExerciseMinutes: f(40), Steps: f(9000),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(8), OvertimeHours: f(0), TasksCompleted: f(6), TasksAssigned: f(6),
			MeetingsAttended: f(3), FocusTimeHours: f(3),
		},
		Baseline: standardBaseline(),
		RestGap:  3,
	},
	{
		Name:         "stretched",
		ExpectedZone: schema.ZoneYellow,
		Health: schema.DailyHealthMetrics{
			SleepHours: f(7.2), SleepQualityScore: f(72), HRV: f(50), RestingHR: f(62),
			RecoveryScore: f(60), StressLevel: f(40), ExerciseMinutes: f(30), Steps: f(7000),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(8.5), OvertimeHours: f(0), TasksCompleted: f(7), TasksAssigned: f(8),
			MeetingsAttended: f(4), FocusTimeHours: f(2),
		},
		Baseline: standardBaseline(),
		RestGap:  6,
	},
	{
		Name:         "burning_out",
		ExpectedZone: schema.ZoneRed,
		Health: schema.DailyHealthMetrics{
			SleepHours: f(5.5), SleepQualityScore: f(50), HRV: f(32), RestingHR: f(75),
			RecoveryScore: f(40), StressLevel: f(70), ExerciseMinutes: f(10), Steps: f(3500),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(10.5), OvertimeHours: f(2.5), TasksCompleted: f(5), TasksAssigned: f(10),
			MeetingsAttended: f(7), FocusTimeHours: f(0.5),
		},
		Baseline: schema.PersonalBaseline{
			SleepHours: f(7), SleepQuality: f(70), HRV: f(45), RestingHR: f(65), HoursWorked: f(8),
		},
		RestGap: 12,
	},
	{
		Name:         "new_parent",
		ExpectedZone: schema.ZoneYellow,
		Health: schema.DailyHealthMetrics{
			SleepHours: f(5.5), SleepQualityScore: f(68), HRV: f(47), RestingHR: f(63),
			RecoveryScore: f(55), StressLevel: f(45), ExerciseMinutes: f(20), Steps: f(6000),
		},
		Work: schema.DailyWorkMetrics{
			HoursWorked: f(6.5), OvertimeHours: f(0), TasksCompleted: f(6), TasksAssigned: f(6),
			MeetingsAttended: f(3), FocusTimeHours: f(2),
		},
		Baseline: standardBaseline(),
		Preferences: &schema.PersonalPreferences{
			IdealSleepHours: f(8),
			Weights: schema.PreferenceWeights{
				Sleep: f(70),
			},
		},
		LifeEvents: []schema.LifeEvent{{
			Title: "New baby", IsActive: true, SleepAdjustment: -30, WorkAdjustment: -20,
		}},
		RestGap: 4,
	},
}

func f(v float64) *float64 { return &v }

func standardBaseline() schema.PersonalBaseline {
	return schema.PersonalBaseline{
		SleepHours: f(7.5), SleepQuality: f(75), HRV: f(50), RestingHR: f(62), HoursWorked: f(8),
	}
}

// Lookup finds an archetype by name.
func Lookup(name string) (Archetype, bool) {
	for _, a := range Archetypes {
		if a.Name == name {
			return a, true
		}
	}
	return Archetype{}, false
}

// Sample is one fabricated employee-day and the zone it should produce.
type Sample struct {
	Archetype    string                 `json:"archetype"`
	ExpectedZone schema.Zone            `json:"expected_zone"`
	Input        schema.EvaluationInput `json:"input"`
}

// Generate fabricates perArchetype employee-days for every archetype. The same
// seed always yields the same samples.
func Generate(asOf schema.Date, perArchetype int, seed uint64) []Sample {
	if asOf.IsZero() {
		asOf = schema.NewDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	}
	samples := make([]Sample, 0, perArchetype*len(Archetypes))
	for ai, a := range Archetypes {
		rng := rand.New(rand.NewPCG(seed, uint64(ai)))
		for i := range perArchetype {
			samples = append(samples, Sample{
				Archetype:    a.Name,
				ExpectedZone: a.ExpectedZone,
				Input:        a.sample(rng, asOf, employeeID(a.Name, seed, i)),
			})
		}
	}
	return samples
}

// employeeID is a stable UUID derived from the archetype, seed and index.
func employeeID(archetype string, seed uint64, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "wellscore/%s/%d/%d", archetype, seed, i)).String()
}

func (a Archetype) sample(rng *rand.Rand, asOf schema.Date, id string) schema.EvaluationInput {
	h := a.Health
	h.Date = asOf
	for _, p := range []**float64{
		&h.SleepHours, &h.SleepQualityScore, &h.HRV, &h.RestingHR,
		&h.RecoveryScore, &h.StressLevel, &h.ExerciseMinutes, &h.Steps,
	} {
		*p = wiggle(rng, *p)
	}

	w := a.Work
	w.Date = asOf
	for _, p := range []**float64{&w.HoursWorked, &w.OvertimeHours, &w.FocusTimeHours} {
		*p = wiggle(rng, *p)
	}

	baseline := a.Baseline
	in := schema.EvaluationInput{
		EmployeeID: id,
		AsOf:       asOf,
		Health:     h,
		Work:       w,
		Baseline:   &baseline,
		RecentWork: recentWork(asOf, a.Work.HoursWorked, a.RestGap),
	}
	if a.Preferences != nil {
		prefs := *a.Preferences
		in.Preferences = &prefs
	}
	for _, e := range a.LifeEvents {
		e.StartDate = schema.NewDate(asOf.AddDate(0, 0, -30))
		in.LifeEvents = append(in.LifeEvents, e)
	}
	return in
}

// wiggle applies bounded relative noise, rounded to one decimal.
func wiggle(rng *rand.Rand, v *float64) *float64 {
	if v == nil {
		return nil
	}
	j := *v * (1 + (rng.Float64()*2-1)*jitter)
	j = math.Round(j*10) / 10
	return &j
}

// recentWork builds the previous days of work history ending in a rest day
// restGap days before asOf.
func recentWork(asOf schema.Date, hours *float64, restGap int) []schema.DailyWorkMetrics {
	if restGap <= 0 || hours == nil {
		return nil
	}
	rows := make([]schema.DailyWorkMetrics, 0, restGap)
	for d := 1; d <= restGap; d++ {
		h := *hours
		if d == restGap {
			h = 0
		}
		rows = append(rows, schema.DailyWorkMetrics{
			Date:        schema.NewDate(asOf.AddDate(0, 0, -d)),
			HoursWorked: &h,
		})
	}
	return rows
}

// Dataset wraps samples in the batch file format.
func Dataset(asOf schema.Date, samples []Sample) schema.Dataset {
	ds := schema.Dataset{AsOf: asOf, Employees: make([]schema.EvaluationInput, len(samples))}
	for i, s := range samples {
		ds.Employees[i] = s.Input
	}
	return ds
}

// Evaluator scores one employee-day.
type Evaluator interface {
	Evaluate(in schema.EvaluationInput) (*schema.ScoreResult, error)
}

// Check is the acceptance outcome for one sample.
type Check struct {
	Sample
	Result *schema.ScoreResult `json:"result"`
	Match  bool                `json:"match"`
}

// Verify scores every sample and reports whether each landed in its expected zone.
func Verify(eval Evaluator, samples []Sample) ([]Check, error) {
	checks := make([]Check, 0, len(samples))
	for _, s := range samples {
		res, err := eval.Evaluate(s.Input)
		if err != nil {
			return nil, fmt.Errorf("archetype %s employee %s: %w", s.Archetype, s.Input.EmployeeID, err)
		}
		checks = append(checks, Check{Sample: s, Result: res, Match: res.Zone == s.ExpectedZone})
	}
	return checks, nil
}

// Mismatches counts checks that missed their expected zone.
func Mismatches(checks []Check) int {
	n := 0
	for _, c := range checks {
		if !c.Match {
			n++
		}
	}
	return n
}
