package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/huangsam/wellscore/schema"
)

// ErrInvalidInput marks caller errors: out-of-range or malformed inputs.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError describes one rejected field.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// rangeCheck is a bound for one optional field.
type rangeCheck struct {
	field    string
	value    *float64
	min, max float64
}

func (c rangeCheck) check() error {
	if c.value == nil {
		return nil
	}
	v := *c.value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: c.field, Value: v, Reason: "must be a finite number"}
	}
	if v < c.min || v > c.max {
		return &ValidationError{Field: c.field, Value: v, Reason: fmt.Sprintf("must be between %g and %g", c.min, c.max)}
	}
	return nil
}

// ValidateInput rejects values outside their declared scales. Values are
// never clamped here since callers aggregate these inputs elsewhere.
func ValidateInput(in schema.EvaluationInput) error {
	var errs []error
	add := func(checks ...rangeCheck) {
		for _, c := range checks {
			if err := c.check(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	h := in.Health
	add(
		rangeCheck{"health.sleep_hours", h.SleepHours, 0, 24},
		rangeCheck{"health.sleep_quality_score", h.SleepQualityScore, 0, 100},
		rangeCheck{"health.deep_sleep_hours", h.DeepSleepHours, 0, 24},
		rangeCheck{"health.rem_sleep_hours", h.REMSleepHours, 0, 24},
		rangeCheck{"health.core_sleep_hours", h.CoreSleepHours, 0, 24},
		rangeCheck{"health.awake_hours", h.AwakeHours, 0, 24},
		rangeCheck{"health.resting_hr", h.RestingHR, 20, 250},
		rangeCheck{"health.hrv", h.HRV, 0, 300},
		rangeCheck{"health.steps", h.Steps, 0, 200000},
		rangeCheck{"health.exercise_minutes", h.ExerciseMinutes, 0, 1440},
		rangeCheck{"health.stress_level", h.StressLevel, 0, 100},
		rangeCheck{"health.recovery_score", h.RecoveryScore, 0, 100},
	)
	add(workChecks("work", in.Work)...)
	for i, w := range in.RecentWork {
		add(workChecks(fmt.Sprintf("recent_work[%d]", i), w)...)
	}

	// Baselines share the target bounds of the default factor table.
	if b := in.Baseline; b != nil {
		add(
			rangeCheck{"baseline.sleep_hours", b.SleepHours, 3, 12},
			rangeCheck{"baseline.sleep_quality", b.SleepQuality, 1, 100},
			rangeCheck{"baseline.hrv", b.HRV, 5, 200},
			rangeCheck{"baseline.resting_hr", b.RestingHR, 30, 120},
			rangeCheck{"baseline.hours_worked", b.HoursWorked, 2, 16},
		)
	}

	if p := in.Preferences; p != nil {
		w := p.Weights
		add(
			rangeCheck{"preferences.ideal_sleep_hours", p.IdealSleepHours, 0, 24},
			rangeCheck{"preferences.ideal_work_hours", p.IdealWorkHours, 0, 24},
			rangeCheck{"preferences.ideal_exercise_minutes", p.IdealExerciseMinutes, 0, 1440},
			rangeCheck{"preferences.weights.sleep", w.Sleep, 0, 100},
			rangeCheck{"preferences.weights.exercise", w.Exercise, 0, 100},
			rangeCheck{"preferences.weights.workload", w.Workload, 0, 100},
			rangeCheck{"preferences.weights.meetings", w.Meetings, 0, 100},
			rangeCheck{"preferences.weights.heart", w.Heart, 0, 100},
		)
	}

	for i, e := range in.LifeEvents {
		prefix := fmt.Sprintf("life_events[%d]", i)
		add(
			rangeCheck{prefix + ".sleep_adjustment", &e.SleepAdjustment, -100, 100},
			rangeCheck{prefix + ".work_adjustment", &e.WorkAdjustment, -100, 100},
			rangeCheck{prefix + ".exercise_adjustment", &e.ExerciseAdjustment, -100, 100},
			rangeCheck{prefix + ".stress_adjustment", &e.StressAdjustment, -100, 100},
		)
		if e.EndDate != nil && !e.EndDate.IsZero() && !e.StartDate.IsZero() && e.EndDate.Before(e.StartDate.Time) {
			errs = append(errs, &ValidationError{
				Field:  prefix + ".end_date",
				Reason: fmt.Sprintf("ends %s before it starts %s", e.EndDate, e.StartDate),
			})
		}
	}

	return errors.Join(errs...)
}

func workChecks(prefix string, w schema.DailyWorkMetrics) []rangeCheck {
	return []rangeCheck{
		{prefix + ".hours_worked", w.HoursWorked, 0, 24},
		{prefix + ".overtime_hours", w.OvertimeHours, 0, 24},
		{prefix + ".tasks_completed", w.TasksCompleted, 0, 10000},
		{prefix + ".tasks_assigned", w.TasksAssigned, 0, 10000},
		{prefix + ".meetings_attended", w.MeetingsAttended, 0, 100},
		{prefix + ".meeting_hours", w.MeetingHours, 0, 24},
		{prefix + ".emails_sent", w.EmailsSent, 0, 100000},
		{prefix + ".avg_response_minutes", w.AvgResponseMinutes, 0, 100000},
		{prefix + ".focus_time_hours", w.FocusTimeHours, 0, 24},
	}
}
