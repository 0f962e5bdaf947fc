package schema

// DailyHealthMetrics is one employee's biometric record for one day.
// Nil fields mean no data and are never defaulted.
type DailyHealthMetrics struct {
	Date              Date     `json:"date,omitzero"`
	SleepHours        *float64 `json:"sleep_hours,omitempty"`
	SleepQualityScore *float64 `json:"sleep_quality_score,omitempty"`
	DeepSleepHours    *float64 `json:"deep_sleep_hours,omitempty"`
	REMSleepHours     *float64 `json:"rem_sleep_hours,omitempty"`
	CoreSleepHours    *float64 `json:"core_sleep_hours,omitempty"`
	AwakeHours        *float64 `json:"awake_hours,omitempty"`
	RestingHR         *float64 `json:"resting_hr,omitempty"`
	HRV               *float64 `json:"hrv,omitempty"`
	Steps             *float64 `json:"steps,omitempty"`
	ExerciseMinutes   *float64 `json:"exercise_minutes,omitempty"`
	StressLevel       *float64 `json:"stress_level,omitempty"`
	RecoveryScore     *float64 `json:"recovery_score,omitempty"`
}

// DailyWorkMetrics is one employee's workplace record for one day.
// Nil fields mean no data and are never defaulted.
type DailyWorkMetrics struct {
	Date               Date     `json:"date,omitzero"`
	HoursWorked        *float64 `json:"hours_worked,omitempty"`
	OvertimeHours      *float64 `json:"overtime_hours,omitempty"`
	TasksCompleted     *float64 `json:"tasks_completed,omitempty"`
	TasksAssigned      *float64 `json:"tasks_assigned,omitempty"`
	MeetingsAttended   *float64 `json:"meetings_attended,omitempty"`
	MeetingHours       *float64 `json:"meeting_hours,omitempty"`
	EmailsSent         *float64 `json:"emails_sent,omitempty"`
	AvgResponseMinutes *float64 `json:"avg_response_minutes,omitempty"`
	FocusTimeHours     *float64 `json:"focus_time_hours,omitempty"`
}

// Empty reports whether the record carries no values at all.
func (h DailyHealthMetrics) Empty() bool {
	for _, v := range []*float64{
		h.SleepHours, h.SleepQualityScore, h.DeepSleepHours, h.REMSleepHours,
		h.CoreSleepHours, h.AwakeHours, h.RestingHR, h.HRV, h.Steps,
		h.ExerciseMinutes, h.StressLevel, h.RecoveryScore,
	} {
		if v != nil {
			return false
		}
	}
	return true
}

// Empty reports whether the record carries no values at all.
func (w DailyWorkMetrics) Empty() bool {
	for _, v := range []*float64{
		w.HoursWorked, w.OvertimeHours, w.TasksCompleted, w.TasksAssigned,
		w.MeetingsAttended, w.MeetingHours, w.EmailsSent, w.AvgResponseMinutes,
		w.FocusTimeHours,
	} {
		if v != nil {
			return false
		}
	}
	return true
}

// PersonalBaseline holds an employee's rolling expected values, computed
// upstream. Nil fields fall back to the factor's population reference.
type PersonalBaseline struct {
	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	SleepQuality *float64 `json:"sleep_quality,omitempty"`
	HRV          *float64 `json:"hrv,omitempty"`
	RestingHR    *float64 `json:"resting_hr,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
}

// Value returns the baseline for the given source field, if any.
func (b *PersonalBaseline) Value(field BaselineField) *float64 {
	if b == nil {
		return nil
	}
	switch field {
	case BaselineSleepHours:
		return b.SleepHours
	case BaselineSleepQuality:
		return b.SleepQuality
	case BaselineHRV:
		return b.HRV
	case BaselineRestingHR:
		return b.RestingHR
	case BaselineHoursWorked:
		return b.HoursWorked
	}
	return nil
}

// BaselineField names a column of PersonalBaseline.
type BaselineField string

const (
	BaselineNone         BaselineField = ""
	BaselineSleepHours   BaselineField = "sleep_hours"
	BaselineSleepQuality BaselineField = "sleep_quality"
	BaselineHRV          BaselineField = "hrv"
	BaselineRestingHR    BaselineField = "resting_hr"
	BaselineHoursWorked  BaselineField = "hours_worked"
)

// PreferenceWeights are relative multipliers in [0,100] where 50 is neutral.
// A nil weight is neutral.
type PreferenceWeights struct {
	Sleep    *float64 `json:"sleep,omitempty" mapstructure:"sleep"`
	Exercise *float64 `json:"exercise,omitempty" mapstructure:"exercise"`
	Workload *float64 `json:"workload,omitempty" mapstructure:"workload"`
	Meetings *float64 `json:"meetings,omitempty" mapstructure:"meetings"`
	Heart    *float64 `json:"heart,omitempty" mapstructure:"heart"`
}

// Get returns the weight for a preference dimension. Unknown or unset
// dimensions are neutral.
func (w PreferenceWeights) Get(dim PreferenceDimension) float64 {
	var v *float64
	switch dim {
	case PreferenceSleep:
		v = w.Sleep
	case PreferenceExercise:
		v = w.Exercise
	case PreferenceWorkload:
		v = w.Workload
	case PreferenceMeetings:
		v = w.Meetings
	case PreferenceHeart:
		v = w.Heart
	}
	if v == nil {
		return NeutralPreferenceWeight
	}
	return *v
}

// NeutralPreferenceWeight is the preference weight that leaves contributions unchanged.
const NeutralPreferenceWeight = 50.0

// PersonalPreferences holds stated ideals and factor weights.
type PersonalPreferences struct {
	IdealSleepHours      *float64          `json:"ideal_sleep_hours,omitempty"`
	IdealWorkHours       *float64          `json:"ideal_work_hours,omitempty"`
	IdealExerciseMinutes *float64          `json:"ideal_exercise_minutes,omitempty"`
	Weights              PreferenceWeights `json:"weights,omitzero"`
}

// DefaultPreferences returns the preferences used for employees who have not
// completed setup.
func DefaultPreferences() PersonalPreferences {
	sleep, work, exercise := 8.0, 8.0, 30.0
	return PersonalPreferences{
		IdealSleepHours:      &sleep,
		IdealWorkHours:       &work,
		IdealExerciseMinutes: &exercise,
		Weights: PreferenceWeights{
			Sleep:    Float(NeutralPreferenceWeight),
			Exercise: Float(NeutralPreferenceWeight),
			Workload: Float(NeutralPreferenceWeight),
			Meetings: Float(NeutralPreferenceWeight),
			Heart:    Float(NeutralPreferenceWeight),
		},
	}
}

// LifeEvent is a time-bounded circumstance that shifts expected baselines.
// Adjustments are percentages, typically between -50 and +50.
type LifeEvent struct {
	ID                 string  `json:"id,omitempty"`
	Title              string  `json:"title"`
	StartDate          Date    `json:"start_date,omitzero"`
	EndDate            *Date   `json:"end_date,omitempty"`
	IsActive           bool    `json:"is_active"`
	SleepAdjustment    float64 `json:"sleep_adjustment,omitempty"`
	WorkAdjustment     float64 `json:"work_adjustment,omitempty"`
	ExerciseAdjustment float64 `json:"exercise_adjustment,omitempty"`
	StressAdjustment   float64 `json:"stress_adjustment,omitempty"`
}

// Adjustment returns the percentage for one dimension.
func (e LifeEvent) Adjustment(dim AdjustmentDimension) float64 {
	switch dim {
	case AdjustSleep:
		return e.SleepAdjustment
	case AdjustWork:
		return e.WorkAdjustment
	case AdjustExercise:
		return e.ExerciseAdjustment
	case AdjustStress:
		return e.StressAdjustment
	}
	return 0
}

// ActiveOn reports whether the event applies on the given day.
// A zero day selects every event flagged active.
func (e LifeEvent) ActiveOn(day Date) bool {
	if !e.IsActive {
		return false
	}
	if day.IsZero() {
		return true
	}
	if !e.StartDate.IsZero() && day.Before(e.StartDate.Time) {
		return false
	}
	if e.EndDate != nil && !e.EndDate.IsZero() && day.After(e.EndDate.Time) {
		return false
	}
	return true
}

// EvaluationInput is everything needed to score one employee-day.
type EvaluationInput struct {
	EmployeeID  string               `json:"employee_id,omitempty"`
	AsOf        Date                 `json:"as_of,omitzero"`
	Health      DailyHealthMetrics   `json:"health"`
	Work        DailyWorkMetrics     `json:"work"`
	Baseline    *PersonalBaseline    `json:"baseline,omitempty"`
	Preferences *PersonalPreferences `json:"preferences,omitempty"`
	LifeEvents  []LifeEvent          `json:"life_events,omitempty"`
	RecentWork  []DailyWorkMetrics   `json:"recent_work,omitempty"`
}

// Day returns the calendar day being scored: AsOf, else the metric dates.
func (in EvaluationInput) Day() Date {
	switch {
	case !in.AsOf.IsZero():
		return in.AsOf
	case !in.Health.Date.IsZero():
		return in.Health.Date
	default:
		return in.Work.Date
	}
}

// Float returns a pointer to v. It keeps literal inputs short.
func Float(v float64) *float64 {
	return &v
}
