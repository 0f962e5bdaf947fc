package schema

// Zone is the discrete risk category derived from a burnout score.
type Zone string

const (
	ZoneRed    Zone = "red"    // burnout score at or above the red threshold
	ZoneYellow Zone = "yellow" // burnout score between the yellow and red thresholds
	ZoneGreen  Zone = "green"  // burnout score below the yellow threshold
)

// Zone thresholds on the burnout score.
const (
	RedThreshold    = 70.0
	YellowThreshold = 40.0
)

// ZoneForScore maps a burnout score to its zone.
func ZoneForScore(burnout float64) Zone {
	switch {
	case burnout >= RedThreshold:
		return ZoneRed
	case burnout >= YellowThreshold:
		return ZoneYellow
	default:
		return ZoneGreen
	}
}

// Impact is the signed effect of a factor on the scores.
type Impact string

const (
	ImpactPositive Impact = "positive" // reduces burnout or improves readiness
	ImpactNegative Impact = "negative" // raises burnout or lowers readiness
	ImpactNeutral  Impact = "neutral"  // below the materiality threshold
)

// ResultStatus distinguishes a scored day from a day with nothing to score.
type ResultStatus string

const (
	StatusScored           ResultStatus = "scored"
	StatusInsufficientData ResultStatus = "insufficient_data"
)

// Direction says whether more of a metric is good or bad for the employee.
type Direction int

const (
	HigherIsBetter Direction = -1
	HigherIsWorse  Direction = 1
)

// Sign returns the multiplier applied to a raw deviation before it becomes
// a burnout contribution.
func (d Direction) Sign() float64 {
	return float64(d)
}

// String returns the human-readable name of the direction.
func (d Direction) String() string {
	if d == HigherIsBetter {
		return "higher is better"
	}
	return "higher is worse"
}

// FactorKey identifies a scored factor.
type FactorKey string

const (
	FactorSleepHours     FactorKey = "sleep_hours"
	FactorSleepQuality   FactorKey = "sleep_quality"
	FactorHRV            FactorKey = "hrv"
	FactorRestingHR      FactorKey = "resting_hr"
	FactorRecovery       FactorKey = "recovery"
	FactorStressLevel    FactorKey = "stress_level"
	FactorExercise       FactorKey = "exercise"
	FactorSteps          FactorKey = "steps"
	FactorHoursWorked    FactorKey = "hours_worked"
	FactorOvertime       FactorKey = "overtime"
	FactorTaskCompletion FactorKey = "task_completion"
	FactorMeetings       FactorKey = "meetings"
	FactorFocusTime      FactorKey = "focus_time"
)

// Category groups factors for recommendations and tie-breaking.
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryWorkload Category = "workload"
	CategoryStress   Category = "stress"
	CategoryExercise Category = "exercise"
	CategoryMeetings Category = "meetings"
	CategoryNone     Category = "none"
)

// CategoryPriority is the fixed order used to break ties between equally
// dominant categories. Lower index wins.
var CategoryPriority = []Category{
	CategorySleep,
	CategoryWorkload,
	CategoryStress,
	CategoryExercise,
	CategoryMeetings,
}

// CategoryRank returns the tie-break rank of a category.
func CategoryRank(c Category) int {
	for i, p := range CategoryPriority {
		if p == c {
			return i
		}
	}
	return len(CategoryPriority)
}

// PreferenceDimension names one of the five preference weights.
type PreferenceDimension string

const (
	PreferenceNone     PreferenceDimension = ""
	PreferenceSleep    PreferenceDimension = "sleep"
	PreferenceExercise PreferenceDimension = "exercise"
	PreferenceWorkload PreferenceDimension = "workload"
	PreferenceMeetings PreferenceDimension = "meetings"
	PreferenceHeart    PreferenceDimension = "heart"
)

// AdjustmentDimension names a life-event adjustment axis.
type AdjustmentDimension string

const (
	AdjustNone     AdjustmentDimension = ""
	AdjustSleep    AdjustmentDimension = "sleep"
	AdjustWork     AdjustmentDimension = "work"
	AdjustExercise AdjustmentDimension = "exercise"
	AdjustStress   AdjustmentDimension = "stress"
)

// AdjustmentDimensions lists every adjustment axis in reporting order.
var AdjustmentDimensions = []AdjustmentDimension{AdjustSleep, AdjustWork, AdjustExercise, AdjustStress}

// OutputMode represents the output format.
type OutputMode string

const (
	TextOut    OutputMode = "text"
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes is the set of output modes accepted by the CLI.
var ValidOutputModes = map[OutputMode]bool{
	TextOut: true,
	JSONOut: true,
	CSVOut:  true,
}

// DatabaseBackend represents the type of history store backend.
type DatabaseBackend string

const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidDatabaseBackends is the set of history backends accepted by the CLI.
var ValidDatabaseBackends = map[DatabaseBackend]bool{
	SQLiteBackend:     true,
	MySQLBackend:      true,
	PostgreSQLBackend: true,
	NoneBackend:       true,
}

// DateLayout is the calendar-day format used across inputs, storage and the API.
const DateLayout = "2006-01-02"

// Defaults for ranges and display.
const (
	DefaultLimit     = 20
	DefaultPrecision = 1
	DefaultWorkers   = 4
	DefaultPort      = 8080
	DefaultScaling   = 7.0
	DefaultHorizon   = 7

	// MaterialityThreshold is the clamped directional deviation below which a
	// factor is reported as neutral.
	MaterialityThreshold = 0.25

	// LifeEventClampPercent bounds the summed life-event adjustment per dimension.
	LifeEventClampPercent = 50.0

	// RestDayHours is the hours-worked ceiling for a day to count as rest.
	RestDayHours = 1.0
)
