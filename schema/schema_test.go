package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Zone
	}{
		{0, ZoneGreen},
		{39.999, ZoneGreen},
		{40, ZoneYellow},
		{69.99, ZoneYellow},
		{70, ZoneRed},
		{100, ZoneRed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZoneForScore(tt.score), "score %v", tt.score)
	}
}

func TestCategoryRank(t *testing.T) {
	assert.Less(t, CategoryRank(CategorySleep), CategoryRank(CategoryWorkload))
	assert.Less(t, CategoryRank(CategoryWorkload), CategoryRank(CategoryStress))
	assert.Less(t, CategoryRank(CategoryStress), CategoryRank(CategoryExercise))
	assert.Less(t, CategoryRank(CategoryExercise), CategoryRank(CategoryMeetings))
	assert.Equal(t, len(CategoryPriority), CategoryRank(CategoryNone))
}

func TestDefaultFactorTableIsWellFormed(t *testing.T) {
	seen := map[FactorKey]bool{}
	for _, f := range DefaultFactorTable {
		t.Run(string(f.Key), func(t *testing.T) {
			assert.False(t, seen[f.Key], "duplicate key")
			seen[f.Key] = true
			assert.NotEmpty(t, f.Label)
			assert.NotNil(t, f.Extract)
			assert.Greater(t, f.Scale, 0.0)
			assert.Greater(t, f.Cap, 0.0)
			assert.GreaterOrEqual(t, f.BurnoutWeight, 0.0)
			assert.GreaterOrEqual(t, f.ReadinessWeight, 0.0)
			assert.LessOrEqual(t, f.MinTarget, f.Reference)
			assert.GreaterOrEqual(t, f.MaxTarget, f.Reference)
			assert.NotEqual(t, CategoryNone, f.Category)
			assert.NotEmpty(t, f.Templates.Higher)
			assert.NotEmpty(t, f.Templates.Lower)
			assert.NotEmpty(t, f.Templates.Steady)
		})
	}
}

func TestFactorFormatValue(t *testing.T) {
	sleep, _ := DefaultFactorTable.Lookup(FactorSleepHours)
	tasks, _ := DefaultFactorTable.Lookup(FactorTaskCompletion)
	quality, _ := DefaultFactorTable.Lookup(FactorSleepQuality)

	assert.Equal(t, "5.5 hrs", sleep.FormatValue(5.5))
	assert.Equal(t, "50%", tasks.FormatValue(0.5))
	assert.Equal(t, "85/100", quality.FormatValue(85))
}

func TestFactorDescribe(t *testing.T) {
	sleep, ok := DefaultFactorTable.Lookup(FactorSleepHours)
	require.True(t, ok)

	assert.Equal(t, "Slept 1.5 hrs less than your 7.0 hrs baseline, which adds to fatigue.",
		sleep.Describe(5.5, 7.0, -1.5, "your 7.0 hrs baseline"))
	assert.Equal(t, "Slept 1.0 hrs more than your 7.0 hrs baseline.",
		sleep.Describe(8.0, 7.0, 1.0, "your 7.0 hrs baseline"))
	assert.Equal(t, "Sleep duration was in line with your 7.0 hrs baseline.",
		sleep.Describe(7.1, 7.0, 0.1, "your 7.0 hrs baseline"))
}

func TestFactorTableWithOverrides(t *testing.T) {
	weight := 2.0
	table := DefaultFactorTable.WithOverrides(map[FactorKey]FactorOverride{
		FactorSleepHours: {BurnoutWeight: &weight},
	})

	got, _ := table.Lookup(FactorSleepHours)
	orig, _ := DefaultFactorTable.Lookup(FactorSleepHours)
	assert.Equal(t, 2.0, got.BurnoutWeight)
	assert.Equal(t, 1.0, orig.BurnoutWeight, "default table must not be mutated")
	assert.Equal(t, orig.Scale, got.Scale)
}

func TestFactorTableDefinitions(t *testing.T) {
	defs := DefaultFactorTable.Definitions()
	require.Len(t, defs, len(DefaultFactorTable))
	for i, d := range defs {
		spec := DefaultFactorTable[i]
		assert.Equal(t, spec.Key, d.Key)
		assert.Equal(t, spec.Direction.String(), d.Direction)
		assert.Equal(t, spec.BurnoutWeight, d.BurnoutWeight)
	}

	data, err := json.Marshal(FactorReport{Scaling: DefaultScaling, Factors: defs[:1]})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scaling":7`)
	assert.Contains(t, string(data), `"direction":"higher is`)
}

func TestTaskRatio(t *testing.T) {
	assert.Nil(t, taskRatio(DailyHealthMetrics{}, DailyWorkMetrics{TasksCompleted: Float(3)}))
	assert.Nil(t, taskRatio(DailyHealthMetrics{}, DailyWorkMetrics{TasksCompleted: Float(3), TasksAssigned: Float(0)}))
	r := taskRatio(DailyHealthMetrics{}, DailyWorkMetrics{TasksCompleted: Float(5), TasksAssigned: Float(10)})
	require.NotNil(t, r)
	assert.InDelta(t, 0.5, *r, 1e-9)
}

func TestLifeEventActiveOn(t *testing.T) {
	start, _ := ParseDate("2026-03-01")
	end, _ := ParseDate("2026-03-31")
	event := LifeEvent{Title: "Move", StartDate: start, EndDate: &end, IsActive: true}
	ongoing := LifeEvent{Title: "New baby", StartDate: start, IsActive: true}
	closed := LifeEvent{Title: "Closed", StartDate: start, IsActive: false}

	tests := []struct {
		name  string
		event LifeEvent
		day   string
		want  bool
	}{
		{"before start", event, "2026-02-28", false},
		{"on start", event, "2026-03-01", true},
		{"on end", event, "2026-03-31", true},
		{"after end", event, "2026-04-01", false},
		{"ongoing", ongoing, "2027-01-01", true},
		{"inactive flag", closed, "2026-03-10", false},
		{"zero day", event, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseDate(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.event.ActiveOn(day))
		})
	}
}

func TestMetricsEmpty(t *testing.T) {
	assert.True(t, DailyHealthMetrics{}.Empty())
	assert.True(t, DailyWorkMetrics{}.Empty())
	assert.False(t, DailyHealthMetrics{Steps: Float(0)}.Empty())
	assert.False(t, DailyWorkMetrics{EmailsSent: Float(12)}.Empty())
}

func TestDateJSON(t *testing.T) {
	var in struct {
		Day  Date  `json:"day"`
		Next *Date `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2026-10-19","next":null}`), &in))
	assert.Equal(t, "2026-10-19", in.Day.String())
	assert.Nil(t, in.Next)

	out, err := json.Marshal(in.Day)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-10-19"`, string(out))

	_, err = ParseDate("19/10/2026")
	assert.Error(t, err)
}

func TestDaysSince(t *testing.T) {
	a, _ := ParseDate("2026-10-19")
	b, _ := ParseDate("2026-10-12")
	assert.Equal(t, 7, a.DaysSince(b))
	assert.Equal(t, NewDate(time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)), a)
}

func TestZoneHistoryRecordRoundTrip(t *testing.T) {
	day, _ := ParseDate("2026-10-19")
	rest := 3
	result := &ScoreResult{
		EmployeeID:     "emp-1",
		Day:            day,
		Status:         StatusScored,
		BurnoutScore:   72.35,
		ReadinessScore: 31.1,
		Zone:           ZoneRed,
		Explanation: &Explanation{
			Zone:           ZoneRed,
			BurnoutScore:   72.35,
			ReadinessScore: 31.1,
			Factors: []Factor{{
				Key: FactorSleepHours, Name: "Sleep Duration", Category: CategorySleep,
				Impact: ImpactNegative, Value: "5.5 hrs vs 7.0 hrs baseline",
				Description: "Slept 1.5 hrs less.", Weight: 1, BurnoutContribution: 1.5, ReadinessContribution: -1.2,
			}},
			Recommendations: Recommendations{Personal: []string{"Sleep"}, Leadership: []string{"Check in"}},
			Context: ExplanationContext{
				DaysSinceRestDay: &rest,
				LifeEvents:       []LifeEventNote{{Title: "Move", Impact: "sleep -10%"}},
				Calibration:      &Calibration{Summary: "Sleep expectation lowered 10%."},
			},
		},
	}

	rec, err := NewZoneHistoryRecord(result, 4, time.Unix(0, 0).UTC())
	require.NoError(t, err)
	raw, err := rec.ExplanationJSON()
	require.NoError(t, err)

	parsed, err := ParseExplanationJSON(raw)
	require.NoError(t, err)
	rec.Explanation = parsed
	assert.Equal(t, result, rec.ScoreResult())
}

func TestNewZoneHistoryRecordRejectsInsufficient(t *testing.T) {
	_, err := NewZoneHistoryRecord(&ScoreResult{EmployeeID: "e", Status: StatusInsufficientData}, 0, time.Now())
	assert.Error(t, err)
}

func TestWellness(t *testing.T) {
	r := &ScoreResult{Status: StatusScored, BurnoutScore: 35}
	require.NotNil(t, r.Wellness())
	assert.Equal(t, 65.0, *r.Wellness())
	assert.Nil(t, (&ScoreResult{Status: StatusInsufficientData}).Wellness())
	assert.Equal(t, 100.0, WellnessFromBurnout(-5))
}

func TestRankResults(t *testing.T) {
	results := []*ScoreResult{
		{EmployeeID: "a", Status: StatusScored, BurnoutScore: 80, Explanation: &Explanation{Factors: []Factor{{Name: "Overtime", Impact: ImpactNegative}}}},
		{EmployeeID: "b", Status: StatusScored, BurnoutScore: 20, Explanation: &Explanation{}},
	}
	ranked := RankResults(results)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "At Risk", ranked[0].Label)
	assert.Equal(t, "Overtime", ranked[0].TopRisk)
	assert.Equal(t, "Healthy", ranked[1].Label)
	assert.Equal(t, "-", ranked[1].TopRisk)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcd...", TruncateText("abcdefghij", 7))
}
