package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/huangsam/wellscore/schema"
)

// BuildFactors converts deviations into explained factors, largest driver first.
func BuildFactors(devs []Deviation) []schema.Factor {
	ordered := make([]Deviation, len(devs))
	copy(ordered, devs)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai, aj := math.Abs(ordered[i].Burnout), math.Abs(ordered[j].Burnout)
		if ai != aj {
			return ai > aj
		}
		return schema.CategoryRank(ordered[i].Target.Factor.Category) < schema.CategoryRank(ordered[j].Target.Factor.Category)
	})

	factors := make([]schema.Factor, 0, len(ordered))
	for _, d := range ordered {
		t := d.Target
		f := t.Factor
		factors = append(factors, schema.Factor{
			Key:                   f.Key,
			Name:                  f.Label,
			Category:              f.Category,
			Impact:                d.Impact(),
			Value:                 fmt.Sprintf("%s vs %s %s", f.FormatValue(d.Actual), f.FormatValue(t.Value()), t.noun()),
			Description:           f.Describe(d.Actual, t.Value(), d.Raw, t.Phrase()),
			Weight:                roundWeight(d.Weight()),
			BurnoutContribution:   roundWeight(d.Burnout),
			ReadinessContribution: roundWeight(d.Readiness),
		})
	}
	return factors
}

func roundWeight(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// daysSinceRestDay walks dated work rows for the most recent day with
// almost no hours worked. It returns nil when no rest day is on record.
func daysSinceRestDay(day schema.Date, today schema.DailyWorkMetrics, recent []schema.DailyWorkMetrics) *int {
	if day.IsZero() {
		return nil
	}
	rows := append([]schema.DailyWorkMetrics{today}, recent...)
	var last schema.Date
	for _, w := range rows {
		if w.Date.IsZero() || w.HoursWorked == nil || w.Date.After(day.Time) {
			continue
		}
		if *w.HoursWorked < schema.RestDayHours && (last.IsZero() || w.Date.After(last.Time)) {
			last = w.Date
		}
	}
	if last.IsZero() {
		return nil
	}
	days := day.DaysSince(last)
	return &days
}

// calibrate describes, with direction and magnitude, how personalization
// changed targets and weights. It returns nil when nothing moved.
func calibrate(table schema.FactorTable, p Personalization) *schema.Calibration {
	c := &schema.Calibration{Clamps: p.Clamps}
	var sentences []string

	for _, f := range table {
		bv, ok := p.Baseline[f.Key]
		if !ok || !bv.Adjusted() || bv.Original == 0 {
			continue
		}
		pct := (bv.Value - bv.Original) / bv.Original * 100
		c.Targets = append(c.Targets, schema.TargetAdjustment{
			Factor:  f.Key,
			From:    bv.Original,
			To:      bv.Value,
			Percent: math.Round(pct*10) / 10,
			Sources: bv.Sources,
		})
		direction := "raised"
		if pct < 0 {
			direction = "lowered"
		}
		s := fmt.Sprintf("%s expectation %s %.0f%% (%s → %s)",
			f.Label, direction, math.Abs(pct), f.FormatValue(bv.Original), f.FormatValue(bv.Value))
		if len(bv.Sources) > 0 {
			s += " for: " + strings.Join(bv.Sources, ", ")
		}
		sentences = append(sentences, s+".")
	}

	for _, dim := range preferenceDimensions {
		m := p.Weights.Multiplier(dim)
		if math.Abs(m-1) < 1e-9 {
			continue
		}
		c.Weights = append(c.Weights, schema.WeightAdjustment{Dimension: dim, Multiplier: m})
		direction := "up"
		if m < 1 {
			direction = "down"
		}
		sentences = append(sentences, fmt.Sprintf("%s factors weighted %s to %.2fx by your preferences.",
			titleCase(string(dim)), direction, m))
	}

	if len(c.Clamps) > 0 {
		sentences = append(sentences, "Some adjustments were limited to keep expectations realistic.")
	}
	if len(sentences) == 0 {
		return nil
	}
	c.Summary = strings.Join(sentences, " ")
	return c
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Explain assembles the full explanation for a scored day.
func Explain(table schema.FactorTable, in schema.EvaluationInput, p Personalization, devs []Deviation, scores Scores) *schema.Explanation {
	ctx := schema.ExplanationContext{
		DaysSinceRestDay: daysSinceRestDay(in.Day(), in.Work, in.RecentWork),
		Calibration:      calibrate(table, p),
	}
	for _, e := range p.ActiveEvents {
		ctx.LifeEvents = append(ctx.LifeEvents, schema.LifeEventNote{Title: e.Title, Impact: eventImpact(e)})
	}

	return &schema.Explanation{
		Zone:            scores.Zone,
		BurnoutScore:    scores.Burnout,
		ReadinessScore:  scores.Readiness,
		Factors:         BuildFactors(devs),
		Recommendations: Recommend(scores.Zone, devs),
		Context:         ctx,
	}
}
