package core

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/huangsam/wellscore/schema"
)

// ErrInsufficientHistory is returned when too few days exist to fit a trend.
var ErrInsufficientHistory = errors.New("insufficient history for prediction")

const (
	minTrendPoints = 3
	stableSlope    = 0.5 // burnout points per day
)

// PredictTrend fits a least-squares line through burnout scores by day and
// projects it horizon days past the latest record.
func PredictTrend(employeeID string, history []schema.ZoneHistoryRecord, horizon int) (*schema.Prediction, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	if len(history) < minTrendPoints {
		return nil, fmt.Errorf("%w: need %d days, have %d", ErrInsufficientHistory, minTrendPoints, len(history))
	}

	records := make([]schema.ZoneHistoryRecord, len(history))
	copy(records, history)
	sort.Slice(records, func(i, j int) bool { return records[i].Day.Before(records[j].Day.Time) })

	first := records[0].Day
	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = float64(r.Day.DaysSince(first))
		ys[i] = r.BurnoutScore
	}

	var alpha, beta float64
	if xs[len(xs)-1] == 0 {
		// every record on the same day, no slope to fit
		alpha = stat.Mean(ys, nil)
	} else {
		alpha, beta = stat.LinearRegression(xs, ys, nil, false)
	}

	latest := records[len(records)-1]
	projected := roundScore(clamp(alpha+beta*(xs[len(xs)-1]+float64(horizon)), 0, 100))

	trend := schema.TrendStable
	switch {
	case beta > stableSlope:
		trend = schema.TrendRising
	case beta < -stableSlope:
		trend = schema.TrendFalling
	}

	return &schema.Prediction{
		EmployeeID:        employeeID,
		HorizonDays:       horizon,
		DataPoints:        len(records),
		SlopePerDay:       math.Round(beta*1000) / 1000,
		Trend:             trend,
		CurrentBurnout:    latest.BurnoutScore,
		ProjectedBurnout:  projected,
		ProjectedZone:     schema.ZoneForScore(projected),
		ProjectedWellness: schema.WellnessFromBurnout(projected),
		MeanBurnout:       roundScore(stat.Mean(ys, nil)),
		StdDevBurnout:     roundScore(stat.StdDev(ys, nil)),
	}, nil
}
