package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// jsonEvaluation adds the display wellness score to a result.
type jsonEvaluation struct {
	*schema.ScoreResult
	Wellness *float64 `json:"wellness,omitempty"`
}

// WriteEvaluation outputs a single result, dispatching based on the output format configured.
func WriteEvaluation(result *schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error {
			return writeJSON(w, jsonEvaluation{ScoreResult: result, Wellness: result.Wellness()})
		},
		func(w io.Writer) error {
			return writeEvaluationCSV(w, result, fmtFloat)
		},
		func(w io.Writer) error {
			return writeEvaluationText(w, result, cfg, fmtFloat, duration)
		},
	)
}

// writeEvaluationText renders the scorecard, factor table and recommendations.
func writeEvaluationText(w io.Writer, r *schema.ScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	who := r.EmployeeID
	if who == "" {
		who = "anonymous"
	}
	if _, err := fmt.Fprintf(w, "👤 Employee: %s (Day: %s)\n", who, dayOrDash(r.Day)); err != nil {
		return err
	}

	if r.InsufficientData() {
		_, err := fmt.Fprintln(w, "Not enough data to score this day. Sync a wearable or log work hours to get a score.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Zone: %s  Burnout: %s  Readiness: %s  Wellness: %s%%\n",
		zoneLabel(r.Zone, cfg), fmtFloat(r.BurnoutScore), fmtFloat(r.ReadinessScore), fmtFloat(schema.WellnessFromBurnout(r.BurnoutScore))); err != nil {
		return err
	}

	e := r.Explanation
	if e == nil {
		return nil
	}

	if len(e.Factors) > 0 {
		if err := writeFactorBreakdown(w, e.Factors, cfg, fmtFloat); err != nil {
			return err
		}
	}

	if err := writeBulletList(w, "💡 For you:", e.Recommendations.Personal); err != nil {
		return err
	}
	if err := writeBulletList(w, "🧭 For your manager:", e.Recommendations.Leadership); err != nil {
		return err
	}
	if err := writeContext(w, e.Context); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Scored in %v.\n", duration)
	return err
}

// writeFactorBreakdown renders the ordered factors as a table.
func writeFactorBreakdown(w io.Writer, factors []schema.Factor, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Factor", "Impact", "Value", "Weight", "Burnout", "Details"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	detailWidth := GetMaxTableTextWidth(cfg, 75)
	var data [][]string
	for _, f := range factors {
		data = append(data, []string{
			f.Name,
			impactLabel(f.Impact, cfg),
			f.Value,
			fmt.Sprintf("%.2f", f.Weight),
			fmtFloat(f.BurnoutContribution),
			schema.TruncateText(f.Description, detailWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeBulletList prints a titled list, skipping empty ones.
func writeBulletList(w io.Writer, title string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
			return err
		}
	}
	return nil
}

// writeContext prints the informational annotations.
func writeContext(w io.Writer, c schema.ExplanationContext) error {
	var lines []string
	if c.DaysSinceRestDay != nil {
		lines = append(lines, fmt.Sprintf("Days since last rest day: %d", *c.DaysSinceRestDay))
	}
	for _, ev := range c.LifeEvents {
		lines = append(lines, fmt.Sprintf("Life event: %s (%s)", ev.Title, ev.Impact))
	}
	if c.Calibration != nil && c.Calibration.Summary != "" {
		lines = append(lines, "Calibration: "+c.Calibration.Summary)
	}
	if c.Calibration != nil {
		lines = append(lines, c.Calibration.Clamps...)
	}
	return writeBulletList(w, "📎 Context:", lines)
}

// writeEvaluationCSV writes one row per factor.
func writeEvaluationCSV(w io.Writer, r *schema.ScoreResult, fmtFloat func(float64) string) error {
	header := []string{
		"employee_id", "day", "status", "zone", "burnout", "readiness", "wellness",
		"factor", "category", "impact", "value", "weight", "burnout_contribution", "readiness_contribution", "description",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return writeResultCSVRows(cw, r, fmtFloat)
	})
}

// writeResultCSVRows writes the factor rows for a result, or one bare row when
// the result has no factors.
func writeResultCSVRows(cw *csv.Writer, r *schema.ScoreResult, fmtFloat func(float64) string) error {
	var wellness string
	if w := r.Wellness(); w != nil {
		wellness = fmtFloat(*w)
	}
	prefix := []string{
		r.EmployeeID, r.Day.String(), string(r.Status), string(r.Zone),
		fmtFloat(r.BurnoutScore), fmtFloat(r.ReadinessScore), wellness,
	}
	if r.Explanation == nil || len(r.Explanation.Factors) == 0 {
		return cw.Write(append(prefix, make([]string, 8)...))
	}
	for _, f := range r.Explanation.Factors {
		row := append(append([]string{}, prefix...),
			string(f.Key),
			string(f.Category),
			string(f.Impact),
			f.Value,
			fmt.Sprintf("%.3f", f.Weight),
			fmt.Sprintf("%.3f", f.BurnoutContribution),
			fmt.Sprintf("%.3f", f.ReadinessContribution),
			f.Description,
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func dayOrDash(d schema.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}
