package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// BatchReport is the printable outcome of scoring a dataset.
type BatchReport struct {
	AsOf     schema.Date           `json:"as_of,omitzero"`
	RunID    int64                 `json:"run_id,omitempty"`
	Results  []schema.RankedResult `json:"results"`
	Summary  schema.RunSummary     `json:"summary"`
	Failures []schema.BatchItem    `json:"failures,omitempty"`
}

// WriteBatch outputs ranked batch results, dispatching based on the output format configured.
func WriteBatch(report BatchReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error {
			return writeJSON(w, report)
		},
		func(w io.Writer) error {
			return writeBatchCSV(w, report.Results, fmtFloat)
		},
		func(w io.Writer) error {
			return writeBatchTable(w, report, cfg, fmtFloat, intFmt, duration)
		},
	)
}

// writeBatchTable generates and writes the human-readable ranking.
func writeBatchTable(w io.Writer, report BatchReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Employee", "Zone", "Burnout", "Readiness", "Wellness", "Label", "Top Risk"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := GetMaxTableTextWidth(cfg, 85)
	var data [][]string
	for _, r := range report.Results {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			schema.TruncateText(r.EmployeeID, idWidth),
			zoneLabel(r.Zone, cfg),
			fmtFloat(r.BurnoutScore),
			fmtFloat(r.ReadinessScore),
			fmtFloat(r.Wellness),
			r.Label,
			r.TopRisk,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := report.Summary
	if _, err := fmt.Fprintf(w, "Showing top %d employees (scored: "+intFmt+", insufficient data: "+intFmt+", failed: "+intFmt+")\n",
		len(report.Results), s.Scored, s.Insufficient, s.Failed); err != nil {
		return err
	}
	for _, f := range report.Failures {
		if _, err := fmt.Fprintf(w, "  ✖ %s: %s\n", f.EmployeeID, f.Error); err != nil {
			return err
		}
	}
	runNote := ""
	if report.RunID > 0 {
		runNote = fmt.Sprintf(" Recorded as run %d.", report.RunID)
	}
	if _, err := fmt.Fprintf(w, "Scoring completed in %v with %d workers. History backend: %s.%s\n",
		duration, cfg.Workers, cfg.HistoryBackend, runNote); err != nil {
		return err
	}
	return nil
}

// writeBatchCSV writes one summary row per ranked employee.
func writeBatchCSV(w io.Writer, results []schema.RankedResult, fmtFloat func(float64) string) error {
	header := []string{"rank", "employee_id", "day", "zone", "burnout", "readiness", "wellness", "label", "top_risk"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.EmployeeID,
				r.Day.String(),
				string(r.Zone),
				fmtFloat(r.BurnoutScore),
				fmtFloat(r.ReadinessScore),
				fmtFloat(r.Wellness),
				r.Label,
				r.TopRisk,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
