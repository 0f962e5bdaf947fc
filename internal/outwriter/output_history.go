package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

type historyReport struct {
	Records    []schema.ZoneHistoryRecord `json:"records"`
	Prediction *schema.Prediction         `json:"prediction,omitempty"`
}

// WriteHistory outputs recorded days and an optional trend projection,
// dispatching based on the output format configured.
func WriteHistory(records []schema.ZoneHistoryRecord, prediction *schema.Prediction, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error {
			return writeJSON(w, historyReport{Records: records, Prediction: prediction})
		},
		func(w io.Writer) error {
			return writeHistoryCSV(w, records, fmtFloat)
		},
		func(w io.Writer) error {
			return writeHistoryTable(w, records, prediction, cfg, fmtFloat)
		},
	)
}

func writeHistoryTable(w io.Writer, records []schema.ZoneHistoryRecord, p *schema.Prediction, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No recorded history.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Zone", "Burnout", "Readiness", "Wellness", "Top Risk", "Run"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		run := "-"
		if r.RunID > 0 {
			run = fmt.Sprintf("%d", r.RunID)
		}
		data = append(data, []string{
			r.Day.String(),
			zoneLabel(r.Zone, cfg),
			fmtFloat(r.BurnoutScore),
			fmtFloat(r.ReadinessScore),
			fmtFloat(schema.WellnessFromBurnout(r.BurnoutScore)),
			schema.TopRisk(r.ScoreResult()),
			run,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if p == nil {
		return nil
	}
	_, err := fmt.Fprintf(w, "📈 Trend: %s (%s/day over %d days). In %d days burnout projects to %s (%s), wellness %s%%.\n",
		p.Trend, fmtFloat(p.SlopePerDay), p.DataPoints, p.HorizonDays,
		fmtFloat(p.ProjectedBurnout), zoneLabel(p.ProjectedZone, cfg), fmtFloat(p.ProjectedWellness))
	return err
}

func writeHistoryCSV(w io.Writer, records []schema.ZoneHistoryRecord, fmtFloat func(float64) string) error {
	header := []string{"employee_id", "day", "zone", "burnout", "readiness", "wellness", "top_risk", "run_id"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				r.EmployeeID,
				r.Day.String(),
				string(r.Zone),
				fmtFloat(r.BurnoutScore),
				fmtFloat(r.ReadinessScore),
				fmtFloat(schema.WellnessFromBurnout(r.BurnoutScore)),
				schema.TopRisk(r.ScoreResult()),
				fmt.Sprintf("%d", r.RunID),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Total Records: %d\n", status.TotalRecords)
	_, _ = fmt.Fprintf(w, "Total Employees: %d\n", status.TotalEmployees)
	if len(status.ZoneCounts) > 0 {
		_, _ = fmt.Fprintln(w, "Zone Counts:")
		for _, zone := range []schema.Zone{schema.ZoneRed, schema.ZoneYellow, schema.ZoneGreen} {
			_, _ = fmt.Fprintf(w, "  %s: %d\n", zone, status.ZoneCounts[zone])
		}
	}
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
