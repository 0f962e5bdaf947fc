package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/wellscore/core/synth"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// WriteDemo outputs archetype acceptance checks, dispatching based on the output format configured.
func WriteDemo(checks []synth.Check, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error {
			return writeJSON(w, checks)
		},
		func(w io.Writer) error {
			return writeDemoCSV(w, checks, fmtFloat)
		},
		func(w io.Writer) error {
			return writeDemoTable(w, checks, cfg, fmtFloat, duration)
		},
	)
}

func writeDemoTable(w io.Writer, checks []synth.Check, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Archetype", "Employee", "Expected", "Zone", "Burnout", "Readiness", "Top Risk", "Match"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range checks {
		match := "✔"
		if !c.Match {
			match = "✖"
		}
		data = append(data, []string{
			c.Archetype,
			schema.TruncateText(c.Input.EmployeeID, 13),
			zoneLabel(c.ExpectedZone, cfg),
			zoneLabel(c.Result.Zone, cfg),
			fmtFloat(c.Result.BurnoutScore),
			fmtFloat(c.Result.ReadinessScore),
			schema.TopRisk(c.Result),
			match,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d of %d synthetic employees landed in their expected zone (%v).\n",
		len(checks)-synth.Mismatches(checks), len(checks), duration)
	return err
}

func writeDemoCSV(w io.Writer, checks []synth.Check, fmtFloat func(float64) string) error {
	header := []string{"archetype", "employee_id", "expected_zone", "zone", "burnout", "readiness", "match"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range checks {
			rec := []string{
				c.Archetype,
				c.Input.EmployeeID,
				string(c.ExpectedZone),
				string(c.Result.Zone),
				fmtFloat(c.Result.BurnoutScore),
				fmtFloat(c.Result.ReadinessScore),
				fmt.Sprintf("%t", c.Match),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
