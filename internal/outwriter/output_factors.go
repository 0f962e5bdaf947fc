package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// WriteFactors outputs the active factor definitions, dispatching based on the output format configured.
func WriteFactors(table schema.FactorTable, scaling float64, cfg *contract.Config) error {
	rows := table.Definitions()
	return dispatch(cfg,
		func(w io.Writer) error {
			return writeJSON(w, schema.FactorReport{Scaling: scaling, Factors: rows})
		},
		func(w io.Writer) error {
			return writeFactorsCSV(w, rows)
		},
		func(w io.Writer) error {
			return writeFactorsTable(w, rows, scaling)
		},
	)
}

func writeFactorsTable(w io.Writer, rows []schema.FactorDefinition, scaling float64) error {
	if _, err := fmt.Fprintln(w, "🧮 Burnout = Σ weight × clamp(deviation / scale, ±cap) × preference, times scaling"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Factor", "Category", "Direction", "Reference", "Scale", "Cap", "Burnout W", "Readiness W", "Target Bounds"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		data = append(data, []string{
			r.Label,
			string(r.Category),
			r.Direction,
			fmt.Sprintf("%g %s", r.Reference, r.Unit),
			fmt.Sprintf("%g", r.Scale),
			fmt.Sprintf("%g", r.Cap),
			fmt.Sprintf("%.2f", r.BurnoutWeight),
			fmt.Sprintf("%.2f", r.ReadinessWeight),
			fmt.Sprintf("%g to %g", r.MinTarget, r.MaxTarget),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scaling: %g points per unit of weighted deviation. Zones: red ≥ %g, yellow ≥ %g.\n",
		scaling, schema.RedThreshold, schema.YellowThreshold)
	return err
}

func writeFactorsCSV(w io.Writer, rows []schema.FactorDefinition) error {
	header := []string{"key", "label", "category", "direction", "unit", "reference", "scale", "cap",
		"burnout_weight", "readiness_weight", "min_target", "max_target"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				string(r.Key), r.Label, string(r.Category), r.Direction, r.Unit,
				fmt.Sprintf("%g", r.Reference), fmt.Sprintf("%g", r.Scale), fmt.Sprintf("%g", r.Cap),
				fmt.Sprintf("%g", r.BurnoutWeight), fmt.Sprintf("%g", r.ReadinessWeight),
				fmt.Sprintf("%g", r.MinTarget), fmt.Sprintf("%g", r.MaxTarget),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
