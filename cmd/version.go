package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/schema"
)

// versionCmd prints build details and the scoring model they ship with.
// Scores recorded under a different model are not directly comparable.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wellscore build and scoring model.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("wellscore %s (%s, built %s, %s)\n", version, commit, date, runtime.Version())
		cmd.Printf("  Factors: %d\n", len(schema.DefaultFactorTable))
		cmd.Printf("  Scaling: %.1f\n", schema.DefaultScaling)
		cmd.Printf("  Zones:   red >= %.0f, yellow >= %.0f\n", schema.RedThreshold, schema.YellowThreshold)
	},
}
