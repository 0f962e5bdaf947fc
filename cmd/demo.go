package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
)

// demoCmd scores synthetic archetypes and checks the expected zones.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Score synthetic employees and check each lands in its expected zone",
	Long: `Generate synthetic employees for each archetype, score them, and compare
the resulting zone with the one the archetype should produce.

Exits with a non-zero code when any sample lands in the wrong zone, which
makes it usable as a smoke test for custom factor weights.

Examples:
  # Run the default demo
  wellscore demo

  # More samples with a different seed, saved for later batch runs
  wellscore demo --per-archetype 20 --seed 7 --write-dataset team.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDemo(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Demo check failed", err)
		}
	},
}
