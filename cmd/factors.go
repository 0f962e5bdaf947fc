package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
)

// factorsCmd displays the factor table used for scoring.
var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Display the factor table and weights used for scoring",
	Long: `Show every scoring factor with its reference, scale, cap and weights.

Includes custom weights if configured via .wellscore.yaml. No scoring is
performed - this is purely informational.

Examples:
  # Show the default factor table
  wellscore factors

  # View with custom weights from config file
  wellscore factors --config .wellscore.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFactors(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot display factors", err)
		}
	},
}
