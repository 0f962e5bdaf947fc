package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
)

// evaluateCmd scores a single employee-day.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <input.json>",
	Short: "Score one employee-day and explain the result",
	Long: `Score a single employee-day from a JSON input file.

The input carries the day's health and work metrics, plus an optional
personal baseline, preferences and life events. The result shows:
- Burnout and readiness scores (0-100) and the wellness view
- The risk zone (green, yellow, red)
- The factors that pushed the score up or down
- Recommendations for the dominant category

Examples:
  # Score a day and print the explanation
  wellscore evaluate day.json

  # Score and keep the result in zone history
  wellscore evaluate day.json --record

  # Emit JSON for another tool
  wellscore evaluate day.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: inputSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEvaluate(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot evaluate input", err)
		}
	},
}
