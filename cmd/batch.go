package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
)

// batchCmd scores a whole dataset and ranks it by burnout.
var batchCmd = &cobra.Command{
	Use:   "batch <dataset.json>",
	Short: "Score a dataset of employees and rank them by burnout",
	Long: `Score every employee in a dataset concurrently and rank the results.

Employees are ranked by burnout score, highest first. Inputs that fail
validation are listed separately and never stop the rest of the batch.

With --record, the batch is stored as one scoring run in zone history.

Examples:
  # Rank the ten most at-risk employees
  wellscore batch team.json --limit 10

  # Score as of a given day and record the run
  wellscore batch team.json --as-of 2026-03-10 --record

  # Export rankings to CSV
  wellscore batch team.json --output csv --output-file ranking.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: inputSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot score dataset", err)
		}
	},
}
