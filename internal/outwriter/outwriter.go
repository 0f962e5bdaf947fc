// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/huangsam/wellscore/core/synth"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEvaluation prints one scored employee-day.
func (ow *OutWriter) WriteEvaluation(result *schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	return WriteEvaluation(result, cfg, duration)
}

// WriteBatch prints ranked batch results.
func (ow *OutWriter) WriteBatch(report BatchReport, cfg *contract.Config, duration time.Duration) error {
	return WriteBatch(report, cfg, duration)
}

// WriteFactors prints the active factor table.
func (ow *OutWriter) WriteFactors(table schema.FactorTable, scaling float64, cfg *contract.Config) error {
	return WriteFactors(table, scaling, cfg)
}

// WriteDemo prints archetype acceptance checks.
func (ow *OutWriter) WriteDemo(checks []synth.Check, cfg *contract.Config, duration time.Duration) error {
	return WriteDemo(checks, cfg, duration)
}

// WriteHistory prints an employee's recorded days and trend.
func (ow *OutWriter) WriteHistory(records []schema.ZoneHistoryRecord, prediction *schema.Prediction, cfg *contract.Config) error {
	return WriteHistory(records, prediction, cfg)
}

// GetMaxTableTextWidth calculates the maximum width for free text columns in
// table output based on terminal width and the fixed columns around them.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < 15 {
		return 15
	}
	if available > 80 {
		return 80
	}
	return available
}
