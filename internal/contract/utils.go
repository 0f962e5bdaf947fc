package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/wellscore/schema"
)

// Color variables for console output.
var (
	RedColor     = color.New(color.FgRed, color.Bold) // red zone, act now
	YellowColor  = color.New(color.FgYellow)          // yellow zone, watch
	GreenColor   = color.New(color.FgGreen)           // green zone, healthy
	NeutralColor = color.New(color.FgCyan)            // informational
)

// GetColorZone returns a colored zone label for console output (table).
func GetColorZone(zone schema.Zone) string {
	text := strings.ToUpper(string(zone))
	switch zone {
	case schema.ZoneRed:
		return RedColor.Sprint(text)
	case schema.ZoneYellow:
		return YellowColor.Sprint(text)
	case schema.ZoneGreen:
		return GreenColor.Sprint(text)
	default:
		return NeutralColor.Sprint("N/A")
	}
}

// GetColorImpact returns a colored impact label for console output (table).
func GetColorImpact(impact schema.Impact) string {
	switch impact {
	case schema.ImpactNegative:
		return RedColor.Sprint(string(impact))
	case schema.ImpactPositive:
		return GreenColor.Sprint(string(impact))
	default:
		return NeutralColor.Sprint(string(impact))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for zone history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wellscore_history.db"
	}
	return filepath.Join(homeDir, ".wellscore_history.db")
}

// ParseBoolString parses yes/no style strings into booleans.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
