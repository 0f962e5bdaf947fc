package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/internal/history"
	"github.com/huangsam/wellscore/internal/outwriter"
	"github.com/huangsam/wellscore/schema"
)

// historyBackendConfig reads and validates the history backend settings.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	if backend != schema.NoneBackend {
		if err := history.InitHistory(backend, connStr); err != nil {
			return err
		}
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup is like historySetup but never opens the store, so
// migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// requireStore returns the open history store or a usable error.
func requireStore() (contract.HistoryStore, error) {
	if historyManager == nil {
		return nil, core.ErrHistoryDisabled
	}
	store := historyManager.GetHistoryStore()
	if store == nil {
		return nil, core.ErrHistoryDisabled
	}
	return store, nil
}

// historyCmd focused on zone history management.
//
// Note: Most history subcommands use minimal initialization (historySetup)
// instead of the full sharedSetup, since they never score anything.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded zone history and trend projections",
	Long: `Manage the zone history used for trends, predictions and explanations.

Every recorded day stores the employee, the day, both scores, the zone and
the full explanation. Batch runs are grouped into scoring runs.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  show    - Show one employee's history and burnout projection
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check history status
  wellscore history status

  # Show an employee's trend
  wellscore history show emp-042 --horizon 14`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := requireStore()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		outwriter.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyShowCmd prints one employee's recorded days and projection.
var historyShowCmd = &cobra.Command{
	Use:   "show <employee-id>",
	Short: "Show recorded scores and the burnout projection for an employee",
	Long: `Show the most recent recorded days for an employee, newest first, with a
linear burnout projection --horizon days past the latest record.

At least three recorded days are needed for a projection.

Examples:
  # Last 30 days with a two-week projection
  wellscore history show emp-042 --limit 30 --horizon 14`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteHistoryShow(rootCtx, cfg, historyManager, args[0]); err != nil {
			contract.LogFatal("Failed to show history", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded zone history",
	Long: `Delete all stored scoring runs and zone history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  wellscore history export --output-file backup.parquet
  wellscore history clear`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := ""
		if cfg.HistoryBackend == schema.SQLiteBackend {
			dbFilePath = cfg.HistoryDBConnect
		}
		if err := history.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Zone history cleared successfully.")
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export zone history to Parquet for BI tools and analytics",
	Long: `Export all stored history to Parquet format for use with analytics tools.

Exports two datasets next to --output-file:
- <file>.scoring_runs.parquet - metadata about each batch run
- <file>.zone_history.parquet - one row per recorded employee-day

Requires: --output-file parameter

Examples:
  # Export all data
  wellscore history export --output-file wellness

  # Use with DuckDB for analysis
  duckdb -c "SELECT zone, count(*) FROM read_parquet('wellness.zone_history.parquet') GROUP BY zone"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := requireStore()
		if err != nil {
			contract.LogFatal("Failed to export history", err)
		}
		if err := history.ExportParquet(os.Stdout, store, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the zone history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  wellscore history migrate

  # Rollback everything
  wellscore history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
