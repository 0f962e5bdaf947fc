package history

import (
	"fmt"
	"strings"

	"github.com/huangsam/wellscore/schema"
)

// quoteTableName quotes a table identifier for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites ? placeholders into $N for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getCreateScoringRunsQuery returns the CREATE TABLE query for scoring_runs.
func getCreateScoringRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scoringRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				employees_scored INT NOT NULL DEFAULT 0,
				insufficient_count INT NOT NULL DEFAULT 0,
				failed_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				employees_scored INT NOT NULL DEFAULT 0,
				insufficient_count INT NOT NULL DEFAULT 0,
				failed_count INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				employees_scored INTEGER NOT NULL DEFAULT 0,
				insufficient_count INTEGER NOT NULL DEFAULT 0,
				failed_count INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateZoneHistoryQuery returns the CREATE TABLE query for zone_history.
// An employee has at most one row per day.
func getCreateZoneHistoryQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(zoneHistoryTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id VARCHAR(128) NOT NULL,
				day CHAR(10) NOT NULL,
				zone VARCHAR(16) NOT NULL,
				burnout_score DOUBLE NOT NULL,
				readiness_score DOUBLE NOT NULL,
				explanation MEDIUMTEXT NOT NULL,
				run_id BIGINT,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (employee_id, day)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id TEXT NOT NULL,
				day CHAR(10) NOT NULL,
				zone TEXT NOT NULL,
				burnout_score DOUBLE PRECISION NOT NULL,
				readiness_score DOUBLE PRECISION NOT NULL,
				explanation TEXT NOT NULL,
				run_id BIGINT,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (employee_id, day)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				employee_id TEXT NOT NULL,
				day TEXT NOT NULL,
				zone TEXT NOT NULL,
				burnout_score REAL NOT NULL,
				readiness_score REAL NOT NULL,
				explanation TEXT NOT NULL,
				run_id INTEGER,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (employee_id, day)
			);
		`, quotedTableName)
	}
}

// getUpsertZoneHistoryQuery returns the UPSERT query for zone_history.
func getUpsertZoneHistoryQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(zoneHistoryTable, backend)
	const columns = `(employee_id, day, zone, burnout_score, readiness_score, explanation, run_id, recorded_at)`

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s %s VALUES (?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE zone = new.zone, burnout_score = new.burnout_score, readiness_score = new.readiness_score,
			explanation = new.explanation, run_id = new.run_id, recorded_at = new.recorded_at`, quotedTableName, columns)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s %s VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id, day) DO UPDATE SET zone = EXCLUDED.zone, burnout_score = EXCLUDED.burnout_score,
			readiness_score = EXCLUDED.readiness_score, explanation = EXCLUDED.explanation, run_id = EXCLUDED.run_id,
			recorded_at = EXCLUDED.recorded_at`, quotedTableName, columns)

	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s %s VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (employee_id, day) DO UPDATE SET zone = excluded.zone, burnout_score = excluded.burnout_score,
			readiness_score = excluded.readiness_score, explanation = excluded.explanation, run_id = excluded.run_id,
			recorded_at = excluded.recorded_at`, quotedTableName, columns)
	}
}
