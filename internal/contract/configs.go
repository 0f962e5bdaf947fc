package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/huangsam/wellscore/schema"
)

// Default values for configuration.
const (
	MaxResultLimit      = 1000
	MaxWorkers          = 256
	DefaultPerArchetype = 5
	DefaultSeed         = 42
	DefaultLogLevel     = "info"
)

// FactorOverrideRaw holds the custom policy for a single factor (e.g., 'sleep_hours').
// Use float64 pointers for optional fields.
type FactorOverrideRaw struct {
	BurnoutWeight   *float64 `mapstructure:"burnout_weight"`
	ReadinessWeight *float64 `mapstructure:"readiness_weight"`
	Scale           *float64 `mapstructure:"scale"`
	Cap             *float64 `mapstructure:"cap"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	AsOf        schema.Date
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	Record      bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogPretty bool
	Port      int
	Schedule  string
	Horizon   int

	PerArchetype int
	Seed         uint64
	DatasetOut   string

	// Scaling converts summed contributions into score points
	Scaling float64

	// FactorOverrides is a mapping of [FactorKey] = override from the config file
	FactorOverrides map[schema.FactorKey]schema.FactorOverride

	// FactorTable is the final table, computed from defaults + overrides
	FactorTable schema.FactorTable
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	AsOf             string `mapstructure:"as-of"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogPretty        bool   `mapstructure:"log-pretty"`

	// --- Fields from evaluateCmd.Flags() ---
	Record bool `mapstructure:"record"`

	// --- Fields from serveCmd.Flags() ---
	Port     int    `mapstructure:"port"`
	Schedule string `mapstructure:"schedule"`
	Input    string `mapstructure:"input"`

	// --- Fields from historyCmd / mcp ---
	Horizon int `mapstructure:"horizon"`

	// --- Fields from demoCmd.Flags() ---
	PerArchetype int    `mapstructure:"per-archetype"`
	Seed         uint64 `mapstructure:"seed"`
	WriteDataset string `mapstructure:"write-dataset"`

	// --- Scoring policy from config file ---
	Scaling float64                      `mapstructure:"scaling"`
	Factors map[string]FactorOverrideRaw `mapstructure:"factors"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.FactorOverrides != nil {
		clone.FactorOverrides = make(map[schema.FactorKey]schema.FactorOverride, len(c.FactorOverrides))
		maps.Copy(clone.FactorOverrides, c.FactorOverrides)
	}
	if c.FactorTable != nil {
		clone.FactorTable = c.FactorTable.Clone()
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processFactorOverrides(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(input.HistoryBackend)
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all non-policy fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = input.InputPathStr
	if cfg.InputPath == "" {
		cfg.InputPath = input.Input
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Record = input.Record
	cfg.Schedule = strings.TrimSpace(input.Schedule)
	cfg.LogPretty = input.LogPretty
	cfg.DatasetOut = input.WriteDataset
	cfg.Seed = input.Seed

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 3 {
		return fmt.Errorf("precision must be between 0 and 3 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. As-of date ---
	asOf, err := schema.ParseDate(input.AsOf)
	if err != nil {
		return fmt.Errorf("invalid --as-of value: %w", err)
	}
	cfg.AsOf = asOf

	// --- 5. Logging ---
	level := strings.ToLower(input.LogLevel)
	switch level {
	case "":
		level = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}
	cfg.LogLevel = level

	// --- 6. Server and trend settings ---
	if input.Port < 0 || input.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535 (received %d)", input.Port)
	}
	cfg.Port = input.Port
	if input.Horizon <= 0 || input.Horizon > 365 {
		return fmt.Errorf("horizon must be between 1 and 365 days (received %d)", input.Horizon)
	}
	cfg.Horizon = input.Horizon

	// --- 7. Demo settings ---
	if input.PerArchetype <= 0 || input.PerArchetype > MaxResultLimit {
		return fmt.Errorf("per-archetype must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.PerArchetype)
	}
	cfg.PerArchetype = input.PerArchetype

	return nil
}

// processFactorOverrides converts the raw factor policy into cfg.FactorOverrides
// and computes the final factor table.
func processFactorOverrides(cfg *Config, input *ConfigRawInput) error {
	cfg.Scaling = input.Scaling
	if cfg.Scaling == 0 {
		cfg.Scaling = schema.DefaultScaling
	}
	if cfg.Scaling < 0 {
		return fmt.Errorf("scaling must be positive (received %v)", input.Scaling)
	}

	overrides, err := ProcessFactorOverridesRaw(input.Factors)
	if err != nil {
		return err
	}
	cfg.FactorOverrides = overrides
	cfg.FactorTable = schema.DefaultFactorTable.WithOverrides(overrides)
	return nil
}

// ProcessFactorOverridesRaw validates raw factor overrides against the default table.
func ProcessFactorOverridesRaw(raw map[string]FactorOverrideRaw) (map[schema.FactorKey]schema.FactorOverride, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[schema.FactorKey]schema.FactorOverride, len(raw))
	for name, o := range raw {
		key := schema.FactorKey(strings.ToLower(name))
		if _, ok := schema.DefaultFactorTable.Lookup(key); !ok {
			return nil, fmt.Errorf("unknown factor '%s' in config", name)
		}
		if err := nonNegative(name, "burnout_weight", o.BurnoutWeight); err != nil {
			return nil, err
		}
		if err := nonNegative(name, "readiness_weight", o.ReadinessWeight); err != nil {
			return nil, err
		}
		if err := positive(name, "scale", o.Scale); err != nil {
			return nil, err
		}
		if err := positive(name, "cap", o.Cap); err != nil {
			return nil, err
		}
		out[key] = schema.FactorOverride{
			BurnoutWeight:   o.BurnoutWeight,
			ReadinessWeight: o.ReadinessWeight,
			Scale:           o.Scale,
			Cap:             o.Cap,
		}
	}
	return out, nil
}

func nonNegative(factor, field string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("factor %s %s must be non-negative (received %v)", factor, field, *v)
	}
	return nil
}

func positive(factor, field string, v *float64) error {
	if v != nil && *v <= 0 {
		return fmt.Errorf("factor %s %s must be positive (received %v)", factor, field, *v)
	}
	return nil
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
