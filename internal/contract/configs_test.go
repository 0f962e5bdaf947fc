package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:         "text",
		Limit:          schema.DefaultLimit,
		Workers:        schema.DefaultWorkers,
		Precision:      schema.DefaultPrecision,
		Color:          "yes",
		HistoryBackend: "sqlite",
		LogLevel:       "info",
		Port:           schema.DefaultPort,
		Horizon:        schema.DefaultHorizon,
		PerArchetype:   DefaultPerArchetype,
		Seed:           DefaultSeed,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
	assert.Equal(t, schema.DefaultScaling, cfg.Scaling)
	assert.True(t, cfg.UseColors)
	assert.Nil(t, cfg.FactorOverrides)
	assert.Equal(t, len(schema.DefaultFactorTable), len(cfg.FactorTable))
	assert.True(t, cfg.AsOf.IsZero())
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
		errMsg string
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }, "limit must be"},
		{"too many workers", func(in *ConfigRawInput) { in.Workers = MaxWorkers + 1 }, "workers must be"},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, "invalid output format"},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }, "invalid --color"},
		{"bad as-of", func(in *ConfigRawInput) { in.AsOf = "10/19/2026" }, "invalid --as-of"},
		{"bad backend", func(in *ConfigRawInput) { in.HistoryBackend = "oracle" }, "invalid history backend"},
		{"mysql without dsn", func(in *ConfigRawInput) { in.HistoryBackend = "mysql" }, "history-db-connect is required"},
		{"bad log level", func(in *ConfigRawInput) { in.LogLevel = "loud" }, "invalid log level"},
		{"bad horizon", func(in *ConfigRawInput) { in.Horizon = 0 }, "horizon must be"},
		{"bad port", func(in *ConfigRawInput) { in.Port = 70000 }, "port must be"},
		{"negative scaling", func(in *ConfigRawInput) { in.Scaling = -1 }, "scaling must be positive"},
		{"unknown factor", func(in *ConfigRawInput) {
			in.Factors = map[string]FactorOverrideRaw{"caffeine": {}}
		}, "unknown factor"},
		{"negative weight", func(in *ConfigRawInput) {
			w := -1.0
			in.Factors = map[string]FactorOverrideRaw{"sleep_hours": {BurnoutWeight: &w}}
		}, "burnout_weight must be non-negative"},
		{"zero cap", func(in *ConfigRawInput) {
			c := 0.0
			in.Factors = map[string]FactorOverrideRaw{"hrv": {Cap: &c}}
		}, "cap must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRawInput()
			tt.mutate(in)
			err := ProcessAndValidate(&Config{}, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProcessFactorOverrides(t *testing.T) {
	in := validRawInput()
	weight, scale := 1.5, 0.5
	in.Factors = map[string]FactorOverrideRaw{
		"Sleep_Hours": {BurnoutWeight: &weight, Scale: &scale},
	}
	in.Scaling = 5

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	f, ok := cfg.FactorTable.Lookup(schema.FactorSleepHours)
	require.True(t, ok)
	assert.Equal(t, 1.5, f.BurnoutWeight)
	assert.Equal(t, 0.5, f.Scale)
	assert.Equal(t, 5.0, cfg.Scaling)
	assert.Contains(t, cfg.FactorOverrides, schema.FactorSleepHours)
}

func TestConfigClone(t *testing.T) {
	in := validRawInput()
	weight := 2.0
	in.Factors = map[string]FactorOverrideRaw{"hrv": {BurnoutWeight: &weight}}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	clone := cfg.Clone()
	clone.FactorTable[0].Label = "changed"
	delete(clone.FactorOverrides, schema.FactorHRV)

	assert.NotEqual(t, "changed", cfg.FactorTable[0].Label)
	assert.Contains(t, cfg.FactorOverrides, schema.FactorHRV)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MySQLBackend, "user:pass@tcp(localhost:3306)/wellscore", false},
		{schema.MySQLBackend, "user:pass@localhost/wellscore", true},
		{schema.PostgreSQLBackend, "host=localhost dbname=wellscore", false},
		{schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
		if tt.wantErr {
			assert.Error(t, err, "%s %q", tt.backend, tt.conn)
		} else {
			assert.NoError(t, err, "%s %q", tt.backend, tt.conn)
		}
	}
}
