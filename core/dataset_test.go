package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/wellscore/schema"
)

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"employee_id":"e1","as_of":"2026-03-10","health":{"sleep_hours":7},"work":{}}`), 0o644))
	in, err := LoadInput(good)
	require.NoError(t, err)
	assert.Equal(t, "e1", in.EmployeeID)
	assert.Equal(t, "2026-03-10", in.AsOf.String())
	require.NotNil(t, in.Health.SleepHours)
	assert.Equal(t, 7.0, *in.Health.SleepHours)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"health":`), 0o644))
	_, err = LoadInput(bad)
	assert.ErrorContains(t, err, "cannot parse")

	_, err = LoadInput("")
	assert.Error(t, err)

	_, err = LoadInput(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadDatasetRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"employees":[]}`), 0o644))
	_, err := LoadDataset(path)
	assert.ErrorContains(t, err, "no employees")
}

func TestSaveAndLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	ds := schema.Dataset{AsOf: batchDay(), Employees: []schema.EvaluationInput{greenInput(), redInput()}}
	require.NoError(t, SaveDataset(path, ds))

	got, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, batchDay(), got.AsOf)
	require.Len(t, got.Employees, 2)
	assert.Equal(t, "emp-green", got.Employees[0].EmployeeID)
	assert.Equal(t, *ds.Employees[1].Health.HRV, *got.Employees[1].Health.HRV)
}

func TestApplyAsOf(t *testing.T) {
	other, err := schema.ParseDate("2026-01-05")
	require.NoError(t, err)
	pinned := greenInput()
	pinned.AsOf = other

	dated := greenInput()
	dated.Health.Date = other
	workDated := greenInput()
	workDated.Work.Date = other

	out := applyAsOf([]schema.EvaluationInput{greenInput(), pinned, dated, workDated}, batchDay())
	assert.Equal(t, batchDay(), out[0].AsOf)
	assert.Equal(t, other, out[1].AsOf)
	assert.True(t, out[2].AsOf.IsZero())
	assert.Equal(t, other, out[2].Day())
	assert.Equal(t, other, out[3].Day())
}
