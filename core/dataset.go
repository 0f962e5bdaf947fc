package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/wellscore/schema"
)

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file given")
	}
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// LoadInput reads a single employee-day from a JSON file.
func LoadInput(path string) (schema.EvaluationInput, error) {
	var in schema.EvaluationInput
	data, err := readInput(path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return in, nil
}

// LoadDataset reads a batch of employee-days from a JSON file.
func LoadDataset(path string) (schema.Dataset, error) {
	var ds schema.Dataset
	data, err := readInput(path)
	if err != nil {
		return ds, err
	}
	if err := json.Unmarshal(data, &ds); err != nil {
		return ds, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if len(ds.Employees) == 0 {
		return ds, fmt.Errorf("dataset %s has no employees", path)
	}
	return ds, nil
}

// SaveDataset writes a batch of employee-days as indented JSON.
func SaveDataset(path string, ds schema.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// applyAsOf fills in the scoring day for inputs that do not carry one, either
// as as_of or on their metric rows.
func applyAsOf(inputs []schema.EvaluationInput, asOf schema.Date) []schema.EvaluationInput {
	out := make([]schema.EvaluationInput, len(inputs))
	for i, in := range inputs {
		if in.Day().IsZero() {
			in.AsOf = asOf
		}
		out[i] = in
	}
	return out
}
