// Package main provides a performance benchmarking tool for the wellscore CLI.
// It generates synthetic datasets of increasing size, times batch scoring with
// history disabled and with sqlite recording, running each case multiple times,
// treating the first successful run as cold and averaging the rest as warm,
// and writes the numbers to CSV.
//
// Prerequisites:
// - wellscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Scratch directory for generated datasets and the history database
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset       string
	Workers       int
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	Workers       []int
	NoHistoryRuns int
	RecordRuns    int
	PerArchetype  map[string]int
	Datasets      []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       5 * time.Minute,
		Workers:       []int{1, 4, 14},
		NoHistoryRuns: 3,
		RecordRuns:    4,
		Datasets:      []string{"small", "medium", "large"},
		PerArchetype: map[string]int{
			"small":  10,
			"medium": 200,
			"large":  1000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Failed to generate datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the wellscore binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("wellscore"); err != nil {
		return fmt.Errorf("wellscore binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

func datasetPath(config BenchmarkConfig, name string) string {
	return filepath.Join(config.WorkDir, name+".json")
}

func historyPath(config BenchmarkConfig) string {
	return filepath.Join(config.WorkDir, "benchmark_history.db")
}

// generateDatasets writes one synthetic dataset per configured size
func generateDatasets(config BenchmarkConfig) error {
	for _, name := range config.Datasets {
		n := config.PerArchetype[name]
		fmt.Printf("Generating %s dataset (%d per archetype)...\n", name, n)
		cmd := exec.Command("wellscore", "demo",
			"--per-archetype", strconv.Itoa(n),
			"--write-dataset", datasetPath(config, name),
			"--output", "csv",
			"--history-backend", "none")
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("demo failed for %s: %w\nOutput: %s", name, err, string(output))
		}
	}
	return nil
}

// runBenchmarks executes all benchmark cases across datasets and worker counts
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, workers %v, no-history: %d runs, record: %d runs\n",
		len(config.Datasets), config.Timeout, config.Workers, config.NoHistoryRuns, config.RecordRuns)

	for _, name := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", name)
		for _, workers := range config.Workers {
			results = append(results, runBenchmarkSuite(config, name, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-history and record benchmarks for a dataset
func runBenchmarkSuite(config BenchmarkConfig, name string, workers int) BenchmarkResult {
	fmt.Printf("Running batch on %s with %d workers\n", name, workers)

	// Helper to run a benchmark phase
	runPhase := func(record bool, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, name, workers, record, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: History disabled
	_, noHistoryAvg := runPhase(false, config.NoHistoryRuns, "No-history")

	// Phase 2: Recording into sqlite
	_ = os.Remove(historyPath(config))
	coldTime, warmAvg := runPhase(true, config.RecordRuns, "Record")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:       name,
		Workers:       workers,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a batch command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, name string, workers int, record bool, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"batch", datasetPath(config, name), "--workers", strconv.Itoa(workers), "--color", "no"}
	if record {
		args = append(args, "--record", "--history-backend", "sqlite", "--history-db-connect", historyPath(config))
	} else {
		args = append(args, "--history-backend", "none")
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("wellscore", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/wellscore_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "workers", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		rec := []string{result.Dataset, strconv.Itoa(result.Workers), result.NoHistoryTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s %3d workers: No-history: %s, Cold: %s, Warm: %s\n",
			result.Dataset, result.Workers, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}
}
