// Package main provides a performance benchmarking tool for the talentmap CLI.
// It measures execution times for every pipeline stage across different
// assessment scales, running each stage multiple times and averaging, then
// generates CSV output for performance analysis and documentation.
//
// Prerequisites:
// - talentmap binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where intermediate JSON artifacts are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the averaged timing for one stage at one scale.
type BenchmarkResult struct {
	Scale   string
	Command string
	AvgTime string
}

// BenchmarkScale describes one assessment size to exercise.
type BenchmarkScale struct {
	Name        string
	Blocks      int
	Respondents int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Scales  []BenchmarkScale
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 5 * time.Minute,
		Runs:    3,
		Scales: []BenchmarkScale{
			{Name: "small", Blocks: 12, Respondents: 50},
			{Name: "medium", Blocks: 24, Respondents: 250},
			{Name: "large", Blocks: 40, Respondents: 1000},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the talentmap binary and work dir exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("talentmap"); err != nil {
		return fmt.Errorf("talentmap binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes every pipeline stage across the configured scales.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scales, %v timeout, %d runs per stage\n",
		len(config.Scales), config.Timeout, config.Runs)

	for _, scale := range config.Scales {
		fmt.Printf("Benchmarking %s scale (%d blocks, %d respondents)\n",
			scale.Name, scale.Blocks, scale.Respondents)

		blocksFile := filepath.Join(config.WorkDir, scale.Name+"_blocks.json")
		responsesFile := filepath.Join(config.WorkDir, scale.Name+"_responses.json")
		scoresFile := filepath.Join(config.WorkDir, scale.Name+"_scores.json")

		stages := []struct {
			command string
			args    []string
		}{
			{"blocks", []string{
				"blocks", "--blocks", fmt.Sprint(scale.Blocks), "--seed", "42",
				"--output", "json", "--output-file", blocksFile,
			}},
			{"simulate", []string{
				"simulate", "--blocks-file", blocksFile, "--seed", "42",
				"--respondents", fmt.Sprint(scale.Respondents),
				"--output", "json", "--output-file", responsesFile,
			}},
			{"calibrate", []string{
				"calibrate", "--blocks-file", blocksFile, "--responses", responsesFile,
				"--output", "json", "--output-file", filepath.Join(config.WorkDir, scale.Name+"_calibration.json"),
			}},
			{"score", []string{
				"score", "--blocks-file", blocksFile, "--responses", responsesFile,
				"--output", "json", "--output-file", scoresFile,
			}},
		}

		for _, stage := range stages {
			result := runBenchmarkStage(config, scale.Name, stage.command, stage.args)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkStage runs one stage several times and averages the successes.
func runBenchmarkStage(config BenchmarkConfig, scale, command string, args []string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", command, config.Runs)

	times := runBenchmark(config, args)
	avgTime := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}
	fmt.Printf("  %s average: %s\n", command, avgTime)

	return BenchmarkResult{
		Scale:   scale,
		Command: command,
		AvgTime: avgTime,
	}
}

// runBenchmark executes a talentmap command repeatedly and returns the wall
// times of the successful runs.
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	// Stores would skew stage timings with connection setup, so every run
	// sticks to pure file inputs and outputs.
	args = append(args, "--param-backend", "none", "--emoji", "no")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("talentmap", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}
	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/talentmap_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"scale", "cmd", "avg_time"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Scale, result.Command, result.AvgTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "blocks", "Block Design:")
	printCommandSummary(results, "simulate", "Simulation:")
	printCommandSummary(results, "calibrate", "Calibration:")
	printCommandSummary(results, "score", "Scoring:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific pipeline stage.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: %s\n", result.Scale, result.AvgTime)
		}
	}
}
