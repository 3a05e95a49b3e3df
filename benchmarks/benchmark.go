package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"sqlcompiler/pkg/lexer"

	"golang.org/x/sync/errgroup"
)

// BenchmarkResult captures timing statistics for one tokenizer workload.
type BenchmarkResult struct {
	Workload       string        `json:"workload"`           // Descriptive name of the workload
	SourceBytes    int           `json:"source_bytes"`       // Size of the source text
	Iterations     int           `json:"iterations"`         // Number of Tokenize calls
	Concurrency    int           `json:"concurrency"`        // Number of concurrent goroutines
	TotalDuration  time.Duration `json:"total_duration_ns"`  // Wall time for all iterations
	AvgDuration    time.Duration `json:"avg_duration_ns"`    // Average time per call
	MinDuration    time.Duration `json:"min_duration_ns"`    // Fastest call
	MaxDuration    time.Duration `json:"max_duration_ns"`    // Slowest call
	MedianDuration time.Duration `json:"median_duration_ns"` // Median call
	P95Duration    time.Duration `json:"p95_duration_ns"`    // 95th percentile
	P99Duration    time.Duration `json:"p99_duration_ns"`    // 99th percentile
	CallsPerSecond float64       `json:"calls_per_second"`   // Throughput in calls
	MBPerSecond    float64       `json:"mb_per_second"`      // Throughput in source bytes
	TokensPerCall  int           `json:"tokens_per_call"`    // Tokens produced by one call
	ErrorTokens    int           `json:"error_tokens"`       // ERROR tokens produced by one call
	Timestamp      time.Time     `json:"timestamp"`          // When this workload ran
}

// BenchmarkReport aggregates results from all workloads.
type BenchmarkReport struct {
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	TotalDuration time.Duration     `json:"total_duration"`
	Results       []BenchmarkResult `json:"results"`
}

type workload struct {
	name   string
	source string
}

func workloads() []workload {
	statement := "INSERT INTO orders (id, user_id, total, status) VALUES (1, 42, 1299.99, 'completed');\n"
	return []workload{
		{"Simple SELECT", "SELECT name, age FROM users WHERE age >= 30;"},
		{"CREATE TABLE", "CREATE TABLE products (\n  id INT,\n  name TEXT,\n  price FLOAT\n);"},
		{"UPDATE with logic", "UPDATE t SET a = a + 1 WHERE b <> 2 AND NOT c != 3 OR d <= 4;"},
		{"Comments", "-- header\n# block\ncomment #\nSELECT a FROM t; -- trailing"},
		{"Invalid characters", strings.Repeat("a & b @ c ", 20)},
		{"Unclosed string", "SELECT 'this never ends " + strings.Repeat("x ", 200)},
		{"Script (1000 statements)", strings.Repeat(statement, 1000)},
	}
}

// main runs every workload sequentially and concurrently and writes a JSON
// report.
//
// Environment variables:
//   - BENCHMARK_OUTPUT: Directory for output reports (default: ./benchmark-results)
//   - BENCHMARK_ITERATIONS: Number of iterations per workload (default: 1000)
//   - BENCHMARK_CONCURRENCY: Number of concurrent goroutines (default: 10)
func main() {
	outputDir := filepath.Clean(os.Getenv("BENCHMARK_OUTPUT"))
	if outputDir == "." {
		outputDir = "./benchmark-results"
	}

	iterations := envPositiveInt("BENCHMARK_ITERATIONS", 1000)
	concurrency := envPositiveInt("BENCHMARK_CONCURRENCY", 10)

	if err := prepareOutputDir(outputDir); err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("Starting tokenizer benchmark suite...")
	log.Printf("Iterations: %d, Concurrency: %d", iterations, concurrency)

	report := BenchmarkReport{
		StartTime: time.Now(),
		Results:   []BenchmarkResult{},
	}

	for _, w := range workloads() {
		log.Printf("%s", "\n"+strings.Repeat("=", 80))
		log.Printf("WORKLOAD: %s (%d bytes)", w.name, len(w.source))
		log.Printf("%s", strings.Repeat("=", 80))

		log.Printf("→ Sequential (%d iterations)...", iterations)
		seq, err := runBenchmark(w, iterations, 1)
		if err != nil {
			log.Fatalf("workload %s failed: %v", w.name, err)
		}
		report.Results = append(report.Results, seq)
		printBenchmarkResult(seq)

		log.Printf("→ Concurrent (%d goroutines, %d iterations)...", concurrency, iterations)
		conc, err := runBenchmark(w, iterations, concurrency)
		if err != nil {
			log.Fatalf("workload %s failed: %v", w.name, err)
		}
		report.Results = append(report.Results, conc)
		printBenchmarkResult(conc)
	}

	report.EndTime = time.Now()
	report.TotalDuration = report.EndTime.Sub(report.StartTime)

	timestamp := time.Now().Format("20060102_150405")
	jsonFile := filepath.Join(outputDir, fmt.Sprintf("benchmark_report_%s.json", timestamp))

	log.Printf("%s", "\n"+strings.Repeat("=", 80))
	log.Printf("BENCHMARK SUITE COMPLETE")
	log.Printf("    Total Duration:     %s", formatDuration(report.TotalDuration))
	log.Printf("    Runs:               %d", len(report.Results))

	saveJSONReport(report, jsonFile)
}

// prepareOutputDir creates the report directory up front so an unwritable
// location fails before any workload runs.
func prepareOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}

// envPositiveInt reads a positive integer from the environment. Unset,
// malformed and non-positive values fall back to def.
func envPositiveInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		log.Printf("Ignoring %s=%q: want a positive integer, using %d", name, raw, def)
		return def
	}
	return n
}

// runBenchmark tokenizes w.source iterations times with at most concurrent
// calls in flight. Every call must produce the same token count, since
// Tokenize is a pure function of its input.
func runBenchmark(w workload, iterations, concurrent int) (BenchmarkResult, error) {
	if iterations < 1 {
		return BenchmarkResult{}, fmt.Errorf("iterations must be at least 1, got %d", iterations)
	}
	if concurrent < 1 {
		return BenchmarkResult{}, fmt.Errorf("concurrency must be at least 1, got %d", concurrent)
	}

	reference := lexer.Summarize(lexer.Tokenize(w.source))

	durations := make([]time.Duration, 0, iterations)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(concurrent)

	startTime := time.Now()
	for range iterations {
		g.Go(func() error {
			callStart := time.Now()
			tokens := lexer.Tokenize(w.source)
			duration := time.Since(callStart)

			if len(tokens) != reference.Total {
				return fmt.Errorf("got %d tokens, want %d", len(tokens), reference.Total)
			}

			mu.Lock()
			durations = append(durations, duration)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BenchmarkResult{}, err
	}
	totalDuration := time.Since(startTime)

	slices.Sort(durations)

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	n := len(durations)
	if n == 0 {
		return BenchmarkResult{}, fmt.Errorf("workload %s recorded no calls", w.name)
	}
	seconds := totalDuration.Seconds()

	return BenchmarkResult{
		Workload:       w.name,
		SourceBytes:    len(w.source),
		Iterations:     iterations,
		Concurrency:    concurrent,
		TotalDuration:  totalDuration,
		AvgDuration:    sum / time.Duration(n),
		MinDuration:    durations[0],
		MaxDuration:    durations[n-1],
		MedianDuration: durations[n/2],
		P95Duration:    durations[int(float64(n)*0.95)],
		P99Duration:    durations[int(float64(n)*0.99)],
		CallsPerSecond: float64(iterations) / seconds,
		MBPerSecond:    float64(iterations*len(w.source)) / seconds / (1 << 20),
		TokensPerCall:  reference.Total,
		ErrorTokens:    reference.Errors,
		Timestamp:      time.Now(),
	}, nil
}

// formatDuration formats a duration in a human-readable way with appropriate units.
// Examples: 1.23ms, 456.78µs, 12.34s
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

func printBenchmarkResult(result BenchmarkResult) {
	log.Printf("  ┌─ Results")
	log.Printf("  │  Total Time:        %s", formatDuration(result.TotalDuration))
	log.Printf("  │  Avg per Call:      %s", formatDuration(result.AvgDuration))
	log.Printf("  │  Min / Max:         %s / %s", formatDuration(result.MinDuration), formatDuration(result.MaxDuration))
	log.Printf("  │  Median (P50):      %s", formatDuration(result.MedianDuration))
	log.Printf("  │  P95 / P99:         %s / %s", formatDuration(result.P95Duration), formatDuration(result.P99Duration))
	log.Printf("  │  Throughput:        %.0f calls/sec, %.2f MB/sec", result.CallsPerSecond, result.MBPerSecond)
	log.Printf("  │  Tokens per Call:   %d (%d errors)", result.TokensPerCall, result.ErrorTokens)
	log.Printf("  └─")
}

func saveJSONReport(report BenchmarkReport, filename string) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Printf("Error marshaling report: %v", err)
		return
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		log.Printf("Error writing JSON report: %v", err)
		return
	}

	log.Printf("JSON report saved: %s", filename)
}
