package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"log-analyzer/internal/app"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"

	"github.com/klauspost/compress/gzip"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalLines     = 64000 // Total number of lines written to the latest log
	malformedEvery = 1000  // Every Nth line is replaced by a malformed one
)

var (
	paths = []string{"/api/v2/banner/25019354", "/api/1/photogenic_banners/list/?server_name=WIN7RB4", "/api/v2/group/1769230/banners", "/export/appinstall_raw/2017-06-29/"}
)

// ### End - fixed configs

const (
	latestLogName = "nginx-access-ui.log-20170630.gz"
	olderLogName  = "nginx-access-ui.log-20170629.log"
	reportTmpl    = `{"table": $table_json, "meta": $meta_json}`
)

type expectedRow struct {
	count   int64
	timeSum float64
	timeMax float64
}

type reportRow struct {
	URL       string  `json:"url"`
	Count     int64   `json:"count"`
	CountPerc float64 `json:"count_perc"`
	TimeSum   float64 `json:"time_sum"`
	TimePerc  float64 `json:"time_perc"`
	TimeAvg   float64 `json:"time_avg"`
	TimeMax   float64 `json:"time_max"`
	TimeMed   float64 `json:"time_med"`
}

type reportDocument struct {
	Table []reportRow `json:"table"`
	Meta  struct {
		SourceFile   string    `json:"source_file"`
		GeneratedAt  time.Time `json:"generated_at"`
		TotalCount   int64     `json:"total_count"`
		SkippedLines int64     `json:"skipped_lines"`
	} `json:"meta"`
}

// main runs the e2e scenario: 001_latest_gzip_report
//
// This scenario writes two access logs into a scratch log directory, runs the
// analyzer once in-process and checks the produced report.
//
// What it tests:
//   - Selection of the most recent log by the date in its name (gzip beats an older plain log)
//   - Streaming gzip decoding of a 64,000 line log
//   - Skipping of malformed lines under the skip policy
//   - Partitioned aggregation with several workers
//   - Report rendering through a custom JSON template
//
// Expected results:
//   - report-YYYY.MM.DD.json, dated by the run, exists in the report directory
//   - Four rows, one per path, in first-seen order
//   - 64 malformed lines are skipped and reported in the meta block
//   - Per-path counts and time sums match the generator's own tally
func main() {
	// these configs can be changed to run the scenario
	workdir := getEnv("E2E_WORKDIR", ".tmp/e2e-001") // Scratch directory relative to project root
	workers := getEnvInt("E2E_WORKERS", 4)           // aggregation.workers
	wantCleanWorkdir := getEnvBool("E2E_CLEAN", true) // If true, remove the scratch directory first

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	root := filepath.Join(projectRoot, workdir)

	if wantCleanWorkdir {
		fmt.Printf("Cleaning scratch directory: %s\n", root)
		if err := os.RemoveAll(root); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean scratch directory: %v\n", err)
		}
		fmt.Println()
	}

	logDir := filepath.Join(root, "nginx_logs")
	reportDir := filepath.Join(root, "reports")
	tmplPath := filepath.Join(root, "report.json")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(tmplPath, []byte(reportTmpl), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write template: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting e2e scenario: 001_latest_gzip_report")
	fmt.Printf("WORKDIR: %s\n", root)
	fmt.Printf("WORKERS: %d\n", workers)
	fmt.Printf("TOTAL_LINES: %d\n", totalLines)
	fmt.Println()

	if err := os.WriteFile(filepath.Join(logDir, olderLogName), []byte("stale log that must not be read\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write older log: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %s...\n", latestLogName)
	expected, skipped, err := writeLatestLog(filepath.Join(logDir, latestLogName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write latest log: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d lines (%d malformed)\n", totalLines, skipped)
	fmt.Println()

	cfg := &configs.Config{
		Log:         configs.LogConfig{Level: "info"},
		Source:      configs.SourceConfig{LogDir: logDir},
		Parser:      configs.ParserConfig{MalformedLines: "skip", MaxMalformedRatio: 0.01},
		Aggregation: configs.AggregationConfig{Workers: workers},
		Report:      configs.ReportConfig{Dir: reportDir, TemplatePath: tmplPath, Overwrite: true},
	}
	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	result, err := application.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Run failed: %v\n", err)
		os.Exit(1)
	}
	if result.Report == nil {
		fmt.Fprintf(os.Stderr, "ERROR: Expected a report, got none\n")
		os.Exit(1)
	}

	content, err := os.ReadFile(result.Report.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read report: %v\n", err)
		os.Exit(1)
	}
	var doc reportDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Report is not valid JSON: %v\n", err)
		os.Exit(1)
	}

	problems := verify(doc, expected, skipped)
	if wantName := reports.ReportKey(doc.Meta.GeneratedAt, "json"); filepath.Base(result.Report.Path) != wantName {
		problems = append(problems, fmt.Sprintf("report file=%q, want %q", filepath.Base(result.Report.Path), wantName))
	}
	fmt.Println("=== Report ===")
	for _, row := range doc.Table {
		fmt.Printf("%-60s count=%-6d time_sum=%-10.3f time_med=%.3f\n", row.URL, row.Count, row.TimeSum, row.TimeMed)
	}
	fmt.Println()
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", p)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func writeLatestLog(path string) (map[string]*expectedRow, int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	w := bufio.NewWriter(zw)

	expected := make(map[string]*expectedRow, len(paths))
	var skipped int64
	for i := 0; i < totalLines; i++ {
		if i%malformedEvery == malformedEvery-1 {
			fmt.Fprintln(w, "1.2.3.4 - - malformed")
			skipped++
			continue
		}
		p := paths[i%len(paths)]
		requestTime := float64((i*17)%1000) / 1000
		fmt.Fprintf(w, "1.196.116.32 -  - [30/Jun/2017:03:50:22 +0300] \"GET %s HTTP/1.1\" 200 927 \"-\" \"Lynx/2.8.8dev.9\" \"-\" \"1498697422-%d\" \"dc7161be3\" %.3f\n", p, i, requestTime)

		row, ok := expected[p]
		if !ok {
			row = &expectedRow{}
			expected[p] = row
		}
		row.count++
		row.timeSum += requestTime
		row.timeMax = math.Max(row.timeMax, requestTime)
	}

	if err := w.Flush(); err != nil {
		return nil, 0, err
	}
	if err := zw.Close(); err != nil {
		return nil, 0, err
	}
	return expected, skipped, file.Close()
}

func verify(doc reportDocument, expected map[string]*expectedRow, skipped int64) []string {
	var problems []string
	if doc.Meta.SourceFile != latestLogName {
		problems = append(problems, fmt.Sprintf("source_file=%q, want %q", doc.Meta.SourceFile, latestLogName))
	}
	if doc.Meta.SkippedLines != skipped {
		problems = append(problems, fmt.Sprintf("skipped_lines=%d, want %d", doc.Meta.SkippedLines, skipped))
	}
	if len(doc.Table) != len(paths) {
		return append(problems, fmt.Sprintf("rows=%d, want %d", len(doc.Table), len(paths)))
	}

	var countPerc, timePerc float64
	for i, row := range doc.Table {
		if row.URL != paths[i] {
			problems = append(problems, fmt.Sprintf("row %d url=%q, want %q", i, row.URL, paths[i]))
			continue
		}
		want := expected[row.URL]
		if row.Count != want.count {
			problems = append(problems, fmt.Sprintf("%s count=%d, want %d", row.URL, row.Count, want.count))
		}
		if math.Abs(row.TimeSum-want.timeSum) > 1e-6 {
			problems = append(problems, fmt.Sprintf("%s time_sum=%f, want %f", row.URL, row.TimeSum, want.timeSum))
		}
		if row.TimeMax != want.timeMax {
			problems = append(problems, fmt.Sprintf("%s time_max=%f, want %f", row.URL, row.TimeMax, want.timeMax))
		}
		countPerc += row.CountPerc
		timePerc += row.TimePerc
	}
	if math.Abs(countPerc-1) > 1e-9 || math.Abs(timePerc-1) > 1e-9 {
		problems = append(problems, fmt.Sprintf("percentages sum to %f/%f, want 1/1", countPerc, timePerc))
	}
	if doc.Meta.TotalCount != int64(totalLines)-skipped {
		problems = append(problems, fmt.Sprintf("total_count=%d, want %d", doc.Meta.TotalCount, int64(totalLines)-skipped))
	}
	return problems
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod; run from inside the project")
		}
		dir = parent
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
