package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries = 64000 // Total number of log lines to generate
)

var (
	paths    = []string{"/", "/about", "/careers", "/contact"}
	statuses = []string{"200", "404"}
	ignored  = []string{"/static/app.js", "/favicon.ico"}
)

// ### End - fixed configs

type reportRow struct {
	View      string  `json:"view"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Count     int     `json:"count"`
	Minimum   float64 `json:"minimum"`
	Maximum   float64 `json:"maximum"`
	Mean      float64 `json:"mean"`
	Stdev     float64 `json:"stdev"`
	Queries   float64 `json:"queries"`
	QueryTime float64 `json:"querytime"`
}

// main runs the e2e scenario: 001_basic_endpoint_report
//
// This scenario writes a deterministic timelog file to the path configured in
// configs/configs.yml (timelog.log_file), then asks the running server for the
// per-endpoint report several times concurrently.
//
// What it tests:
//   - Timelog parsing of a large file through GET /report
//   - Ignore patterns (static assets and favicon never show up in the report)
//   - Endpoint resolution through the configured route table
//   - Concurrent report requests sharing the endpoint resolver cache
//
// Expected results:
//   - Every request returns 200 with the same eight rows (4 endpoints x 2 statuses)
//   - Each row counts totalEntries / 8 requests
//   - Response times cycle through 0.001..0.100, so every row has min 0.00, max 0.10 and mean 0.051
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the timelog server
	logFile := ".tmp/timelog.log"      // Log file path relative to project root, must match timelog.log_file
	dateUTC := "2019-05-01"            // Date used for generating log line timestamps (UTC)
	parallel := 4                      // Number of concurrent report requests
	requests := 16                     // Total number of report requests

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(projectRoot, logFile)

	fmt.Println("Starting e2e scenario: 001_basic_endpoint_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("LOG_FILE: %s\n", logPath)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("REQUESTS: %d\n", requests)
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Println()

	fmt.Printf("Writing %d log lines...\n", totalEntries)
	if err := writeLogFile(logPath, dateUTC); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write log file: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var okRequests int64

	for i := 1; i <= requests; i++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(n int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			rows, err := fetchReport(baseURL)
			if err == nil {
				err = verifyReport(rows)
			}
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("request %d: %w", n, err))
				mu.Unlock()
				fmt.Fprintf(os.Stderr, "ERROR: Request %d failed: %v\n", n, err)
				return
			}
			atomic.AddInt64(&okRequests, 1)
			fmt.Printf("Request %d completed (%d rows)\n", n, len(rows))
		}(i)
	}
	wg.Wait()

	fmt.Println()
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d report requests failed\n", len(errors))
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Successful requests: %d\n", atomic.LoadInt64(&okRequests))
	fmt.Println("Scenario completed successfully")
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

// writeLogFile writes totalEntries routed lines plus one ignored line per hundred.
func writeLogFile(path, dateUTC string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	start, err := time.Parse("2006-01-02", dateUTC)
	if err != nil {
		return err
	}
	for i := 0; i < totalEntries; i++ {
		combo := i % (len(paths) * len(statuses))
		path := paths[combo/len(statuses)]
		status := statuses[combo%len(statuses)]
		ts := start.Add(time.Duration(i) * 10 * time.Millisecond)
		// i/8 cycles 0..99 for every row, so each row sees every response time equally often
		responseTime := float64((i/8)%100+1) / 1000
		fmt.Fprintf(w, "%s,%03d GET \"%s\" (%s) %.3f (%dq, %.3f)\n",
			ts.Format("2006-01-02 15:04:05"), ts.Nanosecond()/int(time.Millisecond),
			path, status, responseTime, i%5, responseTime/4)

		if i%100 == 0 {
			fmt.Fprintf(w, "%s,%03d GET \"%s\" (200) 0.001 (0q, 0)\n",
				ts.Format("2006-01-02 15:04:05"), ts.Nanosecond()/int(time.Millisecond),
				ignored[(i/100)%len(ignored)])
		}
	}
	return w.Flush()
}

func fetchReport(baseURL string) ([]reportRow, error) {
	client := &http.Client{
		Timeout: 60 * time.Second,
	}
	resp, err := client.Get(baseURL + "/report?format=json&resolve=true")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}

	var rows []reportRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return rows, nil
}

func verifyReport(rows []reportRow) error {
	wantRows := len(paths) * len(statuses)
	if len(rows) != wantRows {
		return fmt.Errorf("got %d rows, want %d", len(rows), wantRows)
	}
	if !sort.SliceIsSorted(rows, func(i, j int) bool {
		if rows[i].View != rows[j].View {
			return rows[i].View < rows[j].View
		}
		return rows[i].Status < rows[j].Status
	}) {
		return fmt.Errorf("rows are not sorted by view and status")
	}

	wantCount := totalEntries / wantRows
	for _, r := range rows {
		if r.Count != wantCount {
			return fmt.Errorf("%s %s: count %d, want %d", r.View, r.Status, r.Count, wantCount)
		}
		if r.Minimum != 0 || r.Maximum != 0.1 || math.Abs(r.Mean-0.0505) > 0.001 {
			return fmt.Errorf("%s %s: unexpected times min=%v max=%v mean=%v", r.View, r.Status, r.Minimum, r.Maximum, r.Mean)
		}
	}
	return nil
}
