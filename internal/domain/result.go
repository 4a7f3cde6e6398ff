package domain

import "time"

// TestRunRecord pairs a test's harness-measured duration with what the browser did meanwhile
type TestRunRecord struct {
	TestName       string         `json:"testName"`
	DurationMillis Millis         `json:"duration"`
	Resources      []APICallEntry `json:"resources"`
	ConsoleLogs    []ConsoleLine  `json:"consoleLogs"`
}

// TestResult is the outcome of executing one scenario
type TestResult struct {
	Name     string        // Scenario name
	Passed   bool          // Whether every step succeeded
	Error    error         // First failing step, if any
	Duration time.Duration // Wall-clock time measured by the harness
}

// ResultsMeta contains metadata about a suite run
type ResultsMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	TotalRequests   int     `json:"total_requests"`
	FailedRequests  int     `json:"failed_requests"`
	ConsoleMessages int     `json:"console_messages"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Driver          string  `json:"driver"`
	Timestamp       string  `json:"timestamp"`
}

// ResultsOutput is the complete persisted structure for a suite run
type ResultsOutput struct {
	Meta    ResultsMeta     `json:"meta"`
	Records []TestRunRecord `json:"records"`
}
