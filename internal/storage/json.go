package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"e2eperf/internal/domain"
)

// Save writes scenario outcomes and their records to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.TestResult, records []domain.TestRunRecord, duration time.Duration) error {
	output := domain.ResultsOutput{
		Meta:    BuildMeta(results, records, duration, s.cfg.Driver),
		Records: records,
	}
	output.Meta.Timestamp = s.now().Format(time.RFC3339)
	if output.Records == nil {
		output.Records = []domain.TestRunRecord{}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last suite results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.ResultsOutput, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.ResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// BuildMeta summarizes a suite run
func BuildMeta(results []domain.TestResult, records []domain.TestRunRecord, duration time.Duration, driver string) domain.ResultsMeta {
	meta := domain.ResultsMeta{
		TotalTests:      len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Driver:          driver,
	}
	for _, r := range results {
		if r.Passed {
			meta.PassedTests++
		} else {
			meta.FailedTests++
		}
	}
	for _, rec := range records {
		meta.TotalRequests += len(rec.Resources)
		meta.ConsoleMessages += len(rec.ConsoleLogs)
		for _, req := range rec.Resources {
			if req.StatusCode == 0 || req.StatusCode >= 400 {
				meta.FailedRequests++
			}
		}
	}
	return meta
}
