// Package run turns finished test sessions into the suite's ordered list of
// test run records.
package run

import (
	"sync"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/domain"
)

// Recorder is the suite-level, append-only collection of test run records.
// Each worker process owns its own Recorder.
type Recorder struct {
	log     logrus.FieldLogger
	mu      sync.Mutex
	records []domain.TestRunRecord
}

// NewRecorder creates an empty Recorder
func NewRecorder(log logrus.FieldLogger) *Recorder {
	return &Recorder{
		log:     log.WithField("component", "run_recorder"),
		records: make([]domain.TestRunRecord, 0, 16),
	}
}

// RecordPerformance appends a record for one test. Nil resources or console
// logs are stored as empty sequences.
func (r *Recorder) RecordPerformance(testName string, duration domain.Millis, resources []domain.APICallEntry, consoleLogs []domain.ConsoleLine) {
	record := domain.TestRunRecord{
		TestName:       testName,
		DurationMillis: duration,
		Resources:      make([]domain.APICallEntry, len(resources)),
		ConsoleLogs:    make([]domain.ConsoleLine, len(consoleLogs)),
	}
	copy(record.Resources, resources)
	copy(record.ConsoleLogs, consoleLogs)

	r.mu.Lock()
	r.records = append(r.records, record)
	position := len(r.records)
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"test":      testName,
		"position":  position,
		"resources": len(resources),
		"console":   len(consoleLogs),
	}).Debug("recorded test run")
}

// Records returns the records in append order
func (r *Recorder) Records() []domain.TestRunRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.TestRunRecord, len(r.records))
	copy(result, r.records)
	return result
}

// Len returns the number of records
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
