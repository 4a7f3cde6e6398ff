package storage

import (
	"time"

	"e2eperf/internal/config"
	"e2eperf/internal/domain"
)

// Storage persists and loads the records of the last suite run (for report and view).
type Storage interface {
	Save(results []domain.TestResult, records []domain.TestRunRecord, duration time.Duration) error
	Load() (*domain.ResultsOutput, error)
}

// JSONStorage stores results in a JSON file next to the HTML report.
type JSONStorage struct {
	cfg *config.Config
	now func() time.Time
}

// NewJSONStorage returns a Storage that reads/writes the config's results JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg, now: time.Now}
}
