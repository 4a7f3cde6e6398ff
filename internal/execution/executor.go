package execution

import (
	"context"
	"time"

	"e2eperf/internal/domain"
	"e2eperf/internal/scenario"
)

// Executor executes scenarios and returns results
type Executor interface {
	Execute(ctx context.Context, scenarios []scenario.Scenario) ([]domain.TestResult, time.Duration, error)
}

// Progress receives pass/fail counts as scenarios complete
type Progress interface {
	Start(name string)
	Update(successCount, failCount int)
	Finish()
}
