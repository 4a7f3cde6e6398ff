// Package aggregate collects console and API data across every session of a
// test process.
package aggregate

import (
	"sync"

	"e2eperf/internal/domain"
)

// Aggregator is an append-only sink for per-session buffers.
// Collections only grow until Reset.
type Aggregator struct {
	mu       sync.RWMutex
	console  []domain.ConsoleLogEntry
	apiCalls []domain.APICallEntry
}

// New creates an independent Aggregator. Components should receive one of
// these explicitly; Default exists for the composition root.
func New() *Aggregator {
	return &Aggregator{
		console:  make([]domain.ConsoleLogEntry, 0),
		apiCalls: make([]domain.APICallEntry, 0),
	}
}

var (
	defaultOnce sync.Once
	defaultAgg  *Aggregator
)

// Default returns the process-wide Aggregator, creating it on first use
func Default() *Aggregator {
	defaultOnce.Do(func() {
		defaultAgg = New()
	})
	return defaultAgg
}

// AddSessionData appends one session's buffers, preserving their order
func (a *Aggregator) AddSessionData(consoleLogs []domain.ConsoleLogEntry, apiCalls []domain.APICallEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.console = append(a.console, consoleLogs...)
	a.apiCalls = append(a.apiCalls, apiCalls...)
}

// AllConsoleLogs returns a copy of every console entry added so far
func (a *Aggregator) AllConsoleLogs() []domain.ConsoleLogEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]domain.ConsoleLogEntry, len(a.console))
	copy(result, a.console)
	return result
}

// AllAPICalls returns a copy of every API call entry added so far
func (a *Aggregator) AllAPICalls() []domain.APICallEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	result := make([]domain.APICallEntry, len(a.apiCalls))
	copy(result, a.apiCalls)
	return result
}

// Reset clears both collections. Only call it between independent suite runs.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.console = make([]domain.ConsoleLogEntry, 0)
	a.apiCalls = make([]domain.APICallEntry, 0)
}
