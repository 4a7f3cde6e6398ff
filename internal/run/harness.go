package run

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/aggregate"
	"e2eperf/internal/capture"
	"e2eperf/internal/domain"
)

// ErrSessionEnded is returned when a session is ended twice or after Abort
var ErrSessionEnded = errors.New("session already ended")

// Harness implements the per-test setup and teardown hooks
type Harness struct {
	log        logrus.FieldLogger
	filter     capture.Filter
	recorder   *Recorder
	aggregator *aggregate.Aggregator
	now        func() time.Time
}

// NewHarness creates a Harness. aggregator may be nil when no cross-test view is wanted.
func NewHarness(log logrus.FieldLogger, filter capture.Filter, recorder *Recorder, aggregator *aggregate.Aggregator) *Harness {
	return &Harness{
		log:        log,
		filter:     filter,
		recorder:   recorder,
		aggregator: aggregator,
		now:        time.Now,
	}
}

// Session is one test case under observation
type Session struct {
	harness *Harness
	name    string
	started time.Time
	events  *capture.Recorder

	mu    sync.Mutex
	ended bool
}

// Begin marks the test start and starts buffering the source's events
func (h *Harness) Begin(testName string, src capture.Source) *Session {
	events := capture.NewRecorder(h.log.WithField("test", testName), h.filter)
	if src != nil {
		events.Attach(src)
	}
	return &Session{
		harness: h,
		name:    testName,
		started: h.now(),
		events:  events,
	}
}

// Name returns the test name
func (s *Session) Name() string {
	return s.name
}

// End stops observation, records the test and hands its buffers to the
// aggregator. The returned record is the one appended to the Recorder.
func (s *Session) End() (domain.TestRunRecord, error) {
	if !s.markEnded() {
		return domain.TestRunRecord{}, ErrSessionEnded
	}

	h := s.harness
	duration := domain.MillisOf(h.now().Sub(s.started))
	s.events.Close()

	consoleLogs := s.events.ConsoleLogs()
	apiCalls := s.events.APICalls()
	if h.aggregator != nil {
		h.aggregator.AddSessionData(consoleLogs, apiCalls)
	}

	lines := domain.LinesFromEntries(consoleLogs)
	h.recorder.RecordPerformance(s.name, duration, apiCalls, lines)

	return domain.TestRunRecord{
		TestName:       s.name,
		DurationMillis: duration,
		Resources:      apiCalls,
		ConsoleLogs:    lines,
	}, nil
}

// Abort drops everything buffered for this session without recording it
func (s *Session) Abort() {
	if !s.markEnded() {
		return
	}
	s.events.Discard()
	s.harness.log.WithField("test", s.name).Debug("session aborted, buffers discarded")
}

func (s *Session) markEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return false
	}
	s.ended = true
	return true
}
