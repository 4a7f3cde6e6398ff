package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2eperf/internal/aggregate"
	"e2eperf/internal/browser/browsertest"
	"e2eperf/internal/capture"
	"e2eperf/internal/capture/capturetest"
	"e2eperf/internal/config"
	"e2eperf/internal/run"
	"e2eperf/internal/scenario"
)

type fixture struct {
	browser    *browsertest.Browser
	recorder   *run.Recorder
	aggregator *aggregate.Aggregator
	runner     *Runner
}

func newFixture(t *testing.T, timeout time.Duration) *fixture {
	t.Helper()
	cfg := config.New()
	cfg.BaseURL = "https://shop.test/"
	cfg.Timeout = timeout

	log, _ := logtest.NewNullLogger()
	b := browsertest.NewBrowser()
	recorder := run.NewRecorder(log)
	agg := aggregate.New()
	harness := run.NewHarness(log, capture.DefaultFilter(), recorder, agg)

	return &fixture{
		browser:    b,
		recorder:   recorder,
		aggregator: agg,
		runner:     NewRunner(cfg, log, b, harness),
	}
}

// emitOnGoto makes every session produce traffic when the scenario navigates.
func emitOnGoto(s *browsertest.Session) {
	s.Fake.OnAction = func(action string) {
		if action != "goto https://shop.test/" {
			return
		}
		s.EmitConsole("error", "boom")
		s.EmitConsole("info", "ignored")
		s.EmitRequest(&capturetest.Request{
			Verb: "GET", Address: "https://shop.test/api/items", Kind: "xhr",
			Started: time.Now(), Code: 200, Size: 2048,
		})
		s.EmitRequest(&capturetest.Request{
			Verb: "GET", Address: "https://shop.test/logo.png", Kind: "image",
			Started: time.Now(), Code: 200, Size: 10,
		})
	}
}

func navigate(ctx context.Context, env scenario.Env) error {
	return env.Page.Goto(env.BaseURL)
}

func TestRunnerRecordsPassingScenario(t *testing.T) {
	f := newFixture(t, time.Second)
	f.browser.Prepare = emitOnGoto

	result := f.runner.Run(context.Background(), scenario.Scenario{Name: "T1", Run: navigate})

	assert.True(t, result.Passed)
	assert.NoError(t, result.Error)
	assert.Equal(t, "T1", result.Name)

	records := f.recorder.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "T1", records[0].TestName)
	require.Len(t, records[0].Resources, 1)
	assert.Equal(t, "https://shop.test/api/items", records[0].Resources[0].URL)
	require.Len(t, records[0].ConsoleLogs, 1)
	assert.Equal(t, "boom", records[0].ConsoleLogs[0].Entry.Message)

	assert.Len(t, f.aggregator.AllAPICalls(), 1)
	assert.Len(t, f.aggregator.AllConsoleLogs(), 1)

	sessions := f.browser.Sessions()
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Closed())
	assert.Zero(t, sessions[0].Subscribers())
}

func TestRunnerRecordsFailingScenario(t *testing.T) {
	f := newFixture(t, time.Second)
	failure := errors.New("expected Products")

	result := f.runner.Run(context.Background(), scenario.Scenario{
		Name: "T2",
		Run:  func(context.Context, scenario.Env) error { return failure },
	})

	assert.False(t, result.Passed)
	assert.ErrorIs(t, result.Error, failure)
	assert.Equal(t, 1, f.recorder.Len())
}

func TestRunnerDiscardsTimedOutScenario(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	f.browser.Prepare = emitOnGoto

	result := f.runner.Run(context.Background(), scenario.Scenario{
		Name: "slow",
		Run: func(ctx context.Context, env scenario.Env) error {
			if err := navigate(ctx, env); err != nil {
				return err
			}
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return nil
		},
	})

	assert.False(t, result.Passed)
	assert.ErrorIs(t, result.Error, ErrTimeout)
	assert.Zero(t, f.recorder.Len())
	assert.Empty(t, f.aggregator.AllAPICalls())
}

func TestRunnerDiscardsPanickingScenario(t *testing.T) {
	f := newFixture(t, time.Second)

	result := f.runner.Run(context.Background(), scenario.Scenario{
		Name: "panics",
		Run:  func(context.Context, scenario.Env) error { panic("nil page") },
	})

	assert.False(t, result.Passed)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "nil page")
	assert.Zero(t, f.recorder.Len())
}

func TestRunnerReportsSessionFailure(t *testing.T) {
	f := newFixture(t, time.Second)
	f.browser.SessionErr = errors.New("chromium missing")

	result := f.runner.Run(context.Background(), scenario.Scenario{Name: "T", Run: navigate})

	assert.False(t, result.Passed)
	assert.Contains(t, result.Error.Error(), "chromium missing")
	assert.Zero(t, f.recorder.Len())
}

type progressSpy struct {
	started  []string
	updates  [][2]int
	finished bool
}

func (p *progressSpy) Start(name string)        { p.started = append(p.started, name) }
func (p *progressSpy) Update(success, fail int) { p.updates = append(p.updates, [2]int{success, fail}) }
func (p *progressSpy) Finish()                  { p.finished = true }

func scenarios(outcomes ...error) []scenario.Scenario {
	var out []scenario.Scenario
	for i, outcome := range outcomes {
		outcome := outcome
		out = append(out, scenario.Scenario{
			Name: string(rune('A' + i)),
			Run:  func(context.Context, scenario.Env) error { return outcome },
		})
	}
	return out
}

func TestWorkerExecute(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name        string
		failFast    bool
		outcomes    []error
		wantNames   []string
		wantUpdates [][2]int
	}{
		{
			name:        "runs everything in order",
			outcomes:    []error{nil, boom, nil},
			wantNames:   []string{"A", "B", "C"},
			wantUpdates: [][2]int{{1, 0}, {1, 1}, {2, 1}},
		},
		{
			name:        "fail fast stops after first failure",
			failFast:    true,
			outcomes:    []error{nil, boom, nil},
			wantNames:   []string{"A", "B"},
			wantUpdates: [][2]int{{1, 0}, {1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, time.Second)
			progress := &progressSpy{}
			w := NewWorker(f.runner)
			w.SetProgress(progress)
			w.SetFailFast(tt.failFast)

			results, _, err := w.Execute(context.Background(), scenarios(tt.outcomes...))
			require.NoError(t, err)

			var names []string
			for _, r := range results {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantNames, progress.started)
			assert.Equal(t, tt.wantUpdates, progress.updates)
			assert.True(t, progress.finished)

			var recorded []string
			for _, rec := range f.recorder.Records() {
				recorded = append(recorded, rec.TestName)
			}
			assert.Equal(t, tt.wantNames, recorded)
		})
	}
}

func TestWorkerStopsWhenCancelled(t *testing.T) {
	f := newFixture(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := NewWorker(f.runner).Execute(ctx, scenarios(nil, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, f.browser.Sessions())
}

func TestWorkerEmptySuite(t *testing.T) {
	f := newFixture(t, time.Second)
	results, duration, err := NewWorker(f.runner).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, duration)
}
