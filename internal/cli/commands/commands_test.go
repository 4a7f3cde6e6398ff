package commands

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2eperf/internal/aggregate"
	"e2eperf/internal/browser"
	"e2eperf/internal/browser/browsertest"
	"e2eperf/internal/capture/capturetest"
	"e2eperf/internal/cli"
	"e2eperf/internal/config"
	"e2eperf/internal/domain"
	"e2eperf/internal/scenario"
	"e2eperf/internal/storage"
	"e2eperf/internal/ui"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

type env struct {
	cfg     *config.Config
	browser *browsertest.Browser
	opener  *fakeOpener
	agg     *aggregate.Aggregator
	storage *storage.JSONStorage
	run     *RunCommand
}

func newEnv(t *testing.T, scenarios ...scenario.Scenario) *env {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.BaseURL = "https://shop.test/"
	cfg.Timeout = time.Second

	log, _ := logtest.NewNullLogger()
	b := browsertest.NewBrowser()
	b.Prepare = func(s *browsertest.Session) {
		s.Fake.OnAction = func(action string) {
			if !strings.HasPrefix(action, "goto ") {
				return
			}
			s.EmitConsole("error", "<script>boom</script>")
			s.EmitRequest(&capturetest.Request{
				Verb: "GET", Address: "https://shop.test/api/items", Kind: "xhr",
				Started: time.Now(), Code: 200, Size: 1264,
			})
		}
	}
	opener := &fakeOpener{}
	agg := aggregate.New()
	st := storage.NewJSONStorage(cfg)

	launch := func(*config.Config, logrus.FieldLogger) (browser.Browser, error) { return b, nil }
	rc := NewRunCommand(cfg, log, scenario.NewRegistry(scenarios...), launch, st, ui.NewFormatterTo(io.Discard), opener, agg)
	rc.progress = nil

	return &env{cfg: cfg, browser: b, opener: opener, agg: agg, storage: st, run: rc}
}

func visit(ctx context.Context, e scenario.Env) error {
	return e.Page.Goto(e.BaseURL)
}

func TestRunWritesReportAndResults(t *testing.T) {
	e := newEnv(t,
		scenario.Scenario{Name: "T1", Run: visit},
		scenario.Scenario{Name: "T2", Run: visit},
	)

	require.NoError(t, e.run.Execute(&cobra.Command{}, nil))

	html, err := os.ReadFile(filepath.Join(e.cfg.ProjectPath, "reports", "performance-report.html"))
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, `<span class="test-name">T1</span>`)
	assert.Contains(t, page, `<span class="test-name">T2</span>`)
	assert.Contains(t, page, "#2")
	assert.Contains(t, page, "1.2 KB")
	assert.NotContains(t, page, "<script>boom")

	saved, err := e.storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Meta.TotalTests)
	assert.Equal(t, 2, saved.Meta.TotalRequests)
	require.Len(t, saved.Records, 2)
	assert.Equal(t, "T1", saved.Records[0].TestName)

	assert.Equal(t, []string{e.cfg.GetReportPath()}, e.opener.opened)
	assert.Len(t, e.agg.AllAPICalls(), 2)
	assert.True(t, e.browser.Closed())
}

func TestRunFailureStillWritesReport(t *testing.T) {
	e := newEnv(t,
		scenario.Scenario{Name: "ok", Run: visit},
		scenario.Scenario{Name: "broken", Run: func(ctx context.Context, env scenario.Env) error {
			if err := visit(ctx, env); err != nil {
				return err
			}
			return errors.New("expected Products")
		}},
		scenario.Scenario{Name: "skipped", Run: visit},
	)
	e.cfg.Flags.FailFast = true
	e.opener.err = errors.New("no handler")

	err := e.run.Execute(&cobra.Command{}, nil)
	require.ErrorIs(t, err, ErrScenariosFailed)

	saved, err := e.storage.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Meta.TotalTests)
	assert.Equal(t, 1, saved.Meta.FailedTests)
	require.Len(t, saved.Records, 2)
	assert.Equal(t, "broken", saved.Records[1].TestName)
	assert.FileExists(t, e.cfg.GetReportPath())
}

func TestRunNoMatchingScenarios(t *testing.T) {
	e := newEnv(t, scenario.Scenario{Name: "T1", Run: visit})
	e.cfg.Flags.Filter = "nothing"

	require.NoError(t, e.run.Execute(&cobra.Command{}, nil))
	assert.Empty(t, e.browser.Sessions())
	assert.NoFileExists(t, e.cfg.GetReportPath())
}

func TestRunLaunchFailure(t *testing.T) {
	e := newEnv(t, scenario.Scenario{Name: "T1", Run: visit})
	e.run.launch = func(*config.Config, logrus.FieldLogger) (browser.Browser, error) {
		return nil, errors.New("chromium not installed")
	}

	err := e.run.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromium not installed")
}

func TestReportRerendersSavedResults(t *testing.T) {
	e := newEnv(t, scenario.Scenario{Name: "T1", Run: visit})
	e.cfg.OpenReport = false
	require.NoError(t, e.run.Execute(&cobra.Command{}, nil))
	require.NoError(t, os.Remove(e.cfg.GetReportPath()))

	log, _ := logtest.NewNullLogger()
	e.cfg.Title = "Nightly"
	rc := NewReportCommand(e.cfg, log, e.storage, ui.NewFormatterTo(io.Discard), e.opener)
	require.NoError(t, rc.Execute(&cobra.Command{}, nil))

	html, err := os.ReadFile(e.cfg.GetReportPath())
	require.NoError(t, err)
	assert.Contains(t, string(html), "Nightly")
	assert.Contains(t, string(html), `<span class="test-name">T1</span>`)
	assert.Empty(t, e.opener.opened)
}

func TestReportWithoutResults(t *testing.T) {
	e := newEnv(t)
	log, _ := logtest.NewNullLogger()
	rc := NewReportCommand(e.cfg, log, e.storage, ui.NewFormatterTo(io.Discard), e.opener)
	require.Error(t, rc.Execute(&cobra.Command{}, nil))
}

func TestOpenCommand(t *testing.T) {
	e := newEnv(t)
	oc := NewOpenCommand(e.cfg, e.opener)

	err := oc.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `e2eperf run` first")

	require.NoError(t, os.MkdirAll(filepath.Dir(e.cfg.GetReportPath()), 0755))
	require.NoError(t, os.WriteFile(e.cfg.GetReportPath(), []byte("<html></html>"), 0644))
	require.NoError(t, oc.Execute(&cobra.Command{}, nil))
	assert.Equal(t, []string{e.cfg.GetReportPath()}, e.opener.opened)

	e.opener.err = errors.New("no handler")
	require.Error(t, oc.Execute(&cobra.Command{}, nil))
}

type viewerSpy struct {
	got *domain.ResultsOutput
}

func (v *viewerSpy) View(results *domain.ResultsOutput) error {
	v.got = results
	return nil
}

func TestViewLoadsSavedResults(t *testing.T) {
	e := newEnv(t, scenario.Scenario{Name: "T1", Run: visit})
	spy := &viewerSpy{}
	vc := NewViewCommand(e.storage, spy)

	require.Error(t, vc.Execute(&cobra.Command{}, nil))
	assert.Nil(t, spy.got)

	require.NoError(t, e.run.Execute(&cobra.Command{}, nil))
	require.NoError(t, vc.Execute(&cobra.Command{}, nil))
	require.NotNil(t, spy.got)
	require.Len(t, spy.got.Records, 1)
	assert.Equal(t, "T1", spy.got.Records[0].TestName)
}

func TestRegisterWiresCommands(t *testing.T) {
	cfg := config.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	var flags cli.Flags
	root := &cobra.Command{Use: "e2eperf"}

	NewCommands(cfg, log).Register(root, &flags, cfg, log)

	for _, name := range []string{"run", "list", "report", "view", "open"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	runCmd, _, _ := root.Find([]string{"run"})
	for _, flag := range []string{"filter", "fail-fast", "driver", "headed", "no-open"} {
		assert.NotNil(t, runCmd.Flags().Lookup(flag), flag)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
