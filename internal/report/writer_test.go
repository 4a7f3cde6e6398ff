package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2eperf/internal/config"
	"e2eperf/internal/domain"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return o.err
}

func newWriter(t *testing.T, opener Opener) (*Writer, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.ReportsDir = filepath.Join("nested", "reports")
	log, _ := logtest.NewNullLogger()
	return NewWriter(cfg, log, NewRenderer(cfg.Title), opener), cfg
}

func TestWriter_SaveCreatesDirectoryAndOverwrites(t *testing.T) {
	w, cfg := newWriter(t, nil)

	path, err := w.Save([]domain.TestRunRecord{{TestName: "first run"}})
	require.NoError(t, err)
	assert.Equal(t, cfg.GetReportPath(), path)

	path2, err := w.Save([]domain.TestRunRecord{{TestName: "second run"}})
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second run")
	assert.NotContains(t, string(data), "first run")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriter_OpensReportAndIgnoresOpenerFailure(t *testing.T) {
	opener := &fakeOpener{err: errors.New("xdg-open: not found")}
	w, _ := newWriter(t, opener)

	path, err := w.Save(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, opener.opened)
}

func TestWriter_DoesNotOpenWhenDisabled(t *testing.T) {
	opener := &fakeOpener{}
	w, cfg := newWriter(t, opener)
	cfg.OpenReport = false

	_, err := w.Save(nil)
	require.NoError(t, err)
	assert.Empty(t, opener.opened)
}

func TestWriter_SurfacesIOErrors(t *testing.T) {
	w, cfg := newWriter(t, nil)

	// a regular file where the reports directory should be
	blocker := filepath.Join(cfg.ProjectPath, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.ReportsDir = "blocked"

	_, err := w.Save(nil)
	assert.Error(t, err)
}
