package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowikitext/pkg/analysis"
	"github.com/yaklabco/gowikitext/pkg/runner"
)

func writePages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("== Heading ==\n{{stub}}\n"), 0o644))
	}
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "a.wiki", "b.wikitext", "c.mediawiki", "readme.md", "notes.txt")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, files, 3)
	for _, f := range files {
		ext := filepath.Ext(f)
		assert.Contains(t, runner.DefaultExtensions(), ext)
	}
}

func TestDiscover_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "b.wiki", "a.wiki")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		// The directory and an explicit file overlap.
		Paths: []string{".", "a.wiki"},
	})
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], "a.wiki"))
	assert.True(t, strings.HasSuffix(files[1], "b.wiki"))
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "keep.wiki", filepath.Join("archive", "old.wiki"))

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"archive/**"},
	})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "keep.wiki"))
}

func TestDiscover_SkipsHiddenDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "visible.wiki", filepath.Join(".cache", "hidden.wiki"))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "visible.wiki"))
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"no-such-file.wiki"},
	})
	require.Error(t, err)
}

func TestRun_AggregatesStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "a.wiki", "b.wiki", "c.wiki")

	var processed atomic.Int32
	proc := runner.ProcessorFunc(func(_ context.Context, path string) (*runner.PageResult, error) {
		processed.Add(1)
		report := &analysis.Report{}
		if strings.HasSuffix(path, "a.wiki") {
			report.Totals.Findings = 2
			report.Totals.Warnings = 1
			report.Totals.Infos = 1
			report.Totals.Healable = 1
		}
		return &runner.PageResult{Report: report}, nil
	})

	result, err := runner.New(proc).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(3), processed.Load())
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FindingsTotal)
	assert.Equal(t, 1, result.Stats.FindingsHealable)
	assert.Equal(t, 1, result.Stats.FilesWithFindings)
	assert.Equal(t, 1, result.Stats.FindingsBySeverity[analysis.SeverityWarning])
	assert.Equal(t, 1, result.Stats.FindingsBySeverity[analysis.SeverityInfo])
	assert.True(t, result.HasWarnings())
	assert.True(t, result.HasFindings())
}

func TestRun_DeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "c.wiki", "a.wiki", "b.wiki")

	proc := runner.ProcessorFunc(func(_ context.Context, _ string) (*runner.PageResult, error) {
		return &runner.PageResult{Report: &analysis.Report{}}, nil
	})

	result, err := runner.New(proc).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       3,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.True(t, strings.HasSuffix(result.Files[0].Path, "a.wiki"))
	assert.True(t, strings.HasSuffix(result.Files[1].Path, "b.wiki"))
	assert.True(t, strings.HasSuffix(result.Files[2].Path, "c.wiki"))
}

func TestRun_ProcessorErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "good.wiki", "bad.wiki")

	procErr := errors.New("unreadable page")
	proc := runner.ProcessorFunc(func(_ context.Context, path string) (*runner.PageResult, error) {
		if strings.HasSuffix(path, "bad.wiki") {
			return nil, procErr
		}
		return &runner.PageResult{Report: &analysis.Report{}}, nil
	})

	result, err := runner.New(proc).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)

	require.Len(t, result.Files, 2)
	assert.ErrorIs(t, result.Files[0].Error, procErr)
	assert.NoError(t, result.Files[1].Error)
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	proc := runner.ProcessorFunc(func(_ context.Context, _ string) (*runner.PageResult, error) {
		t.Error("processor must not run with no files")
		return nil, nil
	})

	result, err := runner.New(proc).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePages(t, dir, "a.wiki")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := runner.ProcessorFunc(func(_ context.Context, _ string) (*runner.PageResult, error) {
		return &runner.PageResult{}, nil
	})

	_, err := runner.New(proc).Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
