package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"adockit/internal/asciidoc"
)

const sampleDoc = `[source,yaml]
----
key: <val> <1>
----
<1> Sets the value.
`

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))
	return path
}

func newRunner(dryRun bool) *Runner {
	return &Runner{
		Processor: asciidoc.NewProcessor(asciidoc.DefinitionList{}, 0, nil),
		Workers:   2,
		DryRun:    dryRun,
	}
}

func TestRunnerConvertsFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	paths := []string{
		writeSample(t, dir, "a.adoc"),
		writeSample(t, dir, "b.adoc"),
	}

	report, err := newRunner(false).Run(context.Background(), paths)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Converted)
	assert.Zero(t, report.Failed)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "`key: <val>`::")
	assert.NotContains(t, string(data), "<1>")
}

func TestRunnerDryRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := writeSample(t, dir, "a.adoc")

	report, err := newRunner(true).Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)

	fr := report.Files[0]
	assert.True(t, fr.Changed)
	assert.Contains(t, fr.Preview, "- key: <val> <1>")
	assert.Contains(t, fr.Preview, "+ `key: <val>`::")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleDoc, string(data), "dry run leaves the file untouched")
}

func TestRunnerRecordsPerFileErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "missing.adoc"),
		writeSample(t, dir, "ok.adoc"),
	}

	report, err := newRunner(false).Run(context.Background(), paths)
	require.NoError(t, err, "per-file errors do not abort the batch")
	assert.Equal(t, 1, report.Failed)
	assert.Error(t, report.Files[0].Err)
	assert.NoError(t, report.Files[1].Err)
	assert.Equal(t, 1, report.Converted)
}

func TestRunnerCollectsWarnings(t *testing.T) {
	defer goleak.VerifyNone(t)

	doc := "[source,go]\n----\nx() // <1>\n----\n<2> Wrong number.\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.adoc")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	report, err := newRunner(false).Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].Warnings, 1)
	w := report.Files[0].Warnings[0]
	assert.Equal(t, []int{1}, w.CodeNums)
	assert.Equal(t, []int{2}, w.ExplNums)
	assert.False(t, report.Files[0].Changed)
}

func TestPreview(t *testing.T) {
	out := Preview("a\nb\nc\n", "a\nX\nc\n")
	assert.Contains(t, out, "- b")
	assert.Contains(t, out, "+ X")
	assert.NotContains(t, out, "  a", "context lines are omitted")
}

func TestWatchReprocessesOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "w.adoc")
	require.NoError(t, os.WriteFile(path, []byte("plain\n"), 0644))

	runner := newRunner(false)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Watch(ctx, []string{path}) }()

	// Give the watcher a moment to register, then write callout content.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(data), "`key: <val>`::")
	}, 5*time.Second, 50*time.Millisecond, "watcher should reconvert the file")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
