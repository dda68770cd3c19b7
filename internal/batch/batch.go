// Package batch runs the document pipeline over many files at once.
// Files are independent, so each gets its own worker; the core holds no
// shared state between documents.
package batch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adockit/internal/asciidoc"
)

// Runner processes a set of files with a fixed worker pool. DryRun leaves
// files untouched and fills FileResult.Preview with a line diff instead.
type Runner struct {
	Processor *asciidoc.Processor
	Workers   int
	DryRun    bool
	Log       *zap.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path      string
	Converted int
	Skipped   int
	Warnings  []asciidoc.Warning
	Changed   bool
	Preview   string // set in dry-run mode when the file would change
	Err       error
}

// Report summarizes one batch run.
type Report struct {
	RunID     string
	Files     []FileResult
	Converted int
	Skipped   int
	Failed    int
}

// Run processes every path. Per-file errors (unreadable file, write
// failure) are recorded on the file's result rather than aborting the
// batch; the returned error is only non-nil when the context is
// cancelled.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{
		RunID: uuid.NewString(),
		Files: make([]FileResult, len(paths)),
	}
	log.Info("batch run starting",
		zap.String("run_id", report.RunID),
		zap.Int("files", len(paths)),
		zap.Bool("dry_run", r.DryRun))

	g, ctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr := r.processFile(path, log)
			mu.Lock()
			report.Files[i] = fr
			report.Converted += fr.Converted
			report.Skipped += fr.Skipped
			if fr.Err != nil {
				report.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	log.Info("batch run finished",
		zap.String("run_id", report.RunID),
		zap.Int("converted", report.Converted),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (r *Runner) processFile(path string, log *zap.Logger) FileResult {
	fr := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("read %s: %w", path, err)
		log.Error("file read failed", zap.String("path", path), zap.Error(err))
		return fr
	}

	original := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	res := r.Processor.Process(asciidoc.Document{Name: path, Lines: original})

	fr.Converted = res.Converted
	fr.Skipped = res.Skipped
	fr.Warnings = res.Warnings
	fr.Changed = res.Converted > 0

	if !fr.Changed {
		return fr
	}

	updated := strings.Join(res.Lines, "\n") + "\n"
	if r.DryRun {
		fr.Preview = Preview(string(data), updated)
		return fr
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		fr.Err = fmt.Errorf("write %s: %w", path, err)
		log.Error("file write failed", zap.String("path", path), zap.Error(err))
		return fr
	}
	log.Info("file converted",
		zap.String("path", path),
		zap.Int("blocks", fr.Converted),
		zap.Int("skipped", fr.Skipped))
	return fr
}
