// Package gate runs the full scan pipeline: walk the roots, locate and
// measure functions per file, and evaluate the merged records against the
// threshold and allowlist.
package gate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/fngate/internal/report"
	"github.com/harrison/fngate/internal/scanner"
	"github.com/harrison/fngate/internal/walker"
)

// Options configures one gate run.
type Options struct {
	Roots     []string
	Extension string
	Threshold int
	Allowlist []string

	// Workers is the number of files scanned concurrently. 1 preserves
	// strictly sequential per-file processing.
	Workers int

	// Logger receives diagnostic output; nil disables it.
	Logger Logger
}

// Logger is the minimal diagnostic interface the gate needs.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Stats summarizes a completed run.
type Stats struct {
	FilesScanned   int
	FunctionsFound int
	Duration       time.Duration
}

// Run executes the pipeline and returns the evaluated report. Per-file
// analysis is independent, so files are fanned out across a bounded worker
// pool; the merged records are re-sorted by the reporter, keeping output
// identical to a sequential run.
func Run(ctx context.Context, opts Options) (report.Report, Stats, error) {
	start := time.Now()

	files, err := walker.Collect(opts.Roots, opts.Extension)
	if err != nil {
		return report.Report{}, Stats{}, err
	}
	debugf(opts.Logger, "collected %d %s file(s) under %v", len(files), opts.Extension, opts.Roots)

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	var records []scanner.FunctionRecord

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := scanner.ScanFile(file.RelPath, file.AbsPath)
			if err != nil {
				return err
			}
			debugf(opts.Logger, "scanned %s: %d function(s)", file.RelPath, len(recs))

			mu.Lock()
			records = append(records, recs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, Stats{}, fmt.Errorf("scan failed: %w", err)
	}

	rep := report.Evaluate(records, opts.Threshold, report.NewAllowlist(opts.Allowlist))

	stats := Stats{
		FilesScanned:   len(files),
		FunctionsFound: len(records),
		Duration:       time.Since(start),
	}
	infof(opts.Logger, "scanned %d file(s), %d function(s), %d violation(s) in %s",
		stats.FilesScanned, stats.FunctionsFound, len(rep.Violations), stats.Duration.Round(time.Millisecond))

	return rep, stats, nil
}

// debugf logs through an optional logger.
func debugf(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Debugf(format, args...)
	}
}

// infof logs through an optional logger.
func infof(l Logger, format string, args ...interface{}) {
	if l != nil {
		l.Infof(format, args...)
	}
}
