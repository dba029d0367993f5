package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"golang.org/x/sync/errgroup"

	"extfix.dev/pkg/extfix/internal/adapter"
	"extfix.dev/pkg/extfix/internal/controller"
	m "extfix.dev/pkg/extfix/internal/model"
)

// ScanArgs configures one scan run.
type ScanArgs struct {
	Root       m.Path
	MaxDepth   int // negative = unlimited
	SkipHidden bool
	DryRun     bool
	Exclude    []string // regular expressions filtering paths out
	Workers    int      // evaluation parallelism; <= 1 means sequential
}

// Workflow drives a full scan: traversal, evaluation, apply and reporting.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) (m.Summary, error)
}

type workflow struct {
	fs     adapter.TreeFS
	engine Engine
	ui     controller.UI
}

// NewWorkflow wires a Workflow from its collaborators.
func NewWorkflow(fs adapter.TreeFS, engine Engine, ui controller.UI) Workflow {
	return &workflow{fs: fs, engine: engine, ui: ui}
}

// Scan walks the root and processes every candidate. Per-file problems are
// reported as outcomes; only an unusable root or a malformed exclude
// pattern fails the run itself.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) (m.Summary, error) {
	excludes, err := compileExcludes(args.Exclude)
	if err != nil {
		return m.Summary{}, err
	}

	applier := NewApplier(w.fs, args.DryRun)
	summary := m.Summary{}

	opts := adapter.WalkOptions{MaxDepth: args.MaxDepth, SkipHidden: args.SkipHidden}

	process := func(c m.Candidate) {
		result := applier.Apply(c)
		record(&summary, c, result)
		w.ui.ReportCandidate(c, result)
	}

	if args.Workers <= 1 {
		err = w.fs.WalkTree(args.Root, opts, func(path m.Path, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if walkErr != nil {
				process(unreadableCandidate(path, walkErr))
				return nil
			}

			if excluded(excludes, path) {
				return nil
			}

			process(w.engine.Evaluate(path))

			return nil
		})
	} else {
		err = w.scanParallel(ctx, args, opts, excludes, process)
	}

	if err != nil {
		return summary, fmt.Errorf("scan %s: %w", args.Root, err)
	}

	w.ui.ReportSummary(summary)

	return summary, nil
}

// scanParallel fans evaluation out over an errgroup while the apply and
// report stages stay on a single collector goroutine, so renames remain
// serialized and the applier's conflict guard needs no locking.
func (w *workflow) scanParallel(
	ctx context.Context,
	args ScanArgs,
	opts adapter.WalkOptions,
	excludes []*regexp.Regexp,
	process func(m.Candidate),
) error {
	// Traversal itself stays sequential; it is cheap next to the reads.
	var paths []m.Path

	walkErr := w.fs.WalkTree(args.Root, opts, func(path m.Path, entryErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entryErr != nil {
			process(unreadableCandidate(path, entryErr))
			return nil
		}

		if !excluded(excludes, path) {
			paths = append(paths, path)
		}

		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	slog.Debug("parallel evaluation", "files", len(paths), "workers", args.Workers)

	results := make(chan m.Candidate, args.Workers)
	collected := make(chan struct{})

	go func() {
		defer close(collected)

		for c := range results {
			process(c)
		}
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(args.Workers)

	for _, path := range paths {
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case results <- w.engine.Evaluate(path):
				return nil
			}
		})
	}

	err := group.Wait()
	close(results)
	<-collected

	return err
}

func unreadableCandidate(path m.Path, err error) m.Candidate {
	return m.Candidate{
		Path:     path,
		Detected: m.TypeUnknown,
		Outcome:  m.Outcome{Kind: m.OutcomeUnreadable, Reason: err.Error()},
	}
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func excluded(excludes []*regexp.Regexp, path m.Path) bool {
	for _, re := range excludes {
		if re.MatchString(string(path)) {
			return true
		}
	}

	return false
}

func record(summary *m.Summary, c m.Candidate, r m.ApplyResult) {
	summary.Scanned++

	switch c.Outcome.Kind {
	case m.OutcomeMatch:
		summary.Matched++
	case m.OutcomeMismatch:
		summary.Mismatched++
	case m.OutcomeUnknownSignature:
		summary.Unknown++
	case m.OutcomeUnreadable:
		summary.Unreadable++
	}

	switch r.Status {
	case m.StatusRenamed:
		summary.Renamed++
	case m.StatusConflict:
		summary.Conflicts++
	case m.StatusFailed:
		summary.Failed++
	case m.StatusKept, m.StatusPlanned:
	}
}
