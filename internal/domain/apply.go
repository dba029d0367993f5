package domain

import (
	"errors"
	"fmt"

	"extfix.dev/pkg/extfix/internal/adapter"
	m "extfix.dev/pkg/extfix/internal/model"
)

// ErrTargetClaimed marks a rename target already computed for another
// candidate in the same run.
var ErrTargetClaimed = errors.New("rename target claimed by another file in this run")

// Applier executes (or, in dry-run, withholds) the corrective rename for
// each candidate. It remembers every target accepted during the run so two
// candidates can never race for the same path; renames are serialized by
// the workflow, so no locking is needed here.
type Applier struct {
	fs      adapter.TreeFS
	dryRun  bool
	claimed map[m.Path]m.Path // target -> source that claimed it
}

// NewApplier builds an applier for one run.
func NewApplier(fs adapter.TreeFS, dryRun bool) *Applier {
	return &Applier{
		fs:      fs,
		dryRun:  dryRun,
		claimed: make(map[m.Path]m.Path),
	}
}

// Apply acts on a candidate's outcome. Only OutcomeMismatch can mutate the
// filesystem; everything else is forwarded untouched for reporting.
func (a *Applier) Apply(c m.Candidate) m.ApplyResult {
	if c.Outcome.Kind != m.OutcomeMismatch {
		return m.ApplyResult{Status: m.StatusKept}
	}

	target := c.Outcome.NewPath

	if other, ok := a.claimed[target]; ok {
		return m.ApplyResult{
			Status: m.StatusConflict,
			Err:    fmt.Errorf("%w: %s and %s both resolve to %s", ErrTargetClaimed, other, c.Path, target),
		}
	}

	if a.dryRun {
		a.claimed[target] = c.Path

		return m.ApplyResult{Status: m.StatusPlanned}
	}

	if occupied, err := a.fs.Exists(target); err != nil {
		return m.ApplyResult{Status: m.StatusFailed, Err: err}
	} else if occupied {
		return m.ApplyResult{
			Status: m.StatusConflict,
			Err:    fmt.Errorf("%s already exists", target),
		}
	}

	if err := a.fs.Rename(c.Path, target); err != nil {
		if errors.Is(err, adapter.ErrTargetExists) {
			return m.ApplyResult{Status: m.StatusConflict, Err: err}
		}

		return m.ApplyResult{Status: m.StatusFailed, Err: err}
	}

	a.claimed[target] = c.Path

	return m.ApplyResult{Status: m.StatusRenamed}
}
