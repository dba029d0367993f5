package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extfix.dev/pkg/extfix/internal/adapter"
	m "extfix.dev/pkg/extfix/internal/model"
)

func mismatchCandidate(path, newPath m.Path) m.Candidate {
	return m.Candidate{
		Path:    path,
		Outcome: m.Outcome{Kind: m.OutcomeMismatch, NewPath: newPath},
	}
}

func TestApplier_KeepsNonMismatches(t *testing.T) {
	applier := NewApplier(adapter.NewLocalTreeFS(), false)

	for _, kind := range []m.OutcomeKind{m.OutcomeMatch, m.OutcomeUnknownSignature, m.OutcomeUnreadable} {
		result := applier.Apply(m.Candidate{Path: "x", Outcome: m.Outcome{Kind: kind}})
		assert.Equal(t, m.StatusKept, result.Status, "kind %s", kind)
	}
}

func TestApplier_RenamesMismatch(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFixture(t, dir, "image.txt", pngHeader)
	newPath := m.Path(filepath.Join(dir, "image.png"))

	applier := NewApplier(adapter.NewLocalTreeFS(), false)
	result := applier.Apply(mismatchCandidate(oldPath, newPath))

	require.Equal(t, m.StatusRenamed, result.Status)

	// The rename is self-consistent: re-evaluating the renamed file yields
	// a match.
	c := newTestEngine().Evaluate(newPath)
	assert.Equal(t, m.OutcomeMatch, c.Outcome.Kind)
}

func TestApplier_DryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFixture(t, dir, "image.txt", pngHeader)
	newPath := m.Path(filepath.Join(dir, "image.png"))

	applier := NewApplier(adapter.NewLocalTreeFS(), true)
	result := applier.Apply(mismatchCandidate(oldPath, newPath))

	assert.Equal(t, m.StatusPlanned, result.Status)

	_, err := os.Stat(string(oldPath))
	assert.NoError(t, err, "source must be untouched in dry-run")
	_, err = os.Stat(string(newPath))
	assert.True(t, os.IsNotExist(err), "target must not appear in dry-run")
}

func TestApplier_ConflictWithExistingFile(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFixture(t, dir, "a.txt", pngHeader)
	occupied := writeFixture(t, dir, "a.png", pngHeader)

	applier := NewApplier(adapter.NewLocalTreeFS(), false)
	result := applier.Apply(mismatchCandidate(oldPath, occupied))

	require.Equal(t, m.StatusConflict, result.Status)
	assert.Error(t, result.Err)

	_, err := os.Stat(string(oldPath))
	assert.NoError(t, err, "file must be left untouched on conflict")
}

func TestApplier_ConflictWithinBatch(t *testing.T) {
	dir := t.TempDir()
	first := writeFixture(t, dir, "a.txt", pngHeader)
	second := writeFixture(t, dir, "a.bin", pngHeader)
	target := m.Path(filepath.Join(dir, "a.png"))

	applier := NewApplier(adapter.NewLocalTreeFS(), false)

	require.Equal(t, m.StatusRenamed, applier.Apply(mismatchCandidate(first, target)).Status)

	result := applier.Apply(mismatchCandidate(second, target))
	require.Equal(t, m.StatusConflict, result.Status)
	assert.True(t, errors.Is(result.Err, ErrTargetClaimed))
}

func TestApplier_ConflictWithinBatch_DryRun(t *testing.T) {
	applier := NewApplier(adapter.NewLocalTreeFS(), true)

	// Dry-run still detects that two files want the same target.
	require.Equal(t, m.StatusPlanned, applier.Apply(mismatchCandidate("a.txt", "a.png")).Status)

	result := applier.Apply(mismatchCandidate("a.bin", "a.png"))
	assert.Equal(t, m.StatusConflict, result.Status)
}
