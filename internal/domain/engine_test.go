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
	"extfix.dev/pkg/extfix/internal/signature"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newTestEngine() Engine {
	return NewEngine(adapter.NewLocalTreeFS(), signature.NewMatcher(signature.DefaultTable()), signature.NewResolver())
}

func writeFixture(t *testing.T, dir, name string, content []byte) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return m.Path(path)
}

func TestEngine_Evaluate_Match(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	c := engine.Evaluate(writeFixture(t, dir, "image.png", pngHeader))

	assert.Equal(t, m.OutcomeMatch, c.Outcome.Kind)
	assert.Equal(t, m.TypePNG, c.Detected)
	assert.Equal(t, "png", c.CurrentExt)
}

func TestEngine_Evaluate_AliasExtensionMatches(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	jpegBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	// Both spellings of the JPEG extension are already correct.
	for _, name := range []string{"photo.jpg", "photo.jpeg", "photo.JPEG"} {
		c := engine.Evaluate(writeFixture(t, dir, name, jpegBytes))
		assert.Equal(t, m.OutcomeMatch, c.Outcome.Kind, "for %s", name)
	}
}

func TestEngine_Evaluate_Mismatch(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	c := engine.Evaluate(writeFixture(t, dir, "image.txt", pngHeader))

	require.Equal(t, m.OutcomeMismatch, c.Outcome.Kind)
	assert.Equal(t, m.Path(filepath.Join(dir, "image.png")), c.Outcome.NewPath)
}

func TestEngine_Evaluate_NoExtensionAlwaysMismatches(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	// Policy: an extension-less file claims no type, so any detected
	// signature produces a correction.
	c := engine.Evaluate(writeFixture(t, dir, "document", []byte("%PDF-1.4")))

	require.Equal(t, m.OutcomeMismatch, c.Outcome.Kind)
	assert.Equal(t, m.Path(filepath.Join(dir, "document.pdf")), c.Outcome.NewPath)
}

func TestEngine_Evaluate_DotfileKeepsItsName(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	// A leading-dot-only name has no extension; the correction appends
	// one instead of swallowing the stem.
	c := engine.Evaluate(writeFixture(t, dir, ".hidden", pngHeader))

	assert.Equal(t, "", c.CurrentExt)
	require.Equal(t, m.OutcomeMismatch, c.Outcome.Kind)
	assert.Equal(t, m.Path(filepath.Join(dir, ".hidden.png")), c.Outcome.NewPath)

	// Two dotfiles of the same type must not collide on one target.
	other := engine.Evaluate(writeFixture(t, dir, ".stash", pngHeader))
	assert.NotEqual(t, c.Outcome.NewPath, other.Outcome.NewPath)
}

func TestEngine_Evaluate_UnknownSignature(t *testing.T) {
	engine := newTestEngine()
	dir := t.TempDir()

	t.Run("unrecognized bytes", func(t *testing.T) {
		c := engine.Evaluate(writeFixture(t, dir, "notes.txt", []byte("just some text")))
		assert.Equal(t, m.OutcomeUnknownSignature, c.Outcome.Kind)
	})

	t.Run("zero-byte file", func(t *testing.T) {
		c := engine.Evaluate(writeFixture(t, dir, "empty.jpg", nil))
		assert.Equal(t, m.OutcomeUnknownSignature, c.Outcome.Kind)
		assert.Equal(t, m.TypeUnknown, c.Detected)
	})
}

type failingReadFS struct {
	adapter.TreeFS
	err error
}

func (f failingReadFS) ReadPrefix(m.Path) ([]byte, error) {
	return nil, f.err
}

func TestEngine_Evaluate_Unreadable(t *testing.T) {
	fs := failingReadFS{TreeFS: adapter.NewLocalTreeFS(), err: errors.New("permission denied")}
	engine := NewEngine(fs, signature.NewMatcher(signature.DefaultTable()), signature.NewResolver())

	c := engine.Evaluate("somewhere/locked.png")

	assert.Equal(t, m.OutcomeUnreadable, c.Outcome.Kind)
	assert.Contains(t, c.Outcome.Reason, "permission denied")
}
