// Package domain implements the extfix decision pipeline: evaluating files
// against the signature registry and applying corrective renames.
package domain

import (
	"path/filepath"
	"strings"

	"extfix.dev/pkg/extfix/internal/adapter"
	m "extfix.dev/pkg/extfix/internal/model"
	"extfix.dev/pkg/extfix/internal/signature"
)

// Engine classifies a single file and decides its outcome. It holds no
// per-file state, so one Engine serves a whole run (and is safe to share
// across evaluation workers).
type Engine struct {
	fs       adapter.TreeFS
	matcher  signature.Matcher
	resolver signature.Resolver
}

// NewEngine wires the engine with its collaborators.
func NewEngine(fs adapter.TreeFS, matcher signature.Matcher, resolver signature.Resolver) Engine {
	return Engine{fs: fs, matcher: matcher, resolver: resolver}
}

// Evaluate reads the file's signature bytes and classifies it.
//
// Every per-file failure is converted into an outcome rather than an error
// so a single unreadable entry never stops the surrounding traversal.
func (e Engine) Evaluate(path m.Path) m.Candidate {
	candidate := m.Candidate{
		Path:       path,
		CurrentExt: currentExtension(path),
	}

	prefix, err := e.fs.ReadPrefix(path)
	if err != nil {
		candidate.Detected = m.TypeUnknown
		candidate.Outcome = m.Outcome{Kind: m.OutcomeUnreadable, Reason: err.Error()}

		return candidate
	}

	detected := e.matcher.Classify(prefix)
	candidate.Detected = detected

	if detected == m.TypeUnknown {
		// Renaming on an unrecognized signature would be unjustified.
		candidate.Outcome = m.Outcome{Kind: m.OutcomeUnknownSignature}

		return candidate
	}

	// Any alias spelling of the detected type counts as a match, not only
	// the canonical one ("image.jpeg" is already correct for JPEG bytes).
	if e.resolver.Claimed(candidate.CurrentExt) == detected {
		candidate.Outcome = m.Outcome{Kind: m.OutcomeMatch}

		return candidate
	}

	candidate.Outcome = m.Outcome{
		Kind:    m.OutcomeMismatch,
		NewPath: replaceExtension(path, e.resolver.Canonical(detected)),
	}

	return candidate
}

// currentExtension returns the extension without its dot, lowercased later
// by the resolver; empty when the file has none. A dotfile such as ".hidden"
// is a hidden name, not an extension.
func currentExtension(path m.Path) string {
	base := filepath.Base(string(path))

	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}

	return strings.TrimPrefix(ext, ".")
}

// replaceExtension swaps (or appends) the extension, keeping directory and
// base name intact. Dotfile names are kept whole so ".hidden" becomes
// ".hidden.png", never ".png".
func replaceExtension(path m.Path, ext string) m.Path {
	p := string(path)

	if old := filepath.Ext(filepath.Base(p)); old != filepath.Base(p) {
		p = strings.TrimSuffix(p, old)
	}

	return m.Path(p + "." + ext)
}
