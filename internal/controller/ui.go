// Package controller provides output adapters for reporting scan results.
package controller

import (
	"os"

	"golang.org/x/term"

	m "extfix.dev/pkg/extfix/internal/model"
)

// UI receives every processed candidate and the final run summary.
// Implementations decide how (and whether) to show them.
type UI interface {
	ReportCandidate(c m.Candidate, r m.ApplyResult)
	ReportSummary(s m.Summary)
}

// Options controls what a console UI prints.
type Options struct {
	// Silent suppresses per-file output; the summary still prints.
	Silent bool
	// OnlyDiff restricts per-file output to mismatches and failures.
	OnlyDiff bool
	// Colored styles the report with lipgloss.
	Colored bool
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
