package controller

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "extfix.dev/pkg/extfix/internal/model"
)

// SimpleUI prints the per-file report and the summary through the cobra
// command's output streams, so tests can capture everything.
type SimpleUI struct {
	cmd    *cobra.Command
	opts   Options
	styles styles
}

// NewSimpleUI creates a console reporter.
func NewSimpleUI(cmd *cobra.Command, opts Options) *SimpleUI {
	return &SimpleUI{cmd: cmd, opts: opts, styles: newStyles(opts.Colored)}
}

// ReportCandidate prints one file's block, honoring silent and only-diff.
func (s *SimpleUI) ReportCandidate(c m.Candidate, r m.ApplyResult) {
	if s.opts.Silent {
		return
	}

	interesting := c.Outcome.Kind == m.OutcomeMismatch || c.Outcome.Kind == m.OutcomeUnreadable
	if s.opts.OnlyDiff && !interesting {
		return
	}

	s.cmd.Println()
	s.cmd.Printf("Path: %s\n", s.styles.path.Render(string(c.Path)))
	s.cmd.Printf("Name: %s\n", s.styles.path.Render(filepath.Base(string(c.Path))))
	s.cmd.Printf("Current:  %s\n", s.renderCurrent(c))
	s.cmd.Printf("Detected: %s\n", s.renderDetected(c))

	switch r.Status {
	case m.StatusRenamed:
		s.cmd.Printf("%s -> %s\n", c.Path, c.Outcome.NewPath)
	case m.StatusPlanned:
		s.cmd.Printf("dry-run: %s -> %s\n", c.Path, c.Outcome.NewPath)
	case m.StatusConflict, m.StatusFailed:
		s.cmd.PrintErrf("could not rename %s: %v\n", c.Path, r.Err)
	case m.StatusKept:
	}
}

func (s *SimpleUI) renderCurrent(c m.Candidate) string {
	if c.CurrentExt == "" {
		return s.styles.warn.Render("no extension")
	}

	if c.Outcome.Kind == m.OutcomeMismatch {
		return s.styles.bad.Render(c.CurrentExt)
	}

	return s.styles.good.Render(c.CurrentExt)
}

func (s *SimpleUI) renderDetected(c m.Candidate) string {
	switch c.Outcome.Kind {
	case m.OutcomeUnknownSignature:
		return s.styles.warn.Render("not detected")
	case m.OutcomeUnreadable:
		return s.styles.bad.Render(fmt.Sprintf("unreadable: %s", c.Outcome.Reason))
	case m.OutcomeMatch, m.OutcomeMismatch:
	}

	return s.styles.good.Render(string(c.Detected))
}

// ReportSummary prints the aggregate table and the difference count.
func (s *SimpleUI) ReportSummary(sum m.Summary) {
	s.cmd.Printf("\n%s", renderSummaryTable(sum))
	s.cmd.Printf("Differences found: %d\n", sum.Mismatched)
}

func renderSummaryTable(sum m.Summary) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	rows := []struct {
		label string
		count int
	}{
		{"matched", sum.Matched},
		{"mismatched", sum.Mismatched},
		{"renamed", sum.Renamed},
		{"conflicts", sum.Conflicts},
		{"unknown signature", sum.Unknown},
		{"unreadable", sum.Unreadable},
		{"failed", sum.Failed},
	}

	for _, row := range rows {
		table.Append([]string{row.label, fmt.Sprintf("%d", row.count)})
	}

	table.SetFooter([]string{"scanned", fmt.Sprintf("%d", sum.Scanned)})
	table.Render()

	return buf.String()
}
