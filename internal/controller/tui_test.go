package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "extfix.dev/pkg/extfix/internal/model"
)

func TestTUI_FormatLine(t *testing.T) {
	tui := NewTUI(&strings.Builder{}, Options{})

	tests := []struct {
		name string
		c    m.Candidate
		r    m.ApplyResult
		want []string
	}{
		{
			"match",
			m.Candidate{Path: "ok.png", CurrentExt: "png", Detected: m.TypePNG, Outcome: m.Outcome{Kind: m.OutcomeMatch}},
			m.ApplyResult{Status: m.StatusKept},
			[]string{"✓", "ok.png", "png"},
		},
		{
			"mismatch renamed",
			m.Candidate{Path: "image.txt", CurrentExt: "txt", Detected: m.TypePNG, Outcome: m.Outcome{Kind: m.OutcomeMismatch, NewPath: "image.png"}},
			m.ApplyResult{Status: m.StatusRenamed},
			[]string{"✗", "txt -> png", "renamed"},
		},
		{
			"no extension",
			m.Candidate{Path: "report", Detected: m.TypePDF, Outcome: m.Outcome{Kind: m.OutcomeMismatch, NewPath: "report.pdf"}},
			m.ApplyResult{Status: m.StatusPlanned},
			[]string{"(none) -> pdf", "planned"},
		},
		{
			"unknown",
			m.Candidate{Path: "notes.txt", CurrentExt: "txt", Detected: m.TypeUnknown, Outcome: m.Outcome{Kind: m.OutcomeUnknownSignature}},
			m.ApplyResult{Status: m.StatusKept},
			[]string{"?", "no signature matched"},
		},
		{
			"unreadable",
			m.Candidate{Path: "locked.bin", CurrentExt: "bin", Outcome: m.Outcome{Kind: m.OutcomeUnreadable, Reason: "permission denied"}},
			m.ApplyResult{Status: m.StatusKept},
			[]string{"!", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := tui.formatLine(tt.c, tt.r)
			for _, want := range tt.want {
				assert.Contains(t, line, want)
			}
		})
	}
}

func TestTUI_BuffersRespectOptions(t *testing.T) {
	silent := NewTUI(&strings.Builder{}, Options{Silent: true})
	silent.ReportCandidate(m.Candidate{Path: "x"}, m.ApplyResult{})
	assert.Empty(t, silent.lines)

	onlyDiff := NewTUI(&strings.Builder{}, Options{OnlyDiff: true})
	onlyDiff.ReportCandidate(m.Candidate{Path: "ok.png", Outcome: m.Outcome{Kind: m.OutcomeMatch}}, m.ApplyResult{})
	assert.Empty(t, onlyDiff.lines)

	onlyDiff.ReportCandidate(m.Candidate{
		Path:    "image.txt",
		Outcome: m.Outcome{Kind: m.OutcomeMismatch, NewPath: "image.png"},
	}, m.ApplyResult{Status: m.StatusPlanned})
	assert.Len(t, onlyDiff.lines, 1)
}
