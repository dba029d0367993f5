package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	m "extfix.dev/pkg/extfix/internal/model"
)

// TUI collects the run into a compact listing and shows it in a scrollable
// pager once the scan completes. Meant for long reports on a terminal; the
// pipeline itself stays unaware of the buffering.
type TUI struct {
	output io.Writer
	opts   Options
	styles styles
	lines  []string
	footer string
}

// NewTUI creates the pager-backed reporter.
func NewTUI(output io.Writer, opts Options) *TUI {
	return &TUI{output: output, opts: opts, styles: newStyles(opts.Colored)}
}

// ReportCandidate buffers one line per file:
//
//	✗ image.txt  txt -> png  (renamed)
//	✓ photo.jpg  jpg
func (t *TUI) ReportCandidate(c m.Candidate, r m.ApplyResult) {
	if t.opts.Silent {
		return
	}

	interesting := c.Outcome.Kind == m.OutcomeMismatch || c.Outcome.Kind == m.OutcomeUnreadable
	if t.opts.OnlyDiff && !interesting {
		return
	}

	t.lines = append(t.lines, t.formatLine(c, r))
}

func (t *TUI) formatLine(c m.Candidate, r m.ApplyResult) string {
	current := c.CurrentExt
	if current == "" {
		current = "(none)"
	}

	switch c.Outcome.Kind {
	case m.OutcomeMatch:
		return fmt.Sprintf("%s %s  %s", t.styles.good.Render("✓"), c.Path, current)

	case m.OutcomeMismatch:
		line := fmt.Sprintf("%s %s  %s -> %s  (%s)",
			t.styles.bad.Render("✗"), c.Path, current, c.Detected, r.Status)
		if r.Err != nil {
			line += ": " + r.Err.Error()
		}

		return line

	case m.OutcomeUnknownSignature:
		return fmt.Sprintf("%s %s  %s  (no signature matched)", t.styles.warn.Render("?"), c.Path, current)

	case m.OutcomeUnreadable:
		return fmt.Sprintf("%s %s  unreadable: %s", t.styles.bad.Render("!"), c.Path, c.Outcome.Reason)
	}

	return string(c.Path)
}

// ReportSummary finalizes the report and runs the pager. If the pager cannot
// start (no TTY, terminal too dumb) the buffered report is printed as-is.
func (t *TUI) ReportSummary(sum m.Summary) {
	t.footer = fmt.Sprintf("Differences found: %d", sum.Mismatched)

	content := strings.Join(t.lines, "\n") + "\n\n" + renderSummaryTable(sum) + t.footer + "\n"

	model := newReportModel(content, t.footer)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprint(t.output, content)
	}
}

const (
	pagerHeaderHeight = 2
	pagerFooterHeight = 2
)

// reportModel is the Bubble Tea model wrapping the report in a viewport.
type reportModel struct {
	viewport viewport.Model
	content  string
	title    string
	ready    bool
}

func newReportModel(content, title string) reportModel {
	return reportModel{content: content, title: title}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - pagerHeaderHeight - pagerFooterHeight
		if height < 1 {
			height = 1
		}

		if !rm.ready {
			rm.viewport = viewport.New(msg.Width, height)
			rm.viewport.SetContent(rm.content)
			rm.ready = true
		} else {
			rm.viewport.Width = msg.Width
			rm.viewport.Height = height
		}

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm reportModel) View() string {
	if !rm.ready {
		return "loading report..."
	}

	var b strings.Builder

	b.WriteString("extfix scan report - " + rm.title + "\n\n")
	b.WriteString(rm.viewport.View())
	b.WriteString("\n\n ↑/↓ scroll · q quit")

	return b.String()
}
