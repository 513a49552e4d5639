// Package pretty provides Lipgloss-based styled terminal output for lint
// results: diagnostics with source carets, summaries and tables.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/solidhunter/pkg/config"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indexes.
const (
	red    = "9"
	green  = "10"
	yellow = "11"
	blue   = "12"
	cyan   = "14"
	grey   = "8"
	light  = "7"
)

// Styles holds the renderers shared by the diagnostic, summary and table
// output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the style set. With color disabled every style renders
// its input unchanged apart from bold and italic, which are dropped too.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return s
		}
		return s.Bold(true)
	}

	return &Styles{
		Error:   bold(fg(red)),
		Warning: bold(fg(yellow)),
		Info:    bold(fg(blue)),
		Hint:    fg(cyan),

		FilePath:   bold(lipgloss.NewStyle()),
		Location:   fg(grey),
		RuleID:     fg(grey),
		Message:    lipgloss.NewStyle(),
		SourceLine: fg(light),
		Caret:      fg(red),

		SummaryTitle: bold(lipgloss.NewStyle()),
		SummaryValue: lipgloss.NewStyle(),
		Success:      bold(fg(green)),
		Failure:      bold(fg(red)),

		TableHeader:    bold(fg(light)),
		TableErrorRow:  fg(red),
		TableWarnRow:   fg(yellow),
		TableInfoRow:   fg(blue),
		TableLegend:    italic(fg(grey), colorEnabled),
		TableSeparator: fg(grey),

		Dim:  fg(grey),
		Bold: bold(lipgloss.NewStyle()),
	}
}

func italic(s lipgloss.Style, enabled bool) lipgloss.Style {
	if !enabled {
		return s
	}
	return s.Italic(true)
}

// IsColorEnabled reports whether output to writer should be colored. In auto
// mode color needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// severityStyle returns the style used for a severity's label.
func (s *Styles) severityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Hint
	}
}
