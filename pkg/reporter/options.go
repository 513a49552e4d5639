package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/analysis"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// ParseSummaryOrder validates a --summary-order value. Empty means rules.
func ParseSummaryOrder(s string) (SummaryOrder, error) {
	switch order := SummaryOrder(strings.ToLower(s)); order {
	case "", SummaryOrderRules:
		return SummaryOrderRules, nil
	case SummaryOrderFiles:
		return order, nil
	default:
		return "", fmt.Errorf("unknown summary order %q; valid orders: rules, files", s)
	}
}

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the source line with markers under each finding.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups diagnostics under a file header (text format).
	GroupByFile bool

	// Compact uses minified output for JSON and SARIF.
	Compact bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// SummarySort orders the rows of the summary tables.
	SummarySort analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Version is the tool version recorded in JSON and SARIF output.
	Version string

	// Rules describes the enabled rules for SARIF rule metadata. Rules
	// that report without an entry here get a bare descriptor.
	Rules []lint.Documentation
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		SummaryOrder: SummaryOrderRules,
		SummarySort:  analysis.SortByCount,
		Version:      "dev",
	}
}

func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
