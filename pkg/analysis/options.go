package analysis

import (
	"fmt"
	"strings"
)

// SortField orders the per-rule and per-file views.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s names a known ordering.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// ParseSortField converts a flag value into a SortField. The empty string
// selects SortByCount.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	field := SortField(strings.ToLower(strings.TrimSpace(s)))
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort order %q; valid orders: count, alpha, severity", s)
	}
	return field, nil
}

// Options configures Analyze.
type Options struct {
	// IncludeDiagnostics keeps the flat, expanded diagnostic list.
	IncludeDiagnostics bool

	IncludeByFile bool
	IncludeByRule bool

	SortBy SortField

	// SortDesc puts the largest counts first. Alphabetical and severity
	// orders ignore it.
	SortDesc bool

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions includes every view, busiest rule or file first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
