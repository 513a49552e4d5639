package reporter

import "github.com/yaklabco/solidhunter/pkg/config"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatTable   = Format(config.FormatTable)
	FormatJSON    = Format(config.FormatJSON)
	FormatSARIF   = Format(config.FormatSARIF)
	FormatSummary = Format(config.FormatSummary)
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	format, err := config.ParseOutputFormat(formatStr)
	if err != nil {
		return "", err
	}
	return Format(format), nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}
