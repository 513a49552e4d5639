// Package config defines the rule-set artifact and run configuration for solidhunter.
// These types are plain data with their own serialization; discovery and
// precedence live in internal/configloader.
package config

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
	SeverityHint    Severity = "HINT"
)

// Severities lists every severity, most severe first.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint}
}

// ParseSeverity parses a severity name case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity %q (want ERROR, WARNING, INFO or HINT)", s)
	}
	return sev, nil
}

// IsValid reports whether s is one of the four severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHint:
		return true
	default:
		return false
	}
}

// Level returns the LSP numeric severity (1 error .. 4 hint), or 0 when invalid.
func (s Severity) Level() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	case SeverityHint:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is as severe as other or more.
func (s Severity) AtLeast(other Severity) bool {
	return s.IsValid() && other.IsValid() && s.Level() <= other.Level()
}

// UnmarshalJSON rejects unknown severities.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("severity: %w", err)
	}
	return s.set(raw)
}

// UnmarshalYAML rejects unknown severities.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("severity: %w", err)
	}
	return s.set(raw)
}

func (s *Severity) set(raw string) error {
	sev := Severity(raw)
	if !sev.IsValid() {
		return fmt.Errorf("invalid severity %q", raw)
	}
	*s = sev
	return nil
}

// RuleEntry enables one rule. Data is the rule's opaque option payload and is
// omitted from output when nil.
type RuleEntry struct {
	ID       string   `json:"id" yaml:"id"`
	Severity Severity `json:"severity" yaml:"severity"`
	Data     any      `json:"data,omitempty" yaml:"data,omitempty"`
}

// DecodeData decodes the entry's data into target. It reports false when the
// entry carries no data or the data does not fit target.
func (e RuleEntry) DecodeData(target any) bool {
	if e.Data == nil {
		return false
	}
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

// RuleSet is the persisted configuration artifact: a named list of rule entries.
type RuleSet struct {
	Name  string      `json:"name" yaml:"name"`
	Rules []RuleEntry `json:"rules" yaml:"rules"`
}

// Entry returns the entry for id.
func (rs *RuleSet) Entry(id string) (RuleEntry, bool) {
	for _, entry := range rs.Rules {
		if entry.ID == id {
			return entry, true
		}
	}
	return RuleEntry{}, false
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists the supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary}
}

// ParseOutputFormat parses a format name case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format == "" {
		return FormatText, nil
	}
	if !slices.Contains(OutputFormats(), format) {
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, sarif, summary", s)
	}
	return format, nil
}

// ParserKind selects how ASTs are obtained.
type ParserKind string

const (
	// ParserSolc runs the solc compiler on each file.
	ParserSolc ParserKind = "solc"
	// ParserFoundry reads ASTs from Foundry build artifacts.
	ParserFoundry ParserKind = "foundry"
)

// DefaultSolcTimeout bounds one solc invocation.
const DefaultSolcTimeout = 30 * time.Second

// Config is the resolved configuration for one run.
type Config struct {
	// RuleSet is the enabled rule list.
	RuleSet RuleSet

	// RuleSetPath is where RuleSet was loaded from, or "" for defaults.
	RuleSetPath string

	// Ignore contains glob patterns for files to skip.
	Ignore []string

	// Parser selects the AST front-end.
	Parser ParserKind

	// Solc is the solc executable.
	Solc string

	// SolcTimeout bounds each solc invocation.
	SolcTimeout time.Duration

	// FoundryRoot is the directory holding foundry.toml; "" means discover it.
	FoundryRoot string

	// Format specifies the output format.
	Format OutputFormat

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int

	// Strict makes warnings fail the run.
	Strict bool
}

// NewConfig returns a Config with defaults and the given rule set.
func NewConfig(rs RuleSet) *Config {
	return &Config{
		RuleSet:     rs,
		Parser:      ParserSolc,
		Solc:        "solc",
		SolcTimeout: DefaultSolcTimeout,
		Format:      FormatText,
	}
}
