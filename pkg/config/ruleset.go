package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/fsutil"
)

// Errors returned when loading a rule set.
var (
	// ErrIO marks a rule-set file that could not be read or written.
	ErrIO = errors.New("config I/O error")

	// ErrDeserialization marks rule-set content that does not decode.
	ErrDeserialization = errors.New("config deserialization error")
)

const (
	// DefaultRuleSetName names generated rule sets.
	DefaultRuleSetName = "solidhunter"

	// DefaultRuleSetFile is the rule-set file created by `solidhunter init`.
	DefaultRuleSetFile = ".solidhunter.json"
)

// FileFormat is the encoding of a rule-set file.
type FileFormat string

const (
	FileFormatJSON FileFormat = "json"
	FileFormatYAML FileFormat = "yaml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .yml or .yaml is JSON.
func FormatForPath(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FileFormatYAML
	default:
		return FileFormatJSON
	}
}

// LoadRuleSet reads and parses a rule-set file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	rs, err := ParseRuleSet(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleSet parses rule-set content.
func ParseRuleSet(data []byte, format FileFormat) (*RuleSet, error) {
	if format == FileFormatYAML {
		return FromYAML(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	if err := rs.check(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// check enforces what the decoders cannot: every entry names a rule and
// carries a severity.
func (rs *RuleSet) check() error {
	for i, entry := range rs.Rules {
		if entry.ID == "" {
			return fmt.Errorf("%w: rules[%d]: missing id", ErrDeserialization, i)
		}
		if !entry.Severity.IsValid() {
			return fmt.Errorf("%w: rules[%d] (%s): missing severity", ErrDeserialization, i, entry.ID)
		}
	}
	return nil
}

// ToJSON serializes the rule set as indented JSON.
func (rs *RuleSet) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode rule set: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode serializes the rule set in the given format.
func (rs *RuleSet) Encode(format FileFormat) ([]byte, error) {
	if format == FileFormatYAML {
		return rs.ToYAML()
	}
	return rs.ToJSON()
}

// WriteRuleSet writes rs to path atomically, encoded by the path's extension.
func WriteRuleSet(ctx context.Context, path string, rs *RuleSet) error {
	data, err := rs.Encode(FormatForPath(path))
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
