package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

// ToYAML serializes the rule set to YAML.
func (rs *RuleSet) ToYAML() ([]byte, error) {
	if rs == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(rs); err != nil {
		return nil, fmt.Errorf("encode rule set: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the rule set with a header comment.
func (rs *RuleSet) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := rs.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a rule set from YAML bytes. Unknown keys are rejected like
// in JSON.
func FromYAML(data []byte) (*RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrDeserialization, err)
	}
	if err := rs.check(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Clone returns a deep copy of the rule set. Entry data is copied through a
// YAML round trip; on failure the data values are shared.
func (rs *RuleSet) Clone() *RuleSet {
	if rs == nil {
		return nil
	}

	if raw, err := rs.ToYAML(); err == nil {
		if clone, err := FromYAML(raw); err == nil {
			return clone
		}
	}

	clone := &RuleSet{Name: rs.Name, Rules: make([]RuleEntry, len(rs.Rules))}
	copy(clone.Rules, rs.Rules)
	return clone
}
