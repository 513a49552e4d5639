package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
)

func TestLoadRuleSet_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadRuleSet(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRuleSet_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "truncated json", file: "a.json", content: `{"name": "x", "rules": [`},
		{name: "wrong type", file: "a.json", content: `{"name": 3, "rules": []}`},
		{name: "unknown severity", file: "a.json", content: `{"name": "x", "rules": [{"id": "ordering", "severity": "LOUD"}]}`},
		{name: "lowercase severity", file: "a.json", content: `{"name": "x", "rules": [{"id": "ordering", "severity": "error"}]}`},
		{name: "missing id", file: "a.json", content: `{"name": "x", "rules": [{"severity": "ERROR"}]}`},
		{name: "missing severity", file: "a.json", content: `{"name": "x", "rules": [{"id": "ordering"}]}`},
		{name: "unknown field", file: "a.json", content: `{"name": "x", "rulez": []}`},
		{name: "bad yaml", file: "a.yaml", content: "name: [\n"},
		{name: "yaml unknown severity", file: "a.yml", content: "name: x\nrules:\n  - id: ordering\n    severity: LOUD\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := config.LoadRuleSet(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrDeserialization)
			assert.NotErrorIs(t, err, config.ErrIO)
		})
	}
}

func TestParseRuleSet(t *testing.T) {
	t.Parallel()

	content := `{
		"name": "team",
		"rules": [
			{"id": "max-line-length", "severity": "ERROR", "data": 100},
			{"id": "ordering", "severity": "HINT"}
		]
	}`

	rs, err := config.ParseRuleSet([]byte(content), config.FileFormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "team", rs.Name)
	require.Len(t, rs.Rules, 2)
	assert.Equal(t, config.SeverityError, rs.Rules[0].Severity)
	assert.Nil(t, rs.Rules[1].Data)

	var limit int
	assert.True(t, rs.Rules[0].DecodeData(&limit))
	assert.Equal(t, 100, limit)
	assert.False(t, rs.Rules[1].DecodeData(&limit))

	entry, ok := rs.Entry("ordering")
	assert.True(t, ok)
	assert.Equal(t, config.SeverityHint, entry.Severity)
	_, ok = rs.Entry("absent")
	assert.False(t, ok)
}

func TestRuleSet_ToJSONOmitsAbsentData(t *testing.T) {
	t.Parallel()

	rs := config.RuleSet{
		Name: "solidhunter",
		Rules: []config.RuleEntry{
			{ID: "ordering", Severity: config.SeverityWarning},
			{ID: "reason-string", Severity: config.SeverityWarning, Data: map[string]any{"maxLength": 32}},
		},
	}

	data, err := rs.ToJSON()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "solidhunter",
		"rules": [
			{"id": "ordering", "severity": "WARNING"},
			{"id": "reason-string", "severity": "WARNING", "data": {"maxLength": 32}}
		]
	}`, string(data))
	assert.NotContains(t, string(data), "null")
}

func TestRuleSet_YAML(t *testing.T) {
	t.Parallel()

	rs := &config.RuleSet{
		Name: "solidhunter",
		Rules: []config.RuleEntry{
			{ID: "function-max-lines", Severity: config.SeverityWarning, Data: 50},
			{ID: "ordering", Severity: config.SeverityInfo},
		},
	}

	data, err := rs.ToYAMLWithHeader("# solidhunter rules")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# solidhunter rules\n\nname: solidhunter\n")
	assert.NotContains(t, string(data), "data: null")

	parsed, err := config.ParseRuleSet(data, config.FileFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, rs.Name, parsed.Name)
	require.Len(t, parsed.Rules, 2)
	assert.Equal(t, config.SeverityInfo, parsed.Rules[1].Severity)

	var lines int
	assert.True(t, parsed.Rules[0].DecodeData(&lines))
	assert.Equal(t, 50, lines)
}

func TestRuleSet_Clone(t *testing.T) {
	t.Parallel()

	var nilSet *config.RuleSet
	assert.Nil(t, nilSet.Clone())

	original := &config.RuleSet{
		Name:  "x",
		Rules: []config.RuleEntry{{ID: "ordering", Severity: config.SeverityWarning}},
	}
	clone := original.Clone()
	require.NotNil(t, clone)

	clone.Rules[0].Severity = config.SeverityError
	assert.Equal(t, config.SeverityWarning, original.Rules[0].Severity)
}

func TestWriteRuleSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &config.RuleSet{
		Name:  config.DefaultRuleSetName,
		Rules: []config.RuleEntry{{ID: "ordering", Severity: config.SeverityWarning}},
	}

	for _, name := range []string{config.DefaultRuleSetFile, ".solidhunter.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, config.WriteRuleSet(context.Background(), path, rs))

		loaded, err := config.LoadRuleSet(path)
		require.NoError(t, err)
		assert.Equal(t, rs, loaded)
	}

	err := config.WriteRuleSet(context.Background(), filepath.Join(dir, "missing", "x.json"), rs)
	assert.ErrorIs(t, err, config.ErrIO)
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	sev, err := config.ParseSeverity(" warning ")
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarning, sev)

	_, err = config.ParseSeverity("fatal")
	require.Error(t, err)

	assert.Equal(t, 1, config.SeverityError.Level())
	assert.Equal(t, 4, config.SeverityHint.Level())
	assert.True(t, config.SeverityError.AtLeast(config.SeverityWarning))
	assert.False(t, config.SeverityInfo.AtLeast(config.SeverityWarning))
	assert.Len(t, config.Severities(), 4)
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    config.OutputFormat
		wantErr bool
	}{
		{in: "", want: config.FormatText},
		{in: "JSON", want: config.FormatJSON},
		{in: " sarif ", want: config.FormatSARIF},
		{in: "table", want: config.FormatTable},
		{in: "summary", want: config.FormatSummary},
		{in: "diff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FileFormatJSON, config.FormatForPath(".solidhunter.json"))
	assert.Equal(t, config.FileFormatYAML, config.FormatForPath("rules.YML"))
	assert.Equal(t, config.FileFormatYAML, config.FormatForPath("rules.yaml"))
	assert.Equal(t, config.FileFormatJSON, config.FormatForPath("rules"))
}
