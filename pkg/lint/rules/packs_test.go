package rules

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
)

func TestPacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"recommended", "strict", "relaxed", "security"}, PackNames())
	assert.Nil(t, PackByName("nope"))

	total := Registry().Len()
	tests := []struct {
		name  string
		count int
		check func(t *testing.T, entry config.RuleEntry)
	}{
		{
			name:  "recommended",
			count: total,
			check: func(t *testing.T, entry config.RuleEntry) {
				spec, _ := Registry().Get(entry.ID)
				assert.Equal(t, spec.DefaultSeverity, entry.Severity)
			},
		},
		{
			name:  "strict",
			count: total,
			check: func(t *testing.T, entry config.RuleEntry) {
				assert.Equal(t, config.SeverityError, entry.Severity)
			},
		},
		{
			name:  "relaxed",
			count: total,
			check: func(t *testing.T, entry config.RuleEntry) {
				spec, _ := Registry().Get(entry.ID)
				switch spec.Category {
				case CategoryNaming, CategoryOrder:
					assert.Equal(t, config.SeverityHint, entry.Severity, entry.ID)
				default:
					assert.Equal(t, spec.DefaultSeverity, entry.Severity, entry.ID)
				}
			},
		},
		{
			name:  "security",
			count: 5,
			check: func(t *testing.T, entry config.RuleEntry) {
				spec, _ := Registry().Get(entry.ID)
				assert.Equal(t, CategorySecurity, spec.Category)
				assert.Equal(t, config.SeverityError, entry.Severity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pack := PackByName(tt.name)
			require.NotNil(t, pack)
			assert.NotEmpty(t, pack.Description)
			require.Len(t, pack.Rules, tt.count)
			for _, entry := range pack.Rules {
				tt.check(t, entry)
			}

			rules, err := Registry().CreateRules(pack.Rules)
			require.NoError(t, err)
			assert.Len(t, rules, tt.count)
		})
	}
}

func TestPack_RuleSet(t *testing.T) {
	t.Parallel()

	pack := StrictPack()
	set := pack.RuleSet(config.DefaultRuleSetName)
	assert.Equal(t, config.DefaultRuleSetName, set.Name)
	require.Len(t, set.Rules, len(pack.Rules))

	set.Rules[0].Severity = config.SeverityHint
	assert.Equal(t, config.SeverityError, pack.Rules[0].Severity)
}

func TestPack_RuleSet_Write(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), config.DefaultRuleSetFile)
	pack := SecurityPack()
	require.NoError(t, config.WriteRuleSet(context.Background(), path, pack.RuleSet(config.DefaultRuleSetName)))

	loaded, err := config.LoadRuleSet(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRuleSetName, loaded.Name)
	assert.Len(t, loaded.Rules, len(pack.Rules))
}

func TestStrictPack_KeepsDefaultData(t *testing.T) {
	t.Parallel()

	for _, entry := range StrictPack().Rules {
		spec, ok := Registry().Get(entry.ID)
		require.True(t, ok)
		assert.Equal(t, spec.DefaultData, entry.Data, entry.ID)
	}
}
