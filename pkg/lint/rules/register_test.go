package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := Registry()
	assert.Same(t, reg, Registry())
	assert.Equal(t, 31, reg.Len())
	assert.Equal(t, []string{
		CategoryBestPractices,
		CategoryNaming,
		CategoryOrder,
		CategoryMiscellaneous,
		CategorySecurity,
	}, reg.Categories())

	total := 0
	for _, cat := range Categories() {
		total += len(cat.Specs)
		for _, spec := range cat.Specs {
			assert.Equal(t, cat.Name, spec.Category, spec.ID)
		}
	}
	assert.Equal(t, reg.Len(), total, "ids must be unique across categories")
}

func TestRegistry_DefaultSeverities(t *testing.T) {
	t.Parallel()

	for _, entry := range Registry().DefaultEntries() {
		want := config.SeverityWarning
		if entry.ID == "max-line-length" {
			want = config.SeverityError
		}
		assert.Equal(t, want, entry.Severity, entry.ID)
	}
}

func TestRegistry_Documentation(t *testing.T) {
	t.Parallel()

	docs := Registry().Documentation()
	require.Len(t, docs, Registry().Len())

	for _, doc := range docs {
		assert.NotEmpty(t, doc.Description, doc.ID)
		assert.NotEmpty(t, doc.Category, doc.ID)
		assert.FileExists(t, filepath.Join("..", "..", "..", doc.SourceLink), doc.ID)

		info, err := os.Stat(filepath.Join("testdata", doc.ID))
		require.NoError(t, err, doc.ID)
		assert.True(t, info.IsDir())

		var entry config.RuleEntry
		require.NoError(t, json.Unmarshal([]byte(doc.ExampleConfig), &entry), doc.ID)
		assert.Equal(t, doc.ID, entry.ID)
		assert.Equal(t, doc.Severity, entry.Severity)
	}
}

func TestRegistry_DocumentationFollowsEntry(t *testing.T) {
	t.Parallel()

	rule := newTestRule(t, "no-console", nil)
	assert.Equal(t, config.SeverityWarning, rule.Documentation().Severity)

	rule, err := Registry().CreateRule(config.RuleEntry{ID: "no-console", Severity: config.SeverityHint})
	require.NoError(t, err)
	assert.Equal(t, config.SeverityHint, rule.Documentation().Severity)
	assert.Equal(t, "no-console", rule.ID())
}
