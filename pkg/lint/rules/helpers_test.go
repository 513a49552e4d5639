package rules

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/lint"
	"github.com/yaklabco/solidhunter/pkg/solast"
	"github.com/yaklabco/solidhunter/pkg/solast/solasttest"
)

// finding is an expected diagnostic. The needle locates its start: the first
// occurrence of the needle with the "|" marker removed, at the marker if one
// is present.
type finding struct {
	needle  string
	message string
}

func at(needle, message string) finding {
	return finding{needle: needle, message: message}
}

// fixture returns the path of a file under testdata/<id>.
func fixture(id, name string) string {
	return filepath.Join("testdata", id, name)
}

// newTestRule builds a rule from the registry. data may be nil for the
// rule's default options.
func newTestRule(t *testing.T, id string, data any) lint.Rule {
	t.Helper()

	entry := config.RuleEntry{ID: id, Data: data}
	if data == nil {
		spec, ok := Registry().Get(id)
		require.True(t, ok, "rule %s not registered", id)
		entry = spec.DefaultEntry()
	}
	rule, err := Registry().CreateRule(entry)
	require.NoError(t, err)
	return rule
}

// runRule lints the named fixture of the rule with the other fixtures as the
// rest of the project.
func runRule(t *testing.T, id string, data any, name string, others ...string) (*solast.File, []lint.Diagnostic) {
	t.Helper()

	file := solasttest.Load(t, fixture(id, name))
	files := []*solast.File{file}
	for _, other := range others {
		files = append(files, solasttest.Load(t, fixture(id, other)))
	}
	return file, newTestRule(t, id, data).Diagnose(file, files)
}

// assertFindings checks diags against want, in order.
func assertFindings(t *testing.T, file *solast.File, diags []lint.Diagnostic, want ...finding) {
	t.Helper()

	require.Len(t, diags, len(want), "diagnostics: %v", messages(diags))
	for i, w := range want {
		needle, mark, _ := strings.Cut(w.needle, "|")
		offset := strings.Index(file.Content, needle+mark)
		require.GreaterOrEqual(t, offset, 0, "needle %q not in %s", w.needle, file.Path)
		offset += len(needle)
		if mark == "" {
			offset -= len(needle)
		}

		got := diags[i]
		assert.Equal(t, file.Lines().Position(offset), got.Range.Start, "finding %d (%q)", i, w.needle)
		assert.Equal(t, w.message, got.Message, "finding %d (%q)", i, w.needle)
		assert.Equal(t, file.Path, got.URI)
		assert.NotEmpty(t, got.RuleID)
	}
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Range.Start.String()+" "+d.Message)
	}
	return out
}
