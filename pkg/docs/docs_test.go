package docs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/config"
	"github.com/yaklabco/solidhunter/pkg/docs"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

func sampleDocs() []lint.Documentation {
	return []lint.Documentation{
		{
			ID:            "quotes",
			Severity:      config.SeverityError,
			Description:   "Enforce double quotes. Single quotes are rejected.",
			Category:      "order",
			ExampleConfig: `{"id": "quotes", "severity": "ERROR"}`,
			Options:       []lint.Option{{Description: "quote style: double | single", Default: "double"}},
			Examples: lint.Examples{
				Good: []lint.Example{{Description: "Double quotes", Code: `string s = "ok";`}},
				Bad:  []lint.Example{{Code: "string s = 'no';"}},
			},
			SourceLink: "https://example.com/quotes.go",
		},
		{
			ID:          "no-empty-blocks",
			Severity:    config.SeverityWarning,
			Description: "Code blocks must not be empty",
			Category:    "best-practices",
		},
	}
}

func TestRulePage(t *testing.T) {
	t.Parallel()

	page := docs.RulePage(sampleDocs()[0])

	assert.Equal(t, `# quotes

| Category | Default severity |
| --- | --- |
| order | ERROR |

Enforce double quotes. Single quotes are rejected.

## Options

| Description | Default |
| --- | --- |
| quote style: double \| single | `+"`double`"+` |

## Configuration

`+"```json"+`
{"id": "quotes", "severity": "ERROR"}
`+"```"+`

## Good

Double quotes

`+"```solidity"+`
string s = "ok";
`+"```"+`

## Bad

`+"```solidity"+`
string s = 'no';
`+"```"+`

## References

- [Source](https://example.com/quotes.go)
`, page)
}

func TestRulePage_FenceLongerThanCode(t *testing.T) {
	t.Parallel()

	page := docs.RulePage(lint.Documentation{
		ID:       "x",
		Examples: lint.Examples{Good: []lint.Example{{Code: "/// ```\n/// docs\n/// ```"}}},
	})
	assert.Contains(t, page, "````solidity\n/// ```\n")
}

func TestIndex(t *testing.T) {
	t.Parallel()

	index := docs.Index(sampleDocs(), func(doc lint.Documentation) string { return doc.ID + ".md" })
	assert.Equal(t, `# Rules

## Best practices

| Rule | Severity | Description |
| --- | --- | --- |
| [no-empty-blocks](no-empty-blocks.md) | WARNING | Code blocks must not be empty |

## Order

| Rule | Severity | Description |
| --- | --- | --- |
| [quotes](quotes.md) | ERROR | Enforce double quotes. |
`, index)
}

func TestHTML(t *testing.T) {
	t.Parallel()

	out, err := docs.HTML("a <b>", []byte("# Title\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>a &lt;b&gt;</title>")
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>1</td>")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]docs.Format{
		"":         docs.FormatMarkdown,
		"md":       docs.FormatMarkdown,
		"Markdown": docs.FormatMarkdown,
		"html":     docs.FormatHTML,
		"json":     docs.FormatJSON,
	} {
		got, err := docs.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := docs.ParseFormat("pdf")
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format docs.Format
		files  []string
	}{
		{
			name:   "markdown",
			format: docs.FormatMarkdown,
			files:  []string{"README.md", "best-practices/no-empty-blocks.md", "order/quotes.md"},
		},
		{
			name:   "html",
			format: docs.FormatHTML,
			files:  []string{"README.html", "best-practices/no-empty-blocks.html", "order/quotes.html"},
		},
		{
			name:   "json",
			format: docs.FormatJSON,
			files:  []string{"rules.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			written, err := docs.Generate(context.Background(), dir, sampleDocs(), tt.format)
			require.NoError(t, err)

			want := make([]string, 0, len(tt.files))
			for _, f := range tt.files {
				want = append(want, filepath.Join(dir, filepath.FromSlash(f)))
			}
			assert.ElementsMatch(t, want, written)

			again, err := docs.Generate(context.Background(), dir, sampleDocs(), tt.format)
			require.NoError(t, err)
			assert.Empty(t, again, "unchanged pages are not rewritten")
		})
	}
}

func TestGenerate_IndexLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := docs.Generate(context.Background(), dir, sampleDocs(), docs.FormatMarkdown)
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[quotes](order/quotes.md)")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	data, err := docs.JSON(sampleDocs())
	require.NoError(t, err)

	var decoded []lint.Documentation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleDocs(), decoded)
}

func TestGenerate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := docs.Generate(ctx, t.TempDir(), sampleDocs(), docs.FormatMarkdown)
	require.ErrorIs(t, err, context.Canceled)
}
