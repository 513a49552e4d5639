// Package docs renders rule documentation as Markdown, HTML, or JSON and
// writes it out as a browsable tree.
package docs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/solidhunter/pkg/lint"
)

// RulePage renders one rule as a Markdown page.
func RulePage(doc lint.Documentation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.ID)
	fmt.Fprintf(&b, "| Category | Default severity |\n| --- | --- |\n| %s | %s |\n\n",
		escapeCell(doc.Category), doc.Severity)

	if doc.Description != "" {
		b.WriteString(doc.Description)
		b.WriteString("\n\n")
	}

	if len(doc.Options) > 0 {
		b.WriteString("## Options\n\n| Description | Default |\n| --- | --- |\n")
		for _, opt := range doc.Options {
			fmt.Fprintf(&b, "| %s | `%s` |\n", escapeCell(opt.Description), escapeCell(opt.Default))
		}
		b.WriteString("\n")
	}

	if doc.ExampleConfig != "" {
		b.WriteString("## Configuration\n\n")
		writeFence(&b, "json", doc.ExampleConfig)
	}

	writeExamples(&b, "Good", doc.Examples.Good)
	writeExamples(&b, "Bad", doc.Examples.Bad)

	var links []string
	if doc.SourceLink != "" {
		links = append(links, fmt.Sprintf("[Source](%s)", doc.SourceLink))
	}
	if doc.TestLink != "" {
		links = append(links, fmt.Sprintf("[Tests](%s)", doc.TestLink))
	}
	if len(links) > 0 {
		b.WriteString("## References\n\n")
		for _, link := range links {
			fmt.Fprintf(&b, "- %s\n", link)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Index renders the rule list grouped by category. link maps a rule to the
// page it is documented on.
func Index(docs []lint.Documentation, link func(lint.Documentation) string) string {
	var b strings.Builder
	b.WriteString("# Rules\n\n")

	groups := lo.GroupBy(docs, func(doc lint.Documentation) string { return doc.Category })
	categories := lo.Keys(groups)
	slices.Sort(categories)

	for _, category := range categories {
		rules := groups[category]
		slices.SortFunc(rules, func(a, b lint.Documentation) int { return strings.Compare(a.ID, b.ID) })

		fmt.Fprintf(&b, "## %s\n\n| Rule | Severity | Description |\n| --- | --- | --- |\n", categoryTitle(category))
		for _, doc := range rules {
			fmt.Fprintf(&b, "| [%s](%s) | %s | %s |\n",
				doc.ID, link(doc), doc.Severity, escapeCell(firstSentence(doc.Description)))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeExamples(b *strings.Builder, title string, examples []lint.Example) {
	if len(examples) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, example := range examples {
		if example.Description != "" {
			b.WriteString(example.Description)
			b.WriteString("\n\n")
		}
		writeFence(b, "solidity", example.Code)
	}
}

// writeFence writes code in a fence longer than any backtick run it holds.
func writeFence(b *strings.Builder, lang, code string) {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	fmt.Fprintf(b, "%s%s\n%s\n%s\n\n", fence, lang, strings.TrimRight(code, "\n"), fence)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// categoryTitle turns "best-practices" into "Best practices".
func categoryTitle(category string) string {
	if category == "" {
		return "Other"
	}
	title := strings.ReplaceAll(category, "-", " ")
	return strings.ToUpper(title[:1]) + title[1:]
}
