package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/solidhunter/internal/logging"
	"github.com/yaklabco/solidhunter/pkg/fsutil"
	"github.com/yaklabco/solidhunter/pkg/lint"
)

// Format selects the output of Generate.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat parses a docs format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown, "md", "":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown docs format %q; valid formats: markdown, html, json", s)
	}
}

const (
	indexName = "README"
	jsonName  = "rules.json"
	fileMode  = 0o644
	dirMode   = 0o755
)

func (f Format) ext() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// pagePath is the page of doc relative to the output directory.
func (f Format) pagePath(doc lint.Documentation) string {
	category := doc.Category
	if category == "" {
		category = "other"
	}
	return filepath.Join(category, doc.ID+f.ext())
}

// JSON encodes docs as an indented array.
func JSON(docs []lint.Documentation) ([]byte, error) {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding documentation: %w", err)
	}
	return append(data, '\n'), nil
}

// Generate writes docs under dir: one page per rule in a directory per
// category plus an index, or a single rules.json. Files whose content is
// unchanged are left alone. It returns the paths it wrote.
func Generate(ctx context.Context, dir string, docs []lint.Documentation, format Format) ([]string, error) {
	start := time.Now()
	pages, err := render(docs, format)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("generating docs: %w", err)
		}
		path := filepath.Join(dir, page.path)
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return written, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		changed, err := fsutil.WriteAtomicIfChanged(ctx, path, page.content, fileMode)
		if err != nil {
			return written, err
		}
		if changed {
			written = append(written, path)
		}
	}

	logging.FromContext(ctx).Debug("generated docs",
		logging.FieldOutput, dir,
		logging.FieldFormat, format,
		logging.FieldFiles, len(written),
		logging.FieldDuration, time.Since(start))
	return written, nil
}

type page struct {
	path    string
	content []byte
}

func render(docs []lint.Documentation, format Format) ([]page, error) {
	if format == FormatJSON {
		data, err := JSON(docs)
		if err != nil {
			return nil, err
		}
		return []page{{path: jsonName, content: data}}, nil
	}

	pages := make([]page, 0, len(docs)+1)
	for _, doc := range docs {
		content, err := format.convert(doc.ID, RulePage(doc))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page{path: format.pagePath(doc), content: content})
	}

	index := Index(docs, func(doc lint.Documentation) string {
		return filepath.ToSlash(format.pagePath(doc))
	})
	content, err := format.convert("Rules", index)
	if err != nil {
		return nil, err
	}
	return append(pages, page{path: indexName + format.ext(), content: content}), nil
}

func (f Format) convert(title, markdown string) ([]byte, error) {
	if f != FormatHTML {
		return []byte(markdown), nil
	}
	return HTML(title, []byte(markdown))
}
