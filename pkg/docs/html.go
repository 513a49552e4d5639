package docs

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// converter renders GFM for the option and index tables.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithXHTML()),
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// HTML renders a Markdown page as a standalone HTML document.
func HTML(title string, source []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := converter.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", title, err)
	}
	return fmt.Appendf(nil, pageTemplate, html.EscapeString(title), body.String()), nil
}
