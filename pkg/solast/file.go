package solast

import (
	"regexp"
	"strings"

	"github.com/yaklabco/solidhunter/pkg/position"
)

// File is an immutable snapshot of one source file and its AST.
type File struct {
	Path    string
	Content string
	Root    *Node

	lines *position.LineIndex
}

// NewFile builds a snapshot. root may be nil for files that failed to parse.
func NewFile(path, content string, root *Node) *File {
	return &File{
		Path:    path,
		Content: content,
		Root:    root,
		lines:   position.NewLineIndex(content),
	}
}

// Lines returns the line index of the content.
func (f *File) Lines() *position.LineIndex {
	return f.lines
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return f.lines.LineCount()
}

// Line returns one line (1-based) without its terminator.
func (f *File) Line(line int) string {
	return f.lines.LineText(line)
}

// Range converts a span to a range in this file.
func (f *File) Range(span position.Span) position.Range {
	return f.lines.Range(span)
}

// NodeRange returns the range covered by n.
func (f *File) NodeRange(n *Node) position.Range {
	return f.Range(n.Src)
}

// NameRange returns the range of n's name, or of n when it has none.
func (f *File) NameRange(n *Node) position.Range {
	return f.Range(n.NameSpan())
}

// Text returns the source covered by span, clamped to the content.
func (f *File) Text(span position.Span) string {
	start := min(max(span.Offset, 0), len(f.Content))
	end := min(max(span.End(), start), len(f.Content))
	return f.Content[start:end]
}

// NodesAt returns the nodes whose span contains pos, outermost first.
func (f *File) NodesAt(pos position.Position) []*Node {
	offset := f.lines.Offset(pos)
	var out []*Node
	Walk(f.Root, func(n *Node) bool {
		if !n.Src.Valid() {
			return true
		}
		if n.Src.Offset <= offset && offset <= n.Src.End() {
			out = append(out, n)
			return true
		}
		return false
	})
	return out
}

var (
	commentPattern = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	stringPattern  = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	wordPattern    = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*|[()]`)
)

// Visibility keywords.
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityInternal = "internal"
	VisibilityExternal = "external"
)

// IsVisibility reports whether word is a visibility keyword.
func IsVisibility(word string) bool {
	switch word {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal, VisibilityExternal:
		return true
	}
	return false
}

// Word is an identifier or keyword in a declaration header.
type Word struct {
	Text string
	Span position.Span
}

// ExplicitVisibility returns the visibility keyword written in the source
// for a function, modifier or state variable, or "" when the source omits
// it. The compiler records a default visibility in the AST either way.
func (f *File) ExplicitVisibility(n *Node) string {
	for _, w := range f.HeaderWords(n) {
		if IsVisibility(w.Text) {
			return w.Text
		}
	}
	return ""
}

// HeaderWords returns the words of n's header outside any parentheses, in
// source order. Comments and string literals are skipped, so a visibility
// keyword inside `/* public */` is not reported.
func (f *File) HeaderWords(n *Node) []Word {
	span := f.HeaderSpan(n)
	if !span.Valid() {
		return nil
	}
	text := blank(f.Text(span), commentPattern)
	text = blank(text, stringPattern)

	var words []Word
	depth := 0
	for _, loc := range wordPattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		switch word {
		case "(":
			depth++
		case ")":
			depth = max(depth-1, 0)
		default:
			if depth == 0 {
				words = append(words, Word{
					Text: word,
					Span: position.Span{Offset: span.Offset + loc[0], Length: loc[1] - loc[0], File: span.File},
				})
			}
		}
	}
	return words
}

// blank overwrites every match of pattern with spaces, keeping offsets.
func blank(text string, pattern *regexp.Regexp) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat(" ", len(match))
	})
}

// HeaderSpan returns the span of the attribute section of a function or
// variable declaration: after the parameter list (or type) up to the body
// (or name) and excluding both.
func (f *File) HeaderSpan(n *Node) position.Span {
	start, end := -1, -1
	switch n.Type {
	case FunctionDefinition, ModifierDefinition:
		if params := n.Field("parameters"); params != nil && params.Src.Valid() {
			start = params.Src.End()
		}
		end = n.Src.End()
		if body := n.Field("body"); body != nil && body.Src.Valid() {
			end = body.Src.Offset
		}
		if returns := n.Field("returnParameters"); returns != nil && returns.Src.Length > 0 {
			end = min(end, returns.Src.Offset)
		}
	case VariableDeclaration:
		if typeName := n.Field("typeName"); typeName != nil && typeName.Src.Valid() {
			start = typeName.Src.End()
		}
		end = n.NameSpan().Offset
		if end < start {
			end = n.Src.End()
		}
	}
	if start < 0 || end < start {
		return position.Span{Offset: -1, Length: -1, File: position.NoFile}
	}
	return position.Span{Offset: start, Length: end - start, File: n.Src.File}
}
