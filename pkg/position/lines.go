package position

import "sort"

// LineIndex answers offset and position queries for one source text without
// rescanning it. Results match PositionToIndex and IndexToPosition.
type LineIndex struct {
	content string
	starts  []int
}

// NewLineIndex records the start offset of every line in content.
func NewLineIndex(content string) *LineIndex {
	starts := []int{0}
	for idx := range len(content) {
		if content[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &LineIndex{content: content, starts: starts}
}

// LineCount returns the number of lines. Empty content has one empty line.
func (l *LineIndex) LineCount() int {
	return len(l.starts)
}

// Position converts an offset to a position, clamping at the end of content.
func (l *LineIndex) Position(offset int) Position {
	offset = min(max(offset, 0), len(l.content))

	lineIdx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1

	return Position{Line: lineIdx + 1, Character: offset - l.starts[lineIdx] + 1}
}

// Offset converts a position to an offset. Positions outside the content,
// including a character beyond the end of its line, give len(content).
func (l *LineIndex) Offset(pos Position) int {
	if pos.Line < 1 || pos.Line > len(l.starts) || pos.Character < 1 {
		return len(l.content)
	}

	start := l.starts[pos.Line-1]
	end := len(l.content)
	if pos.Line < len(l.starts) {
		end = l.starts[pos.Line] - 1
	}

	offset := start + pos.Character - 1
	if offset > end || offset >= len(l.content) {
		return len(l.content)
	}
	return offset
}

// Range converts a span to a range.
func (l *LineIndex) Range(span Span) Range {
	return Range{Start: l.Position(span.Offset), End: l.Position(span.End())}
}

// LineText returns line (1-based) without its terminator, or "" when out of range.
func (l *LineIndex) LineText(line int) string {
	if line < 1 || line > len(l.starts) {
		return ""
	}

	start := l.starts[line-1]
	end := len(l.content)
	if line < len(l.starts) {
		end = l.starts[line] - 1
	}
	if end > start && l.content[end-1] == '\r' {
		end--
	}
	return l.content[start:end]
}
