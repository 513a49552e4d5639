// Package position converts between line/character coordinates and absolute
// offsets in Solidity source text.
//
// Lines and characters are 1-based. Characters count bytes of the UTF-8
// source, which is the unit solc uses for its src offsets.
package position

import (
	"fmt"
	"strings"
)

// Position is a 1-based line and character within a source text.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// String returns "line:character".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a half-open region of source text. End is the position just past
// the last covered character.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// String returns "start-end".
func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Contains reports whether pos lies within r, end inclusive.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && !r.End.Before(pos)
}

// ComputeLength returns the number of characters covered by r in content.
//
// A single-line range is end minus start. A multi-line range adds the rest of
// the start line, every intervening line in full, and the characters on the
// last line; each crossed line terminator counts as one character. Lines that
// do not exist in content count as empty.
func (r Range) ComputeLength(content string) int {
	if r.Start.Line == r.End.Line {
		return r.End.Character - r.Start.Character
	}

	lines := splitLines(content)
	length := 0
	character := r.Start.Character

	for line := r.Start.Line; line < r.End.Line; line++ {
		lineLen := 0
		if line >= 1 && line <= len(lines) {
			lineLen = len(lines[line-1])
		}
		length += lineLen + 1 - character
		character = 0
	}

	length += r.End.Character - character
	return max(length, 0)
}

// PositionToIndex returns the offset of the character at pos.
//
// The source is scanned from the start; a newline moves to the next line and
// resets the character to 1. When pos is never reached the total length of
// source is returned.
func PositionToIndex(pos Position, source string) int {
	line, character := 1, 1
	for idx := range len(source) {
		if line == pos.Line && character == pos.Character {
			return idx
		}
		if source[idx] == '\n' {
			line++
			character = 1
		} else {
			character++
		}
	}
	return len(source)
}

// IndexToPosition returns the position of the character at index. Indexes
// past the end are clamped to the position just after the last character.
func IndexToPosition(index int, source string) Position {
	index = min(max(index, 0), len(source))

	line, character := 1, 1
	for idx := range index {
		if source[idx] == '\n' {
			line++
			character = 1
		} else {
			character++
		}
	}
	return Position{Line: line, Character: character}
}

// IsNodeInRange reports whether pos falls within span. The right boundary is
// inclusive, so the position just past the span still matches.
func IsNodeInRange(span Span, pos Position, source string) bool {
	idx := PositionToIndex(pos, source)
	return span.Offset <= idx && idx <= span.Offset+span.Length
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
