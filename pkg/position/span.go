package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSpan is returned when a span string is not "offset:length" or
// "offset:length:file" with decimal fields.
var ErrMalformedSpan = errors.New("malformed span")

// NoFile marks a span parsed without a source index.
const NoFile = -1

// Span locates a node in source text by byte offset and length.
type Span struct {
	Offset int
	Length int
	// File is the compiler's source index, or NoFile.
	File int
}

// ParseSpan parses a compiler span string.
func ParseSpan(s string) (Span, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 && len(fields) != 3 {
		return Span{}, fmt.Errorf("%w: %q: want offset:length", ErrMalformedSpan, s)
	}

	nums := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Span{}, fmt.Errorf("%w: %q: %w", ErrMalformedSpan, s, err)
		}
		nums[i] = n
	}

	span := Span{Offset: nums[0], Length: nums[1], File: NoFile}
	if len(nums) == 3 {
		span.File = nums[2]
	}
	return span, nil
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Valid reports whether the span points into real source. solc emits -1
// offsets for synthesized nodes.
func (s Span) Valid() bool {
	return s.Offset >= 0 && s.Length >= 0
}

// Contains reports whether offset lies inside [Offset, End).
func (s Span) Contains(offset int) bool {
	return s.Offset <= offset && offset < s.End()
}

// String formats the span the way the compiler does.
func (s Span) String() string {
	if s.File == NoFile {
		return fmt.Sprintf("%d:%d", s.Offset, s.Length)
	}
	return fmt.Sprintf("%d:%d:%d", s.Offset, s.Length, s.File)
}

// MarshalText implements encoding.TextMarshaler.
func (s Span) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Span) UnmarshalText(text []byte) error {
	parsed, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
