package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/solidhunter/pkg/position"
)

const sample = "pragma solidity ^0.8.0;\n\ncontract A {\n    uint x;\n}\n"

func TestComputeLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rng     position.Range
		content string
		want    int
	}{
		{
			name:    "single line",
			rng:     position.Range{Start: position.Position{Line: 1, Character: 1}, End: position.Position{Line: 1, Character: 5}},
			content: "abcdefgh",
			want:    4,
		},
		{
			name:    "single line on other content",
			rng:     position.Range{Start: position.Position{Line: 1, Character: 1}, End: position.Position{Line: 1, Character: 5}},
			content: "x",
			want:    4,
		},
		{
			name:    "two lines",
			rng:     position.Range{Start: position.Position{Line: 1, Character: 3}, End: position.Position{Line: 2, Character: 2}},
			content: "abcd\nefgh",
			want:    4,
		},
		{
			name:    "spans an empty line",
			rng:     position.Range{Start: position.Position{Line: 1, Character: 1}, End: position.Position{Line: 3, Character: 1}},
			content: "ab\n\ncd",
			want:    4,
		},
		{
			name:    "line past end counts as empty",
			rng:     position.Range{Start: position.Position{Line: 1, Character: 1}, End: position.Position{Line: 3, Character: 1}},
			content: "ab",
			want:    4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.rng.ComputeLength(tc.content))
		})
	}
}

func TestComputeLength_MatchesIndexDifference(t *testing.T) {
	t.Parallel()

	for start := range len(sample) {
		for end := start; end <= len(sample); end++ {
			rng := position.Range{
				Start: position.IndexToPosition(start, sample),
				End:   position.IndexToPosition(end, sample),
			}
			require.Equal(t, end-start, rng.ComputeLength(sample), "range %s", rng)
		}
	}
}

func TestPositionToIndex_InverseOfIndexToPosition(t *testing.T) {
	t.Parallel()

	for idx := range len(sample) {
		pos := position.IndexToPosition(idx, sample)
		assert.Equal(t, idx, position.PositionToIndex(pos, sample), "index %d at %s", idx, pos)
	}

	line, character := 1, 1
	for idx := range len(sample) {
		pos := position.Position{Line: line, Character: character}
		assert.Equal(t, pos, position.IndexToPosition(position.PositionToIndex(pos, sample), sample))
		if sample[idx] == '\n' {
			line++
			character = 1
		} else {
			character++
		}
	}
}

func TestPositionToIndex_OutOfBounds(t *testing.T) {
	t.Parallel()

	tests := []position.Position{
		{Line: 99, Character: 1},
		{Line: 1, Character: 500},
		{Line: 0, Character: 0},
		{Line: 6, Character: 1},
	}
	for _, pos := range tests {
		assert.Equal(t, len(sample), position.PositionToIndex(pos, sample), "position %s", pos)
	}
}

func TestIndexToPosition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, position.Position{Line: 1, Character: 1}, position.IndexToPosition(0, sample))
	assert.Equal(t, position.Position{Line: 3, Character: 1}, position.IndexToPosition(25, sample))
	assert.Equal(t, position.Position{Line: 1, Character: 1}, position.IndexToPosition(-4, sample))
	assert.Equal(t, position.Position{Line: 6, Character: 1}, position.IndexToPosition(len(sample), sample))
	assert.Equal(t, position.Position{Line: 6, Character: 1}, position.IndexToPosition(len(sample)+10, sample))
}

func TestIsNodeInRange(t *testing.T) {
	t.Parallel()

	source := "contract A {}"
	span := position.Span{Offset: 9, Length: 1, File: position.NoFile}

	assert.False(t, position.IsNodeInRange(span, position.Position{Line: 1, Character: 9}, source))
	assert.True(t, position.IsNodeInRange(span, position.Position{Line: 1, Character: 10}, source))
	// Right boundary is inclusive.
	assert.True(t, position.IsNodeInRange(span, position.Position{Line: 1, Character: 11}, source))
	assert.False(t, position.IsNodeInRange(span, position.Position{Line: 1, Character: 12}, source))
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	rng := position.Range{Start: position.Position{Line: 2, Character: 3}, End: position.Position{Line: 4, Character: 1}}
	assert.True(t, rng.Contains(position.Position{Line: 2, Character: 3}))
	assert.True(t, rng.Contains(position.Position{Line: 3, Character: 100}))
	assert.True(t, rng.Contains(position.Position{Line: 4, Character: 1}))
	assert.False(t, rng.Contains(position.Position{Line: 2, Character: 2}))
	assert.False(t, rng.Contains(position.Position{Line: 4, Character: 2}))
}
