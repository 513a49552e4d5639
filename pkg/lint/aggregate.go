package lint

import "slices"

type lineKey struct {
	ruleID string
	line   int
}

// Aggregate folds diagnostics of the same rule that start on the same line
// into one. The first of each group is kept; the ranges of the others are
// appended to its SameLineRanges and their other fields are dropped. Groups
// appear in the order of their first member.
func Aggregate(diags []Diagnostic) []Diagnostic {
	if len(diags) < 2 {
		return slices.Clone(diags)
	}

	index := make(map[lineKey]int, len(diags))
	out := make([]Diagnostic, 0, len(diags))

	for _, diag := range diags {
		key := lineKey{ruleID: diag.RuleID, line: diag.Range.Start.Line}
		if at, ok := index[key]; ok {
			primary := &out[at]
			primary.SameLineRanges = append(primary.SameLineRanges, diag.Range)
			continue
		}
		index[key] = len(out)
		diag.SameLineRanges = slices.Clone(diag.SameLineRanges)
		out = append(out, diag)
	}

	return out
}

// Unaggregate expands diagnostics carrying SameLineRanges into one
// diagnostic per range. Expanded copies take every field from the primary,
// its message included. Others pass through unchanged.
func Unaggregate(diags []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))

	for _, diag := range diags {
		extra := diag.SameLineRanges
		diag.SameLineRanges = nil
		out = append(out, diag)

		for _, rng := range extra {
			clone := diag
			clone.Range = rng
			out = append(out, clone)
		}
	}

	return out
}
