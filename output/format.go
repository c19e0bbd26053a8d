// Package output implements the two pattern sinks (file mode and memory
// mode) plus an opt-in canonical-ordering post-processing helper.
package output

import (
	"sort"
	"strconv"

	"github.com/grailbio/bide/seq"
)

// FormatLine renders a pattern as the file-mode grammar requires: the
// pattern body (each itemset space-separated and terminated by the
// literal token "-1 ") followed by " #SUP: <n>".
func FormatLine(p seq.SequentialPattern) string {
	return p.String() + " #SUP: " + strconv.Itoa(p.AbsoluteSupport())
}

// Canonicalize sorts patterns by (length, lexicographic items), for
// callers that need a deterministic order. Mining itself makes no
// ordering guarantee; this is strictly opt-in.
func Canonicalize(patterns []seq.SequentialPattern) []seq.SequentialPattern {
	out := make([]seq.SequentialPattern, len(patterns))
	copy(out, patterns)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		na, nb := a.ItemOccurrenceCount(), b.ItemOccurrenceCount()
		if na != nb {
			return na < nb
		}
		return lessLexicographic(a, b)
	})
	return out
}

func lessLexicographic(a, b seq.SequentialPattern) bool {
	n := a.ItemOccurrenceCount()
	for k := 0; k < n; k++ {
		ai, bi := a.ItemAt(k), b.ItemAt(k)
		if ai != bi {
			return ai < bi
		}
	}
	return false
}
