package period

import "github.com/grailbio/bide/seq"

// position identifies a single item occurrence within a base sequence by
// absolute (itemset, item) coordinates.
type position struct {
	itemset int
	item    int
}

// forwardMatch returns, for each item-occurrence of prefix, the position of
// its leftmost match against base: a standard greedy left-to-right
// subsequence match, matched itemset by itemset. It assumes base actually
// contains prefix (guaranteed by the caller restricting to prefix's
// support set) and panics otherwise, since that would indicate a bug in
// the support-set bookkeeping, not a recoverable input error.
func forwardMatch(prefix seq.SequentialPattern, base *seq.Sequence) []position {
	n := prefix.ItemOccurrenceCount()
	positions := make([]position, 0, n)
	baseIdx := 0
	for _, pitemset := range prefix.Itemsets {
		for {
			if baseIdx >= len(base.Itemsets) {
				panic("period: base sequence does not contain prefix (forward)")
			}
			if matched, ok := matchLeftmost(pitemset, base.Itemsets[baseIdx]); ok {
				for _, j := range matched {
					positions = append(positions, position{itemset: baseIdx, item: j})
				}
				baseIdx++
				break
			}
			baseIdx++
		}
	}
	return positions
}

// backwardMatch is the mirror of forwardMatch: for each item-occurrence of
// prefix, it returns the position of the rightmost match consistent with
// everything after it also matching, found by scanning from the end of the
// base sequence backward and matching prefix in reverse.
func backwardMatch(prefix seq.SequentialPattern, base *seq.Sequence) []position {
	n := prefix.ItemOccurrenceCount()
	positions := make([]position, n)
	baseIdx := len(base.Itemsets) - 1
	k := n
	for pi := len(prefix.Itemsets) - 1; pi >= 0; pi-- {
		pitemset := prefix.Itemsets[pi]
		for {
			if baseIdx < 0 {
				panic("period: base sequence does not contain prefix (backward)")
			}
			if matched, ok := matchRightmost(pitemset, base.Itemsets[baseIdx]); ok {
				k -= len(pitemset)
				for off, j := range matched {
					positions[k+off] = position{itemset: baseIdx, item: j}
				}
				baseIdx--
				break
			}
			baseIdx--
		}
	}
	return positions
}

// matchLeftmost finds, for each item of pitems in order, its leftmost
// occurrence in bitems at or after the previous match, and reports whether
// all items were found.
func matchLeftmost(pitems, bitems seq.Itemset) ([]int, bool) {
	result := make([]int, 0, len(pitems))
	j := 0
	for _, pi := range pitems {
		for j < len(bitems) && bitems[j] != pi {
			j++
		}
		if j >= len(bitems) {
			return nil, false
		}
		result = append(result, j)
		j++
	}
	return result, true
}

// matchRightmost finds, for each item of pitems in reverse order, its
// rightmost occurrence in bitems at or before the previous (rightward)
// match, and reports whether all items were found.
func matchRightmost(pitems, bitems seq.Itemset) ([]int, bool) {
	result := make([]int, len(pitems))
	j := len(bitems) - 1
	for k := len(pitems) - 1; k >= 0; k-- {
		pi := pitems[k]
		for j >= 0 && bitems[j] != pi {
			j--
		}
		if j < 0 {
			return nil, false
		}
		result[k] = j
		j--
	}
	return result, true
}
