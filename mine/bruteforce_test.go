package mine

import (
	"github.com/grailbio/bide/seq"
)

// bruteForceClosed enumerates every possible pattern over alphabet with at
// most maxItems item occurrences, computes its support against db by direct
// subsequence containment, and returns exactly the closed ones with support
// >= minsup. It exists solely to check mine.Run's completeness on small
// inputs and must never share code with the production closure oracle.
func bruteForceClosed(db *seq.Database, alphabet []seq.Item, maxItems, minsup int) map[string]int {
	patterns := enumerateAllPatterns(alphabet, maxItems)
	support := make(map[string]int, len(patterns))
	itemsetsByKey := make(map[string][]seq.Itemset, len(patterns))
	for _, p := range patterns {
		key := patternKey(p)
		itemsetsByKey[key] = p
		support[key] = countSupport(p, db)
	}

	closed := make(map[string]int)
	for key, sup := range support {
		if sup < minsup {
			continue
		}
		p := itemsetsByKey[key]
		isClosed := true
		for otherKey, otherSup := range support {
			if otherKey == key || otherSup != sup {
				continue
			}
			other := itemsetsByKey[otherKey]
			if containsPattern(p, other) {
				isClosed = false
				break
			}
		}
		if isClosed {
			closed[key] = sup
		}
	}
	return closed
}

func enumerateAllPatterns(alphabet []seq.Item, maxItems int) [][]seq.Itemset {
	seen := make(map[string]bool)
	var out [][]seq.Itemset
	var rec func(prefix []seq.Itemset)
	rec = func(prefix []seq.Itemset) {
		total := 0
		for _, is := range prefix {
			total += len(is)
		}
		if len(prefix) > 0 {
			key := patternKey(prefix)
			if !seen[key] {
				seen[key] = true
				out = append(out, clonePattern(prefix))
			}
		}
		if total >= maxItems {
			return
		}
		for _, it := range alphabet {
			rec(append(clonePattern(prefix), seq.Itemset{it}))
		}
		if len(prefix) > 0 {
			last := prefix[len(prefix)-1]
			for _, it := range alphabet {
				if len(last) == 0 || it > last[len(last)-1] {
					extended := append(append(seq.Itemset{}, last...), it)
					np := clonePattern(prefix[:len(prefix)-1])
					np = append(np, extended)
					rec(np)
				}
			}
		}
	}
	rec(nil)
	return out
}

func clonePattern(p []seq.Itemset) []seq.Itemset {
	out := make([]seq.Itemset, len(p))
	copy(out, p)
	return out
}

func patternKey(p []seq.Itemset) string {
	s := ""
	for _, is := range p {
		s += is.String() + "|"
	}
	return s
}

// containsPattern reports whether pat occurs as a subsequence of base: each
// itemset of pat, in order, must be a subset of some itemset of base, with
// matched base itemsets strictly increasing in index.
func containsPattern(pat, base []seq.Itemset) bool {
	bi := 0
	for _, pis := range pat {
		found := false
		for ; bi < len(base); bi++ {
			if isSubset(pis, base[bi]) {
				found = true
				bi++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isSubset(a, b seq.Itemset) bool {
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j >= len(b) || b[j] != x {
			return false
		}
		j++
	}
	return true
}

func countSupport(pat []seq.Itemset, db *seq.Database) int {
	n := 0
	for _, s := range db.Sequences() {
		if containsPattern(pat, s.Itemsets) {
			n++
		}
	}
	return n
}
