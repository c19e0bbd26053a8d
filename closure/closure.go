// Package closure implements the BackScan pruning test and the
// backward-extension closure check, the two tests that decide whether a
// prefix can generate a closed pattern and whether it is itself closed.
package closure

import (
	"github.com/grailbio/bide/period"
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/scan"
	"github.com/grailbio/bide/seq"
)

// BackScanPrunes reports whether prefix is provably unable to generate any
// closed pattern: for every item-occurrence index i, the i-th
// semi-maximum periods (restricted to prefix's own support set) are
// scanned for a backward-extension pair whose support equals prefix's
// absolute support. A hit at any i is enough to prune.
func BackScanPrunes(db *seq.Database, prefix seq.SequentialPattern) bool {
	return anyBackwardPairMatches(db, prefix, period.SemiMaximum)
}

// HasBackwardExtension reports whether prefix has a same-support backward
// extension, using i-th maximum periods instead of semi-maximum periods.
// A prefix with a backward extension is never closed and must not be
// emitted.
func HasBackwardExtension(db *seq.Database, prefix seq.SequentialPattern) bool {
	return anyBackwardPairMatches(db, prefix, period.Maximum)
}

type periodFunc func(db *seq.Database, prefix seq.SequentialPattern, id int, i int) *pseudoseq.Cursor

func anyBackwardPairMatches(db *seq.Database, prefix seq.SequentialPattern, periodsAt periodFunc) bool {
	n := prefix.ItemOccurrenceCount()
	support := prefix.AbsoluteSupport()
	ids := prefix.SupportSet.IDs()
	for i := 0; i < n; i++ {
		periods := make([]pseudoseq.Cursor, 0, len(ids))
		for _, id := range ids {
			if p := periodsAt(db, prefix, int(id), i); p != nil {
				periods = append(periods, *p)
			}
		}
		if len(periods) == 0 {
			continue
		}
		itemI := prefix.ItemAt(i)
		var itemIm1 seq.Item
		hasIm1 := i > 0
		if hasIm1 {
			itemIm1 = prefix.ItemAt(i - 1)
		}
		table := scan.PairsForBackwardCheck(periods, itemI, itemIm1, hasIm1)
		if table.AnySupportEquals(support) {
			return true
		}
	}
	return false
}
