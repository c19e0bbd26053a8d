// Package period computes the i-th maximum and semi-maximum periods of a
// prefix within a base sequence, the forward look that drives both BackScan
// pruning and the backward-extension closure check.
package period

import (
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/seq"
)

// boundary identifies the exclusive edge between matched material and a
// period, expressed as "the last position that belongs to the matched
// side". A zero-value boundary with atStart=true means the period starts
// at the very beginning of the sequence.
type boundary struct {
	atStart bool
	p       position
}

// Maximum returns the i-th maximum period of prefix within sequence id,
// or nil if the region is empty. i ranges over
// [0, prefix.ItemOccurrenceCount()].
func Maximum(db *seq.Database, prefix seq.SequentialPattern, id int, i int) *pseudoseq.Cursor {
	base := db.At(id)
	fwd := forwardMatch(prefix, base)
	lo := lowerBoundary(fwd, i)
	if i == prefix.ItemOccurrenceCount() {
		return buildUnbounded(db, base, lo)
	}
	return buildBounded(db, base, lo, boundary{p: fwd[i]})
}

// SemiMaximum returns the i-th semi-maximum period of prefix within
// sequence id, or nil if the region is empty. Its lower boundary is
// identical to Maximum's; its upper boundary looks further back using the
// backward match, which is why it is always at least as large as the
// maximum period.
func SemiMaximum(db *seq.Database, prefix seq.SequentialPattern, id int, i int) *pseudoseq.Cursor {
	base := db.At(id)
	fwd := forwardMatch(prefix, base)
	lo := lowerBoundary(fwd, i)
	if i == prefix.ItemOccurrenceCount() {
		return buildUnbounded(db, base, lo)
	}
	bwd := backwardMatch(prefix, base)
	return buildBounded(db, base, lo, boundary{p: bwd[i]})
}

// lowerBoundary returns the lower (left) boundary for period index i: the
// start of the sequence for i==0, otherwise strictly after the forward
// match of occurrence i-1.
func lowerBoundary(fwd []position, i int) boundary {
	if i == 0 {
		return boundary{atStart: true}
	}
	return boundary{p: fwd[i-1]}
}

// buildUnbounded constructs the open (right-unbounded) cursor starting
// strictly after lo, or nil if lo is the sequence's last item.
func buildUnbounded(db *seq.Database, base *seq.Sequence, lo boundary) *pseudoseq.Cursor {
	itemsetFrom, itemFrom, postfix, ok := afterBoundary(base, lo)
	if !ok {
		return nil
	}
	c := pseudoseq.NewChild(db, base.ID, itemsetFrom, itemFrom, postfix)
	return &c
}

// buildBounded constructs the bounded cursor strictly between lo and hi,
// or nil if the region is empty.
func buildBounded(db *seq.Database, base *seq.Sequence, lo, hi boundary) *pseudoseq.Cursor {
	itemsetFrom, itemFrom, postfix, ok := afterBoundary(base, lo)
	if !ok {
		return nil
	}
	itemsetTo, itemTo := beforeBoundary(base, hi)
	if itemsetFrom > itemsetTo || (itemsetFrom == itemsetTo && itemFrom >= itemTo) {
		return nil
	}
	c := pseudoseq.NewBounded(db, base.ID, itemsetFrom, itemFrom, postfix, itemsetTo, itemTo)
	return &c
}

// afterBoundary returns the (itemsetFrom, itemFrom, postfix) triple for the
// first position strictly after lo, and ok=false if lo is the very last
// item of the sequence (leaving nothing after it).
func afterBoundary(base *seq.Sequence, lo boundary) (itemsetFrom, itemFrom int, postfix bool, ok bool) {
	if lo.atStart {
		if len(base.Itemsets) == 0 {
			return 0, 0, false, false
		}
		return 0, 0, false, true
	}
	is := lo.p.itemset
	it := lo.p.item
	if it+1 < len(base.Itemsets[is]) {
		return is, it + 1, true, true
	}
	if is+1 < len(base.Itemsets) {
		return is + 1, 0, false, true
	}
	return 0, 0, false, false
}

// beforeBoundary returns the (itemsetTo, itemTo) pair such that material
// strictly before hi is described by itemsets itemsetFrom..itemsetTo
// inclusive, with itemTo items visible (from position 0) in itemsetTo.
func beforeBoundary(base *seq.Sequence, hi boundary) (itemsetTo, itemTo int) {
	is := hi.p.itemset
	it := hi.p.item
	if it > 0 {
		return is, it
	}
	if is == 0 {
		return -1, 0
	}
	return is - 1, len(base.Itemsets[is-1])
}
