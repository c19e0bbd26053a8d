// Package pseudoseq implements the pseudo-sequence cursor: a non-owning,
// value-like view into a region of a base sequence, used throughout
// projection, period extraction, and the pair scanners without ever
// copying the underlying sequence data.
//
// Two shapes of region exist. An open cursor (built by New or NewChild)
// extends from a left boundary to the end of the base sequence; these are
// what the projector produces. A bounded cursor (built by NewBounded) is
// additionally clipped on the right; these are what the period extractor
// produces for every maximum/semi-maximum period except the last
// (i == len(prefix)), which is unbounded like any other suffix.
package pseudoseq

import (
	"v.io/x/lib/vlog"

	"github.com/grailbio/bide/seq"
)

// Cursor is a region of some base sequence, described entirely by value.
// Copying it is always safe and cheap, and it never retains a reference to
// anything beyond the base Database it reads through.
type Cursor struct {
	db     *seq.Database
	baseID int

	itemsetFrom int
	itemFrom    int
	postfix     bool // left boundary cuts through the middle of an itemset

	bounded   bool
	itemsetTo int // inclusive index of the last visible itemset (only if bounded)
	itemTo    int // exclusive item index within itemsetTo (only if bounded)
}

// NotFound is the sentinel returned by IndexOf when item is absent.
const NotFound = -1

// New returns a cursor over the entirety of a base sequence, starting at
// its first itemset with postfix=false. This is how the driver seeds the
// initial pseudo-database.
func New(db *seq.Database, baseID int) Cursor {
	return Cursor{db: db, baseID: baseID, itemsetFrom: 0, itemFrom: 0, postfix: false}
}

// NewChild builds an open (right-unbounded) cursor anchored at an
// arbitrary (itemset, item) offset within the given base sequence. It is
// used by the projector, and by the period extractor for the single
// right-unbounded period (i == len(prefix)).
func NewChild(db *seq.Database, baseID, itemsetFrom, itemFrom int, postfix bool) Cursor {
	return Cursor{db: db, baseID: baseID, itemsetFrom: itemsetFrom, itemFrom: itemFrom, postfix: postfix}
}

// NewBounded builds a cursor clipped on both sides: visible material runs
// from (itemsetFrom, itemFrom) inclusive through (itemsetTo, itemTo)
// exclusive. It is used exclusively by the period extractor to represent a
// maximum or semi-maximum period that ends strictly before the end of the
// base sequence.
func NewBounded(db *seq.Database, baseID, itemsetFrom, itemFrom int, postfix bool, itemsetTo, itemTo int) Cursor {
	c := Cursor{
		db: db, baseID: baseID,
		itemsetFrom: itemsetFrom, itemFrom: itemFrom, postfix: postfix,
		bounded: true, itemsetTo: itemsetTo, itemTo: itemTo,
	}
	if c.IsEmpty() {
		vlog.VI(2).Infof("pseudoseq: bounded region [%d,%d)-[%d,%d) of sequence %d is empty", itemsetFrom, itemFrom, itemsetTo, itemTo, baseID)
	}
	return c
}

// ID returns the base sequence ID.
func (c Cursor) ID() int { return c.baseID }

func (c Cursor) base() *seq.Sequence { return c.db.At(c.baseID) }

// lastVisibleIndex returns the visible-itemset index of the rightmost
// itemset this cursor can see. ok is false (and idx is 0) when the cursor
// addresses no material at all.
func (c Cursor) lastVisibleIndex() (idx int, ok bool) {
	base := c.base()
	if c.bounded {
		if c.itemsetTo < c.itemsetFrom {
			return 0, false
		}
		if c.itemsetTo == c.itemsetFrom && c.itemFrom >= c.itemTo {
			return 0, false
		}
		return c.itemsetTo - c.itemsetFrom, true
	}
	if c.itemsetFrom >= len(base.Itemsets) {
		return 0, false
	}
	return len(base.Itemsets) - c.itemsetFrom - 1, true
}

// Size returns the number of itemsets still visible from the cursor. A
// truncated first itemset still counts as one itemset provided it has at
// least one visible item.
func (c Cursor) Size() int {
	last, ok := c.lastVisibleIndex()
	if !ok {
		return 0
	}
	return last + 1
}

// IsEmpty reports whether the cursor addresses no items at all.
func (c Cursor) IsEmpty() bool {
	_, ok := c.lastVisibleIndex()
	return !ok
}

// SizeOfItemsetAt returns the number of visible items in the i-th visible
// itemset. The first visible itemset (i==0) may be shortened on the left
// by itemFrom; the last visible itemset of a bounded cursor may be
// shortened on the right by itemTo.
func (c Cursor) SizeOfItemsetAt(i int) int {
	base := c.base()
	full := len(base.Itemsets[c.itemsetFrom+i])
	lo := 0
	if i == 0 {
		lo = c.itemFrom
	}
	hi := full
	if last, ok := c.lastVisibleIndex(); ok && c.bounded && i == last {
		hi = c.itemTo
	}
	return hi - lo
}

// ItemAt returns the j-th visible item of the i-th visible itemset.
func (c Cursor) ItemAt(i, j int) seq.Item {
	base := c.base()
	full := base.Itemsets[c.itemsetFrom+i]
	lo := 0
	if i == 0 {
		lo = c.itemFrom
	}
	return full[lo+j]
}

// IndexOf returns the first visible index within the i-th visible itemset
// whose item equals item, or NotFound.
func (c Cursor) IndexOf(i int, item seq.Item) int {
	n := c.SizeOfItemsetAt(i)
	for j := 0; j < n; j++ {
		if c.ItemAt(i, j) == item {
			return j
		}
	}
	return NotFound
}

// IsPostfix reports whether the i-th visible itemset is a postfix
// remainder: true iff i==0 and the cursor's left boundary landed
// mid-itemset.
func (c Cursor) IsPostfix(i int) bool {
	return i == 0 && c.postfix
}

// IsCutAtRight reports whether the i-th visible itemset has further items
// of its base itemset to the right that are not visible here. This is
// only ever true for the last visible itemset of a bounded cursor (a
// period that ends mid-itemset); an open cursor is, by construction,
// never cut at right.
func (c Cursor) IsCutAtRight(i int) bool {
	if !c.bounded {
		return false
	}
	last, ok := c.lastVisibleIndex()
	if !ok || i != last {
		return false
	}
	return c.itemTo < c.BaseItemsetLen(i)
}

// BaseItemsetLen returns the length of the i-th visible itemset's
// underlying base itemset (used by the period extractor to reason about
// positions beyond what is currently visible).
func (c Cursor) BaseItemsetLen(i int) int {
	return len(c.base().Itemsets[c.itemsetFrom+i])
}

// Database returns the base Database this cursor reads through. Used by
// the projector and period extractor to build child/bounded cursors.
func (c Cursor) Database() *seq.Database { return c.db }

// Offsets returns the absolute itemset and item offsets the cursor's left
// boundary is anchored at within its base sequence.
func (c Cursor) Offsets() (itemsetFrom, itemFrom int) { return c.itemsetFrom, c.itemFrom }

// BaseLen returns the number of itemsets in the underlying base sequence
// (not just the visible region).
func (c Cursor) BaseLen() int { return len(c.base().Itemsets) }

// Database is an ordered collection of pseudo-sequences produced by a
// single projection step, or a collection of periods produced by a single
// period-extraction pass. It is discarded when the call that created it
// returns.
type Database struct {
	Cursors []Cursor
}

// Len returns the number of pseudo-sequences.
func (d Database) Len() int { return len(d.Cursors) }
