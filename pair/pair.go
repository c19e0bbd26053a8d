// Package pair implements PairSummary: the structural-context key of a
// candidate one-item extension, and the accumulation table the frequent-pair
// scanners build while walking a pseudo-database.
package pair

import (
	"fmt"

	"github.com/grailbio/bide/seq"
	"github.com/grailbio/bide/support"
)

// Key is the structural-context key of a candidate one-item extension:
// the item itself, plus whether the enclosing itemset is cut at its right
// edge (IsPrefix) and whether the occurrence sits inside a postfix itemset
// (IsPostfix). Equality and hashing are defined over exactly these three
// fields; the accumulated support set is not part of the key.
type Key struct {
	Item      seq.Item
	IsPrefix  bool
	IsPostfix bool
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,prefix=%t,postfix=%t)", k.Item, k.IsPrefix, k.IsPostfix)
}

// Summary pairs a Key with the support-set builder accumulated for it
// during a single scan.
type Summary struct {
	Key     Key
	support *support.IDSetBuilder
}

// Support freezes the accumulated support set.
func (s Summary) Support() *support.IDSet { return s.support.Build() }

// Table accumulates Summaries across a scan, keyed by Key. It is the result
// type returned by the frequent-pair scanners (scan.FrequentPairs,
// scan.PairsForBackwardCheck).
type Table struct {
	entries map[Key]*support.IDSetBuilder
	order   []Key // first-seen order, for deterministic iteration in tests
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[Key]*support.IDSetBuilder)}
}

// Record adds id to the support set of the pair (item, isPrefix, isPostfix).
// One base sequence contributes at most once per pair, since the support-set
// builder ignores an ID it has already recorded.
func (t *Table) Record(item seq.Item, isPrefix, isPostfix bool, id int32) {
	k := Key{Item: item, IsPrefix: isPrefix, IsPostfix: isPostfix}
	b, ok := t.entries[k]
	if !ok {
		b = support.NewIDSetBuilder()
		t.entries[k] = b
		t.order = append(t.order, k)
	}
	b.Add(id)
}

// Summaries freezes the table into a slice of Summaries in first-seen
// order. The order is not semantically meaningful but is kept stable for
// reproducible tests.
func (t *Table) Summaries() []Summary {
	out := make([]Summary, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Summary{Key: k, support: t.entries[k]})
	}
	return out
}

// AnySupportEquals reports whether any pair in the table has a support set
// of cardinality exactly n. Both BackScanPrunes and HasBackwardExtension
// reduce to this test.
func (t *Table) AnySupportEquals(n int) bool {
	for _, b := range t.entries {
		if b.Build().Len() == n {
			return true
		}
	}
	return false
}

// FrequentKeys returns the Summaries whose support set has cardinality
// >= minsup, in first-seen order.
func (t *Table) FrequentKeys(minsup int) []Summary {
	out := make([]Summary, 0)
	for _, k := range t.order {
		b := t.entries[k]
		if b.Build().Len() >= minsup {
			out = append(out, Summary{Key: k, support: b})
		}
	}
	return out
}
