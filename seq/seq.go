// Package seq defines the immutable in-memory representation of the input
// sequence database: items, itemsets, sequences, and sequential patterns.
package seq

import (
	"fmt"

	"github.com/grailbio/bide/support"
	"github.com/pkg/errors"
)

// Item is a single element of the discrete integer item alphabet.
type Item int32

// Itemset is a non-empty, strictly ascending list of distinct items.
type Itemset []Item

// NewItemset validates and returns an Itemset. It rejects non-positive
// items and items that are not in strictly ascending order, per the
// invariants on the input database.
func NewItemset(items []Item) (Itemset, error) {
	if len(items) == 0 {
		return nil, errors.New("seq: itemset must not be empty")
	}
	for i, it := range items {
		if it <= 0 {
			return nil, errors.Errorf("seq: item %d is not positive", it)
		}
		if i > 0 && items[i-1] >= it {
			return nil, errors.Errorf("seq: items not strictly ascending: %d then %d", items[i-1], it)
		}
	}
	out := make(Itemset, len(items))
	copy(out, items)
	return out, nil
}

// IndexOf returns the index of item within the itemset, or -1.
func (s Itemset) IndexOf(item Item) int {
	// Itemsets are small in practice; linear scan with early exit on the
	// ascending order beats a map lookup here.
	for i, it := range s {
		if it == item {
			return i
		}
		if it > item {
			break
		}
	}
	return -1
}

// Sequence is an ordered list of itemsets identified by a dense, 0-based ID.
type Sequence struct {
	ID       int
	Itemsets []Itemset
}

// Database is an ordered, immutable list of sequences.
type Database struct {
	sequences []Sequence
}

// NewDatabase wraps sequences into a Database, rejecting any sequence with
// no itemsets. Itemset contents are not checked here; NewItemset is the
// validating constructor for them. Sequence IDs are assigned densely in
// input order.
func NewDatabase(raw [][]Itemset) (*Database, error) {
	seqs := make([]Sequence, 0, len(raw))
	for id, itemsets := range raw {
		if len(itemsets) == 0 {
			return nil, errors.Errorf("seq: sequence %d has no itemsets", id)
		}
		seqs = append(seqs, Sequence{ID: id, Itemsets: itemsets})
	}
	return &Database{sequences: seqs}, nil
}

// NewRewritten wraps sequences produced by the driver's infrequent-item
// filter into a Database, bypassing NewDatabase's non-empty-itemset
// validation: a rewritten sequence may legitimately have zero itemsets
// after every one of its items was dropped for being infrequent. Its ID
// numbering must already be dense and 0-based; the driver guarantees this
// by deriving seqs from an existing Database's Sequences() one-for-one.
func NewRewritten(seqs []Sequence) *Database {
	return &Database{sequences: seqs}
}

// Len returns the number of sequences.
func (d *Database) Len() int { return len(d.sequences) }

// At returns the sequence with the given ID. IDs are dense in [0, Len()).
func (d *Database) At(id int) *Sequence { return &d.sequences[id] }

// Sequences returns the underlying slice. Callers must not mutate it.
func (d *Database) Sequences() []Sequence { return d.sequences }

// String renders an itemset the way the output format spells it:
// space-separated items.
func (s Itemset) String() string {
	out := ""
	for i, it := range s {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d", it)
	}
	return out
}

// SequentialPattern is an ordered list of itemsets plus the support set
// (base sequence IDs) it covers. Patterns are immutable once emitted; the
// in-progress prefix held by the driver during recursion is built by
// repeated calls to ExtendS/ExtendI, each of which copies the receiver.
type SequentialPattern struct {
	Itemsets   []Itemset
	SupportSet *support.IDSet
}

// AbsoluteSupport is the cardinality of the pattern's support set.
func (p SequentialPattern) AbsoluteSupport() int { return p.SupportSet.Len() }

// ItemOccurrenceCount is the sum over itemsets of their sizes: the total
// number of item-occurrence positions in the pattern, i.e. the number of
// "period" boundaries the closure oracle must consider.
func (p SequentialPattern) ItemOccurrenceCount() int {
	n := 0
	for _, is := range p.Itemsets {
		n += len(is)
	}
	return n
}

// ItemAt returns the k-th item occurrence of the pattern, scanning
// itemsets left to right, items within an itemset left to right. k must be
// in [0, ItemOccurrenceCount()).
func (p SequentialPattern) ItemAt(k int) Item {
	for _, is := range p.Itemsets {
		if k < len(is) {
			return is[k]
		}
		k -= len(is)
	}
	panic("seq: ItemAt index out of range")
}

// ExtendS returns a copy of the pattern with a new one-item itemset
// {item} appended (an S-extension).
func (p SequentialPattern) ExtendS(item Item, newSupport *support.IDSet) SequentialPattern {
	itemsets := make([]Itemset, len(p.Itemsets), len(p.Itemsets)+1)
	copy(itemsets, p.Itemsets)
	itemsets = append(itemsets, Itemset{item})
	return SequentialPattern{Itemsets: itemsets, SupportSet: newSupport}
}

// ExtendI returns a copy of the pattern with item appended to its last
// itemset (an I-extension). The pattern must be non-empty.
func (p SequentialPattern) ExtendI(item Item, newSupport *support.IDSet) SequentialPattern {
	itemsets := make([]Itemset, len(p.Itemsets))
	copy(itemsets, p.Itemsets)
	last := itemsets[len(itemsets)-1]
	extended := make(Itemset, len(last)+1)
	copy(extended, last)
	extended[len(last)] = item
	itemsets[len(itemsets)-1] = extended
	return SequentialPattern{Itemsets: itemsets, SupportSet: newSupport}
}

// String renders the pattern in the output format's pattern body (without
// the trailing " #SUP: n"): items space-separated, each itemset terminated
// by the literal token "-1 ".
func (p SequentialPattern) String() string {
	out := ""
	for _, is := range p.Itemsets {
		out += is.String() + " -1 "
	}
	return out
}
