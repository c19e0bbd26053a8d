// Package scan implements the two frequent-pair scanners: the growth
// scanner used for pattern-growth candidate generation, and the
// backward-extension scanner used by the closure oracle.
package scan

import (
	"github.com/grailbio/bide/pair"
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/seq"
)

// FrequentPairs is the growth scanner. For every pseudo-sequence in db,
// for every visible itemset, for every item, it
// records the pair (item, isPrefix=cutAtRight, isPostfix) with that
// sequence's ID in the pair's support set.
func FrequentPairs(db pseudoseq.Database) *pair.Table {
	t := pair.NewTable()
	for _, c := range db.Cursors {
		n := c.Size()
		for i := 0; i < n; i++ {
			isPrefix := c.IsCutAtRight(i)
			isPostfix := c.IsPostfix(i)
			m := c.SizeOfItemsetAt(i)
			for j := 0; j < m; j++ {
				t.Record(c.ItemAt(i, j), isPrefix, isPostfix, int32(c.ID()))
			}
		}
	}
	return t
}

// PairsForBackwardCheck is the backward-extension scanner. periods is the
// set of i-th (semi-)maximum periods over exactly the base
// sequences the caller has restricted to; itemI and itemIm1 are
// prefix.ItemAt(iPeriod) and prefix.ItemAt(iPeriod-1) respectively, with
// hasIm1 false when iPeriod==0.
func PairsForBackwardCheck(periods []pseudoseq.Cursor, itemI seq.Item, itemIm1 seq.Item, hasIm1 bool) *pair.Table {
	t := pair.NewTable()
	for _, p := range periods {
		n := p.Size()
		for i := 0; i < n; i++ {
			m := p.SizeOfItemsetAt(i)
			sawI := false
			for j := 0; j < m; j++ {
				it := p.ItemAt(i, j)
				if it == itemI {
					sawI = true
				}
				if it > itemI {
					break
				}
			}
			isPrefix := p.IsCutAtRight(i)
			isPostfix := p.IsPostfix(i)
			sawIm1 := false
			for j := 0; j < m; j++ {
				it := p.ItemAt(i, j)
				if hasIm1 && it == itemIm1 {
					sawIm1 = true
				}
				id := int32(p.ID())
				t.Record(it, isPrefix, isPostfix, id)
				if sawIm1 {
					t.Record(it, isPrefix, !isPostfix, id)
				}
				if sawI {
					t.Record(it, !isPrefix, isPostfix, id)
				}
			}
		}
	}
	return t
}
