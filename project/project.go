// Package project builds projected pseudo-databases: given an extension
// item and a pseudo-database, it derives the child pseudo-sequences that
// remain after pattern growth has consumed that item.
package project

import (
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/seq"
)

// Project builds the pseudo-database obtained by growing every
// pseudo-sequence in db by item. inSuffix selects whether occurrences are
// accepted inside a postfix itemset (I-extension growth) or inside a whole
// itemset (S-extension growth); exactly one of the two is ever true for a
// given recursive call, which is what keeps postfix semantics correct
// across recursion.
func Project(item seq.Item, db pseudoseq.Database, inSuffix bool) pseudoseq.Database {
	out := pseudoseq.Database{Cursors: make([]pseudoseq.Cursor, 0, db.Len())}
	for _, c := range db.Cursors {
		if child, ok := projectOne(item, c, inSuffix); ok {
			out.Cursors = append(out.Cursors, child)
		}
	}
	return out
}

// projectOne finds the first visible occurrence of item in c whose
// postfix-ness matches inSuffix and returns the child cursor anchored just
// past it, or ok=false if there is no such occurrence or the resulting
// child would be empty.
func projectOne(item seq.Item, c pseudoseq.Cursor, inSuffix bool) (pseudoseq.Cursor, bool) {
	n := c.Size()
	for i := 0; i < n; i++ {
		if c.IsPostfix(i) != inSuffix {
			continue
		}
		idx := c.IndexOf(i, item)
		if idx == pseudoseq.NotFound {
			continue
		}
		itemsetFrom, itemFrom := c.Offsets()
		absItemset := itemsetFrom + i
		absItem := idx
		if i == 0 {
			absItem = itemFrom + idx
		}

		if idx+1 < c.SizeOfItemsetAt(i) {
			child := pseudoseq.NewChild(c.Database(), c.ID(), absItemset, absItem+1, true)
			return child, !child.IsEmpty()
		}
		if absItemset+1 < c.BaseLen() {
			child := pseudoseq.NewChild(c.Database(), c.ID(), absItemset+1, 0, false)
			return child, !child.IsEmpty()
		}
		return pseudoseq.Cursor{}, false
	}
	return pseudoseq.Cursor{}, false
}
