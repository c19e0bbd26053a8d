package mine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/bide/seq"
	"github.com/grailbio/bide/support"
)

func TestMemoLookupReturnsSameEntryForIdenticalPattern(t *testing.T) {
	m := newMemo()
	p1 := seq.SequentialPattern{Itemsets: []seq.Itemset{{1}, {2}}, SupportSet: support.NewIDSet([]int32{0, 1})}
	p2 := seq.SequentialPattern{Itemsets: []seq.Itemset{{1}, {2}}, SupportSet: support.NewIDSet([]int32{1, 0})}

	r1, k1 := m.lookup(p1)
	r2, k2 := m.lookup(p2)
	assert.Equal(t, k1, k2)
	assert.Same(t, r1, r2)
}

func TestMemoLookupDistinguishesDifferentPatterns(t *testing.T) {
	m := newMemo()
	a := seq.SequentialPattern{Itemsets: []seq.Itemset{{1}}, SupportSet: support.NewIDSet([]int32{0})}
	b := seq.SequentialPattern{Itemsets: []seq.Itemset{{2}}, SupportSet: support.NewIDSet([]int32{0})}

	_, ka := m.lookup(a)
	_, kb := m.lookup(b)
	assert.NotEqual(t, ka, kb)
}

func TestMemoEntryMutationPersistsAcrossLookups(t *testing.T) {
	m := newMemo()
	p := seq.SequentialPattern{Itemsets: []seq.Itemset{{1}}, SupportSet: support.NewIDSet([]int32{0})}
	r, _ := m.lookup(p)
	r.backScanDone = true
	r.backScanPrunes = true

	r2, _ := m.lookup(p)
	assert.True(t, r2.backScanDone)
	assert.True(t, r2.backScanPrunes)
}
