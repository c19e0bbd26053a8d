package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/bide/seq"
	"github.com/grailbio/bide/support"
)

func mustDB(t *testing.T, raw [][]seq.Itemset) *seq.Database {
	t.Helper()
	db, err := seq.NewDatabase(raw)
	require.NoError(t, err)
	return db
}

func prefixOf(itemsets ...seq.Itemset) seq.SequentialPattern {
	return seq.SequentialPattern{Itemsets: itemsets, SupportSet: support.NewIDSet(nil)}
}

func TestMaximumBeforeFirstOccurrenceIsNil(t *testing.T) {
	db := mustDB(t, [][]seq.Itemset{{{1, 2}, {2, 3}, {3, 4}}})
	prefix := prefixOf(seq.Itemset{1}, seq.Itemset{3})

	got := Maximum(db, prefix, 0, 0)
	assert.Nil(t, got)
}

func TestMaximumBetweenOccurrences(t *testing.T) {
	db := mustDB(t, [][]seq.Itemset{{{1, 2}, {2, 3}, {3, 4}}})
	prefix := prefixOf(seq.Itemset{1}, seq.Itemset{3})

	got := Maximum(db, prefix, 0, 1)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Size())
	assert.Equal(t, seq.Item(2), got.ItemAt(0, 0))
	assert.Equal(t, seq.Item(2), got.ItemAt(1, 0))
}

func TestMaximumAfterLastOccurrenceIsUnbounded(t *testing.T) {
	db := mustDB(t, [][]seq.Itemset{{{1, 2}, {2, 3}, {3, 4}}})
	prefix := prefixOf(seq.Itemset{1}, seq.Itemset{3})

	got := Maximum(db, prefix, 0, prefix.ItemOccurrenceCount())
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Size())
	assert.Equal(t, seq.Item(3), got.ItemAt(0, 0))
	assert.Equal(t, seq.Item(4), got.ItemAt(0, 1))
}

func TestSemiMaximumIsAtLeastAsLargeAsMaximum(t *testing.T) {
	db := mustDB(t, [][]seq.Itemset{{{1, 2}, {2, 3}, {3, 4}}})
	prefix := prefixOf(seq.Itemset{1}, seq.Itemset{3})

	max := Maximum(db, prefix, 0, 1)
	semi := SemiMaximum(db, prefix, 0, 1)
	require.NotNil(t, max)
	require.NotNil(t, semi)

	maxTotal := 0
	for i := 0; i < max.Size(); i++ {
		maxTotal += max.SizeOfItemsetAt(i)
	}
	semiTotal := 0
	for i := 0; i < semi.Size(); i++ {
		semiTotal += semi.SizeOfItemsetAt(i)
	}
	assert.GreaterOrEqual(t, semiTotal, maxTotal)

	// The semi-maximum period's second visible itemset includes item 3,
	// which the maximum period (bounded strictly by the forward match)
	// excludes.
	assert.Equal(t, seq.Item(3), semi.ItemAt(1, 1))
}

func TestForwardAndBackwardMatchAgreeOnUniqueOccurrences(t *testing.T) {
	base := &seq.Sequence{ID: 0, Itemsets: []seq.Itemset{{1, 2}, {2, 3}, {3, 4}}}
	prefix := prefixOf(seq.Itemset{1}, seq.Itemset{3})

	fwd := forwardMatch(prefix, base)
	bwd := backwardMatch(prefix, base)

	require.Len(t, fwd, 2)
	require.Len(t, bwd, 2)
	assert.Equal(t, position{itemset: 0, item: 0}, fwd[0])
	assert.Equal(t, position{itemset: 1, item: 1}, fwd[1])
	assert.Equal(t, position{itemset: 0, item: 0}, bwd[0])
	assert.Equal(t, position{itemset: 2, item: 0}, bwd[1])
}

func TestMatchLeftmostAndRightmost(t *testing.T) {
	matched, ok := matchLeftmost(seq.Itemset{1, 3}, seq.Itemset{1, 2, 3, 4})
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, matched)

	_, ok = matchLeftmost(seq.Itemset{5}, seq.Itemset{1, 2, 3})
	assert.False(t, ok)

	matched, ok = matchRightmost(seq.Itemset{1, 3}, seq.Itemset{1, 3, 3})
	require.True(t, ok)
	assert.Equal(t, []int{0, 2}, matched)
}
