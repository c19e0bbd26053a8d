package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/bide/support"
)

func TestNewItemsetValidatesAscendingAndPositive(t *testing.T) {
	_, err := NewItemset([]Item{1, 2, 3})
	assert.NoError(t, err)

	_, err = NewItemset(nil)
	assert.Error(t, err)

	_, err = NewItemset([]Item{0, 1})
	assert.Error(t, err)

	_, err = NewItemset([]Item{2, 1})
	assert.Error(t, err)

	_, err = NewItemset([]Item{1, 1})
	assert.Error(t, err)
}

func TestItemsetIndexOf(t *testing.T) {
	is, err := NewItemset([]Item{1, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, 1, is.IndexOf(3))
	assert.Equal(t, -1, is.IndexOf(4))
	assert.Equal(t, -1, is.IndexOf(6))
}

func TestNewDatabaseAssignsDenseIDs(t *testing.T) {
	db, err := NewDatabase([][]Itemset{{{1}}, {{2}}})
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())
	assert.Equal(t, 0, db.At(0).ID)
	assert.Equal(t, 1, db.At(1).ID)
}

func TestNewDatabaseRejectsEmptySequence(t *testing.T) {
	_, err := NewDatabase([][]Itemset{{}})
	assert.Error(t, err)
}

func TestNewRewrittenAllowsEmptySequences(t *testing.T) {
	db := NewRewritten([]Sequence{{ID: 0, Itemsets: nil}})
	assert.Equal(t, 1, db.Len())
	assert.Empty(t, db.At(0).Itemsets)
}

func TestSequentialPatternExtendSAndI(t *testing.T) {
	s := support.NewIDSet([]int32{0})
	p := SequentialPattern{}
	p = p.ExtendS(1, s)
	p = p.ExtendS(2, s)
	p = p.ExtendI(3, s)

	require.Equal(t, 2, len(p.Itemsets))
	assert.Equal(t, Itemset{1}, p.Itemsets[0])
	assert.Equal(t, Itemset{2, 3}, p.Itemsets[1])
	assert.Equal(t, 3, p.ItemOccurrenceCount())
	assert.Equal(t, Item(1), p.ItemAt(0))
	assert.Equal(t, Item(2), p.ItemAt(1))
	assert.Equal(t, Item(3), p.ItemAt(2))
	assert.Equal(t, "1 -1 2 3 -1 ", p.String())
	assert.Equal(t, 1, p.AbsoluteSupport())
}

func TestExtendSDoesNotMutateParent(t *testing.T) {
	s := support.NewIDSet([]int32{0})
	base := SequentialPattern{}.ExtendS(1, s)
	child := base.ExtendS(2, s)
	assert.Equal(t, 1, len(base.Itemsets))
	assert.Equal(t, 2, len(child.Itemsets))
}
