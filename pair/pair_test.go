package pair

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/bide/seq"
)

func TestTableRecordAccumulatesPerKey(t *testing.T) {
	tbl := NewTable()
	tbl.Record(1, false, false, 0)
	tbl.Record(1, false, false, 1)
	tbl.Record(2, false, false, 0)

	summaries := tbl.Summaries()
	assert.Len(t, summaries, 2)

	byItem := make(map[int]int)
	for _, s := range summaries {
		byItem[int(s.Key.Item)] = s.Support().Len()
	}
	assert.Equal(t, 2, byItem[1])
	assert.Equal(t, 1, byItem[2])
}

func TestTableRecordDedupsWithinKey(t *testing.T) {
	tbl := NewTable()
	tbl.Record(1, false, false, 0)
	tbl.Record(1, false, false, 0)
	summaries := tbl.Summaries()
	assert.Equal(t, 1, summaries[0].Support().Len())
}

func TestTableDistinguishesPrefixAndPostfix(t *testing.T) {
	tbl := NewTable()
	tbl.Record(1, true, false, 0)
	tbl.Record(1, false, false, 0)
	tbl.Record(1, false, true, 0)
	assert.Len(t, tbl.Summaries(), 3)
}

func TestFrequentKeysFiltersByMinsup(t *testing.T) {
	tbl := NewTable()
	tbl.Record(1, false, false, 0)
	tbl.Record(1, false, false, 1)
	tbl.Record(2, false, false, 0)

	freq := tbl.FrequentKeys(2)
	assert.Len(t, freq, 1)
	assert.Equal(t, seq.Item(1), freq[0].Key.Item)
}

func TestAnySupportEquals(t *testing.T) {
	tbl := NewTable()
	tbl.Record(1, false, false, 0)
	tbl.Record(2, false, false, 0)
	tbl.Record(2, false, false, 1)

	assert.True(t, tbl.AnySupportEquals(1))
	assert.True(t, tbl.AnySupportEquals(2))
	assert.False(t, tbl.AnySupportEquals(3))
}
