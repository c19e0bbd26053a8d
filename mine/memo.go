package mine

import (
	"encoding/binary"

	"github.com/minio/highwayhash"

	"github.com/grailbio/bide/seq"
)

// memoKey is a highwayhash fingerprint of a pattern's item sequence plus its
// support set. The driver keys closure-check results by it for the whole
// run, so a pattern with the same items and the same support set as one
// already checked reuses the stored result.
type memoKey = [highwayhash.Size]uint8

var zeroSeed = memoKey{}

type closureResult struct {
	backScanPrunes       bool
	backScanDone         bool
	hasBackwardExtension bool
	backwardDone         bool
}

// memo caches closure-oracle results within a single mining run. It is not
// safe for concurrent use; the driver never calls it from more than one
// goroutine.
type memo struct {
	buf     []byte
	entries map[memoKey]*closureResult
}

func newMemo() *memo {
	return &memo{entries: make(map[memoKey]*closureResult)}
}

func (m *memo) fingerprint(p seq.SequentialPattern) memoKey {
	m.buf = m.buf[:0]
	for _, is := range p.Itemsets {
		for _, it := range is {
			m.buf = appendUint32(m.buf, uint32(it))
		}
		m.buf = appendUint32(m.buf, 0xFFFFFFFF) // itemset terminator, mirrors the "-1" wire token
	}
	for _, id := range p.SupportSet.IDs() {
		m.buf = appendUint32(m.buf, uint32(id))
	}
	return highwayhash.Sum(m.buf, zeroSeed[:])
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func (m *memo) lookup(p seq.SequentialPattern) (*closureResult, memoKey) {
	k := m.fingerprint(p)
	r, ok := m.entries[k]
	if !ok {
		r = &closureResult{}
		m.entries[k] = r
	}
	return r, k
}
