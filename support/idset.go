// Package support implements IDSet, the sorted base-sequence-ID support set
// shared by sequential patterns, pair summaries, and the driver's initial
// per-item scan.
package support

import (
	"encoding/binary"
	"sort"

	farm "github.com/dgryski/go-farm"
)

// IDSet is an immutable-by-convention set of base sequence IDs, kept sorted
// so that equality, subset, and fingerprint checks are cheap and
// deterministic. The zero value is an empty set.
//
// A 64-bit fingerprint is carried alongside the sorted IDs. It is a fast,
// advisory pre-check for equality: a fingerprint mismatch proves the sets
// differ without touching the slices, but a match must still be confirmed
// with Equal before being relied on, since farm.Hash64WithSeed is not
// collision-free.
type IDSet struct {
	ids         []int32
	fingerprint uint64
	fpValid     bool
}

// NewIDSet builds an IDSet from a set of IDs. The input need not be sorted
// or deduplicated.
func NewIDSet(ids []int32) *IDSet {
	cp := append([]int32(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	cp = dedupSorted(cp)
	return &IDSet{ids: cp}
}

func dedupSorted(ids []int32) []int32 {
	if len(ids) < 2 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the cardinality of the set (the absolute support).
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the sorted, deduplicated IDs. Callers must not mutate it.
func (s *IDSet) IDs() []int32 {
	if s == nil {
		return nil
	}
	return s.ids
}

// Contains reports whether id is a member.
func (s *IDSet) Contains(id int32) bool {
	if s == nil {
		return false
	}
	i := sort.Search(len(s.ids), func(i int) bool { return s.ids[i] >= id })
	return i < len(s.ids) && s.ids[i] == id
}

// Fingerprint returns a 64-bit hash of the sorted ID sequence, computed once
// and cached. Equal compares fingerprints before comparing the IDs
// themselves.
func (s *IDSet) Fingerprint() uint64 {
	if s == nil {
		return farm.Hash64WithSeed(nil, 0)
	}
	if !s.fpValid {
		buf := make([]byte, 4*len(s.ids))
		for i, id := range s.ids {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(id))
		}
		s.fingerprint = farm.Hash64WithSeed(buf, uint64(len(s.ids)))
		s.fpValid = true
	}
	return s.fingerprint
}

// Equal reports whether the two sets contain exactly the same IDs. The
// fingerprint is checked first as a fast negative test.
func (s *IDSet) Equal(other *IDSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Fingerprint() != other.Fingerprint() {
		return false
	}
	for i, id := range s.IDs() {
		if other.IDs()[i] != id {
			return false
		}
	}
	return true
}

// Intersect returns the intersection of the receiver with allowed, in ID
// order.
func (s *IDSet) Intersect(allowed *IDSet) *IDSet {
	if s == nil || allowed == nil {
		return &IDSet{}
	}
	out := make([]int32, 0, min(s.Len(), allowed.Len()))
	i, j := 0, 0
	a, b := s.ids, allowed.ids
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return &IDSet{ids: out}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IDSetBuilder accumulates IDs (typically while scanning a pseudo-database)
// before being frozen into an IDSet. Unlike IDSet, it tolerates duplicate
// Add calls for the same ID within one scan, matching the "at most one
// pseudo-sequence per base sequence per projection step" invariant.
type IDSetBuilder struct {
	seen  map[int32]struct{}
	ids   []int32
	built *IDSet
}

// NewIDSetBuilder returns an empty builder.
func NewIDSetBuilder() *IDSetBuilder {
	return &IDSetBuilder{seen: make(map[int32]struct{})}
}

// Add records id as a member, ignoring repeats.
func (b *IDSetBuilder) Add(id int32) {
	if _, ok := b.seen[id]; ok {
		return
	}
	b.seen[id] = struct{}{}
	b.ids = append(b.ids, id)
	b.built = nil
}

// Build freezes the accumulated IDs into an IDSet. The result is cached
// until the next Add.
func (b *IDSetBuilder) Build() *IDSet {
	if b.built == nil {
		b.built = NewIDSet(b.ids)
	}
	return b.built
}
