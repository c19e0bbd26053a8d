package output

import (
	"sort"

	"github.com/grailbio/bide/seq"
)

// MemoryCollector is the memory-mode sink: a collector indexable by
// pattern length. It never errors; Close is a no-op kept only to satisfy
// mine.Sink.
type MemoryCollector struct {
	byLength map[int][]seq.SequentialPattern
	total    int
}

// NewMemoryCollector returns an empty collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{byLength: make(map[int][]seq.SequentialPattern)}
}

// Emit records p under its item-occurrence-count bucket.
func (c *MemoryCollector) Emit(p seq.SequentialPattern) error {
	n := p.ItemOccurrenceCount()
	c.byLength[n] = append(c.byLength[n], p)
	c.total++
	return nil
}

// Close is a no-op; MemoryCollector holds no external resource.
func (c *MemoryCollector) Close() error { return nil }

// ByLength returns the patterns collected with exactly n item occurrences,
// in emission order. Callers must not mutate the returned slice.
func (c *MemoryCollector) ByLength(n int) []seq.SequentialPattern {
	return c.byLength[n]
}

// All flattens every bucket into one slice, ordered by increasing length and
// then emission order within a length (not a canonical order; use
// Canonicalize for that).
func (c *MemoryCollector) All() []seq.SequentialPattern {
	out := make([]seq.SequentialPattern, 0, c.total)
	lengths := make([]int, 0, len(c.byLength))
	for n := range c.byLength {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	for _, n := range lengths {
		out = append(out, c.byLength[n]...)
	}
	return out
}
