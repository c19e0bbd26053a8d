// Package stats implements the run statistics probe: wall-clock timing,
// pattern counting, and a best-effort peak-RSS sample. Its values are
// advisory and never influence mining behavior.
package stats

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Probe accumulates statistics over the lifetime of a single mining run.
// It is safe to share a single Probe across a run; all mutation methods
// are safe to call from the (single-threaded) driver without additional
// synchronization, but use atomics so a concurrent CLI progress reporter
// can read consistent snapshots mid-run.
type Probe struct {
	start       time.Time
	patternCnt  int64
	peakAllocKB int64
}

// NewProbe starts a probe. Elapsed() is measured from this call.
func NewProbe() *Probe {
	return &Probe{start: time.Now()}
}

// IncPattern records one more emitted pattern. A nil Probe is a valid no-op
// receiver, so callers never need to nil-check an absent *Probe.
func (p *Probe) IncPattern() {
	if p == nil {
		return
	}
	atomic.AddInt64(&p.patternCnt, 1)
}

// Sample takes a best-effort memory snapshot via runtime.ReadMemStats and
// folds it into the running peak. Cheap enough to call once per recursive
// call in typical workloads, but callers driving very hot loops should
// call it on a cadence instead (e.g. every N singletons).
func (p *Probe) Sample() {
	if p == nil {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	kb := int64(m.Alloc / 1024)
	for {
		cur := atomic.LoadInt64(&p.peakAllocKB)
		if kb <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&p.peakAllocKB, cur, kb) {
			return
		}
	}
}

// Snapshot is an immutable view of a Probe at a point in time, suitable
// for serialization.
type Snapshot struct {
	ElapsedMillis int64 `json:"elapsed_ms"`
	PatternCount  int64 `json:"pattern_count"`
	PeakAllocKB   int64 `json:"peak_alloc_kb"`
}

// Snapshot freezes the probe's current state. A nil Probe yields a
// zero-elapsed, zero-count snapshot.
func (p *Probe) Snapshot() Snapshot {
	if p == nil {
		return Snapshot{}
	}
	return Snapshot{
		ElapsedMillis: time.Since(p.start).Milliseconds(),
		PatternCount:  atomic.LoadInt64(&p.patternCnt),
		PeakAllocKB:   atomic.LoadInt64(&p.peakAllocKB),
	}
}
