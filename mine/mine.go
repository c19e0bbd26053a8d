// Package mine implements the BIDE+ driver: the initial item scan, the
// infrequent-item rewrite, and the recursive pattern-growth loop that ties
// together pseudoseq, project, scan, and closure into a closed sequential
// pattern miner.
package mine

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/grailbio/bide/closure"
	"github.com/grailbio/bide/pair"
	"github.com/grailbio/bide/project"
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/scan"
	"github.com/grailbio/bide/seq"
	"github.com/grailbio/bide/stats"
	"github.com/grailbio/bide/support"
)

// Sink receives every closed pattern the driver emits, in discovery order
// (not necessarily canonical order; see output.Canonicalize). Implemented
// by output.FileSink and output.MemoryCollector.
type Sink interface {
	Emit(p seq.SequentialPattern) error
	Close() error
}

// Opts configures a mining run. The zero value is valid: patterns are
// discarded (no Sink), no progress probe, native recursion with the
// default depth ceiling.
type Opts struct {
	// Sink receives emitted patterns. If nil, patterns are counted but
	// discarded.
	Sink Sink
	// Probe receives progress notifications. If nil, Run creates its own for
	// the duration of the call so that the returned Stats is always
	// meaningful.
	Probe *stats.Probe
	// MaxNativeDepth bounds how deep native Go recursion is allowed to go
	// before the driver switches to an explicit heap-allocated work stack.
	// Zero selects a default of 3000, comfortably inside the default
	// goroutine stack growth limit for the itemset sizes this algorithm is
	// practical for.
	MaxNativeDepth int
	// SampleEvery, if positive, calls Probe.Sample() once every N recursive
	// calls. Zero disables periodic sampling.
	SampleEvery int
}

// Stats is the run summary Run returns: a frozen stats.Snapshot.
type Stats = stats.Snapshot

const defaultMaxNativeDepth = 3000

func (o Opts) sink() Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return discardSink{}
}

func (o Opts) maxNativeDepth() int {
	if o.MaxNativeDepth > 0 {
		return o.MaxNativeDepth
	}
	return defaultMaxNativeDepth
}

type discardSink struct{}

func (discardSink) Emit(seq.SequentialPattern) error { return nil }
func (discardSink) Close() error                     { return nil }

// Run mines db for all closed sequential patterns with absolute support at
// least minSupport, writing them to opts.Sink as they are discovered. It
// returns once the whole pattern space has been explored or ctx is
// cancelled. Recursion deeper than opts.MaxNativeDepth continues on an
// explicit work stack rather than ending the run.
func Run(ctx context.Context, db *seq.Database, minSupport int, opts Opts) (Stats, error) {
	probe := opts.Probe
	if probe == nil {
		probe = stats.NewProbe()
	}
	if minSupport < 1 {
		return probe.Snapshot(), newError(KindInvalidInput, "minSupport must be >= 1", nil)
	}
	if db == nil || db.Len() == 0 {
		return probe.Snapshot(), newError(KindInvalidInput, "database must contain at least one sequence", nil)
	}
	if err := ctx.Err(); err != nil {
		return probe.Snapshot(), newError(KindResourceExhausted, "cancelled before mining started", errors.Wrap(err, "context"))
	}

	itemSupport := scanItemSupport(db)
	frequent := make(map[seq.Item]bool, len(itemSupport))
	for item, b := range itemSupport {
		if b.Build().Len() >= minSupport {
			frequent[item] = true
		}
	}
	log.Debug.Printf("mine: %d sequences, %d frequent items (minsup=%d)", db.Len(), len(frequent), minSupport)

	rewritten := filterItems(db, frequent)
	initial := buildInitialDatabase(rewritten)

	d := &driver{
		db:       rewritten,
		minsup:   minSupport,
		sink:     opts.sink(),
		probe:    probe,
		maxDepth: opts.maxNativeDepth(),
		memo:     newMemo(),
		sample:   opts.SampleEvery,
	}
	root := seq.SequentialPattern{}
	if _, err := d.recurseTop(ctx, root, initial, 0); err != nil {
		return probe.Snapshot(), err
	}
	if err := opts.sink().Close(); err != nil {
		return probe.Snapshot(), newError(KindIOFailure, "closing output sink", err)
	}
	return probe.Snapshot(), nil
}

// scanItemSupport performs the driver's initial scan: the set of base
// sequence IDs each item occurs in, anywhere.
func scanItemSupport(db *seq.Database) map[seq.Item]*support.IDSetBuilder {
	out := make(map[seq.Item]*support.IDSetBuilder)
	for _, s := range db.Sequences() {
		for _, is := range s.Itemsets {
			for _, it := range is {
				b, ok := out[it]
				if !ok {
					b = support.NewIDSetBuilder()
					out[it] = b
				}
				b.Add(int32(s.ID))
			}
		}
	}
	return out
}

// filterItems drops every occurrence of an infrequent item from db,
// collapsing any itemset this empties while preserving
// itemset boundaries and the original sequence ID numbering (a sequence
// left with no itemsets stays in the Database as an empty entry so that IDs
// referenced by other sequences' support sets remain valid indices; it is
// simply never wrapped into a pseudo-sequence).
func filterItems(db *seq.Database, frequent map[seq.Item]bool) *seq.Database {
	raw := db.Sequences()
	out := make([]seq.Sequence, len(raw))
	for i, s := range raw {
		var itemsets []seq.Itemset
		for _, is := range s.Itemsets {
			var filtered seq.Itemset
			for _, it := range is {
				if frequent[it] {
					filtered = append(filtered, it)
				}
			}
			if len(filtered) > 0 {
				itemsets = append(itemsets, filtered)
			}
		}
		out[i] = seq.Sequence{ID: s.ID, Itemsets: itemsets}
	}
	return seq.NewRewritten(out)
}

// buildInitialDatabase wraps every non-empty sequence of a rewritten
// Database into an open pseudo-sequence cursor, excluding sequences that
// filterItems emptied entirely.
func buildInitialDatabase(db *seq.Database) pseudoseq.Database {
	cursors := make([]pseudoseq.Cursor, 0, db.Len())
	for _, s := range db.Sequences() {
		if len(s.Itemsets) == 0 {
			continue
		}
		cursors = append(cursors, pseudoseq.New(db, s.ID))
	}
	return pseudoseq.Database{Cursors: cursors}
}

type driver struct {
	db       *seq.Database
	minsup   int
	sink     Sink
	probe    *stats.Probe
	maxDepth int
	memo     *memo
	sample   int
	calls    int
}

// recurseTop is the entry point shared by native and explicit-stack
// recursion: it runs the top of the recursion tree (the virtual empty
// prefix, whose children are exactly the frequent singletons) natively,
// falling through to the explicit stack only once depth would exceed
// d.maxDepth.
func (d *driver) recurseTop(ctx context.Context, prefix seq.SequentialPattern, pdb pseudoseq.Database, depth int) (int, error) {
	if depth >= d.maxDepth {
		return d.recurseStack(ctx, prefix, pdb)
	}
	return d.recurse(ctx, prefix, pdb, depth)
}

// recurse scans pdb for frequent pairs, extends prefix by each,
// recursively explores, and emits clones that survive the
// forward-extension and backward-extension closure tests. Called with an
// empty prefix at depth 0, its children are exactly the frequent
// singletons.
func (d *driver) recurse(ctx context.Context, prefix seq.SequentialPattern, pdb pseudoseq.Database, depth int) (int, error) {
	d.calls++
	if d.sample > 0 && d.calls%d.sample == 0 {
		d.probe.Sample()
	}
	if err := ctx.Err(); err != nil {
		return 0, newError(KindResourceExhausted, "cancelled during mining", errors.Wrap(err, "context"))
	}

	table := scan.FrequentPairs(pdb)
	summaries := table.FrequentKeys(d.minsup)

	maxSuccessorSupport := 0
	for _, s := range summaries {
		clone := extend(prefix, s)

		var childMax int
		if !d.backScanPrunes(clone) {
			childDB := project.Project(s.Key.Item, pdb, s.Key.IsPostfix)
			var err error
			childMax, err = d.recurseTop(ctx, clone, childDB, depth+1)
			if err != nil {
				return 0, err
			}
		}

		if err := d.maybeEmit(clone, childMax); err != nil {
			return 0, err
		}
		if sup := clone.AbsoluteSupport(); sup > maxSuccessorSupport {
			maxSuccessorSupport = sup
		}
	}
	return maxSuccessorSupport, nil
}

// extend applies the S- or I-extension indicated by a pair summary's key to
// prefix.
func extend(prefix seq.SequentialPattern, s pair.Summary) seq.SequentialPattern {
	supportSet := s.Support()
	if s.Key.IsPostfix {
		return prefix.ExtendI(s.Key.Item, supportSet)
	}
	return prefix.ExtendS(s.Key.Item, supportSet)
}

// maybeEmit applies the two closure tests: a prefix with a
// same-support forward extension (childMax == its own support) is not
// closed by definition and is never emitted regardless of the backward
// test; otherwise it is closed iff it has no same-support backward
// extension.
func (d *driver) maybeEmit(clone seq.SequentialPattern, childMax int) error {
	if clone.AbsoluteSupport() == childMax {
		return nil
	}
	if d.hasBackwardExtension(clone) {
		return nil
	}
	if err := d.sink.Emit(clone); err != nil {
		return newError(KindIOFailure, "emitting pattern", err)
	}
	d.probe.IncPattern()
	return nil
}

func (d *driver) backScanPrunes(clone seq.SequentialPattern) bool {
	r, _ := d.memo.lookup(clone)
	if !r.backScanDone {
		r.backScanPrunes = closure.BackScanPrunes(d.db, clone)
		r.backScanDone = true
	}
	return r.backScanPrunes
}

func (d *driver) hasBackwardExtension(clone seq.SequentialPattern) bool {
	r, _ := d.memo.lookup(clone)
	if !r.backwardDone {
		r.hasBackwardExtension = closure.HasBackwardExtension(d.db, clone)
		r.backwardDone = true
	}
	return r.hasBackwardExtension
}
