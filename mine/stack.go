package mine

import (
	"context"

	"github.com/pkg/errors"

	"github.com/grailbio/bide/pair"
	"github.com/grailbio/bide/project"
	"github.com/grailbio/bide/pseudoseq"
	"github.com/grailbio/bide/scan"
	"github.com/grailbio/bide/seq"
)

// frame is one level of the recursion tree, represented explicitly so it can
// live on the heap instead of the Go call stack. recurseStack simulates
// exactly the control flow of recurse: for each frequent pair in turn, build
// the clone, either prune it immediately (BackScanPrunes) or push a child
// frame to explore it, then once a result is available run the
// forward/backward closure tests and emission before moving to the next
// pair.
type frame struct {
	prefix    seq.SequentialPattern
	pdb       pseudoseq.Database
	summaries []pair.Summary
	idx       int
	maxSucc   int
	waiting   bool
	pending   seq.SequentialPattern
	childRes  int
}

// recurseStack is the explicit-work-stack alternative to recurse, engaged
// once native depth would exceed Opts.MaxNativeDepth to stay safe against
// adversarially deep recursion. It produces identical output and
// identical maxSuccessorSupport results to recurse; the only difference
// is where the per-level state lives.
func (d *driver) recurseStack(ctx context.Context, prefix seq.SequentialPattern, pdb pseudoseq.Database) (int, error) {
	root := &frame{prefix: prefix, pdb: pdb}
	root.summaries = scan.FrequentPairs(pdb).FrequentKeys(d.minsup)
	stack := []*frame{root}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, newError(KindResourceExhausted, "cancelled during mining", errors.Wrap(err, "context"))
		}
		cur := stack[len(stack)-1]

		if cur.waiting {
			if err := d.finishCandidate(cur); err != nil {
				return 0, err
			}
			cur.waiting = false
			cur.idx++
			continue
		}

		if cur.idx >= len(cur.summaries) {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return cur.maxSucc, nil
			}
			stack[len(stack)-1].childRes = cur.maxSucc
			continue
		}

		d.calls++
		if d.sample > 0 && d.calls%d.sample == 0 {
			d.probe.Sample()
		}

		s := cur.summaries[cur.idx]
		clone := extend(cur.prefix, s)

		if d.backScanPrunes(clone) {
			cur.pending = clone
			cur.childRes = 0
			if err := d.finishCandidate(cur); err != nil {
				return 0, err
			}
			cur.idx++
			continue
		}

		childDB := project.Project(s.Key.Item, cur.pdb, s.Key.IsPostfix)
		child := &frame{prefix: clone, pdb: childDB}
		child.summaries = scan.FrequentPairs(childDB).FrequentKeys(d.minsup)
		cur.pending = clone
		cur.waiting = true
		stack = append(stack, child)
	}
	return 0, nil
}

// finishCandidate runs the same post-recursion logic recurse applies inline:
// it uses cur.childRes (zero if the candidate was pruned directly, never
// recursed into) as the child's maxSuccessorSupport.
func (d *driver) finishCandidate(cur *frame) error {
	clone := cur.pending
	childMax := cur.childRes
	cur.childRes = 0
	if err := d.maybeEmit(clone, childMax); err != nil {
		return err
	}
	if sup := clone.AbsoluteSupport(); sup > cur.maxSucc {
		cur.maxSucc = sup
	}
	return nil
}
