package rewrite

import "irkit/internal/ir"

// Walker drives a pattern set over a module to a fixpoint. The worklist is
// seeded with every operation in pre-order; after a mutation only the
// operations made newly reachable or newly modified by it are requeued, in
// the order the mutation discovered them, so repeated runs on the same
// input produce identical rewrite sequences. Termination is the pattern
// authors' responsibility; the driver does not bound iteration.
type Walker struct {
	applier *Applier
}

// NewWalker builds a fixpoint driver over the patterns in order.
func NewWalker(patterns ...Pattern) *Walker {
	return &Walker{applier: NewApplier(patterns...)}
}

// Rewrite applies the pattern set until no pattern applies anywhere. On a
// pattern error the module is left consistent up to the last completed
// mutation and the error is returned.
func (w *Walker) Rewrite(root *ir.Operation) error {
	var queue []*ir.Operation
	pending := make(map[*ir.Operation]bool)
	erased := make(map[*ir.Operation]bool)

	enqueue := func(op *ir.Operation) {
		if pending[op] || erased[op] {
			return
		}
		pending[op] = true
		queue = append(queue, op)
	}

	root.Walk(func(op *ir.Operation) { enqueue(op) })

	for len(queue) > 0 {
		op := queue[0]
		queue = queue[1:]
		pending[op] = false

		// Never revisit an operation through a stale reference.
		if erased[op] {
			continue
		}
		if op != root && op.Parent() == nil {
			continue
		}

		rw := newRewriter(op)
		matched, err := w.applier.MatchAndRewrite(op, rw)
		if err != nil {
			return err
		}
		if !matched || !rw.Changed() {
			continue
		}

		for _, e := range rw.erased {
			erased[e] = true
		}
		// Newly inserted operations, including anything nested in their
		// regions, in discovery order.
		for _, ins := range rw.inserted {
			if erased[ins] {
				continue
			}
			ins.Walk(func(nested *ir.Operation) { enqueue(nested) })
		}
		// Operations whose operands were redirected to the new results.
		for _, res := range rw.newResults {
			for _, u := range res.Uses() {
				enqueue(u.Owner)
			}
		}
		// Definitions that just lost a use may now be dead.
		for _, def := range rw.freedDefs {
			if def.Parent() != nil {
				enqueue(def)
			}
		}
	}
	return nil
}
