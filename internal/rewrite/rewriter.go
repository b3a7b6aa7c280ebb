package rewrite

import (
	"fmt"

	"irkit/internal/ir"
)

// Rewriter is the mutation handle passed to a pattern's rewrite action. It
// is scoped to one matched operation; every mutation keeps use lists
// consistent immediately on return. Only the holder of the handle may alter
// the module during a rewrite.
type Rewriter struct {
	matched    *ir.Operation
	inserted   []*ir.Operation
	erased     []*ir.Operation
	newResults []*ir.OpResult
	freedDefs  []*ir.Operation
	changed    bool
}

// noteFreedDefs records the defining operations of op's operands before they
// are dropped, so the driver can revisit definitions that just lost a use.
func (r *Rewriter) noteFreedDefs(op *ir.Operation) {
	for _, v := range op.Operands() {
		if res, ok := v.(*ir.OpResult); ok {
			r.freedDefs = append(r.freedDefs, res.Owner())
		}
	}
}

func newRewriter(op *ir.Operation) *Rewriter {
	return &Rewriter{matched: op}
}

// Matched returns the operation the pattern matched.
func (r *Rewriter) Matched() *ir.Operation { return r.matched }

// Changed reports whether any mutation happened through this handle.
func (r *Rewriter) Changed() bool { return r.changed }

// InsertBefore inserts new operations immediately before the matched
// operation.
func (r *Rewriter) InsertBefore(ops ...*ir.Operation) {
	if len(ops) == 0 {
		return
	}
	parent := r.matched.Parent()
	if parent == nil {
		panic(fmt.Sprintf("rewrite: matched op %s is detached", r.matched.Name()))
	}
	parent.InsertBefore(r.matched, ops...)
	r.inserted = append(r.inserted, ops...)
	r.changed = true
}

// Replace substitutes the matched operation with the given operations,
// inserted in order at its position. The last operation's results replace
// the matched operation's results; all uses are redirected. With no
// replacements the matched operation is simply erased, which requires it to
// have no remaining uses.
func (r *Rewriter) Replace(with ...*ir.Operation) error {
	parent := r.matched.Parent()
	if parent == nil {
		return fmt.Errorf("rewrite: cannot replace detached op %s", r.matched.Name())
	}

	if len(with) == 0 {
		if r.matched.HasUses() {
			return fmt.Errorf("rewrite: cannot drop %s: results still in use", r.matched.Ref())
		}
		return r.Erase(r.matched)
	}

	last := with[len(with)-1]
	if last.NumResults() < r.matched.NumResults() {
		return fmt.Errorf("rewrite: replacement %s has %d results, %s needs %d",
			last.Name(), last.NumResults(), r.matched.Ref(), r.matched.NumResults())
	}

	parent.InsertBefore(r.matched, with...)
	r.inserted = append(r.inserted, with...)

	for i, res := range r.matched.Results() {
		ir.ReplaceAllUses(res, last.Result(i))
		r.newResults = append(r.newResults, last.Result(i))
	}

	parent.Remove(r.matched)
	r.noteFreedDefs(r.matched)
	r.matched.DropOperands()
	r.erased = append(r.erased, r.matched)
	r.changed = true
	return nil
}

// Erase removes an operation with no remaining uses.
func (r *Rewriter) Erase(op *ir.Operation) error {
	parent := op.Parent()
	if parent == nil {
		return fmt.Errorf("rewrite: cannot erase detached op %s", op.Name())
	}
	r.noteFreedDefs(op)
	if err := parent.Erase(op); err != nil {
		return err
	}
	r.erased = append(r.erased, op)
	r.changed = true
	return nil
}
