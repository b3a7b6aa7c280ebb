package ir

import (
	"errors"
	"fmt"
)

// Verify checks structural invariants of the operation and everything it
// owns, then invokes each kind's verification hook.
// Returns a joined error listing every violation.
func Verify(root *Operation) error {
	var errs []error
	root.Walk(func(op *Operation) {
		// 1. Ownership back-pointers form a consistent tree
		if err := verifyOwnership(op); err != nil {
			errs = append(errs, err)
		}
		// 2. Use-def wiring is symmetric
		if err := verifyUses(op); err != nil {
			errs = append(errs, err)
		}
		// 3. Successors point sideways within the enclosing region
		if err := verifySuccessors(op); err != nil {
			errs = append(errs, err)
		}
		// 4. Kind-specific hook
		if err := op.Verify(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", op.Ref(), err))
		}
	})
	return errors.Join(errs...)
}

func verifyOwnership(op *Operation) error {
	var errs []error
	for i, r := range op.regions {
		if r.parent != op {
			errs = append(errs, fmt.Errorf("%s: region %d parent link broken", op.Ref(), i))
		}
		for j, b := range r.blocks {
			if b.parent != r {
				errs = append(errs, fmt.Errorf("%s: block %d of region %d parent link broken", op.Ref(), j, i))
			}
			for _, nested := range b.ops {
				if nested.parent != b {
					errs = append(errs, fmt.Errorf("%s: nested op %s parent link broken", op.Ref(), nested.Name()))
				}
			}
			for k, arg := range b.args {
				if arg.owner != b || arg.index != k {
					errs = append(errs, fmt.Errorf("%s: argument %d of block %d mis-stamped", op.Ref(), k, j))
				}
			}
		}
	}
	for i, res := range op.results {
		if res.owner != op || res.index != i {
			errs = append(errs, fmt.Errorf("%s: result %d mis-stamped", op.Ref(), i))
		}
	}
	return errors.Join(errs...)
}

func verifyUses(op *Operation) error {
	var errs []error
	for i, v := range op.operands {
		found := false
		for _, u := range v.Uses() {
			if u.Owner == op && u.Index == i {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("%s: operand %d missing from use list of %s", op.Ref(), i, v.Ref()))
		}
	}
	return errors.Join(errs...)
}

func verifySuccessors(op *Operation) error {
	if len(op.successors) == 0 {
		return nil
	}
	if op.parent == nil || op.parent.parent == nil {
		return fmt.Errorf("%s: has successors but is not nested in a region", op.Ref())
	}
	region := op.parent.parent
	var errs []error
	for i, succ := range op.successors {
		if succ.parent != region {
			errs = append(errs, fmt.Errorf("%s: successor %d is outside the enclosing region", op.Ref(), i))
		}
	}
	return errors.Join(errs...)
}
