package passes

import (
	"context"

	"irkit/internal/ir"
	"irkit/internal/pipeline"
	"irkit/internal/rewrite"
)

// EraseDeadOp removes an operation none of whose results are used. Container
// and control-flow operations (regions, successors, no results) are never
// touched. Erasing a dead operation frees its operands, so the driver's
// requeue cascades through whole dead chains.
func EraseDeadOp() rewrite.Pattern {
	return rewrite.PatternFunc(func(op *ir.Operation, rw *rewrite.Rewriter) (bool, error) {
		if op.NumResults() == 0 || op.NumRegions() > 0 || len(op.Successors()) > 0 {
			return false, nil
		}
		if op.HasUses() {
			return false, nil
		}
		return true, rw.Erase(op)
	})
}

// DCE erases every operation whose results are all unused, transitively. A
// value is live only if some operation or successor argument consumes it;
// a module with no consumers at all folds to empty blocks.
func DCE() pipeline.Pass {
	return pipeline.Pass{
		Name: "dce",
		Run: func(ctx context.Context, module *ir.Operation) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return rewrite.NewWalker(EraseDeadOp()).Rewrite(module)
		},
	}
}
