package dialect

import (
	"fmt"

	"irkit/internal/ir"
)

// Module is the root container kind: zero operands, zero results, one
// region holding a single block.
var Module = &ir.OpKind{
	Name: "builtin.module",
	Verify: func(op *ir.Operation) error {
		if op.NumOperands() != 0 || op.NumResults() != 0 {
			return fmt.Errorf("module takes no operands and produces no results")
		}
		if op.NumRegions() != 1 {
			return fmt.Errorf("module needs exactly one region, has %d", op.NumRegions())
		}
		return nil
	},
}

// NewModule builds an empty module: one region with one empty block.
func NewModule() *ir.Operation {
	return ir.New(Module, nil, nil, nil, nil, []*ir.Region{ir.NewRegion(ir.NewBlock())})
}

// Body returns the single block of a module.
func Body(module *ir.Operation) *ir.Block {
	return module.Region(0).Block()
}
