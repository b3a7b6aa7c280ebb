package dialect

import (
	"fmt"

	"irkit/internal/ir"
)

// Branch is an unconditional jump to a successor block, forwarding its
// operands as the successor's block arguments.
var Branch = &ir.OpKind{
	Name: "cf.br",
	Verify: func(op *ir.Operation) error {
		if len(op.Successors()) != 1 {
			return fmt.Errorf("br needs exactly one successor")
		}
		dest := op.Successors()[0]
		if op.NumOperands() != dest.NumArgs() {
			return fmt.Errorf("br forwards %d operands, successor expects %d", op.NumOperands(), dest.NumArgs())
		}
		for i, v := range op.Operands() {
			if v.Type() != dest.Arg(i).Type() {
				return fmt.Errorf("operand %d type %s does not match block argument type %s", i, v.Type(), dest.Arg(i).Type())
			}
		}
		return nil
	},
}

// NewBranch builds a cf.br to dest forwarding args.
func NewBranch(dest *ir.Block, args ...ir.Value) *ir.Operation {
	return ir.New(Branch, args, nil, nil, []*ir.Block{dest}, nil)
}

// Register adds every kind of the demo dialects to the registry.
func Register(r *ir.Registry) error {
	for _, k := range []*ir.OpKind{Module, Constant, AddI, MulI, Branch} {
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return nil
}
