package dialect

import (
	"fmt"

	"irkit/internal/attr"
	"irkit/internal/ir"
)

// ValueAttr is the attribute name holding a constant's payload.
const ValueAttr = "value"

// Constant materializes an attribute as an SSA value: zero operands, one
// result, the payload in the "value" attribute.
var Constant = &ir.OpKind{
	Name: "arith.constant",
	Verify: func(op *ir.Operation) error {
		if op.NumOperands() != 0 || op.NumResults() != 1 {
			return fmt.Errorf("constant has no operands and exactly one result")
		}
		v, ok := op.Attr(ValueAttr)
		if !ok {
			return fmt.Errorf("constant needs a %q attribute", ValueAttr)
		}
		if v.Type() != op.Result(0).Type() {
			return fmt.Errorf("constant value type %s does not match result type %s", v.Type(), op.Result(0).Type())
		}
		return nil
	},
}

// AddI is two-operand integer addition.
var AddI = &ir.OpKind{
	Name:   "arith.addi",
	Verify: verifyBinaryInt,
}

// MulI is two-operand integer multiplication.
var MulI = &ir.OpKind{
	Name:   "arith.muli",
	Verify: verifyBinaryInt,
}

func verifyBinaryInt(op *ir.Operation) error {
	if op.NumOperands() != 2 || op.NumResults() != 1 {
		return fmt.Errorf("binary op needs two operands and one result")
	}
	lhs, rhs := op.Operand(0).Type(), op.Operand(1).Type()
	if lhs != rhs {
		return fmt.Errorf("operand types differ: %s vs %s", lhs, rhs)
	}
	if lhs.Kind != attr.KindIntegerType {
		return fmt.Errorf("operands must be integers, got %s", lhs)
	}
	if op.Result(0).Type() != lhs {
		return fmt.Errorf("result type %s does not match operand type %s", op.Result(0).Type(), lhs)
	}
	return nil
}

// NewConstant builds an arith.constant producing the attribute's value.
func NewConstant(v attr.Attribute) *ir.Operation {
	attrs := attr.NewDict()
	attrs.Set(ValueAttr, v)
	return ir.New(Constant, nil, []attr.Attribute{v.Type()}, attrs, nil, nil)
}

// NewConstantInt builds an i-width integer constant.
func NewConstantInt(v int64, bits uint16) *ir.Operation {
	return NewConstant(attr.Int(v, bits))
}

// NewAddI builds an arith.addi over two values of the same integer type.
func NewAddI(lhs, rhs ir.Value) *ir.Operation {
	return ir.New(AddI, []ir.Value{lhs, rhs}, []attr.Attribute{lhs.Type()}, nil, nil, nil)
}

// NewMulI builds an arith.muli over two values of the same integer type.
func NewMulI(lhs, rhs ir.Value) *ir.Operation {
	return ir.New(MulI, []ir.Value{lhs, rhs}, []attr.Attribute{lhs.Type()}, nil, nil, nil)
}
