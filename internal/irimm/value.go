package irimm

import (
	"fmt"

	"irkit/internal/attr"
)

// Value is an immutable SSA value: a result of an Op or an argument of a
// Block. Identity is pointer identity; two distinct nodes never compare
// equal even with identical contents.
type Value interface {
	// Type returns the value's type attribute.
	Type() attr.Attribute
	// Ref returns a short printable description for diagnostics.
	Ref() string

	isValue()
}

// Result is a value produced by an immutable operation. The (op, index)
// pair is set at Op construction and never changes.
type Result struct {
	typ   attr.Attribute
	op    *Op
	index int
}

func (r *Result) Type() attr.Attribute { return r.typ }

// Op returns the producing operation.
func (r *Result) Op() *Op { return r.op }

// Index returns the result position.
func (r *Result) Index() int { return r.index }

func (r *Result) Ref() string {
	return fmt.Sprintf("%s#%d", r.op.Name(), r.index)
}

func (r *Result) isValue() {}

// BlockArg is a value owned by an immutable block. The (block, index) pair
// is set during block construction and never changes.
type BlockArg struct {
	typ   attr.Attribute
	block *Block
	index int
}

func (a *BlockArg) Type() attr.Attribute { return a.typ }

// Block returns the owning block.
func (a *BlockArg) Block() *Block { return a.block }

// Index returns the argument position.
func (a *BlockArg) Index() int { return a.index }

func (a *BlockArg) Ref() string {
	return fmt.Sprintf("blockarg^%d:%s", a.index, a.typ)
}

func (a *BlockArg) isValue() {}
