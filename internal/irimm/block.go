package irimm

import "irkit/internal/attr"

// Block is an immutable block: sealed argument and operation lists.
// Argument identities are minted inside the constructor; a block argument's
// owner link is set exactly once and never re-stamped.
type Block struct {
	args *List[*BlockArg]
	ops  *List[*Op]
}

// NewBlock creates a block with one freshly minted argument per type.
func NewBlock(argTypes []attr.Attribute, ops []*Op) *Block {
	b := &Block{}
	args := make([]*BlockArg, len(argTypes))
	for i, t := range argTypes {
		args[i] = &BlockArg{typ: t, block: b, index: i}
	}
	b.args = SealedList(args)
	b.ops = SealedList(ops)
	return b
}

// NewBlockBuild creates a block whose operations may reference its own
// arguments: the arguments are minted first and handed to build, which
// returns the operation list.
func NewBlockBuild(argTypes []attr.Attribute, build func(args []*BlockArg) []*Op) *Block {
	b := &Block{}
	args := make([]*BlockArg, len(argTypes))
	for i, t := range argTypes {
		args[i] = &BlockArg{typ: t, block: b, index: i}
	}
	b.args = SealedList(args)
	b.ops = SealedList(build(args))
	return b
}

// Args returns the sealed argument list.
func (b *Block) Args() *List[*BlockArg] { return b.args }

// Ops returns the sealed operation list.
func (b *Block) Ops() *List[*Op] { return b.ops }

// ArgTypes returns the argument types in order.
func (b *Block) ArgTypes() []attr.Attribute {
	out := make([]attr.Attribute, b.args.Len())
	for i := range out {
		out[i] = b.args.At(i).typ
	}
	return out
}

// Walk visits every operation in the block depth-first in order.
func (b *Block) Walk(fn func(*Op)) {
	b.ops.Each(func(_ int, op *Op) bool {
		op.Walk(fn)
		return true
	})
}

// WalkAbortable is Walk with early termination. Returns false when aborted.
func (b *Block) WalkAbortable(fn func(*Op) bool) bool {
	return b.ops.Each(func(_ int, op *Op) bool {
		return op.WalkAbortable(fn)
	})
}
