package ir

import (
	"fmt"
	"strings"

	"irkit/internal/attr"
)

// Block owns an ordered list of arguments and operations. Arguments are
// stamped with their owning block and index at construction and never
// re-stamped.
type Block struct {
	args   []*BlockArgument
	ops    []*Operation
	parent *Region
}

// NewBlock creates a block with one argument per type.
func NewBlock(argTypes ...attr.Attribute) *Block {
	b := &Block{}
	b.args = make([]*BlockArgument, len(argTypes))
	for i, t := range argTypes {
		b.args[i] = &BlockArgument{typ: t, owner: b, index: i}
	}
	return b
}

// Parent returns the owning region, or nil for a detached block.
func (b *Block) Parent() *Region { return b.parent }

func (b *Block) NumArgs() int { return len(b.args) }

// Arg returns the i-th block argument.
func (b *Block) Arg(i int) *BlockArgument { return b.args[i] }

// Args returns the argument list. Callers must not modify it.
func (b *Block) Args() []*BlockArgument { return b.args }

// ArgTypes returns the argument types in order.
func (b *Block) ArgTypes() []attr.Attribute {
	out := make([]attr.Attribute, len(b.args))
	for i, a := range b.args {
		out[i] = a.typ
	}
	return out
}

// Ops returns the operation list. Callers must not modify it; use the
// insertion and removal methods so parent links stay consistent.
func (b *Block) Ops() []*Operation { return b.ops }

func (b *Block) NumOps() int { return len(b.ops) }

// Op returns the i-th operation.
func (b *Block) Op(i int) *Operation { return b.ops[i] }

// PushBack appends an operation, taking ownership.
func (b *Block) PushBack(ops ...*Operation) {
	for _, op := range ops {
		b.adopt(op)
		b.ops = append(b.ops, op)
	}
}

// InsertBefore inserts ops immediately before the given operation, which
// must belong to this block.
func (b *Block) InsertBefore(before *Operation, ops ...*Operation) {
	idx := b.indexOf(before)
	if idx < 0 {
		panic(fmt.Sprintf("ir: %s is not in block", before.Name()))
	}
	for _, op := range ops {
		b.adopt(op)
	}
	b.ops = append(b.ops[:idx], append(append([]*Operation(nil), ops...), b.ops[idx:]...)...)
}

// Remove unlinks an operation from the block without touching its operands
// or uses. The caller is responsible for use-list upkeep.
func (b *Block) Remove(op *Operation) {
	idx := b.indexOf(op)
	if idx < 0 {
		panic(fmt.Sprintf("ir: %s is not in block", op.Name()))
	}
	b.ops = append(b.ops[:idx], b.ops[idx+1:]...)
	op.parent = nil
}

// Erase removes an operation and drops its operand uses. The operation must
// have no remaining uses of its results.
func (b *Block) Erase(op *Operation) error {
	if op.HasUses() {
		return fmt.Errorf("ir: cannot erase %s: results still in use", op.Ref())
	}
	b.Remove(op)
	op.DropOperands()
	return nil
}

func (b *Block) adopt(op *Operation) {
	if op.parent != nil {
		panic(fmt.Sprintf("ir: %s already owned by a block", op.Name()))
	}
	op.parent = b
}

func (b *Block) indexOf(op *Operation) int {
	for i := range b.ops {
		if b.ops[i] == op {
			return i
		}
	}
	return -1
}

// Walk visits every operation in the block in order, depth-first.
func (b *Block) Walk(fn func(*Operation)) {
	for _, op := range b.ops {
		op.Walk(fn)
	}
}

// WalkAbortable is Walk with early termination. Returns false when aborted.
func (b *Block) WalkAbortable(fn func(*Operation) bool) bool {
	for _, op := range b.ops {
		if !op.WalkAbortable(fn) {
			return false
		}
	}
	return true
}

// Ref returns a stable printable path for the block.
func (b *Block) Ref() string {
	reg := b.parent
	if reg == nil || reg.parent == nil {
		return "bb?(detached)"
	}
	var segs []string
	segs = append(segs, fmt.Sprintf("r%d/bb%d", reg.parent.indexOfRegion(reg), reg.indexOf(b)))
	cur := reg.parent
	for cur.parent != nil {
		blk := cur.parent
		r := blk.parent
		if r == nil || r.parent == nil {
			break
		}
		segs = append(segs, fmt.Sprintf("r%d/bb%d/%d", r.parent.indexOfRegion(r), r.indexOf(blk), blk.indexOf(cur)))
		cur = r.parent
	}
	segs = append(segs, cur.Name())
	return strings.Join(reverse(segs), "/")
}
