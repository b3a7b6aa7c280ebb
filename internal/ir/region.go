package ir

// Region owns an ordered list of blocks. The single-block region is the
// common case and gets convenience accessors.
type Region struct {
	blocks []*Block
	parent *Operation
}

// NewRegion creates a region owning the given blocks.
func NewRegion(blocks ...*Block) *Region {
	r := &Region{}
	for _, b := range blocks {
		r.Push(b)
	}
	return r
}

// Parent returns the owning operation, or nil for a detached region.
func (r *Region) Parent() *Operation { return r.parent }

// Blocks returns the block list. Callers must not modify it.
func (r *Region) Blocks() []*Block { return r.blocks }

func (r *Region) NumBlocks() int { return len(r.blocks) }

// Push appends a block, taking ownership.
func (r *Region) Push(b *Block) {
	if b.parent != nil {
		panic("ir: block already owned by a region")
	}
	b.parent = r
	r.blocks = append(r.blocks, b)
}

// Block returns the first block, or nil for an empty region.
func (r *Region) Block() *Block {
	if len(r.blocks) == 0 {
		return nil
	}
	return r.blocks[0]
}

// Ops returns the operations of the first block, the common single-block
// accessor.
func (r *Region) Ops() []*Operation {
	if b := r.Block(); b != nil {
		return b.Ops()
	}
	return nil
}

func (r *Region) indexOf(b *Block) int {
	for i := range r.blocks {
		if r.blocks[i] == b {
			return i
		}
	}
	return -1
}

// Walk visits every operation in the region depth-first in order.
func (r *Region) Walk(fn func(*Operation)) {
	for _, b := range r.blocks {
		b.Walk(fn)
	}
}

// WalkAbortable is Walk with early termination. Returns false when aborted.
func (r *Region) WalkAbortable(fn func(*Operation) bool) bool {
	for _, b := range r.blocks {
		if !b.WalkAbortable(fn) {
			return false
		}
	}
	return true
}

// ValueUsedInside reports whether any operation nested in the region uses
// the value. Uses the abortable walk to stop at the first hit.
func (r *Region) ValueUsedInside(v Value) bool {
	used := false
	r.WalkAbortable(func(op *Operation) bool {
		for _, operand := range op.Operands() {
			if operand == v {
				used = true
				return false
			}
		}
		return true
	})
	return used
}
