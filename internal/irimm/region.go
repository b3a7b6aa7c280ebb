package irimm

// Region is an immutable region: a sealed list of blocks. Regions are
// freely shared between operation versions; a region untouched by a rewrite
// is referenced, not copied.
type Region struct {
	blocks *List[*Block]
}

// NewRegion creates a region over the given blocks and seals it.
func NewRegion(blocks []*Block) *Region {
	return &Region{blocks: SealedList(blocks)}
}

// Blocks returns the sealed block list.
func (r *Region) Blocks() *List[*Block] { return r.blocks }

// Block returns the first block, or nil for an empty region.
func (r *Region) Block() *Block {
	if b, ok := r.blocks.First(); ok {
		return b
	}
	return nil
}

// Ops returns the operations of the first block, the common single-block
// accessor.
func (r *Region) Ops() *List[*Op] {
	if b := r.Block(); b != nil {
		return b.ops
	}
	return SealedList[*Op](nil)
}

// Walk visits every operation in the region depth-first in order.
func (r *Region) Walk(fn func(*Op)) {
	r.blocks.Each(func(_ int, b *Block) bool {
		b.Walk(fn)
		return true
	})
}

// WalkAbortable is Walk with early termination. Returns false when aborted.
func (r *Region) WalkAbortable(fn func(*Op) bool) bool {
	return r.blocks.Each(func(_ int, b *Block) bool {
		return b.WalkAbortable(fn)
	})
}

// ValueUsedInside reports whether any operation nested in the region uses
// the value, stopping at the first hit.
func (r *Region) ValueUsedInside(v Value) bool {
	used := false
	r.WalkAbortable(func(op *Op) bool {
		found := op.Operands().Each(func(_ int, operand Value) bool {
			return operand != v
		})
		if !found {
			used = true
			return false
		}
		return true
	})
	return used
}
