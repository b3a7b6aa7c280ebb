package irimm

import (
	"fmt"

	"irkit/internal/attr"
	"irkit/internal/ir"
)

// FromOperation builds an immutable mirror of a mutable operation and
// everything nested in it. The mutable graph is left untouched.
func FromOperation(op *ir.Operation) (*Op, error) {
	return FromOperationInto(op, make(map[ir.Value]Value), make(map[*ir.Block]*Block))
}

// FromOperationInto is FromOperation recording the value and block
// correspondence into the supplied maps. Operands referencing values
// converted earlier resolve through vmap; an operand result not yet visited
// is converted on demand, recursively.
func FromOperationInto(op *ir.Operation, vmap map[ir.Value]Value, bmap map[*ir.Block]*Block) (*Op, error) {
	operands := make([]Value, 0, op.NumOperands())
	for _, operand := range op.Operands() {
		switch v := operand.(type) {
		case *ir.OpResult:
			if mapped, ok := vmap[v]; ok {
				operands = append(operands, mapped)
				continue
			}
			def, err := FromOperationInto(v.Owner(), vmap, bmap)
			if err != nil {
				return nil, err
			}
			operands = append(operands, def.Results().At(v.Index()))
		case *ir.BlockArgument:
			mapped, ok := vmap[v]
			if !ok {
				return nil, &UnresolvedValueError{Op: op.Ref(), Value: v.Ref()}
			}
			operands = append(operands, mapped)
		default:
			return nil, fmt.Errorf("irimm: %s: unknown value variant", op.Ref())
		}
	}

	successors := make([]*Block, len(op.Successors()))
	for i, succ := range op.Successors() {
		mapped, ok := bmap[succ]
		if !ok {
			return nil, &UnresolvedBlockError{Op: op.Ref(), Index: i}
		}
		successors[i] = mapped
	}

	regions := make([]*Region, 0, op.NumRegions())
	for _, region := range op.Regions() {
		imm, err := regionFromMutable(region, vmap, bmap)
		if err != nil {
			return nil, err
		}
		regions = append(regions, imm)
	}

	resultTypes := make([]attr.Attribute, op.NumResults())
	for i, res := range op.Results() {
		resultTypes[i] = res.Type()
	}

	data := NewOpData(op.Kind(), op.Attrs())
	imm := newOp(data, operands, resultTypes, successors, regions)
	for i, res := range op.Results() {
		vmap[res] = imm.results.At(i)
	}
	return imm, nil
}

// regionFromMutable converts a region in two phases: first every block is
// created with its arguments and recorded in bmap, then operations are
// converted. This way successor references, including forward branches,
// always resolve.
func regionFromMutable(region *ir.Region, vmap map[ir.Value]Value, bmap map[*ir.Block]*Block) (*Region, error) {
	blocks := make([]*Block, region.NumBlocks())
	for i, b := range region.Blocks() {
		nb := &Block{}
		args := make([]*BlockArg, b.NumArgs())
		for j, a := range b.Args() {
			args[j] = &BlockArg{typ: a.Type(), block: nb, index: j}
			vmap[a] = args[j]
		}
		nb.args = SealedList(args)
		bmap[b] = nb
		blocks[i] = nb
	}
	for i, b := range region.Blocks() {
		ops := make([]*Op, 0, b.NumOps())
		for _, op := range b.Ops() {
			imm, err := FromOperationInto(op, vmap, bmap)
			if err != nil {
				return nil, err
			}
			ops = append(ops, imm)
		}
		blocks[i].ops = SealedList(ops)
	}
	return NewRegion(blocks), nil
}

// MutableCopy rebuilds a fresh mutable subgraph from the immutable node,
// leaving the immutable source untouched.
func (o *Op) MutableCopy() (*ir.Operation, error) {
	return o.MutableCopyInto(make(map[Value]ir.Value), make(map[*Block]*ir.Block))
}

// MutableCopyInto is MutableCopy recording the value and block
// correspondence into the supplied maps. An operand or successor missing
// from the maps fails with an unresolved-reference error; no placeholder is
// ever substituted.
func (o *Op) MutableCopyInto(vmap map[Value]ir.Value, bmap map[*Block]*ir.Block) (*ir.Operation, error) {
	operands := make([]ir.Value, o.operands.Len())
	for i := 0; i < o.operands.Len(); i++ {
		operand := o.operands.At(i)
		mapped, ok := vmap[operand]
		if !ok {
			return nil, &UnresolvedValueError{Op: o.Name(), Value: operand.Ref()}
		}
		operands[i] = mapped
	}

	successors := make([]*ir.Block, o.successors.Len())
	for i := 0; i < o.successors.Len(); i++ {
		mapped, ok := bmap[o.successors.At(i)]
		if !ok {
			return nil, &UnresolvedBlockError{Op: o.Name(), Index: i}
		}
		successors[i] = mapped
	}

	regions := make([]*ir.Region, o.regions.Len())
	for i := 0; i < o.regions.Len(); i++ {
		region, err := o.regions.At(i).mutableCopy(vmap, bmap)
		if err != nil {
			return nil, err
		}
		regions[i] = region
	}

	op := ir.New(o.Kind(), operands, o.ResultTypes(), o.Attrs().Clone(), successors, regions)
	for i := 0; i < o.results.Len(); i++ {
		vmap[o.results.At(i)] = op.Result(i)
	}
	return op, nil
}

func (r *Region) mutableCopy(vmap map[Value]ir.Value, bmap map[*Block]*ir.Block) (*ir.Region, error) {
	blocks := make([]*ir.Block, r.blocks.Len())
	for i := 0; i < r.blocks.Len(); i++ {
		b := r.blocks.At(i)
		nb := ir.NewBlock(b.ArgTypes()...)
		for j := 0; j < b.args.Len(); j++ {
			vmap[b.args.At(j)] = nb.Arg(j)
		}
		bmap[b] = nb
		blocks[i] = nb
	}
	for i := 0; i < r.blocks.Len(); i++ {
		b := r.blocks.At(i)
		ok := true
		var err error
		b.ops.Each(func(_ int, op *Op) bool {
			var mop *ir.Operation
			mop, err = op.MutableCopyInto(vmap, bmap)
			if err != nil {
				ok = false
				return false
			}
			blocks[i].PushBack(mop)
			return true
		})
		if !ok {
			return nil, err
		}
	}
	region := ir.NewRegion(blocks...)
	return region, nil
}
