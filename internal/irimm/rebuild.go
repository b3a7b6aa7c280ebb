package irimm

// RebuildBlock produces a new block from an existing immutable one while
// substituting values per env. New argument identities are minted, so
// references to the old block's arguments are invalid by construction.
// Operations that do not transitively reference a substituted value,
// including through nested regions, are reused by reference; only the
// affected subgraph is rebuilt, so cost is proportional to the touched
// part, not the whole block.
//
// env is extended in place with the old-to-new mappings for block arguments
// and the results of every rebuilt operation, so dependent operations later
// in the batch resolve to the new values.
func RebuildBlock(old *Block, env map[Value]Value) *Block {
	nb := &Block{}
	args := make([]*BlockArg, old.args.Len())
	for i := 0; i < old.args.Len(); i++ {
		oldArg := old.args.At(i)
		args[i] = &BlockArg{typ: oldArg.typ, block: nb, index: i}
		env[oldArg] = args[i]
	}
	nb.args = SealedList(args)

	ops := make([]*Op, 0, old.ops.Len())
	old.ops.Each(func(_ int, op *Op) bool {
		ops = append(ops, substituteIfRequired(op, env))
		return true
	})
	nb.ops = SealedList(ops)
	return nb
}

// substituteIfRequired returns op unchanged when nothing it transitively
// references is a key of env; otherwise it rebuilds op with remapped
// operands, recursing into exactly the nested blocks that need it and
// sharing the rest.
func substituteIfRequired(op *Op, env map[Value]Value) *Op {
	required := false

	newRegions := make([]*Region, 0, op.regions.Len())
	op.regions.Each(func(_ int, region *Region) bool {
		regionRequired := false
		newBlocks := make([]*Block, 0, region.blocks.Len())
		region.blocks.Each(func(_ int, block *Block) bool {
			if blockReferencesEnv(block, env) {
				required = true
				regionRequired = true
				newBlocks = append(newBlocks, RebuildBlock(block, env))
			} else {
				newBlocks = append(newBlocks, block)
			}
			return true
		})
		if regionRequired {
			newRegions = append(newRegions, NewRegion(newBlocks))
		} else {
			newRegions = append(newRegions, region)
		}
		return true
	})

	newOperands := make([]Operand, 0, op.operands.Len())
	op.operands.Each(func(_ int, operand Value) bool {
		if mapped, ok := env[operand]; ok {
			required = true
			newOperands = append(newOperands, UseValue(mapped))
		} else {
			newOperands = append(newOperands, UseValue(operand))
		}
		return true
	})

	if !required {
		return op
	}
	rebuilt := DeriveOp(op, Override{
		Operands: newOperands,
		Regions:  newRegions,
		Env:      env,
	})
	return rebuilt[len(rebuilt)-1]
}

// blockReferencesEnv reports whether any operation nested in the block,
// however deep, has an operand that is a key of env. Uses the abortable
// walk to stop at the first hit.
func blockReferencesEnv(block *Block, env map[Value]Value) bool {
	found := false
	block.WalkAbortable(func(op *Op) bool {
		clean := op.operands.Each(func(_ int, operand Value) bool {
			_, hit := env[operand]
			return !hit
		})
		if !clean {
			found = true
			return false
		}
		return true
	})
	return found
}
