package irimm_test

import (
	"testing"

	"irkit/internal/attr"
	"irkit/internal/irimm"
)

// chainBlock builds a block computing (c1 + c2) with one extra constant that
// nothing references, so sharing can be observed per operation.
func chainBlock() (*irimm.Block, []*irimm.Op) {
	c1 := immConst(1)
	c2 := immConst(2)
	add := irimm.NewOp(irimm.OpSpec{
		Kind:        kAdd,
		Operands:    []irimm.Operand{irimm.UseChain(c1), irimm.UseChain(c2)},
		ResultTypes: []attr.Attribute{attr.I64()},
	})
	bystander := immConst(99)
	ops := append(append([]*irimm.Op{}, add...), bystander...)
	return irimm.NewBlock(nil, ops), ops
}

func TestRebuildBlock_SharesUntouchedOps(t *testing.T) {
	c := immConst(1)[0]
	argType := []attr.Attribute{attr.I64()}

	// The block's second op consumes the block's own argument; the first
	// references nothing substitutable.
	block := irimm.NewBlockBuild(argType, func(args []*irimm.BlockArg) []*irimm.Op {
		user := irimm.NewOp(irimm.OpSpec{
			Kind:        kAdd,
			Operands:    []irimm.Operand{irimm.UseValue(args[0]), irimm.UseValue(args[0])},
			ResultTypes: argType,
		})
		return append([]*irimm.Op{c}, user...)
	})

	env := make(map[irimm.Value]irimm.Value)
	rebuilt := irimm.RebuildBlock(block, env)

	if rebuilt == block {
		t.Fatal("rebuild must mint a new block")
	}
	if rebuilt.Args().At(0) == block.Args().At(0) {
		t.Error("rebuild must mint new argument identities")
	}
	// The constant references nothing substituted and is shared by pointer.
	if rebuilt.Ops().At(0) != block.Ops().At(0) {
		t.Error("untouched operation should be reused by reference")
	}
	// The argument user is rebuilt against the new argument.
	newUser := rebuilt.Ops().At(1)
	if newUser == block.Ops().At(1) {
		t.Error("operation referencing a substituted value must be rebuilt")
	}
	if newUser.Operands().At(0) != rebuilt.Args().At(0) {
		t.Error("rebuilt operation should reference the new argument")
	}
	// Rebuilt op shares the OpData record with the original.
	if newUser.Data() != block.Ops().At(1).Data() {
		t.Error("rebuild should share OpData with the original operation")
	}
}

func TestRebuildBlock_SubstitutesThroughEnv(t *testing.T) {
	block, ops := chainBlock()
	add := ops[2]
	replacement := immConst(42)[0]

	env := map[irimm.Value]irimm.Value{ops[0].Result(): replacement.Result()}
	rebuilt := irimm.RebuildBlock(block, env)

	var newAdd *irimm.Op
	rebuilt.Ops().Each(func(_ int, op *irimm.Op) bool {
		if op.Name() == "t.add" {
			newAdd = op
		}
		return true
	})
	if newAdd == nil {
		t.Fatal("add missing from rebuilt block")
	}
	if newAdd == add {
		t.Error("add uses a substituted value and must be rebuilt")
	}
	if newAdd.Operands().At(0) != replacement.Result() {
		t.Error("lhs should be substituted")
	}
	// The rhs constant and the bystander are untouched and shared.
	if rebuilt.Ops().At(1) != block.Ops().At(1) {
		t.Error("rhs constant should be shared by reference")
	}
	if rebuilt.Ops().At(3) != block.Ops().At(3) {
		t.Error("bystander constant should be shared by reference")
	}
	// env now maps the old add result for downstream blocks.
	if mapped, ok := env[add.Result()]; !ok || mapped != newAdd.Result() {
		t.Error("env should be extended with the rebuilt result mapping")
	}
}

func TestRebuildBlock_SharesUntouchedNestedRegions(t *testing.T) {
	// An op with a nested region that never references the substituted
	// value keeps the region by reference.
	inner := irimm.NewBlock(nil, []*irimm.Op{immConst(5)[0]})
	holder := irimm.NewOp(irimm.OpSpec{
		Kind:    kModule,
		Regions: []*irimm.Region{irimm.NewRegion([]*irimm.Block{inner})},
	})
	block := irimm.NewBlock(nil, holder)

	unrelated := immConst(1)[0]
	env := map[irimm.Value]irimm.Value{unrelated.Result(): immConst(2)[0].Result()}
	rebuilt := irimm.RebuildBlock(block, env)

	if rebuilt.Ops().At(0) != block.Ops().At(0) {
		t.Error("holder op is untouched and should be shared, nested region included")
	}
	if rebuilt.Ops().At(0).Region() != holder[len(holder)-1].Region() {
		t.Error("nested region should be shared by reference")
	}
}
