package irimm_test

import (
	"testing"

	"irkit/internal/attr"
	"irkit/internal/irimm"
)

func immConst(v int64) []*irimm.Op {
	attrs := attr.NewDict()
	attrs.Set("value", attr.Int(v, 64))
	return irimm.NewOp(irimm.OpSpec{
		Kind:        kConst,
		ResultTypes: []attr.Attribute{attr.I64()},
		Attrs:       attrs,
	})
}

func TestNewOp_ReturnsChainInDefinitionOrder(t *testing.T) {
	lhs := immConst(1)
	rhs := immConst(2)
	chain := irimm.NewOp(irimm.OpSpec{
		Kind:        kAdd,
		Operands:    []irimm.Operand{irimm.UseChain(lhs), irimm.UseChain(rhs)},
		ResultTypes: []attr.Attribute{attr.I64()},
	})

	if len(chain) != 3 {
		t.Fatalf("chain has %d ops, want 3", len(chain))
	}
	if chain[len(chain)-1].Name() != "t.add" {
		t.Error("new operation must come last")
	}
	// Both constants precede the add, so no reference precedes its
	// definition when the chain is inserted in order.
	for i, op := range chain[:2] {
		if op.Name() != "t.const" {
			t.Errorf("chain[%d] = %s, want t.const", i, op.Name())
		}
	}
	add := chain[2]
	if add.Operands().At(0) != chain[0].Result() && add.Operands().At(0) != chain[1].Result() {
		t.Error("add operand not threaded from the chain")
	}
}

func TestNewOp_DeduplicatesSharedChain(t *testing.T) {
	shared := immConst(7)
	chain := irimm.NewOp(irimm.OpSpec{
		Kind:        kAdd,
		Operands:    []irimm.Operand{irimm.UseChain(shared), irimm.UseChain(shared)},
		ResultTypes: []attr.Attribute{attr.I64()},
	})

	if len(chain) != 2 {
		t.Fatalf("chain has %d ops, want 2 (shared constant kept once)", len(chain))
	}
	add := chain[1]
	if add.Operands().At(0) != add.Operands().At(1) {
		t.Error("both operands should resolve to the shared result")
	}
	if add.Operands().At(0) != chain[0].Result() {
		t.Error("operand should resolve to the deduplicated definition")
	}
}

func TestDeriveOp_SharesDataWithoutAttrOverride(t *testing.T) {
	orig := immConst(3)[0]

	derived := irimm.DeriveOp(orig, irimm.Override{
		ResultTypes: []attr.Attribute{attr.IntegerType(32)},
	})
	out := derived[len(derived)-1]

	if out.Data() != orig.Data() {
		t.Error("derive without attr override must share the OpData record")
	}
	if out.ResultTypes()[0] != attr.IntegerType(32) {
		t.Error("result type override not applied")
	}
	if v, _ := out.Attr("value"); v.Int != 3 {
		t.Error("shared data must carry the original attributes")
	}
}

func TestDeriveOp_NewDataWithAttrOverride(t *testing.T) {
	orig := immConst(3)[0]

	attrs := attr.NewDict()
	attrs.Set("value", attr.Int(9, 64))
	derived := irimm.DeriveOp(orig, irimm.Override{Attrs: attrs})
	out := derived[len(derived)-1]

	if out.Data() == orig.Data() {
		t.Error("attr override must mint a fresh OpData record")
	}
	if v, _ := out.Attr("value"); v.Int != 9 {
		t.Errorf("value = %d, want 9", v.Int)
	}
	if v, _ := orig.Attr("value"); v.Int != 3 {
		t.Error("original must be untouched")
	}
}

func TestDeriveOp_EnvRemapsOperandsAndResults(t *testing.T) {
	oldDef := immConst(1)[0]
	newDef := immConst(2)[0]
	user := irimm.NewOp(irimm.OpSpec{
		Kind:        kAdd,
		Operands:    []irimm.Operand{irimm.UseValue(oldDef.Result()), irimm.UseValue(oldDef.Result())},
		ResultTypes: []attr.Attribute{attr.I64()},
	})
	old := user[len(user)-1]

	env := map[irimm.Value]irimm.Value{oldDef.Result(): newDef.Result()}
	derived := irimm.DeriveOp(old, irimm.Override{
		Operands: []irimm.Operand{irimm.UseValue(oldDef.Result()), irimm.UseValue(oldDef.Result())},
		Env:      env,
	})
	out := derived[len(derived)-1]

	if out.Operands().At(0) != newDef.Result() || out.Operands().At(1) != newDef.Result() {
		t.Error("operands should be remapped through env")
	}
	if mapped, ok := env[old.Result()]; !ok || mapped != out.Result() {
		t.Error("old results should be mapped to the new results in env")
	}
}

func TestOpAttrs_AreFrozen(t *testing.T) {
	op := immConst(1)[0]
	defer func() {
		if recover() == nil {
			t.Error("mutating an immutable op's attributes should panic")
		}
	}()
	op.Attrs().Set("value", attr.Int(2, 64))
}
