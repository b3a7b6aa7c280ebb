package match_test

import (
	"testing"

	"irkit/internal/attr"
	"irkit/internal/ir"
	"irkit/internal/match"
)

var (
	kModule = &ir.OpKind{Name: "m.module"}
	kConst  = &ir.OpKind{Name: "m.const"}
	kAdd    = &ir.OpKind{Name: "m.add"}
)

func mConst(v int64) *ir.Operation {
	attrs := attr.NewDict()
	attrs.Set("value", attr.Int(v, 64))
	return ir.New(kConst, nil, []attr.Attribute{attr.I64()}, attrs, nil, nil)
}

func mAdd(lhs, rhs ir.Value) *ir.Operation {
	return ir.New(kAdd, []ir.Value{lhs, rhs}, []attr.Attribute{attr.I64()}, nil, nil, nil)
}

func mModule(ops ...*ir.Operation) *ir.Operation {
	b := ir.NewBlock()
	b.PushBack(ops...)
	return ir.New(kModule, nil, nil, nil, nil, []*ir.Region{ir.NewRegion(b)})
}

// addOfConstants matches root = add whose operands are defined by constants
// and projects both constant payloads.
func addOfConstants() *match.Query {
	lhsVal, rhsVal := match.Value("lhs_val"), match.Value("rhs_val")
	lhsDef, rhsDef := match.Op("lhs_def"), match.Op("rhs_def")
	lhs, rhs := match.Attr("lhs"), match.Attr("rhs")
	return match.Root(kAdd).
		Declare(lhsVal, rhsVal, lhsDef, rhsDef, lhs, rhs).
		Where(
			match.OperandAt(match.RootVar(), 0, lhsVal),
			match.OperandAt(match.RootVar(), 1, rhsVal),
			match.DefiningOp(lhsVal, lhsDef),
			match.DefiningOp(rhsVal, rhsDef),
			match.IsKind(lhsDef, kConst),
			match.IsKind(rhsDef, kConst),
			match.AttrOf(lhsDef, "value", lhs),
			match.AttrOf(rhsDef, "value", rhs),
		)
}

func TestQuery_MatchBindsDeclaredVariables(t *testing.T) {
	c1, c2 := mConst(1), mConst(2)
	add := mAdd(c1.Result(0), c2.Result(0))
	mModule(c1, c2, add)

	b, ok := addOfConstants().Match(add)
	if !ok {
		t.Fatal("query should match")
	}
	if got := b["lhs"].(attr.Attribute).Int; got != 1 {
		t.Errorf("lhs = %d, want 1", got)
	}
	if got := b["rhs"].(attr.Attribute).Int; got != 2 {
		t.Errorf("rhs = %d, want 2", got)
	}
	if b[match.RootName].(*ir.Operation) != add {
		t.Error("root should be bound to the candidate")
	}
}

func TestQuery_MatchFailureIsNormalNegative(t *testing.T) {
	c := mConst(1)
	mModule(c)

	if _, ok := addOfConstants().Match(c); ok {
		t.Error("wrong kind should simply not match")
	}
}

func TestQuery_MatchIsIdempotentAndReadOnly(t *testing.T) {
	c1, c2 := mConst(1), mConst(2)
	add := mAdd(c1.Result(0), c2.Result(0))
	module := mModule(c1, c2, add)
	before := ir.DumpString(module)

	q := addOfConstants()
	first, ok1 := q.Match(add)
	second, ok2 := q.Match(add)
	if !ok1 || !ok2 {
		t.Fatal("both attempts should match")
	}
	if len(first) != len(second) {
		t.Error("repeated matching should produce the same bindings")
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("binding %q differs between runs", k)
		}
	}
	if ir.DumpString(module) != before {
		t.Error("matching must not mutate the module")
	}
}

func TestQuery_EqRejectsConflictingBinding(t *testing.T) {
	// Both operands must be the same value: matches x+x, rejects x+y.
	lhsVal, rhsVal := match.Value("lhs_val"), match.Value("rhs_val")
	q := match.Root(kAdd).
		Declare(lhsVal, rhsVal).
		Where(
			match.OperandAt(match.RootVar(), 0, lhsVal),
			match.OperandAt(match.RootVar(), 1, rhsVal),
			match.Eq(lhsVal, rhsVal),
		)

	c1, c2 := mConst(1), mConst(2)
	same := mAdd(c1.Result(0), c1.Result(0))
	diff := mAdd(c1.Result(0), c2.Result(0))
	mModule(c1, c2, same, diff)

	if _, ok := q.Match(same); !ok {
		t.Error("x+x should match")
	}
	if _, ok := q.Match(diff); ok {
		t.Error("x+y should not match: conflicting rebinding must fail")
	}
}

func TestQuery_UnboundDeclaredVariableFailsMatch(t *testing.T) {
	ghost := match.Attr("ghost")
	q := match.Root(kConst).Declare(ghost)

	c := mConst(1)
	mModule(c)

	if _, ok := q.Match(c); ok {
		t.Error("a declared but never bound variable must fail the match")
	}
}

func TestQuery_AttrIsAndConstraintOrder(t *testing.T) {
	v := match.Attr("v")
	q := match.Root(kConst).
		Declare(v).
		Where(
			match.AttrOf(match.RootVar(), "value", v),
			match.AttrIs(v, attr.Int(5, 64)),
		)

	hit, miss := mConst(5), mConst(6)
	mModule(hit, miss)

	if _, ok := q.Match(hit); !ok {
		t.Error("constant 5 should match")
	}
	if _, ok := q.Match(miss); ok {
		t.Error("constant 6 should not match")
	}
}

func TestQuery_DefiningOpFailsOnBlockArgument(t *testing.T) {
	val := match.Value("val")
	def := match.Op("def")
	q := match.Root(kAdd).
		Declare(val, def).
		Where(
			match.OperandAt(match.RootVar(), 0, val),
			match.DefiningOp(val, def),
		)

	b := ir.NewBlock(attr.I64())
	add := mAdd(b.Arg(0), b.Arg(0))
	b.PushBack(add)
	ir.New(kModule, nil, nil, nil, nil, []*ir.Region{ir.NewRegion(b)})

	if _, ok := q.Match(add); ok {
		t.Error("a block argument has no defining op; the match must fail")
	}
}

func TestQuery_MatchAllScansFresh(t *testing.T) {
	c1, c2, c3 := mConst(1), mConst(2), mConst(3)
	a1 := mAdd(c1.Result(0), c2.Result(0))
	a2 := mAdd(c2.Result(0), c3.Result(0))
	module := mModule(c1, c2, c3, a1, a2)

	all := addOfConstants().MatchAll(module)
	if len(all) != 2 {
		t.Fatalf("MatchAll found %d sites, want 2", len(all))
	}
	// Walk order: a1 before a2.
	if all[0][match.RootName].(*ir.Operation) != a1 {
		t.Error("first match should be the earlier op in walk order")
	}
	if all[1][match.RootName].(*ir.Operation) != a2 {
		t.Error("second match should be the later op in walk order")
	}
}
