package match

import (
	"irkit/internal/attr"
	"irkit/internal/ir"
)

// Constraint is a predicate over the match context. Constraints are
// evaluated strictly in declaration order with short-circuiting, so a
// constraint may rely on variables bound by earlier ones; declaration order
// is part of a query's meaning, not an optimization detail.
type Constraint interface {
	Match(ctx *Context) bool
}

type isKind struct {
	v    OpVar
	kind *ir.OpKind
}

// IsKind checks that the bound operation is of the given kind.
func IsKind(v OpVar, kind *ir.OpKind) Constraint {
	return isKind{v: v, kind: kind}
}

func (c isKind) Match(ctx *Context) bool {
	op, ok := c.v.Get(ctx)
	return ok && op.Kind() == c.kind
}

type eq struct {
	lhs, rhs Var
}

// Eq binds rhs to lhs's value, or when both are bound requires equality.
func Eq(lhs, rhs Var) Constraint { return eq{lhs: lhs, rhs: rhs} }

func (c eq) Match(ctx *Context) bool {
	val, ok := ctx.lookup(c.lhs.VarName())
	return ok && ctx.bind(c.rhs.VarName(), val)
}

type operandAt struct {
	op    OpVar
	index int
	out   ValueVar
}

// OperandAt projects the i-th operand of a bound operation into out.
func OperandAt(op OpVar, index int, out ValueVar) Constraint {
	return operandAt{op: op, index: index, out: out}
}

func (c operandAt) Match(ctx *Context) bool {
	op, ok := c.op.Get(ctx)
	if !ok || c.index >= op.NumOperands() {
		return false
	}
	return c.out.Set(ctx, op.Operand(c.index))
}

type resultAt struct {
	op    OpVar
	index int
	out   ResultVar
}

// ResultAt projects the i-th result of a bound operation into out.
func ResultAt(op OpVar, index int, out ResultVar) Constraint {
	return resultAt{op: op, index: index, out: out}
}

func (c resultAt) Match(ctx *Context) bool {
	op, ok := c.op.Get(ctx)
	if !ok || c.index >= op.NumResults() {
		return false
	}
	return c.out.Set(ctx, op.Result(c.index))
}

type attrOf struct {
	op   OpVar
	name string
	out  AttrVar
}

// AttrOf projects a named attribute of a bound operation into out. The
// constraint fails when the attribute is absent.
func AttrOf(op OpVar, name string, out AttrVar) Constraint {
	return attrOf{op: op, name: name, out: out}
}

func (c attrOf) Match(ctx *Context) bool {
	op, ok := c.op.Get(ctx)
	if !ok {
		return false
	}
	a, ok := op.Attr(c.name)
	if !ok {
		return false
	}
	return c.out.Set(ctx, a)
}

type attrIs struct {
	v    AttrVar
	want attr.Attribute
}

// AttrIs checks a bound attribute for structural equality with want.
func AttrIs(v AttrVar, want attr.Attribute) Constraint {
	return attrIs{v: v, want: want}
}

func (c attrIs) Match(ctx *Context) bool {
	a, ok := c.v.Get(ctx)
	return ok && a == c.want
}

type definingOp struct {
	val ValueVar
	out OpVar
}

// DefiningOp unwraps the operation defining a bound value, bridging from a
// value variable to an operation variable. Fails for block arguments.
func DefiningOp(val ValueVar, out OpVar) Constraint {
	return definingOp{val: val, out: out}
}

func (c definingOp) Match(ctx *Context) bool {
	v, ok := c.val.Get(ctx)
	if !ok {
		return false
	}
	res, ok := v.(*ir.OpResult)
	if !ok {
		return false
	}
	return c.out.Set(ctx, res.Owner())
}
