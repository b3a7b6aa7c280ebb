package match

import (
	"irkit/internal/attr"
	"irkit/internal/ir"
)

// Var is a named, typed binding slot. The concrete variable types below fix
// what a slot may bind: an operation, an attribute, a value or an
// operation result.
type Var interface {
	VarName() string
}

// OpVar binds an operation.
type OpVar struct{ name string }

// Op declares an operation variable.
func Op(name string) OpVar { return OpVar{name: name} }

func (v OpVar) VarName() string { return v.name }

// Get reads the binding; ok is false when unbound or bound to another kind
// of node.
func (v OpVar) Get(ctx *Context) (*ir.Operation, bool) {
	raw, ok := ctx.lookup(v.name)
	if !ok {
		return nil, false
	}
	op, ok := raw.(*ir.Operation)
	return op, ok
}

// Set binds the variable, or checks consistency when already bound.
func (v OpVar) Set(ctx *Context, op *ir.Operation) bool {
	return ctx.bind(v.name, op)
}

// AttrVar binds an attribute. Attribute equality is structural.
type AttrVar struct{ name string }

// Attr declares an attribute variable.
func Attr(name string) AttrVar { return AttrVar{name: name} }

func (v AttrVar) VarName() string { return v.name }

func (v AttrVar) Get(ctx *Context) (attr.Attribute, bool) {
	raw, ok := ctx.lookup(v.name)
	if !ok {
		return attr.Attribute{}, false
	}
	a, ok := raw.(attr.Attribute)
	return a, ok
}

func (v AttrVar) Set(ctx *Context, a attr.Attribute) bool {
	return ctx.bind(v.name, a)
}

// ValueVar binds any SSA value.
type ValueVar struct{ name string }

// Value declares a value variable.
func Value(name string) ValueVar { return ValueVar{name: name} }

func (v ValueVar) VarName() string { return v.name }

func (v ValueVar) Get(ctx *Context) (ir.Value, bool) {
	raw, ok := ctx.lookup(v.name)
	if !ok {
		return nil, false
	}
	val, ok := raw.(ir.Value)
	return val, ok
}

func (v ValueVar) Set(ctx *Context, val ir.Value) bool {
	return ctx.bind(v.name, val)
}

// ResultVar binds an operation result specifically.
type ResultVar struct{ name string }

// Result declares an operation-result variable.
func Result(name string) ResultVar { return ResultVar{name: name} }

func (v ResultVar) VarName() string { return v.name }

func (v ResultVar) Get(ctx *Context) (*ir.OpResult, bool) {
	raw, ok := ctx.lookup(v.name)
	if !ok {
		return nil, false
	}
	res, ok := raw.(*ir.OpResult)
	return res, ok
}

func (v ResultVar) Set(ctx *Context, res *ir.OpResult) bool {
	return ctx.bind(v.name, res)
}
