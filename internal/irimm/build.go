package irimm

import (
	"irkit/internal/attr"
	"irkit/internal/ir"
)

// Operand expresses one operand for NewOp and DeriveOp: an already-defined
// value, a not-yet-inserted operation, or an ordered chain of such
// operations. For an operation or chain the last operation's first result
// is threaded through as the operand and its construction is folded into
// the list of operations to insert.
type Operand struct {
	value Value
	chain []*Op
}

// UseValue wraps an already-defined value.
func UseValue(v Value) Operand { return Operand{value: v} }

// UseOp wraps a single not-yet-inserted operation.
func UseOp(op *Op) Operand { return Operand{chain: []*Op{op}} }

// UseChain wraps an ordered chain of not-yet-inserted operations, typically
// the return value of a nested NewOp or DeriveOp call.
func UseChain(ops []*Op) Operand { return Operand{chain: ops} }

// UseValues wraps a slice of already-defined values.
func UseValues(vals []Value) []Operand {
	out := make([]Operand, len(vals))
	for i, v := range vals {
		out[i] = UseValue(v)
	}
	return out
}

// OpSpec describes a brand-new operation for NewOp.
type OpSpec struct {
	Kind        *ir.OpKind
	Operands    []Operand
	ResultTypes []attr.Attribute
	Attrs       *attr.Dict
	Successors  []*Block
	Regions     []*Region
}

// NewOp constructs a brand-new immutable operation. It returns every
// operation created in the current nesting of NewOp and DeriveOp calls in
// definition order, the new operation last.
func NewOp(spec OpSpec) []*Op {
	operands, created := unpackOperands(spec.Operands, nil)
	attrs := spec.Attrs
	if attrs == nil {
		attrs = attr.NewDict()
	}
	op := newOp(NewOpData(spec.Kind, attrs), operands, spec.ResultTypes, spec.Successors, spec.Regions)
	return append(created, op)
}

// Override lists the fields DeriveOp replaces; a nil field keeps the old
// operation's. When Attrs is nil the old OpData record is shared, which is
// what keeps unrelated graph parts byte-for-byte identical across rewrites.
// When Env is non-nil, operands found in it are remapped and the old
// operation's results are mapped to the new ones, for use during block
// rebuilding.
type Override struct {
	Operands    []Operand
	ResultTypes []attr.Attribute
	Attrs       *attr.Dict
	Successors  []*Block
	Regions     []*Region
	Env         map[Value]Value
}

// DeriveOp constructs a new operation assuming every field of old not named
// in the override. Returns the created operations in definition order, the
// derived operation last.
func DeriveOp(old *Op, o Override) []*Op {
	operands := o.Operands
	if operands == nil {
		operands = UseValues(old.operands.Slice())
	}
	resultTypes := o.ResultTypes
	if resultTypes == nil {
		resultTypes = old.ResultTypes()
	}
	successors := o.Successors
	if successors == nil {
		successors = old.successors.Slice()
	}
	regions := o.Regions
	if regions == nil {
		regions = old.regions.Slice()
	}

	vals, created := unpackOperands(operands, o.Env)

	var op *Op
	if o.Attrs == nil {
		op = newOp(old.data, vals, resultTypes, successors, regions)
	} else {
		op = newOp(NewOpData(old.Kind(), o.Attrs), vals, resultTypes, successors, regions)
	}
	created = append(created, op)

	if o.Env != nil {
		for i := 0; i < old.results.Len() && i < op.results.Len(); i++ {
			o.Env[old.results.At(i)] = op.results.At(i)
		}
	}
	return created
}

// unpackOperands resolves each operand to a concrete value and accumulates
// the not-yet-inserted operations in operand order. An operation referenced
// from several places is kept once at its first occurrence, so no reference
// ever precedes its definition in the returned list.
func unpackOperands(operands []Operand, env map[Value]Value) ([]Value, []*Op) {
	vals := make([]Value, 0, len(operands))
	var created []*Op
	for _, operand := range operands {
		var v Value
		if len(operand.chain) > 0 {
			last := operand.chain[len(operand.chain)-1]
			for _, op := range operand.chain {
				created = appendUnique(created, op)
			}
			v = last.Result()
		} else {
			v = operand.value
		}
		if env != nil {
			if mapped, ok := env[v]; ok {
				v = mapped
			}
		}
		vals = append(vals, v)
	}
	return vals, created
}

func appendUnique(ops []*Op, op *Op) []*Op {
	for i := range ops {
		if ops[i] == op {
			return ops
		}
	}
	return append(ops, op)
}
