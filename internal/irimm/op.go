package irimm

import (
	"irkit/internal/attr"
	"irkit/internal/ir"
)

// OpData is the identity-independent part of an operation: name, kind tag
// and attribute dictionary. It is split off from Op because rewrites that
// change only operands, results, successors or regions reuse the same
// OpData record, which keeps untouched parts of the graph byte-for-byte
// shared across rewrite steps.
type OpData struct {
	name  string
	kind  *ir.OpKind
	attrs *attr.Dict
}

// NewOpData builds a shared metadata record. The attribute dictionary is
// cloned and frozen.
func NewOpData(kind *ir.OpKind, attrs *attr.Dict) *OpData {
	frozen := attrs.Clone()
	frozen.Freeze()
	return &OpData{name: kind.Name, kind: kind, attrs: frozen}
}

// Op is an immutable operation. All containers are sealed at construction;
// the node can be read concurrently without synchronization.
type Op struct {
	data       *OpData
	operands   *List[Value]
	results    *List[*Result]
	successors *List[*Block]
	regions    *List[*Region]
}

// newOp mints the results and seals every container.
func newOp(data *OpData, operands []Value, resultTypes []attr.Attribute, successors []*Block, regions []*Region) *Op {
	op := &Op{
		data:       data,
		operands:   SealedList(operands),
		successors: SealedList(successors),
		regions:    SealedList(regions),
	}
	results := make([]*Result, len(resultTypes))
	for i, t := range resultTypes {
		results[i] = &Result{typ: t, op: op, index: i}
	}
	op.results = SealedList(results)
	return op
}

// Name returns the kind name.
func (o *Op) Name() string { return o.data.name }

// Kind returns the operation-kind descriptor.
func (o *Op) Kind() *ir.OpKind { return o.data.kind }

// Data returns the shared metadata record.
func (o *Op) Data() *OpData { return o.data }

// Attrs returns the frozen attribute dictionary.
func (o *Op) Attrs() *attr.Dict { return o.data.attrs }

// Attr returns a named attribute.
func (o *Op) Attr(name string) (attr.Attribute, bool) {
	return o.data.attrs.Get(name)
}

// Operands returns the sealed operand list.
func (o *Op) Operands() *List[Value] { return o.operands }

// Results returns the sealed result list.
func (o *Op) Results() *List[*Result] { return o.results }

// Successors returns the sealed successor list.
func (o *Op) Successors() *List[*Block] { return o.successors }

// Regions returns the sealed region list.
func (o *Op) Regions() *List[*Region] { return o.regions }

// Result returns the first result, or nil when the operation produces none.
func (o *Op) Result() *Result {
	if r, ok := o.results.First(); ok {
		return r
	}
	return nil
}

// Region returns the first region, or nil.
func (o *Op) Region() *Region {
	if r, ok := o.regions.First(); ok {
		return r
	}
	return nil
}

// ResultTypes returns the result types in order.
func (o *Op) ResultTypes() []attr.Attribute {
	out := make([]attr.Attribute, o.results.Len())
	for i := range out {
		out[i] = o.results.At(i).typ
	}
	return out
}

// Walk visits this operation and all nested operations depth-first in
// pre-order.
func (o *Op) Walk(fn func(*Op)) {
	fn(o)
	o.regions.Each(func(_ int, r *Region) bool {
		r.Walk(fn)
		return true
	})
}

// WalkAbortable is Walk with early termination. Returns false when aborted.
func (o *Op) WalkAbortable(fn func(*Op) bool) bool {
	if !fn(o) {
		return false
	}
	return o.regions.Each(func(_ int, r *Region) bool {
		return r.WalkAbortable(fn)
	})
}
