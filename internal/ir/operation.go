package ir

import (
	"fmt"
	"strings"

	"irkit/internal/attr"
)

// Operation is a node of the IR graph. It consumes operand values, owns its
// result values and regions, and references successor blocks for control
// flow. Successors and operands point sideways in the ownership tree, never
// own.
type Operation struct {
	kind       *OpKind
	operands   []Value
	results    []*OpResult
	attrs      *attr.Dict
	successors []*Block
	regions    []*Region
	parent     *Block
}

// New constructs an operation. Operand values must already be defined.
// Result values are minted with strictly increasing indices starting at
// zero. Regions passed in must be unowned; New takes ownership.
func New(kind *OpKind, operands []Value, resultTypes []attr.Attribute, attrs *attr.Dict, successors []*Block, regions []*Region) *Operation {
	if kind == nil {
		panic("ir: operation kind must not be nil")
	}
	if attrs == nil {
		attrs = attr.NewDict()
	}
	op := &Operation{
		kind:       kind,
		operands:   append([]Value(nil), operands...),
		attrs:      attrs,
		successors: append([]*Block(nil), successors...),
	}
	for i, v := range op.operands {
		if v == nil {
			panic(fmt.Sprintf("ir: nil operand %d for %s", i, kind.Name))
		}
		v.addUse(Use{Owner: op, Index: i})
	}
	op.results = make([]*OpResult, len(resultTypes))
	for i, t := range resultTypes {
		op.results[i] = &OpResult{typ: t, owner: op, index: i}
	}
	op.regions = make([]*Region, 0, len(regions))
	for _, r := range regions {
		op.addRegion(r)
	}
	return op
}

func (o *Operation) addRegion(r *Region) {
	if r.parent != nil {
		panic("ir: region already owned by " + r.parent.Name())
	}
	r.parent = o
	o.regions = append(o.regions, r)
}

// Kind returns the operation-kind descriptor.
func (o *Operation) Kind() *OpKind { return o.kind }

// Name returns the kind name, e.g. "arith.addi".
func (o *Operation) Name() string { return o.kind.Name }

// Parent returns the owning block, or nil for a detached operation.
func (o *Operation) Parent() *Block { return o.parent }

func (o *Operation) NumOperands() int { return len(o.operands) }

func (o *Operation) Operand(i int) Value { return o.operands[i] }

// Operands returns the operand list. Callers must not modify it; use
// SetOperand to keep use lists consistent.
func (o *Operation) Operands() []Value { return o.operands }

// SetOperand replaces the i-th operand and updates both use lists.
func (o *Operation) SetOperand(i int, v Value) {
	if v == nil {
		panic(fmt.Sprintf("ir: nil operand %d for %s", i, o.Name()))
	}
	old := o.operands[i]
	if old == v {
		return
	}
	old.removeUse(Use{Owner: o, Index: i})
	o.operands[i] = v
	v.addUse(Use{Owner: o, Index: i})
}

func (o *Operation) NumResults() int { return len(o.results) }

func (o *Operation) Result(i int) *OpResult { return o.results[i] }

// Results returns the result list. Callers must not modify it.
func (o *Operation) Results() []*OpResult { return o.results }

// Attrs returns the attribute dictionary.
func (o *Operation) Attrs() *attr.Dict { return o.attrs }

// Attr returns a named attribute.
func (o *Operation) Attr(name string) (attr.Attribute, bool) {
	return o.attrs.Get(name)
}

// Successors returns the successor blocks. Callers must not modify it.
func (o *Operation) Successors() []*Block { return o.successors }

// SetSuccessor replaces the i-th successor block.
func (o *Operation) SetSuccessor(i int, b *Block) { o.successors[i] = b }

func (o *Operation) NumRegions() int { return len(o.regions) }

// Regions returns the owned regions. Callers must not modify it.
func (o *Operation) Regions() []*Region { return o.regions }

// Region returns the i-th owned region.
func (o *Operation) Region(i int) *Region { return o.regions[i] }

// HasUses reports whether any result of the operation is still used.
func (o *Operation) HasUses() bool {
	for _, r := range o.results {
		if len(r.uses) > 0 {
			return true
		}
	}
	return false
}

// DropOperands removes this operation from the use lists of all its
// operands. Called when the operation is destroyed.
func (o *Operation) DropOperands() {
	for i, v := range o.operands {
		v.removeUse(Use{Owner: o, Index: i})
	}
	o.operands = o.operands[:0]
}

// Walk visits this operation and every nested operation depth-first in
// pre-order: the operation first, then each region's blocks' operations.
func (o *Operation) Walk(fn func(*Operation)) {
	fn(o)
	for _, r := range o.regions {
		r.Walk(fn)
	}
}

// WalkAbortable is Walk with early termination: when fn returns false the
// traversal halts immediately. Returns false when aborted.
func (o *Operation) WalkAbortable(fn func(*Operation) bool) bool {
	if !fn(o) {
		return false
	}
	for _, r := range o.regions {
		if !r.WalkAbortable(fn) {
			return false
		}
	}
	return true
}

// Verify runs the kind's verification hook, if any.
func (o *Operation) Verify() error {
	if o.kind.Verify == nil {
		return nil
	}
	return o.kind.Verify(o)
}

// Ref returns a stable printable path for the operation, e.g.
// "builtin.module/r0/bb0/2:arith.addi". Detached operations are flagged as
// such. Never a memory address, so diagnostics reproduce across runs.
func (o *Operation) Ref() string {
	if o.parent == nil {
		return o.Name() + "(detached)"
	}
	var segs []string
	cur := o
	for cur.parent != nil {
		blk := cur.parent
		reg := blk.parent
		opIdx := blk.indexOf(cur)
		if reg == nil || reg.parent == nil {
			segs = append(segs, fmt.Sprintf("bb?/%d", opIdx))
			return strings.Join(reverse(segs), "/") + ":" + o.Name()
		}
		segs = append(segs, fmt.Sprintf("r%d/bb%d/%d", reg.parent.indexOfRegion(reg), reg.indexOf(blk), opIdx))
		cur = reg.parent
	}
	segs = append(segs, cur.Name())
	return strings.Join(reverse(segs), "/") + ":" + o.Name()
}

func (o *Operation) indexOfRegion(r *Region) int {
	for i := range o.regions {
		if o.regions[i] == r {
			return i
		}
	}
	return -1
}

func reverse(s []string) []string {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}
