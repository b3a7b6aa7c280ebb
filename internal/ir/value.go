package ir

import (
	"fmt"

	"irkit/internal/attr"
)

// Use records one operand slot consuming a value.
type Use struct {
	Owner *Operation
	Index int
}

// Value is a producer-consumer handle in SSA form: exactly one definition
// site, any number of uses. The two implementations are OpResult and
// BlockArgument; the set is closed.
type Value interface {
	// Type returns the value's type attribute.
	Type() attr.Attribute
	// Uses returns the current use list. Callers must not modify it.
	Uses() []Use
	// Ref returns a stable printable reference for diagnostics.
	Ref() string

	addUse(u Use)
	removeUse(u Use)
}

// OpResult is a value produced by an operation. The (owner, index) pair is
// assigned at operation construction and never changes.
type OpResult struct {
	typ   attr.Attribute
	owner *Operation
	index int
	uses  []Use
}

func (r *OpResult) Type() attr.Attribute { return r.typ }
func (r *OpResult) Owner() *Operation    { return r.owner }
func (r *OpResult) Index() int           { return r.index }
func (r *OpResult) Uses() []Use          { return r.uses }

func (r *OpResult) Ref() string {
	return fmt.Sprintf("%s#%d", r.owner.Ref(), r.index)
}

func (r *OpResult) addUse(u Use) { r.uses = append(r.uses, u) }

func (r *OpResult) removeUse(u Use) {
	for i := range r.uses {
		if r.uses[i] == u {
			r.uses = append(r.uses[:i], r.uses[i+1:]...)
			return
		}
	}
}

// BlockArgument is a value owned by a block. The (owner, index) pair is
// assigned at block construction and never changes.
type BlockArgument struct {
	typ   attr.Attribute
	owner *Block
	index int
	uses  []Use
}

func (a *BlockArgument) Type() attr.Attribute { return a.typ }
func (a *BlockArgument) Owner() *Block        { return a.owner }
func (a *BlockArgument) Index() int           { return a.index }
func (a *BlockArgument) Uses() []Use          { return a.uses }

func (a *BlockArgument) Ref() string {
	return fmt.Sprintf("%s^%d", a.owner.Ref(), a.index)
}

func (a *BlockArgument) addUse(u Use) { a.uses = append(a.uses, u) }

func (a *BlockArgument) removeUse(u Use) {
	for i := range a.uses {
		if a.uses[i] == u {
			a.uses = append(a.uses[:i], a.uses[i+1:]...)
			return
		}
	}
}

// ReplaceAllUses redirects every use of old to new, keeping use lists
// consistent on both values.
func ReplaceAllUses(old, new Value) {
	uses := append([]Use(nil), old.Uses()...)
	for _, u := range uses {
		u.Owner.SetOperand(u.Index, new)
	}
}
