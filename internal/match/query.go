package match

import "irkit/internal/ir"

// RootName is the variable name pre-bound to the operation under test.
const RootName = "root"

// RootVar returns the designated root operation variable.
func RootVar() OpVar { return Op(RootName) }

// Query is an ordered list of variables and constraints anchored by the
// root variable. Constraints run in declaration order and short-circuit on
// the first failure; a successful match requires every declared variable to
// be bound.
type Query struct {
	vars        []Var
	constraints []Constraint
}

// Root starts a query whose root is constrained to the given kind.
func Root(kind *ir.OpKind) *Query {
	q := &Query{}
	root := RootVar()
	q.vars = append(q.vars, root)
	q.constraints = append(q.constraints, IsKind(root, kind))
	return q
}

// Declare adds variables to the query. Every declared variable must be
// bound for a match to succeed.
func (q *Query) Declare(vars ...Var) *Query {
	q.vars = append(q.vars, vars...)
	return q
}

// Where appends constraints, evaluated in this order.
func (q *Query) Where(cs ...Constraint) *Query {
	q.constraints = append(q.constraints, cs...)
	return q
}

// Match tests the operation against the query. A failed constraint or an
// unbound declared variable is a normal negative result, never an error.
// Matching is read-only and idempotent.
func (q *Query) Match(op *ir.Operation) (Bindings, bool) {
	ctx := NewContext()
	ctx.bindings[RootName] = op

	for _, c := range q.constraints {
		if !c.Match(ctx) {
			return nil, false
		}
	}

	out := make(Bindings, len(q.vars))
	for _, v := range q.vars {
		val, ok := ctx.lookup(v.VarName())
		if !ok {
			return nil, false
		}
		out[v.VarName()] = val
	}
	return out, true
}

// MatchAll scans every operation nested under root in walk order and
// returns one binding set per matching operation. Each call is a fresh
// linear scan; the matcher keeps no index.
func (q *Query) MatchAll(root *ir.Operation) []Bindings {
	var out []Bindings
	root.Walk(func(op *ir.Operation) {
		if b, ok := q.Match(op); ok {
			out = append(out, b)
		}
	})
	return out
}
