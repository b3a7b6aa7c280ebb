package rewrite

import (
	"fmt"

	"irkit/internal/diag"
	"irkit/internal/ir"
	"irkit/internal/match"
)

// Pattern is the capability "given a candidate operation and a mutation
// handle, either decline or rewrite it". Returning matched == false means
// the pattern declined; an error from the rewrite action propagates to the
// driver's caller uncaught.
type Pattern interface {
	MatchAndRewrite(op *ir.Operation, rw *Rewriter) (matched bool, err error)
}

// PatternFunc adapts a plain function to the Pattern interface.
type PatternFunc func(op *ir.Operation, rw *Rewriter) (bool, error)

func (f PatternFunc) MatchAndRewrite(op *ir.Operation, rw *Rewriter) (bool, error) {
	return f(op, rw)
}

// QueryPattern builds a pattern from a declarative matcher query: it
// declines when the query does not match and otherwise runs the rewrite
// action with the binding set.
type QueryPattern struct {
	Query  *match.Query
	Action func(b match.Bindings, rw *Rewriter) error
}

func (p *QueryPattern) MatchAndRewrite(op *ir.Operation, rw *Rewriter) (bool, error) {
	b, ok := p.Query.Match(op)
	if !ok {
		return false, nil
	}
	return true, p.Action(b, rw)
}

// Applier tries patterns in registration order; the first pattern that does
// not decline wins for that operation. Application per site is mutually
// exclusive, not cumulative.
type Applier struct {
	patterns []Pattern
}

// NewApplier builds a composite applier over the patterns in order.
func NewApplier(patterns ...Pattern) *Applier {
	return &Applier{patterns: patterns}
}

func (a *Applier) MatchAndRewrite(op *ir.Operation, rw *Rewriter) (bool, error) {
	for _, p := range a.patterns {
		matched, err := p.MatchAndRewrite(op, rw)
		if err != nil {
			return matched, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// UnsupportedOpError reports an operation a dispatching pass does not know
// how to handle. It surfaces as a catchable error naming the operation by
// its stable reference, never as a process abort.
type UnsupportedOpError struct {
	Ref  string
	Name string
}

// Unsupported builds an UnsupportedOpError for the operation.
func Unsupported(op *ir.Operation) *UnsupportedOpError {
	return &UnsupportedOpError{Ref: op.Ref(), Name: op.Name()}
}

func (e *UnsupportedOpError) Error() string {
	return fmt.Sprintf("rewrite: no rule for operation %s", e.Ref)
}

// Diagnostic renders the error as a reportable diagnostic.
func (e *UnsupportedOpError) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.RwUnsupportedOp,
		Message:  fmt.Sprintf("no rule for operation %q", e.Name),
		Ref:      e.Ref,
	}
}
