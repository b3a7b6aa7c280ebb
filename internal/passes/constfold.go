package passes

import (
	"context"
	"fmt"

	"irkit/internal/attr"
	"irkit/internal/dialect"
	"irkit/internal/ir"
	"irkit/internal/match"
	"irkit/internal/pipeline"
	"irkit/internal/rewrite"
)

// FoldBinary builds a pattern folding a two-operand integer operation whose
// operands are both constants into a single constant. The evaluator runs on
// the raw payloads; the result keeps the operand width.
func FoldBinary(kind *ir.OpKind, eval func(lhs, rhs int64) int64) rewrite.Pattern {
	var (
		lhsVal = match.Value("lhs_val")
		rhsVal = match.Value("rhs_val")
		lhsDef = match.Op("lhs_def")
		rhsDef = match.Op("rhs_def")
		lhs    = match.Attr("lhs")
		rhs    = match.Attr("rhs")
	)

	q := match.Root(kind).
		Declare(lhsVal, rhsVal, lhsDef, rhsDef, lhs, rhs).
		Where(
			match.OperandAt(match.RootVar(), 0, lhsVal),
			match.OperandAt(match.RootVar(), 1, rhsVal),
			match.DefiningOp(lhsVal, lhsDef),
			match.DefiningOp(rhsVal, rhsDef),
			match.IsKind(lhsDef, dialect.Constant),
			match.IsKind(rhsDef, dialect.Constant),
			match.AttrOf(lhsDef, dialect.ValueAttr, lhs),
			match.AttrOf(rhsDef, dialect.ValueAttr, rhs),
		)

	return &rewrite.QueryPattern{
		Query: q,
		Action: func(b match.Bindings, rw *rewrite.Rewriter) error {
			a, ok := b["lhs"].(attr.Attribute)
			if !ok {
				return fmt.Errorf("constfold: lhs binding is not an attribute")
			}
			c, ok := b["rhs"].(attr.Attribute)
			if !ok {
				return fmt.Errorf("constfold: rhs binding is not an attribute")
			}
			av, err := a.AsInt()
			if err != nil {
				return fmt.Errorf("constfold: %w", err)
			}
			cv, err := c.AsInt()
			if err != nil {
				return fmt.Errorf("constfold: %w", err)
			}
			if err := rw.Replace(dialect.NewConstant(attr.Int(eval(av, cv), a.Bits))); err != nil {
				return err
			}
			// The replacement dropped the fold's operand uses; erase the
			// operand constants that just went dead so a fixpoint run leaves
			// only the folded result behind.
			for _, name := range []string{"lhs_def", "rhs_def"} {
				def, ok := b[name].(*ir.Operation)
				if !ok || def.Parent() == nil || def.HasUses() {
					continue
				}
				if err := rw.Erase(def); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// ConstFoldPatterns is the full constant-folding pattern set: addition and
// multiplication folds, tried in that order. Each fold cleans up the
// constants it orphans.
func ConstFoldPatterns() []rewrite.Pattern {
	return []rewrite.Pattern{
		FoldBinary(dialect.AddI, func(l, r int64) int64 { return l + r }),
		FoldBinary(dialect.MulI, func(l, r int64) int64 { return l * r }),
	}
}

// ConstFold wraps the pattern set as a pipeline pass driven to a fixpoint.
func ConstFold() pipeline.Pass {
	return pipeline.Pass{
		Name: "constfold",
		Run: func(ctx context.Context, module *ir.Operation) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return rewrite.NewWalker(ConstFoldPatterns()...).Rewrite(module)
		},
	}
}
