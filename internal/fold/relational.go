package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
)

// FoldRelational folds a comparison. Array operands go through the
// elementwise applicator; constant operands are compared according to
// their category. Anything else comes back with its operands folded.
func FoldRelational(ctx *Context, rel *ast.Relational) ast.Expr {
	left := Fold(ctx, rel.Left)
	right := Fold(ctx, rel.Right)
	rebuilt := func(x, y ast.Expr) ast.Expr {
		return &ast.Relational{Op: rel.Op, Left: x, Right: y, Result: rel.Result}
	}
	if array, ok := applyElementwise2(ctx, left, right, rel.Result, rebuilt); ok {
		return array
	}
	lc, lok := left.(*ast.Constant)
	rc, rok := right.(*ast.Constant)
	if lok && rok {
		kind := rel.Result.Kind
		result, ok := mapConstants(rel.Result, lc, rc, func(x, y scalar.Value) (scalar.Value, bool) {
			b, ok := compare(rel.Op, x, y)
			return scalar.NewLogical(kind, b), ok
		})
		if ok {
			return result
		}
	}
	return rebuilt(left, right)
}

// compare evaluates op on two scalars of the same type. It reports false
// for operand combinations no comparison is defined on.
func compare(op ast.RelationalOperator, x, y scalar.Value) (bool, bool) {
	switch a := x.(type) {
	case scalar.Integer:
		b, ok := y.(scalar.Integer)
		return ok && satisfies(op, a.CompareSigned(b)), ok
	case scalar.Real:
		b, ok := y.(scalar.Real)
		return ok && satisfies(op, a.Compare(b)), ok
	case scalar.Complex:
		b, ok := y.(scalar.Complex)
		if !ok || (op != ast.EQ && op != ast.NE) {
			return false, false
		}
		return (op == ast.EQ) == a.Equals(b), true
	case scalar.Character:
		b, ok := y.(scalar.Character)
		return ok && satisfies(op, a.Compare(b)), ok
	}
	return false, false
}

// satisfies reports whether an ordering makes op true. Unordered (NaN)
// operands satisfy only NE.
func satisfies(op ast.RelationalOperator, ord scalar.Ordering) bool {
	switch ord {
	case scalar.Less:
		return op == ast.LT || op == ast.LE || op == ast.NE
	case scalar.Equal:
		return op == ast.LE || op == ast.EQ || op == ast.GE
	case scalar.Greater:
		return op == ast.NE || op == ast.GT || op == ast.GE
	default:
		return op == ast.NE
	}
}
