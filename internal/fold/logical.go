package fold

import (
	"fmt"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
)

// FoldNot folds logical negation.
func FoldNot(ctx *Context, n *ast.Not) ast.Expr {
	operand := Fold(ctx, n.Operand)
	rebuilt := func(x ast.Expr) ast.Expr { return &ast.Not{Operand: x} }
	if array, ok := applyElementwise1(ctx, operand, n.Type(), rebuilt); ok {
		return array
	}
	if c, ok := operand.(*ast.Constant); ok {
		result, ok := mapConstant(c.Type(), c, func(v scalar.Value) (scalar.Value, bool) {
			l, ok := v.(scalar.Logical)
			return l.Not(), ok
		})
		if ok {
			return result
		}
	}
	return rebuilt(operand)
}

// FoldLogicalOperation folds .AND., .OR., .EQV. and .NEQV.
func FoldLogicalOperation(ctx *Context, op *ast.LogicalOperation) ast.Expr {
	left := Fold(ctx, op.Left)
	right := Fold(ctx, op.Right)
	rebuilt := func(x, y ast.Expr) ast.Expr {
		return &ast.LogicalOperation{Op: op.Op, Left: x, Right: y}
	}
	if array, ok := applyElementwise2(ctx, left, right, op.Type(), rebuilt); ok {
		return array
	}
	lc, lok := left.(*ast.Constant)
	rc, rok := right.(*ast.Constant)
	if lok && rok {
		kind := op.Type().Kind
		result, ok := mapConstants(op.Type(), lc, rc, func(x, y scalar.Value) (scalar.Value, bool) {
			a, aok := x.(scalar.Logical)
			b, bok := y.(scalar.Logical)
			if !aok || !bok {
				return nil, false
			}
			return scalar.NewLogical(kind, evalLogical(op.Op, a.IsTrue(), b.IsTrue())), true
		})
		if ok {
			return result
		}
	}
	return rebuilt(left, right)
}

func evalLogical(op ast.LogicalOperator, x, y bool) bool {
	switch op {
	case ast.And:
		return x && y
	case ast.Or:
		return x || y
	case ast.Eqv:
		return x == y
	case ast.Neqv:
		return x != y
	}
	panic(fmt.Sprintf("fold: %s is not a binary logical operator", op))
}
