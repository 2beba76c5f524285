package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// elementsOf takes a rank>0 operand apart into scalar element expressions
// in array element order. Only array constructors and constants can be
// decomposed.
func elementsOf(e ast.Expr) ([]ast.Expr, []int, bool) {
	switch x := e.(type) {
	case *ast.ArrayConstructor:
		return x.Elements, x.Shape, true
	case *ast.Constant:
		elems := make([]ast.Expr, x.Size())
		for i, v := range x.Values() {
			elems[i] = ast.ScalarConstant(v)
		}
		return elems, x.Shape(), true
	}
	return nil, nil, false
}

// needsElementwise is true when some operand is an array that is not
// already a constant.
func needsElementwise(operands ...ast.Expr) bool {
	for _, op := range operands {
		if _, isConst := op.(*ast.Constant); op.Rank() > 0 && !isConst {
			return true
		}
	}
	return false
}

// applyElementwise1 lifts a unary operation over an array operand. The
// result has the operand's shape, each element being op of the matching
// element, folded. It reports false when the operand is a scalar, a
// constant, or an array it cannot see into.
func applyElementwise1(ctx *Context, operand ast.Expr, elemType typesystem.Type,
	op func(ast.Expr) ast.Expr) (ast.Expr, bool) {
	if !needsElementwise(operand) {
		return nil, false
	}
	elems, shape, ok := elementsOf(operand)
	if !ok {
		return nil, false
	}
	out := make([]ast.Expr, len(elems))
	for i, el := range elems {
		out[i] = Fold(ctx, op(el))
	}
	return rebuildArray(elemType, out, shape), true
}

// applyElementwise2 is applyElementwise1 for binary operations. A scalar
// operand is paired with every element of the other. Operands are assumed
// conformable; shapes that differ make the operation inapplicable.
func applyElementwise2(ctx *Context, left, right ast.Expr, elemType typesystem.Type,
	op func(x, y ast.Expr) ast.Expr) (ast.Expr, bool) {
	if !needsElementwise(left, right) {
		return nil, false
	}
	var shape []int
	expand := func(e ast.Expr) ([]ast.Expr, bool) {
		if e.Rank() == 0 {
			return nil, true
		}
		elems, s, ok := elementsOf(e)
		if !ok {
			return nil, false
		}
		if shape != nil && !ast.SameShape(shape, s) {
			return nil, false
		}
		shape = s
		return elems, true
	}
	lelems, ok := expand(left)
	if !ok {
		return nil, false
	}
	relems, ok := expand(right)
	if !ok {
		return nil, false
	}
	n := ast.ShapeSize(shape)
	out := make([]ast.Expr, n)
	for i := 0; i < n; i++ {
		x, y := left, right
		if lelems != nil {
			x = lelems[i]
		}
		if relems != nil {
			y = relems[i]
		}
		out[i] = Fold(ctx, op(x, y))
	}
	return rebuildArray(elemType, out, shape), true
}

// mapConstant applies f to every element of a constant. f reports false to
// abandon the fold.
func mapConstant(resultType typesystem.Type, c *ast.Constant,
	f func(scalar.Value) (scalar.Value, bool)) (*ast.Constant, bool) {
	values := make([]scalar.Value, c.Size())
	for i, v := range c.Values() {
		r, ok := f(v)
		if !ok {
			return nil, false
		}
		values[i] = r
	}
	return ast.NewConstant(resultType, values, c.Shape()), true
}

// mapConstants applies f elementwise to two conformable constants; a
// scalar is paired with every element of the other operand.
func mapConstants(resultType typesystem.Type, a, b *ast.Constant,
	f func(x, y scalar.Value) (scalar.Value, bool)) (*ast.Constant, bool) {
	shape := a.Shape()
	switch {
	case a.Rank() == 0:
		shape = b.Shape()
	case b.Rank() > 0 && !ast.SameShape(a.Shape(), b.Shape()):
		return nil, false
	}
	n := ast.ShapeSize(shape)
	values := make([]scalar.Value, n)
	for i := 0; i < n; i++ {
		x, y := elementAt(a, i), elementAt(b, i)
		r, ok := f(x, y)
		if !ok {
			return nil, false
		}
		values[i] = r
	}
	return ast.NewConstant(resultType, values, shape), true
}

func elementAt(c *ast.Constant, i int) scalar.Value {
	if c.Rank() == 0 {
		return c.At(0)
	}
	return c.At(i)
}
