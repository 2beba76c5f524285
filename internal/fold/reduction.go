package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// combiner is an associative, commutative logical operation.
type combiner func(acc, x scalar.Logical) scalar.Logical

var (
	andCombiner  combiner = scalar.Logical.And
	orCombiner   combiner = scalar.Logical.Or
	neqvCombiner combiner = scalar.Logical.Neqv
)

// reduce folds a logical array with combine, starting from identity. With
// dim == 0 (or a rank-1 array) every element goes into one scalar; with
// 1 <= dim <= rank the array is reduced along that dimension only and the
// result has rank-1 dimensions. Empty arrays and empty slices yield the
// identity. Elements are converted to the identity's kind.
func reduce(array *ast.Constant, dim int, identity scalar.Logical, combine combiner) *ast.Constant {
	resultType := identity.Type()
	shape := array.Shape()
	if dim == 0 || len(shape) <= 1 {
		acc := identity
		for _, v := range array.Values() {
			acc = combine(acc, asLogical(v, identity.Kind()))
		}
		return ast.ScalarConstant(acc)
	}

	d := dim - 1
	stride := ast.ShapeSize(shape[:d])
	extent := shape[d]
	outer := ast.ShapeSize(shape[d+1:])

	resultShape := make([]int, 0, len(shape)-1)
	resultShape = append(resultShape, shape[:d]...)
	resultShape = append(resultShape, shape[d+1:]...)

	values := make([]scalar.Value, stride*outer)
	for o := 0; o < outer; o++ {
		for i := 0; i < stride; i++ {
			acc := identity
			for k := 0; k < extent; k++ {
				acc = combine(acc, asLogical(array.At(i+stride*(k+extent*o)), identity.Kind()))
			}
			values[i+stride*o] = acc
		}
	}
	return ast.NewConstant(resultType, values, resultShape)
}

func asLogical(v scalar.Value, kind int) scalar.Logical {
	l, _ := v.(scalar.Logical)
	return l.Convert(kind)
}

// foldReduction implements ALL, ANY and PARITY.
func foldReduction(ctx *Context, call *ast.Call, identity bool, combine combiner) ast.Expr {
	args, ok := bindReductionArgs(ctx, call)
	if !ok {
		return call
	}
	return reduce(args.mask, args.dim, scalar.NewLogical(call.Result.Kind, identity), combine)
}

// foldDotProduct folds DOT_PRODUCT of two logical vectors, which is
// ANY(a .AND. b).
func foldDotProduct(ctx *Context, call *ast.Call) ast.Expr {
	a, aok := call.Arg(0).(*ast.Constant)
	b, bok := call.Arg(1).(*ast.Constant)
	if !aok || !bok || a.Rank() != 1 || b.Rank() != 1 {
		return call
	}
	if a.Type().Category != typesystem.Logical || b.Type().Category != typesystem.Logical {
		return call
	}
	if a.Size() != b.Size() {
		ctx.Messages().Say(errDotProductSize, a.Size(), b.Size())
		return call
	}
	kind := call.Result.Kind
	products, ok := mapConstants(typesystem.Of(typesystem.Logical, kind), a, b,
		func(x, y scalar.Value) (scalar.Value, bool) {
			return asLogical(x, kind).And(asLogical(y, kind)), true
		})
	if !ok {
		return call
	}
	return reduce(products, 0, scalar.NewLogical(kind, false), orCombiner)
}
