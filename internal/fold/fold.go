package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Fold returns the folded replacement of e. A Constant is returned as is;
// nodes this package does not evaluate are returned with their operands
// folded.
func Fold(ctx *Context, e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case nil:
		return nil
	case *ast.Constant:
		return x
	case *ast.ArrayConstructor:
		return foldArrayConstructor(ctx, x)
	case *ast.Relational:
		return FoldRelational(ctx, x)
	case *ast.LogicalOperation:
		return FoldLogicalOperation(ctx, x)
	case *ast.Not:
		return FoldNot(ctx, x)
	case *ast.Convert:
		return foldConvert(ctx, x)
	case *ast.Call:
		return foldCall(ctx, x)
	default:
		return e
	}
}

func foldCall(ctx *Context, call *ast.Call) ast.Expr {
	folded := &ast.Call{
		Func:   call.Func,
		Name:   call.Name,
		Result: call.Result,
		Dims:   call.Dims,
		Args:   make([]ast.Expr, len(call.Args)),
	}
	for i, arg := range call.Args {
		folded.Args[i] = Fold(ctx, arg)
	}
	if call.Result.Category != typesystem.Logical {
		return folded
	}
	return FoldIntrinsic(ctx, folded)
}

func foldArrayConstructor(ctx *Context, ac *ast.ArrayConstructor) ast.Expr {
	elems := make([]ast.Expr, len(ac.Elements))
	for i, el := range ac.Elements {
		elems[i] = Fold(ctx, el)
	}
	return rebuildArray(ac.ElementType, elems, ac.Shape)
}

// rebuildArray collapses elements into a Constant when every one of them
// folded to a scalar constant, and keeps an ArrayConstructor otherwise.
func rebuildArray(elemType typesystem.Type, elems []ast.Expr, shape []int) ast.Expr {
	values := make([]scalar.Value, len(elems))
	for i, el := range elems {
		c, ok := el.(*ast.Constant)
		if !ok {
			return &ast.ArrayConstructor{ElementType: elemType, Elements: elems, Shape: shape}
		}
		v, ok := c.ScalarValue()
		if !ok {
			return &ast.ArrayConstructor{ElementType: elemType, Elements: elems, Shape: shape}
		}
		values[i] = v
	}
	return ast.NewConstant(elemType, values, shape)
}

// foldConvert folds kind conversions of logical and character constants.
// Numeric conversions belong to the arithmetic folder and are left alone.
func foldConvert(ctx *Context, cv *ast.Convert) ast.Expr {
	operand := Fold(ctx, cv.Operand)
	if operand.Type().Equal(cv.To) {
		return operand
	}
	rebuilt := func(x ast.Expr) ast.Expr { return &ast.Convert{To: cv.To, Operand: x} }
	if array, ok := applyElementwise1(ctx, operand, cv.To, rebuilt); ok {
		return array
	}
	c, ok := operand.(*ast.Constant)
	if !ok || operand.Type().Category != cv.To.Category {
		return rebuilt(operand)
	}
	var convert func(scalar.Value) (scalar.Value, bool)
	switch cv.To.Category {
	case typesystem.Logical:
		convert = func(v scalar.Value) (scalar.Value, bool) {
			l, ok := v.(scalar.Logical)
			return l.Convert(cv.To.Kind), ok
		}
	case typesystem.Character:
		convert = func(v scalar.Value) (scalar.Value, bool) {
			ch, ok := v.(scalar.Character)
			return ch.Convert(cv.To.Kind), ok
		}
	default:
		return rebuilt(operand)
	}
	if result, ok := mapConstant(cv.To, c, convert); ok {
		return result
	}
	return rebuilt(operand)
}
