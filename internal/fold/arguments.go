package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/diagnostics"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

const (
	errBtestPos        = diagnostics.ErrF001
	errInvalidDim      = diagnostics.ErrF002
	errDotProductSize  = diagnostics.ErrF003
	errConvertOverflow = diagnostics.ErrF004
)

// reductionArgs are the bound arguments of ALL, ANY and PARITY.
type reductionArgs struct {
	mask *ast.Constant
	dim  int // 1-based; 0 when DIM= is absent
}

// bindReductionArgs requires MASK to be a logical constant and DIM, when
// present, to be a scalar integer constant within the rank of MASK.
func bindReductionArgs(ctx *Context, call *ast.Call) (reductionArgs, bool) {
	mask, ok := call.Arg(0).(*ast.Constant)
	if !ok || mask.Type().Category != typesystem.Logical {
		return reductionArgs{}, false
	}
	args := reductionArgs{mask: mask}
	if call.Arg(1) == nil {
		return args, true
	}
	dim, ok := scalarInteger(call.Arg(1))
	if !ok {
		return reductionArgs{}, false
	}
	if dim < 1 || dim > int64(mask.Rank()) {
		ctx.Messages().Say(errInvalidDim, dim, mask.Rank())
		return reductionArgs{}, false
	}
	args.dim = int(dim)
	return args, true
}

// scalarInteger extracts the value of a rank-0 integer constant.
func scalarInteger(e ast.Expr) (int64, bool) {
	c, ok := e.(*ast.Constant)
	if !ok {
		return 0, false
	}
	v, ok := c.ScalarValue()
	if !ok {
		return 0, false
	}
	i, ok := v.(scalar.Integer)
	if !ok {
		return 0, false
	}
	return i.Int64(), true
}

// scalarLogical extracts the value of a rank-0 logical constant.
func scalarLogical(e ast.Expr) (bool, bool) {
	c, ok := e.(*ast.Constant)
	if !ok {
		return false, false
	}
	v, ok := c.ScalarValue()
	if !ok {
		return false, false
	}
	l, ok := v.(scalar.Logical)
	return l.IsTrue(), ok
}

// constantOf returns e as a constant of category cat.
func constantOf(e ast.Expr, cat typesystem.Category) (*ast.Constant, bool) {
	c, ok := e.(*ast.Constant)
	if !ok || c.Type().Category != cat {
		return nil, false
	}
	return c, true
}

// outOfRangeArgs are the bound arguments of OUT_OF_RANGE(X, MOLD [, ROUND]).
type outOfRangeArgs struct {
	source ast.Expr
	mold   typesystem.Type
	round  ast.Expr // nil when absent or not logical
}

func bindOutOfRangeArgs(call *ast.Call) (outOfRangeArgs, bool) {
	x, mold := call.Arg(0), call.Arg(1)
	if x == nil || mold == nil {
		return outOfRangeArgs{}, false
	}
	args := outOfRangeArgs{source: x, mold: mold.Type()}
	if r := call.Arg(2); r != nil && r.Type().Category == typesystem.Logical {
		args.round = r
	}
	return args, true
}
