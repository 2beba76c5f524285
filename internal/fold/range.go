package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// foldOutOfRange implements OUT_OF_RANGE(X, MOLD [, ROUND]). MOLD only
// supplies the target type. The result has the shape of the folded X.
func foldOutOfRange(ctx *Context, call *ast.Call) ast.Expr {
	args, ok := bindOutOfRangeArgs(call)
	if !ok {
		return call
	}
	source := probeConstant(ctx, args.source)
	x, ok := source.(*ast.Constant)
	if !ok {
		if source == args.source {
			return call
		}
		return withArg(call, 0, source)
	}

	var test func(scalar.Value) (bool, bool)
	switch src, mold := x.Type().Category, args.mold; {
	case src == typesystem.Integer && mold.Category == typesystem.Real:
		test = func(v scalar.Value) (bool, bool) {
			i, ok := v.(scalar.Integer)
			if !ok {
				return false, false
			}
			_, overflow := scalar.RealFromInteger(mold.Kind, i)
			return overflow, true
		}
	case src == typesystem.Real && mold.Category == typesystem.Real:
		test = func(v scalar.Value) (bool, bool) {
			r, ok := v.(scalar.Real)
			if !ok {
				return false, false
			}
			if !r.IsFinite() {
				return false, true
			}
			_, overflow := r.Convert(mold.Kind)
			return overflow, true
		}
	case src == typesystem.Integer && mold.Category == typesystem.Integer:
		test = func(v scalar.Value) (bool, bool) {
			i, ok := v.(scalar.Integer)
			if !ok {
				return false, false
			}
			_, overflow := i.ConvertSigned(mold.Kind)
			return overflow, true
		}
	case src == typesystem.Real && mold.Category == typesystem.Integer:
		mode := scalar.ToZero
		if args.round != nil {
			round, ok := scalarLogical(args.round)
			if !ok {
				return call
			}
			if round {
				mode = scalar.TiesAwayFromZero
			}
		}
		test = func(v scalar.Value) (bool, bool) {
			r, ok := v.(scalar.Real)
			if !ok {
				return false, false
			}
			if !r.IsFinite() {
				return true, true
			}
			_, overflow := r.ToInteger(mold.Kind, mode)
			return overflow, true
		}
	default:
		return call
	}

	kind := call.Result.Kind
	result, ok := mapConstant(call.Result, x, func(v scalar.Value) (scalar.Value, bool) {
		out, ok := test(v)
		return scalar.NewLogical(kind, out), ok
	})
	if !ok {
		return call
	}
	return result
}

// probeConstant folds e with diagnostics suppressed. A result that is not
// a constant is expected and not worth reporting. Call arguments have
// already been folded by then, so messages raised inside them are kept;
// only the second fold is silenced.
func probeConstant(ctx *Context, e ast.Expr) ast.Expr {
	restore := ctx.Messages().Discard()
	defer restore()
	return Fold(ctx, e)
}

// withArg returns a copy of call with argument i replaced.
func withArg(call *ast.Call, i int, arg ast.Expr) *ast.Call {
	copied := *call
	copied.Args = append([]ast.Expr(nil), call.Args...)
	copied.Args[i] = arg
	return &copied
}
