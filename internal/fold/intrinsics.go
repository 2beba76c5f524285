package fold

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// FoldIntrinsic folds a call to an intrinsic function with a logical
// result whose arguments have already been folded. Each rule decides from
// the arguments it finds whether it can produce a constant; when it
// cannot, the call is returned unchanged.
func FoldIntrinsic(ctx *Context, call *ast.Call) ast.Expr {
	switch call.Func {
	case ast.IntrinsicAll:
		return foldReduction(ctx, call, true, andCombiner)
	case ast.IntrinsicAny:
		return foldReduction(ctx, call, false, orCombiner)
	case ast.IntrinsicParity:
		return foldReduction(ctx, call, false, neqvCombiner)
	case ast.IntrinsicAssociated:
		return foldAssociated(call)
	case ast.IntrinsicBge:
		return foldBitCompare(call, ast.GE)
	case ast.IntrinsicBgt:
		return foldBitCompare(call, ast.GT)
	case ast.IntrinsicBle:
		return foldBitCompare(call, ast.LE)
	case ast.IntrinsicBlt:
		return foldBitCompare(call, ast.LT)
	case ast.IntrinsicBtest:
		return foldBtest(ctx, call)
	case ast.IntrinsicDotProduct:
		return foldDotProduct(ctx, call)
	case ast.IntrinsicExtendsTypeOf:
		return foldTypeInquiry(call, typesystem.ExtendsTypeOf)
	case ast.IntrinsicSameTypeAs:
		return foldTypeInquiry(call, typesystem.SameTypeAs)
	case ast.IntrinsicIsNan:
		return foldClassification(ctx, call, scalar.Real.IsNaN)
	case ast.IntrinsicIeeeIsNegative:
		return foldClassification(ctx, call, scalar.Real.IsNegative)
	case ast.IntrinsicIeeeIsNormal:
		return foldClassification(ctx, call, scalar.Real.IsNormal)
	case ast.IntrinsicIsContiguous:
		return foldIsContiguous(ctx, call)
	case ast.IntrinsicIsIostatEnd:
		return foldIostat(call, ctx.Config().IostatEnd)
	case ast.IntrinsicIsIostatEor:
		return foldIostat(call, ctx.Config().IostatEor)
	case ast.IntrinsicLge:
		return foldCharacterRelation(ctx, call, ast.GE)
	case ast.IntrinsicLgt:
		return foldCharacterRelation(ctx, call, ast.GT)
	case ast.IntrinsicLle:
		return foldCharacterRelation(ctx, call, ast.LE)
	case ast.IntrinsicLlt:
		return foldCharacterRelation(ctx, call, ast.LT)
	case ast.IntrinsicLogical:
		return foldLogicalKind(ctx, call)
	case ast.IntrinsicOutOfRange:
		return foldOutOfRange(ctx, call)
	case ast.IntrinsicIeeeSupport:
		return ast.LogicalConstant(call.Result.Kind, true)
	case ast.IntrinsicOther:
		return call
	}
	return call
}

func isNullPointer(e ast.Expr) bool {
	_, ok := e.(*ast.NullPointer)
	return ok
}

// foldAssociated is .FALSE. when POINTER (and TARGET, if given) are NULL().
func foldAssociated(call *ast.Call) ast.Expr {
	if !isNullPointer(call.Arg(0)) {
		return call
	}
	if target := call.Arg(1); target != nil && !isNullPointer(target) {
		return call
	}
	return ast.LogicalConstant(call.Result.Kind, false)
}

// foldBitCompare implements BGE, BGT, BLE and BLT: both bit patterns are
// zero-extended to the largest integer kind and compared as unsigned.
func foldBitCompare(call *ast.Call, op ast.RelationalOperator) ast.Expr {
	i, iok := constantOf(call.Arg(0), typesystem.Integer)
	j, jok := constantOf(call.Arg(1), typesystem.Integer)
	if !iok || !jok {
		return call
	}
	i, j = zeroExtend(i), zeroExtend(j)
	kind := call.Result.Kind
	result, ok := mapConstants(call.Result, i, j, func(x, y scalar.Value) (scalar.Value, bool) {
		a, aok := x.(scalar.Integer)
		b, bok := y.(scalar.Integer)
		if !aok || !bok {
			return nil, false
		}
		return scalar.NewLogical(kind, satisfies(op, a.CompareUnsigned(b))), true
	})
	if !ok {
		return call
	}
	return result
}

func zeroExtend(c *ast.Constant) *ast.Constant {
	wide := typesystem.Of(typesystem.Integer, typesystem.LargestIntegerKind)
	ext, _ := mapConstant(wide, c, func(v scalar.Value) (scalar.Value, bool) {
		return v.(scalar.Integer).ZeroExtend(typesystem.LargestIntegerKind), true
	})
	return ext
}

// foldBtest implements BTEST(I, POS). A position outside the bit width is
// reported but the fold still completes with the primitive's answer.
func foldBtest(ctx *Context, call *ast.Call) ast.Expr {
	i, iok := constantOf(call.Arg(0), typesystem.Integer)
	pos, pok := constantOf(call.Arg(1), typesystem.Integer)
	if !iok || !pok {
		return call
	}
	kind := call.Result.Kind
	result, ok := mapConstants(call.Result, i, pos, func(x, y scalar.Value) (scalar.Value, bool) {
		n, nok := x.(scalar.Integer)
		p, pok := y.(scalar.Integer)
		if !nok || !pok {
			return nil, false
		}
		at := p.Int64()
		if at < 0 || at >= int64(n.Bits()) {
			ctx.Messages().Say(errBtestPos, at)
		}
		return scalar.NewLogical(kind, n.BTest(at)), true
	})
	if !ok {
		return call
	}
	return result
}

// foldTypeInquiry implements EXTENDS_TYPE_OF and SAME_TYPE_AS, which only
// look at declared types and ignore type parameters.
func foldTypeInquiry(call *ast.Call, query func(a, b typesystem.Type) (bool, bool)) ast.Expr {
	a, b := call.Arg(0), call.Arg(1)
	if a == nil || b == nil {
		return call
	}
	if result, ok := query(a.Type(), b.Type()); ok {
		return ast.LogicalConstant(call.Result.Kind, result)
	}
	return call
}

// foldClassification implements ISNAN and the IEEE_IS_* predicates on a
// constant real, evaluated at the default real kind. The guard covers the
// kind conversion; the argument itself was folded with messages on.
func foldClassification(ctx *Context, call *ast.Call, pred func(scalar.Real) bool) ast.Expr {
	restore := ctx.Messages().Discard()
	defer restore()
	x, ok := constantOf(Fold(ctx, call.Arg(0)), typesystem.Real)
	if !ok {
		return call
	}
	realKind := ctx.DefaultRealKind()
	kind := call.Result.Kind
	result, ok := mapConstant(call.Result, x, func(v scalar.Value) (scalar.Value, bool) {
		r, ok := v.(scalar.Real)
		if !ok {
			return nil, false
		}
		return scalar.NewLogical(kind, pred(convertReal(ctx, r, realKind))), true
	})
	if !ok {
		return call
	}
	return result
}

// convertReal converts to another real kind, warning on overflow.
func convertReal(ctx *Context, r scalar.Real, kind int) scalar.Real {
	converted, overflow := r.Convert(kind)
	if overflow {
		ctx.Messages().Say(errConvertOverflow, r.String(), kind)
	}
	return converted
}

func foldIsContiguous(ctx *Context, call *ast.Call) ast.Expr {
	arg := call.Arg(0)
	if arg == nil {
		return call
	}
	if contiguous, known := ctx.Contiguity().IsContiguous(arg); known {
		return ast.LogicalConstant(call.Result.Kind, contiguous)
	}
	return call
}

// foldIostat implements IS_IOSTAT_END and IS_IOSTAT_EOR.
func foldIostat(call *ast.Call, sentinel int64) ast.Expr {
	x, ok := constantOf(call.Arg(0), typesystem.Integer)
	if !ok {
		return call
	}
	kind := call.Result.Kind
	result, ok := mapConstant(call.Result, x, func(v scalar.Value) (scalar.Value, bool) {
		i, ok := v.(scalar.Integer)
		return scalar.NewLogical(kind, ok && i.Int64() == sentinel), ok
	})
	if !ok {
		return call
	}
	return result
}

// foldCharacterRelation rewrites LGE, LGT, LLE and LLT into a comparison of
// the ASCII forms of both strings and folds that.
func foldCharacterRelation(ctx *Context, call *ast.Call, op ast.RelationalOperator) ast.Expr {
	a, b := call.Arg(0), call.Arg(1)
	if a == nil || b == nil ||
		a.Type().Category != typesystem.Character || b.Type().Category != typesystem.Character {
		return call
	}
	return Fold(ctx, &ast.Relational{
		Op:     op,
		Left:   toASCII(a),
		Right:  toASCII(b),
		Result: call.Result,
	})
}

func toASCII(e ast.Expr) ast.Expr {
	ascii := typesystem.Of(typesystem.Character, 1)
	if e.Type().Equal(ascii) {
		return e
	}
	return &ast.Convert{To: ascii, Operand: e}
}

// foldLogicalKind implements LOGICAL(L [, KIND]).
func foldLogicalKind(ctx *Context, call *ast.Call) ast.Expr {
	l := call.Arg(0)
	if l == nil || l.Type().Category != typesystem.Logical {
		return call
	}
	return Fold(ctx, &ast.Convert{To: call.Result, Operand: l})
}
