package ast

import (
	"strings"

	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Intrinsic identifies an intrinsic function with a logical result. Name
// resolution maps each call onto one value once; the folder switches over
// the closed set.
type Intrinsic int

const (
	IntrinsicOther Intrinsic = iota
	IntrinsicAll
	IntrinsicAny
	IntrinsicParity
	IntrinsicAssociated
	IntrinsicBge
	IntrinsicBgt
	IntrinsicBle
	IntrinsicBlt
	IntrinsicBtest
	IntrinsicDotProduct
	IntrinsicExtendsTypeOf
	IntrinsicIsNan
	IntrinsicIeeeIsNegative
	IntrinsicIeeeIsNormal
	IntrinsicIsContiguous
	IntrinsicIsIostatEnd
	IntrinsicIsIostatEor
	IntrinsicLge
	IntrinsicLgt
	IntrinsicLle
	IntrinsicLlt
	IntrinsicLogical
	IntrinsicOutOfRange
	IntrinsicSameTypeAs
	IntrinsicIeeeSupport
)

var intrinsicNames = map[string]Intrinsic{
	config.AllFuncName:            IntrinsicAll,
	config.AnyFuncName:            IntrinsicAny,
	config.ParityFuncName:         IntrinsicParity,
	config.AssociatedFuncName:     IntrinsicAssociated,
	config.BgeFuncName:            IntrinsicBge,
	config.BgtFuncName:            IntrinsicBgt,
	config.BleFuncName:            IntrinsicBle,
	config.BltFuncName:            IntrinsicBlt,
	config.BtestFuncName:          IntrinsicBtest,
	config.DotProductFuncName:     IntrinsicDotProduct,
	config.ExtendsTypeOfFuncName:  IntrinsicExtendsTypeOf,
	config.IsNanFuncName:          IntrinsicIsNan,
	config.IeeeIsNanFuncName:      IntrinsicIsNan,
	config.IeeeIsNegativeFuncName: IntrinsicIeeeIsNegative,
	config.IeeeIsNormalFuncName:   IntrinsicIeeeIsNormal,
	config.IsContiguousFuncName:   IntrinsicIsContiguous,
	config.IsIostatEndFuncName:    IntrinsicIsIostatEnd,
	config.IsIostatEorFuncName:    IntrinsicIsIostatEor,
	config.LgeFuncName:            IntrinsicLge,
	config.LgtFuncName:            IntrinsicLgt,
	config.LleFuncName:            IntrinsicLle,
	config.LltFuncName:            IntrinsicLlt,
	config.LogicalFuncName:        IntrinsicLogical,
	config.OutOfRangeFuncName:     IntrinsicOutOfRange,
	config.SameTypeAsFuncName:     IntrinsicSameTypeAs,
}

func init() {
	for _, name := range config.IeeeSupportFuncNames {
		intrinsicNames[name] = IntrinsicIeeeSupport
	}
}

// LookupIntrinsic resolves a function name, case-insensitively. Unknown
// names map to IntrinsicOther.
func LookupIntrinsic(name string) Intrinsic {
	if f, ok := intrinsicNames[strings.ToLower(name)]; ok {
		return f
	}
	return IntrinsicOther
}

// NewCall builds a call to the named intrinsic with a scalar result.
func NewCall(name string, result typesystem.Type, args ...Expr) *Call {
	return &Call{Func: LookupIntrinsic(name), Name: strings.ToLower(name), Result: result, Args: args}
}
