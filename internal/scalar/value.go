// Package scalar implements the per-kind numeric primitives the folder relies
// on: signed and unsigned comparison, bit testing, IEEE classification and
// conversions that report overflow instead of failing.
package scalar

import "github.com/funvibe/logifold/internal/typesystem"

// Value is one element of a constant.
type Value interface {
	Type() typesystem.Type
	String() string
}

// Ordering is the outcome of comparing two scalars.
type Ordering int

const (
	Less Ordering = iota
	Equal
	Greater
	Unordered // at least one operand is a NaN
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "unordered"
	}
}

func compareInts(a, b int) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	}
	return Equal
}
