// Package ast defines the typed expression tree handed to the folder by
// name resolution. Nodes are values owned by whoever holds them; folding
// consumes a tree and returns a new one.
package ast

import (
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Expr is a typed expression.
type Expr interface {
	// Type is the static result type; folding never changes it.
	Type() typesystem.Type
	// Rank is the number of dimensions of the result.
	Rank() int
	exprNode()
}

// Entry is one named expression of an analysis unit.
type Entry struct {
	Name   string
	Expr   Expr
	Folded Expr
}

// Constant is an immutable array or scalar value. Values are stored in
// array element order, first subscript varying fastest.
type Constant struct {
	typ    typesystem.Type
	values []scalar.Value
	shape  []int
}

// NewConstant builds a constant of the given shape. The value count must be
// the product of the extents.
func NewConstant(typ typesystem.Type, values []scalar.Value, shape []int) *Constant {
	if len(values) != ShapeSize(shape) {
		panic("ast: constant value count does not match its shape")
	}
	return &Constant{
		typ:    typ,
		values: append([]scalar.Value(nil), values...),
		shape:  append([]int(nil), shape...),
	}
}

// ScalarConstant builds a rank-0 constant.
func ScalarConstant(v scalar.Value) *Constant {
	return &Constant{typ: v.Type(), values: []scalar.Value{v}}
}

// LogicalConstant builds a scalar logical of kind.
func LogicalConstant(kind int, v bool) *Constant {
	return ScalarConstant(scalar.NewLogical(kind, v))
}

func (c *Constant) Type() typesystem.Type { return c.typ }
func (c *Constant) Rank() int             { return len(c.shape) }
func (c *Constant) exprNode()             {}

// Shape returns a copy of the extents.
func (c *Constant) Shape() []int { return append([]int(nil), c.shape...) }

func (c *Constant) Size() int { return len(c.values) }

// Values returns the elements in array element order. The slice must not be
// modified.
func (c *Constant) Values() []scalar.Value { return c.values }

func (c *Constant) At(i int) scalar.Value { return c.values[i] }

// ScalarValue returns the element of a rank-0 constant.
func (c *Constant) ScalarValue() (scalar.Value, bool) {
	if len(c.shape) != 0 || len(c.values) != 1 {
		return nil, false
	}
	return c.values[0], true
}

// ShapeSize is the product of the extents; the empty shape has size 1.
func ShapeSize(shape []int) int {
	n := 1
	for _, e := range shape {
		n *= e
	}
	return n
}

// SameShape reports whether two shapes are conformable as arrays.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
