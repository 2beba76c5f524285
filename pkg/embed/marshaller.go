package logifold

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Marshaller converts folded constants to Go values.
//
// Scalars become bool, int64, float64, complex128 or string. INTEGER(16)
// values that do not fit in an int64 become *big.Int. Arrays become a
// slice of the element's Go type in array element order, whatever their
// rank.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// FromConstant converts c to a Go value.
func (m *Marshaller) FromConstant(c *ast.Constant) (interface{}, error) {
	if v, ok := c.ScalarValue(); ok {
		return m.FromScalar(v)
	}

	elemType, err := m.goType(c)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(reflect.SliceOf(elemType), 0, c.Size())
	for _, v := range c.Values() {
		gv, err := m.FromScalar(v)
		if err != nil {
			return nil, err
		}
		// one wide element widens the whole array
		if n, ok := gv.(int64); ok && elemType == bigIntType {
			gv = big.NewInt(n)
		}
		out = reflect.Append(out, reflect.ValueOf(gv))
	}
	return out.Interface(), nil
}

// FromScalar converts one element.
func (m *Marshaller) FromScalar(v scalar.Value) (interface{}, error) {
	switch x := v.(type) {
	case scalar.Logical:
		return x.IsTrue(), nil
	case scalar.Integer:
		if b := x.Big(); !b.IsInt64() {
			return b, nil
		}
		return x.Int64(), nil
	case scalar.Real:
		return x.Float64(), nil
	case scalar.Complex:
		return complex(x.Re.Float64(), x.Im.Float64()), nil
	case scalar.Character:
		return x.Value(), nil
	}
	return nil, fmt.Errorf("unsupported constant type %s", v.Type())
}

var bigIntType = reflect.TypeOf((*big.Int)(nil))

func (m *Marshaller) goType(c *ast.Constant) (reflect.Type, error) {
	switch c.Type().Category {
	case typesystem.Logical:
		return reflect.TypeOf(false), nil
	case typesystem.Integer:
		for _, v := range c.Values() {
			if !v.(scalar.Integer).Big().IsInt64() {
				return bigIntType, nil
			}
		}
		return reflect.TypeOf(int64(0)), nil
	case typesystem.Real:
		return reflect.TypeOf(float64(0)), nil
	case typesystem.Complex:
		return reflect.TypeOf(complex128(0)), nil
	case typesystem.Character:
		return reflect.TypeOf(""), nil
	}
	return nil, fmt.Errorf("unsupported constant type %s", c.Type())
}

// Decode stores a converted constant into target, which must be a
// non-nil pointer. Numbers convert to any Go numeric type of the same
// family; slices convert element by element.
func (m *Marshaller) Decode(c *ast.Constant, target interface{}) error {
	v, err := m.FromConstant(c)
	if err != nil {
		return err
	}
	return m.decodeValue(v, target)
}

func (m *Marshaller) decodeValue(v, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	return m.assign(reflect.ValueOf(v), rv.Elem())
}

func (m *Marshaller) assign(src, dst reflect.Value) error {
	if dst.Kind() == reflect.Interface {
		dst.Set(src)
		return nil
	}
	if src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice {
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if err := m.assign(src.Index(i), out.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	}
	if src.Kind() == reflect.Slice || dst.Kind() == reflect.Slice {
		return fmt.Errorf("cannot decode %s into %s", src.Type(), dst.Type())
	}
	if !sameFamily(src.Kind(), dst.Kind()) || !src.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf("cannot decode %s into %s", src.Type(), dst.Type())
	}
	dst.Set(src.Convert(dst.Type()))
	return nil
}

func sameFamily(a, b reflect.Kind) bool {
	return family(a) == family(b)
}

func family(k reflect.Kind) int {
	switch k {
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	case reflect.Complex64, reflect.Complex128:
		return 4
	case reflect.String:
		return 5
	}
	return 0
}
