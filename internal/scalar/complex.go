package scalar

import (
	"fmt"

	"github.com/funvibe/logifold/internal/typesystem"
)

// Complex is a pair of reals of the same kind.
type Complex struct {
	Re, Im Real
}

func NewComplex(kind int, re, im float64) Complex {
	return Complex{Re: NewReal(kind, re), Im: NewReal(kind, im)}
}

func (c Complex) Type() typesystem.Type { return typesystem.Of(typesystem.Complex, c.Re.kind) }
func (c Complex) String() string        { return fmt.Sprintf("(%s,%s)", c.Re, c.Im) }

// Equals is exact componentwise equality; NaN parts never compare equal.
func (c Complex) Equals(o Complex) bool {
	return c.Re.Compare(o.Re) == Equal && c.Im.Compare(o.Im) == Equal
}
