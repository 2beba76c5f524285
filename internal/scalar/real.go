package scalar

import (
	"math"
	"math/big"
	"strconv"

	"github.com/funvibe/logifold/internal/typesystem"
)

// RoundingMode selects how real to integer conversion discards the fraction.
type RoundingMode int

const (
	ToZero           RoundingMode = iota // truncation, as INT()
	TiesAwayFromZero                     // as NINT()
)

// format describes a binary IEEE interchange format.
type format struct {
	precision uint    // significand bits including the hidden bit
	minExp    int     // exponent of the smallest normal number
	maxFinite float64 // largest finite magnitude
}

var formats = map[int]format{
	2: {precision: 11, minExp: -14, maxFinite: 65504},
	4: {precision: 24, minExp: -126, maxFinite: math.MaxFloat32},
	8: {precision: 53, minExp: -1022, maxFinite: math.MaxFloat64},
}

// Real is an IEEE binary floating-point value of kind 2, 4 or 8, held in a
// float64 that is exactly representable in the kind's format.
type Real struct {
	kind int
	v    float64
}

// NewReal rounds f to the nearest value of kind. Magnitudes beyond the
// format become infinities.
func NewReal(kind int, f float64) Real {
	r, _ := roundToKind(kind, f)
	return Real{kind: kind, v: r}
}

func (r Real) Type() typesystem.Type { return typesystem.Of(typesystem.Real, r.kind) }
func (r Real) Kind() int             { return r.kind }
func (r Real) Float64() float64      { return r.v }

func (r Real) String() string {
	switch {
	case math.IsNaN(r.v):
		return "NaN"
	case math.IsInf(r.v, 1):
		return "Inf"
	case math.IsInf(r.v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(r.v, 'g', -1, 64)
}

func (r Real) IsNaN() bool      { return math.IsNaN(r.v) }
func (r Real) IsInfinite() bool { return math.IsInf(r.v, 0) }
func (r Real) IsFinite() bool   { return !r.IsNaN() && !r.IsInfinite() }
func (r Real) IsZero() bool     { return r.v == 0 }

// IsNegative tests the sign bit, so -0.0 and negative NaNs are negative.
func (r Real) IsNegative() bool { return math.Signbit(r.v) }

func (r Real) IsSubnormal() bool {
	if !r.IsFinite() || r.v == 0 {
		return false
	}
	return math.Abs(r.v) < math.Ldexp(1, formats[r.kind].minExp)
}

// IsNormal follows the IEEE_IS_NORMAL convention: zero is normal, while
// infinities, NaNs and subnormals are not.
func (r Real) IsNormal() bool {
	return r.IsFinite() && !r.IsSubnormal()
}

// Compare is the IEEE ordered comparison; any NaN makes it Unordered.
func (r Real) Compare(o Real) Ordering {
	switch {
	case r.IsNaN() || o.IsNaN():
		return Unordered
	case r.v < o.v:
		return Less
	case r.v > o.v:
		return Greater
	}
	return Equal
}

// Convert rounds to another real kind. overflow is set when a finite value
// becomes infinite.
func (r Real) Convert(kind int) (Real, bool) {
	v, overflow := roundToKind(kind, r.v)
	return Real{kind: kind, v: v}, overflow
}

// RealFromInteger converts an integer to the nearest value of kind.
func RealFromInteger(kind int, i Integer) (Real, bool) {
	f := formats[kind]
	x := new(big.Float).SetMode(big.ToNearestEven).SetPrec(f.precision).SetInt(i.big())
	v, _ := x.Float64()
	if math.Abs(v) > f.maxFinite {
		return Real{kind: kind, v: math.Copysign(math.Inf(1), v)}, true
	}
	return Real{kind: kind, v: v}, false
}

// ToInteger converts to an integer kind with the given rounding. overflow
// is set for non-finite values and for results outside the kind's range.
func (r Real) ToInteger(kind int, mode RoundingMode) (Integer, bool) {
	if !r.IsFinite() {
		return NewInteger(kind, 0), true
	}
	t := math.Trunc(r.v)
	if mode == TiesAwayFromZero {
		t = math.Round(r.v)
	}
	bi, _ := new(big.Float).SetFloat64(t).Int(nil)
	return IntegerFromBig(kind, bi)
}

// roundToKind rounds f to the format of kind with ties to even, reporting
// overflow when a finite f has no finite image.
func roundToKind(kind int, f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return f, false
	}
	ft, ok := formats[kind]
	if !ok || kind == 8 {
		return f, false
	}
	a := math.Abs(f)
	// halfway between maxFinite and the next power of two rounds up to Inf
	ulp := math.Ldexp(1, ilogb(ft.maxFinite)-int(ft.precision)+1)
	if a >= ft.maxFinite+ulp/2 {
		return math.Copysign(math.Inf(1), f), true
	}
	if kind == 4 {
		return float64(float32(f)), false
	}
	e := ilogb(a)
	if e < ft.minExp {
		e = ft.minExp
	}
	quantum := math.Ldexp(1, e-int(ft.precision)+1)
	return math.Copysign(math.RoundToEven(a/quantum)*quantum, f), false
}

func ilogb(a float64) int {
	_, exp := math.Frexp(a)
	return exp - 1
}
