package scalar

import (
	"math/big"

	"github.com/funvibe/logifold/internal/typesystem"
)

// Integer is a two's complement integer of a given kind.
type Integer struct {
	kind int
	v    *big.Int // always within the signed range of kind
}

// NewInteger wraps v into the signed range of kind.
func NewInteger(kind int, v int64) Integer {
	i, _ := IntegerFromBig(kind, big.NewInt(v))
	return i
}

// IntegerFromBig stores v in kind, wrapping modulo 2^bits. overflow reports
// whether v was outside the signed range.
func IntegerFromBig(kind int, v *big.Int) (Integer, bool) {
	bits := uint(kind * 8)
	lo, hi := signedBounds(bits)
	if v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0 {
		return Integer{kind: kind, v: new(big.Int).Set(v)}, false
	}
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	w := new(big.Int).Mod(v, mod)
	if w.Cmp(hi) > 0 {
		w.Sub(w, mod)
	}
	return Integer{kind: kind, v: w}, true
}

func signedBounds(bits uint) (*big.Int, *big.Int) {
	hi := new(big.Int).Lsh(big.NewInt(1), bits-1)
	lo := new(big.Int).Neg(hi)
	hi.Sub(hi, big.NewInt(1))
	return lo, hi
}

func (i Integer) Type() typesystem.Type { return typesystem.Of(typesystem.Integer, i.kind) }
func (i Integer) String() string        { return i.big().String() }
func (i Integer) Kind() int             { return i.kind }
func (i Integer) Bits() int             { return i.kind * 8 }

func (i Integer) big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return i.v
}

// Big returns a copy of the signed value.
func (i Integer) Big() *big.Int { return new(big.Int).Set(i.big()) }

// Int64 truncates to 64 bits; kinds up to 8 are exact.
func (i Integer) Int64() int64 {
	if i.big().IsInt64() {
		return i.big().Int64()
	}
	u := new(big.Int).And(i.big(), new(big.Int).SetUint64(^uint64(0)))
	return int64(u.Uint64())
}

// Unsigned reinterprets the bit pattern as a non-negative magnitude.
func (i Integer) Unsigned() *big.Int {
	v := i.Big()
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), uint(i.Bits())))
	}
	return v
}

// CompareSigned orders two integers by value.
func (i Integer) CompareSigned(o Integer) Ordering {
	return compareInts(i.big().Cmp(o.big()), 0)
}

// CompareUnsigned orders the bit patterns as unsigned magnitudes. The
// narrower operand is zero-extended.
func (i Integer) CompareUnsigned(o Integer) Ordering {
	return compareInts(i.Unsigned().Cmp(o.Unsigned()), 0)
}

// ZeroExtend widens the bit pattern to kind without sign extension.
func (i Integer) ZeroExtend(kind int) Integer {
	w, _ := IntegerFromBig(kind, i.Unsigned())
	return w
}

// BTest reports whether bit pos is set. Positions outside [0, bits) read as
// a clear bit.
func (i Integer) BTest(pos int64) bool {
	if pos < 0 || pos >= int64(i.Bits()) {
		return false
	}
	return i.Unsigned().Bit(int(pos)) == 1
}

// ConvertSigned converts to another integer kind; overflow is set when the
// value does not fit and the result wraps.
func (i Integer) ConvertSigned(kind int) (Integer, bool) {
	return IntegerFromBig(kind, i.big())
}
