package scalar

import (
	"math"
	"math/big"
	"testing"
)

func TestIntegerWrap(t *testing.T) {
	i, overflow := IntegerFromBig(1, big.NewInt(300))
	if !overflow {
		t.Errorf("300 in INTEGER(1) should overflow")
	}
	if i.Int64() != 44 {
		t.Errorf("300 wraps to %d, want 44", i.Int64())
	}
	if got := NewInteger(1, -1).Unsigned().Int64(); got != 255 {
		t.Errorf("unsigned(-1_1) = %d, want 255", got)
	}
}

func TestBTest(t *testing.T) {
	five := NewInteger(4, 5)
	tests := []struct {
		pos  int64
		want bool
	}{
		{0, true},
		{1, false},
		{2, true},
		{31, false},
		{32, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := five.BTest(tt.pos); got != tt.want {
			t.Errorf("BTest(5, %d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
	if !NewInteger(4, -1).BTest(31) {
		t.Errorf("sign bit of -1 should be set")
	}
}

func TestCompareUnsigned(t *testing.T) {
	ff := NewInteger(1, -1) // bit pattern 0xFF
	one := NewInteger(1, 1)
	if got := ff.CompareUnsigned(one); got != Greater {
		t.Errorf("0xFF vs 0x01 = %s, want greater", got)
	}
	if got := ff.CompareSigned(one); got != Less {
		t.Errorf("signed -1 vs 1 = %s, want less", got)
	}
	// zero extension of the narrower pattern
	wide := NewInteger(4, 255)
	if got := ff.CompareUnsigned(wide); got != Equal {
		t.Errorf("0xFF_1 vs 255_4 = %s, want equal", got)
	}
	if got := ff.ZeroExtend(16).Big().Int64(); got != 255 {
		t.Errorf("ZeroExtend = %d, want 255", got)
	}
}

func TestConvertSigned(t *testing.T) {
	if _, overflow := NewInteger(4, 127).ConvertSigned(1); overflow {
		t.Errorf("127 fits INTEGER(1)")
	}
	if _, overflow := NewInteger(4, 128).ConvertSigned(1); !overflow {
		t.Errorf("128 overflows INTEGER(1)")
	}
	if _, overflow := NewInteger(4, -128).ConvertSigned(1); overflow {
		t.Errorf("-128 fits INTEGER(1)")
	}
}

func TestRealClassification(t *testing.T) {
	tests := []struct {
		name                  string
		r                     Real
		nan, negative, normal bool
	}{
		{"one", NewReal(4, 1), false, false, true},
		{"zero", NewReal(4, 0), false, false, true},
		{"negative zero", NewReal(4, math.Copysign(0, -1)), false, true, true},
		{"nan", NewReal(4, math.NaN()), true, false, false},
		{"-inf", NewReal(4, math.Inf(-1)), false, true, false},
		{"subnormal", NewReal(4, math.Ldexp(1, -130)), false, false, false},
		{"double subnormal is zero in kind 4", NewReal(4, math.Ldexp(1, -1030)), false, false, true},
		{"smallest kind 8 normal", NewReal(8, math.Ldexp(1, -1022)), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsNaN(); got != tt.nan {
				t.Errorf("IsNaN = %v", got)
			}
			if got := tt.r.IsNegative(); got != tt.negative {
				t.Errorf("IsNegative = %v", got)
			}
			if got := tt.r.IsNormal(); got != tt.normal {
				t.Errorf("IsNormal = %v", got)
			}
		})
	}
}

func TestRealCompareNaN(t *testing.T) {
	nan := NewReal(8, math.NaN())
	if got := nan.Compare(nan); got != Unordered {
		t.Errorf("NaN vs NaN = %s, want unordered", got)
	}
	if got := NewReal(8, 1).Compare(NewReal(8, 2)); got != Less {
		t.Errorf("1 vs 2 = %s", got)
	}
}

func TestRealConvertOverflow(t *testing.T) {
	tests := []struct {
		name     string
		from     float64
		kind     int
		overflow bool
	}{
		{"double max to single", math.MaxFloat64, 4, true},
		{"single max to single", math.MaxFloat32, 4, false},
		{"rounds down to single max", math.MaxFloat32 + math.Ldexp(1, 102), 4, false},
		{"rounds up past single max", math.Ldexp(1, 128) - math.Ldexp(1, 103), 4, true},
		{"half max", 65504, 2, false},
		{"rounds down to half max", 65519, 2, false},
		{"rounds up past half max", 65520, 2, true},
		{"negative", -1e39, 4, true},
		{"infinity is not overflow", math.Inf(1), 4, false},
		{"nan is not overflow", math.NaN(), 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, overflow := NewReal(8, tt.from).Convert(tt.kind); overflow != tt.overflow {
				t.Errorf("overflow = %v, want %v", overflow, tt.overflow)
			}
		})
	}
}

func TestHalfRounding(t *testing.T) {
	if got := NewReal(2, 1.0009765625).Float64(); got != 1.0009765625 {
		t.Errorf("1+2^-10 should be exact in REAL(2), got %v", got)
	}
	if got := NewReal(2, 1.00048828125).Float64(); got != 1 {
		t.Errorf("1+2^-11 ties to even 1, got %v", got)
	}
	if got := NewReal(2, math.Ldexp(1, -24)).Float64(); got != math.Ldexp(1, -24) {
		t.Errorf("smallest subnormal lost: %v", got)
	}
}

func TestRealFromInteger(t *testing.T) {
	if _, overflow := RealFromInteger(4, NewInteger(8, math.MaxInt64)); overflow {
		t.Errorf("INTEGER(8) max fits REAL(4)")
	}
	if _, overflow := RealFromInteger(2, NewInteger(4, 65504)); overflow {
		t.Errorf("65504 fits REAL(2)")
	}
	if _, overflow := RealFromInteger(2, NewInteger(4, 70000)); !overflow {
		t.Errorf("70000 overflows REAL(2)")
	}
	r, _ := RealFromInteger(4, NewInteger(4, 16777217))
	if r.Float64() != 16777216 {
		t.Errorf("2^24+1 rounds to %v, want 16777216", r.Float64())
	}
}

func TestRealToInteger(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		kind     int
		mode     RoundingMode
		want     int64
		overflow bool
	}{
		{"truncate", 2.7, 4, ToZero, 2, false},
		{"round", 2.5, 4, TiesAwayFromZero, 3, false},
		{"round negative", -2.5, 4, TiesAwayFromZero, -3, false},
		{"truncate fits", 127.9, 1, ToZero, 127, false},
		{"round overflows", 127.5, 1, TiesAwayFromZero, 0, true},
		{"nan", math.NaN(), 4, ToZero, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, overflow := NewReal(8, tt.v).ToInteger(tt.kind, tt.mode)
			if overflow != tt.overflow {
				t.Fatalf("overflow = %v, want %v", overflow, tt.overflow)
			}
			if !overflow && i.Int64() != tt.want {
				t.Errorf("value = %d, want %d", i.Int64(), tt.want)
			}
		})
	}
}

func TestCharacterCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want Ordering
	}{
		{"abc", "abd", Less},
		{"abd", "abc", Greater},
		{"abc", "abc  ", Equal},
		{"ab", "ab!", Less}, // blank sorts before '!'
		{"", " ", Equal},
	}
	for _, tt := range tests {
		if got := NewCharacter(1, tt.a).Compare(NewCharacter(1, tt.b)); got != tt.want {
			t.Errorf("Compare(%q, %q) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestComplexEquals(t *testing.T) {
	if !NewComplex(8, 1, 2).Equals(NewComplex(8, 1, 2)) {
		t.Errorf("(1,2) == (1,2)")
	}
	if NewComplex(8, 1, 2).Equals(NewComplex(8, 1, -2)) {
		t.Errorf("(1,2) != (1,-2)")
	}
	if NewComplex(8, math.NaN(), 0).Equals(NewComplex(8, math.NaN(), 0)) {
		t.Errorf("NaN parts never compare equal")
	}
}
