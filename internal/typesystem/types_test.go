package typesystem

import "testing"

func TestTypeString(t *testing.T) {
	point := &TypeDecl{Name: "point"}
	tests := []struct {
		typ  Type
		want string
	}{
		{Of(Logical, 4), "LOGICAL(4)"},
		{Of(Integer, 16), "INTEGER(16)"},
		{TypeOf(&DerivedTypeSpec{Decl: point}), "TYPE(point)"},
		{ClassOf(&DerivedTypeSpec{Decl: point, Params: map[string]int{"k": 8}}), "CLASS(point(k=8))"},
		{UnlimitedPolymorphic(), "CLASS(*)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

func TestValidKinds(t *testing.T) {
	if !IsValidKind(Integer, 16) {
		t.Errorf("INTEGER(16) should be valid")
	}
	if IsValidKind(Real, 16) {
		t.Errorf("REAL(16) is not supported")
	}
	if IsValidKind(Logical, 3) {
		t.Errorf("LOGICAL(3) should be invalid")
	}
	if got := Of(Real, 2).Bits(); got != 16 {
		t.Errorf("REAL(2) bits = %d, want 16", got)
	}
}

func TestExtendsTypeOf(t *testing.T) {
	base := &TypeDecl{Name: "base"}
	child := &TypeDecl{Name: "child", Parent: base}
	other := &TypeDecl{Name: "other"}

	typ := func(d *TypeDecl) Type { return TypeOf(&DerivedTypeSpec{Decl: d}) }
	class := func(d *TypeDecl) Type { return ClassOf(&DerivedTypeSpec{Decl: d}) }

	tests := []struct {
		name       string
		a, mold    Type
		wantResult bool
		wantOK     bool
	}{
		{"child extends base", typ(child), typ(base), true, true},
		{"base does not extend child", typ(base), typ(child), false, true},
		{"same type extends itself", typ(base), typ(base), true, true},
		{"unrelated", class(child), typ(other), false, true},
		{"class child extends type base", class(child), typ(base), true, true},
		{"type base vs class child", typ(base), class(child), false, true},
		{"class base vs type child", class(base), typ(child), false, false},
		{"unlimited", UnlimitedPolymorphic(), typ(base), false, false},
		{"intrinsic", Of(Integer, 4), typ(base), false, false},
		{"parameters ignored", TypeOf(&DerivedTypeSpec{Decl: child, Params: map[string]int{"n": 1}}),
			TypeOf(&DerivedTypeSpec{Decl: base, Params: map[string]int{"n": 2}}), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtendsTypeOf(tt.a, tt.mold)
			if ok != tt.wantOK || (ok && got != tt.wantResult) {
				t.Errorf("ExtendsTypeOf = (%v, %v), want (%v, %v)", got, ok, tt.wantResult, tt.wantOK)
			}
		})
	}
}

func TestSameTypeAs(t *testing.T) {
	base := &TypeDecl{Name: "base"}
	child := &TypeDecl{Name: "child", Parent: base}
	other := &TypeDecl{Name: "other"}

	spec := func(d *TypeDecl, n int) *DerivedTypeSpec {
		return &DerivedTypeSpec{Decl: d, Params: map[string]int{"n": n}}
	}

	if got, ok := SameTypeAs(TypeOf(spec(base, 1)), TypeOf(spec(base, 2))); !ok || !got {
		t.Errorf("same declaration with different parameters: got (%v, %v)", got, ok)
	}
	if got, ok := SameTypeAs(TypeOf(spec(base, 1)), TypeOf(spec(child, 1))); !ok || got {
		t.Errorf("base vs child: got (%v, %v)", got, ok)
	}
	if got, ok := SameTypeAs(ClassOf(spec(base, 1)), TypeOf(spec(other, 1))); !ok || got {
		t.Errorf("unrelated: got (%v, %v)", got, ok)
	}
	if _, ok := SameTypeAs(ClassOf(spec(base, 1)), TypeOf(spec(child, 1))); ok {
		t.Errorf("class(base) vs type(child) must be undecidable")
	}
	if got, ok := SameTypeAs(TypeOf(spec(base, 1)), ClassOf(spec(child, 1))); !ok || got {
		t.Errorf("type(base) vs class(child): got (%v, %v)", got, ok)
	}
}
