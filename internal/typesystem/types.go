package typesystem

import (
	"fmt"
	"strings"
)

// Category is the intrinsic type category of a value.
type Category int

const (
	Integer Category = iota
	Real
	Complex
	Character
	Logical
	// Derived covers declared derived types. Only the type-identity
	// queries look inside them.
	Derived
)

func (c Category) String() string {
	switch c {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Complex:
		return "COMPLEX"
	case Character:
		return "CHARACTER"
	case Logical:
		return "LOGICAL"
	case Derived:
		return "TYPE"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory maps a lower- or upper-case category name onto a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(s) {
	case "integer":
		return Integer, true
	case "real":
		return Real, true
	case "complex":
		return Complex, true
	case "character":
		return Character, true
	case "logical":
		return Logical, true
	case "type", "class":
		return Derived, true
	}
	return 0, false
}

// Type is a semantic type: a (category, kind) pair, or a declared derived
// type for the Derived category.
type Type struct {
	Category Category
	Kind     int

	Derived     *DerivedTypeSpec // set when Category == Derived and not unlimited
	Polymorphic bool             // CLASS(t)
	Unlimited   bool             // CLASS(*) and TYPE(*)
}

// Of builds an intrinsic type.
func Of(c Category, kind int) Type {
	return Type{Category: c, Kind: kind}
}

// TypeOf builds the non-polymorphic type of a derived type spec.
func TypeOf(spec *DerivedTypeSpec) Type {
	return Type{Category: Derived, Derived: spec}
}

// ClassOf builds the polymorphic CLASS(t) type of a derived type spec.
func ClassOf(spec *DerivedTypeSpec) Type {
	return Type{Category: Derived, Derived: spec, Polymorphic: true}
}

// UnlimitedPolymorphic is CLASS(*).
func UnlimitedPolymorphic() Type {
	return Type{Category: Derived, Polymorphic: true, Unlimited: true}
}

func (t Type) String() string {
	if t.Category != Derived {
		return fmt.Sprintf("%s(%d)", t.Category, t.Kind)
	}
	switch {
	case t.Unlimited:
		return "CLASS(*)"
	case t.Derived == nil:
		return "TYPE(?)"
	case t.Polymorphic:
		return "CLASS(" + t.Derived.String() + ")"
	default:
		return "TYPE(" + t.Derived.String() + ")"
	}
}

// Equal reports exact type equality, including derived type parameters.
func (t Type) Equal(o Type) bool {
	if t.Category != o.Category {
		return false
	}
	if t.Category != Derived {
		return t.Kind == o.Kind
	}
	if t.Unlimited || o.Unlimited {
		return t.Unlimited == o.Unlimited
	}
	return t.Polymorphic == o.Polymorphic && t.Derived.Equal(o.Derived)
}

func (t Type) IsNumeric() bool {
	return t.Category == Integer || t.Category == Real || t.Category == Complex
}

func (t Type) IsIntrinsic() bool {
	return t.Category != Derived
}

// WithKind returns the same intrinsic category at another kind.
func (t Type) WithKind(kind int) Type {
	return Type{Category: t.Category, Kind: kind}
}
