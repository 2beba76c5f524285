package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// TypeDecl is a derived type definition. Two specs name the same type
// exactly when they share a TypeDecl.
type TypeDecl struct {
	Name   string
	Parent *TypeDecl // nil unless declared EXTENDS(parent)
}

// Extends reports whether d is base or a (transitive) extension of it.
func (d *TypeDecl) Extends(base *TypeDecl) bool {
	for t := d; t != nil; t = t.Parent {
		if t == base {
			return true
		}
	}
	return false
}

// DerivedTypeSpec is a use of a derived type with its type parameter values.
type DerivedTypeSpec struct {
	Decl   *TypeDecl
	Params map[string]int
}

func (s *DerivedTypeSpec) String() string {
	if s == nil || s.Decl == nil {
		return "?"
	}
	if len(s.Params) == 0 {
		return s.Decl.Name
	}
	names := make([]string, 0, len(s.Params))
	for n := range s.Params {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%d", n, s.Params[n])
	}
	return s.Decl.Name + "(" + strings.Join(parts, ",") + ")"
}

// Equal compares declarations and parameter values.
func (s *DerivedTypeSpec) Equal(o *DerivedTypeSpec) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Decl != o.Decl || len(s.Params) != len(o.Params) {
		return false
	}
	for k, v := range s.Params {
		if ov, ok := o.Params[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// declsOf returns the declarations behind two extensible types, or false when
// either is not a known derived type.
func declsOf(a, b Type) (*TypeDecl, *TypeDecl, bool) {
	if a.Category != Derived || b.Category != Derived || a.Unlimited || b.Unlimited {
		return nil, nil, false
	}
	if a.Derived == nil || b.Derived == nil || a.Derived.Decl == nil || b.Derived.Decl == nil {
		return nil, nil, false
	}
	return a.Derived.Decl, b.Derived.Decl, true
}

func unrelated(x, y *TypeDecl) bool {
	return !x.Extends(y) && !y.Extends(x)
}

// ExtendsTypeOf decides EXTENDS_TYPE_OF(a, mold) from declared types alone,
// ignoring type parameters. ok is false when only the dynamic types could
// settle the answer.
func ExtendsTypeOf(a, mold Type) (result, ok bool) {
	ad, md, known := declsOf(a, mold)
	if !known {
		return false, false
	}
	switch {
	case !a.Polymorphic && !mold.Polymorphic:
		return ad.Extends(md), true
	case unrelated(ad, md):
		// every extension of ad stays outside the md hierarchy
		return false, true
	case !mold.Polymorphic && ad.Extends(md):
		return true, true
	case !a.Polymorphic && md != ad && md.Extends(ad):
		// mold's dynamic type is a strict extension of a's fixed type
		return false, true
	}
	return false, false
}

// SameTypeAs decides SAME_TYPE_AS(a, b) from declared types alone, ignoring
// type parameters.
func SameTypeAs(a, b Type) (result, ok bool) {
	ad, bd, known := declsOf(a, b)
	if !known {
		return false, false
	}
	switch {
	case !a.Polymorphic && !b.Polymorphic:
		return ad == bd, true
	case unrelated(ad, bd):
		return false, true
	case !a.Polymorphic && bd != ad && bd.Extends(ad):
		return false, true
	case !b.Polymorphic && ad != bd && ad.Extends(bd):
		return false, true
	}
	return false, false
}
