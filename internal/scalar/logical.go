package scalar

import "github.com/funvibe/logifold/internal/typesystem"

// Logical is a truth value of a given kind.
type Logical struct {
	kind int
	v    bool
}

func NewLogical(kind int, v bool) Logical {
	return Logical{kind: kind, v: v}
}

func (l Logical) Type() typesystem.Type { return typesystem.Of(typesystem.Logical, l.kind) }
func (l Logical) Kind() int             { return l.kind }
func (l Logical) IsTrue() bool          { return l.v }

func (l Logical) String() string {
	if l.v {
		return ".TRUE."
	}
	return ".FALSE."
}

// Convert changes the logical kind.
func (l Logical) Convert(kind int) Logical { return Logical{kind: kind, v: l.v} }

func (l Logical) Not() Logical           { return Logical{kind: l.kind, v: !l.v} }
func (l Logical) And(o Logical) Logical  { return Logical{kind: l.kind, v: l.v && o.v} }
func (l Logical) Or(o Logical) Logical   { return Logical{kind: l.kind, v: l.v || o.v} }
func (l Logical) Eqv(o Logical) Logical  { return Logical{kind: l.kind, v: l.v == o.v} }
func (l Logical) Neqv(o Logical) Logical { return Logical{kind: l.kind, v: l.v != o.v} }
