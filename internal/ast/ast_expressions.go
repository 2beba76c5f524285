package ast

import (
	"github.com/funvibe/logifold/internal/typesystem"
)

// ArrayConstructor is an array whose elements are scalar expressions that
// are not all constant, e.g. [x, .TRUE.].
type ArrayConstructor struct {
	ElementType typesystem.Type
	Elements    []Expr // len == ShapeSize(Shape)
	Shape       []int
}

func (ac *ArrayConstructor) Type() typesystem.Type { return ac.ElementType }
func (ac *ArrayConstructor) Rank() int             { return len(ac.Shape) }
func (ac *ArrayConstructor) exprNode()             {}

// Call is a reference to an intrinsic function. Args are positional;
// a nil entry is an argument that was not supplied.
type Call struct {
	Func   Intrinsic
	Name   string // as written; the only identification of IntrinsicOther
	Result typesystem.Type
	Dims   int // rank of the result
	Args   []Expr
}

func (c *Call) Type() typesystem.Type { return c.Result }
func (c *Call) Rank() int             { return c.Dims }
func (c *Call) exprNode()             {}

// Arg returns the i-th argument or nil when absent.
func (c *Call) Arg(i int) Expr {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// RelationalOperator is a comparison.
type RelationalOperator int

const (
	LT RelationalOperator = iota
	LE
	EQ
	NE
	GE
	GT
)

func (op RelationalOperator) String() string {
	switch op {
	case LT:
		return "<"
	case LE:
		return "<="
	case EQ:
		return "=="
	case NE:
		return "/="
	case GE:
		return ">="
	case GT:
		return ">"
	}
	return "?"
}

// Relational compares two operands of the same intrinsic, non-logical type.
type Relational struct {
	Op     RelationalOperator
	Left   Expr
	Right  Expr
	Result typesystem.Type // a logical type
}

func (r *Relational) Type() typesystem.Type { return r.Result }
func (r *Relational) Rank() int             { return maxRank(r.Left, r.Right) }
func (r *Relational) exprNode()             {}

// OperandType is the common type of both operands.
func (r *Relational) OperandType() typesystem.Type { return r.Left.Type() }

// LogicalOperator is a boolean connective. Not is unary and only appears
// on a Not node.
type LogicalOperator int

const (
	And LogicalOperator = iota
	Or
	Eqv
	Neqv
	NotOp
)

func (op LogicalOperator) String() string {
	switch op {
	case And:
		return ".AND."
	case Or:
		return ".OR."
	case Eqv:
		return ".EQV."
	case Neqv:
		return ".NEQV."
	case NotOp:
		return ".NOT."
	}
	return "?"
}

// LogicalOperation applies a binary connective to two logical operands of
// the same kind.
type LogicalOperation struct {
	Op    LogicalOperator
	Left  Expr
	Right Expr
}

func (lo *LogicalOperation) Type() typesystem.Type { return lo.Left.Type() }
func (lo *LogicalOperation) Rank() int             { return maxRank(lo.Left, lo.Right) }
func (lo *LogicalOperation) exprNode()             {}

// Not is logical negation.
type Not struct {
	Operand Expr
}

func (n *Not) Type() typesystem.Type { return n.Operand.Type() }
func (n *Not) Rank() int             { return n.Operand.Rank() }
func (n *Not) exprNode()             {}

// Convert changes the kind of an operand within its category.
type Convert struct {
	To      typesystem.Type
	Operand Expr
}

func (c *Convert) Type() typesystem.Type { return c.To }
func (c *Convert) Rank() int             { return c.Operand.Rank() }
func (c *Convert) exprNode()             {}

// Designator names a data object whose value is not known to the folder.
type Designator struct {
	Name       string
	Typ        typesystem.Type
	Dims       int
	Contiguous *bool // static contiguity, when analysis could decide it
}

func (d *Designator) Type() typesystem.Type { return d.Typ }
func (d *Designator) Rank() int             { return d.Dims }
func (d *Designator) exprNode()             {}

// AssumedTypeDummy is a TYPE(*) dummy argument passed through to an
// inquiry intrinsic.
type AssumedTypeDummy struct {
	Name       string
	Dims       int
	Contiguous *bool
}

func (a *AssumedTypeDummy) Type() typesystem.Type { return typesystem.UnlimitedPolymorphic() }
func (a *AssumedTypeDummy) Rank() int             { return a.Dims }
func (a *AssumedTypeDummy) exprNode()             {}

// NullPointer is a NULL() reference.
type NullPointer struct {
	Mold *typesystem.Type // type of MOLD=, when given
}

func (n *NullPointer) Type() typesystem.Type {
	if n.Mold != nil {
		return *n.Mold
	}
	return typesystem.UnlimitedPolymorphic()
}
func (n *NullPointer) Rank() int { return 0 }
func (n *NullPointer) exprNode() {}

func maxRank(a, b Expr) int {
	if a.Rank() > b.Rank() {
		return a.Rank()
	}
	return b.Rank()
}
