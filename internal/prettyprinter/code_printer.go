package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

// --- Code Printer (output looks like Fortran source) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	".EQV.":  1,
	".NEQV.": 1,
	".OR.":   2,
	".AND.":  3,
	".NOT.":  4,
	"<":      5,
	"<=":     5,
	"==":     5,
	"/=":     5,
	">=":     5,
	">":      5,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // primaries
}

// defaultKinds are the kinds printed without a _kind suffix.
var defaultKinds = map[typesystem.Category]int{
	typesystem.Integer:   config.DefaultIntegerKind,
	typesystem.Real:      config.DefaultRealKind,
	typesystem.Complex:   config.DefaultRealKind,
	typesystem.Logical:   config.DefaultLogicalKind,
	typesystem.Character: config.DefaultCharacterKind,
}

type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders e on one line.
func Print(e ast.Expr) string {
	p := NewCodePrinter()
	p.printExpr(e, 0, false)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

// printExpr prints an expression, adding parentheses only if needed.
// Binary operators are left-associative; relations do not chain.
func (p *CodePrinter) printExpr(expr ast.Expr, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.LogicalOperation:
		p.printInfix(e.Op.String(), e.Left, e.Right, parentPrec, isRight)
	case *ast.Relational:
		p.printInfix(e.Op.String(), e.Left, e.Right, parentPrec, isRight)
	case *ast.Not:
		prec := getPrecedence(".NOT.")
		if prec < parentPrec {
			p.write("(")
		}
		p.write(".NOT. ")
		p.printExpr(e.Operand, prec, true)
		if prec < parentPrec {
			p.write(")")
		}
	case *ast.Constant:
		p.printConstant(e)
	case *ast.ArrayConstructor:
		p.printArray(e.Shape, len(e.Elements), func(i int) { p.printExpr(e.Elements[i], 0, false) })
	case *ast.Call:
		p.write(e.Name)
		p.write("(")
		for i, arg := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			if arg == nil {
				p.write("<absent>")
				continue
			}
			p.printExpr(arg, 0, false)
		}
		p.write(")")
	case *ast.Convert:
		p.printConvert(e)
	case *ast.Designator:
		p.write(e.Name)
	case *ast.AssumedTypeDummy:
		p.write(e.Name)
	case *ast.NullPointer:
		p.write("NULL()")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printInfix(op string, left, right ast.Expr, parentPrec int, isRight bool) {
	prec := getPrecedence(op)
	needParens := prec < parentPrec || (prec == parentPrec && isRight)
	if needParens {
		p.write("(")
	}
	p.printExpr(left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(right, prec, true)
	if needParens {
		p.write(")")
	}
}

func (p *CodePrinter) printConvert(c *ast.Convert) {
	switch c.To.Category {
	case typesystem.Logical:
		p.write("LOGICAL(")
	case typesystem.Character:
		p.write("ACHAR(")
	case typesystem.Integer:
		p.write("INT(")
	case typesystem.Real:
		p.write("REAL(")
	case typesystem.Complex:
		p.write("CMPLX(")
	default:
		p.printExpr(c.Operand, 0, false)
		return
	}
	p.printExpr(c.Operand, 0, false)
	p.write(", KIND=" + strconv.Itoa(c.To.Kind) + ")")
}

func (p *CodePrinter) printConstant(c *ast.Constant) {
	if v, ok := c.ScalarValue(); ok {
		p.printScalar(v)
		return
	}
	p.printArray(c.Shape(), c.Size(), func(i int) { p.printScalar(c.At(i)) })
}

// printArray writes [a, b, ...], wrapped in RESHAPE when the rank is not 1.
func (p *CodePrinter) printArray(shape []int, n int, elem func(int)) {
	reshaped := len(shape) != 1
	if reshaped {
		p.write("RESHAPE(")
	}
	p.write("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			p.write(", ")
		}
		elem(i)
	}
	p.write("]")
	if reshaped {
		extents := make([]string, len(shape))
		for i, e := range shape {
			extents[i] = strconv.Itoa(e)
		}
		p.write(", [" + strings.Join(extents, ", ") + "])")
	}
}

func (p *CodePrinter) printScalar(v scalar.Value) {
	switch x := v.(type) {
	case scalar.Character:
		if x.Kind() != config.DefaultCharacterKind {
			p.write(strconv.Itoa(x.Kind()) + "_")
		}
		p.write("'" + strings.ReplaceAll(x.Value(), "'", "''") + "'")
		return
	case scalar.Complex:
		p.write("(" + x.Re.String() + ", " + x.Im.String() + ")")
	default:
		p.write(v.String())
	}
	t := v.Type()
	if t.Kind != defaultKinds[t.Category] {
		p.write("_" + strconv.Itoa(t.Kind))
	}
}
