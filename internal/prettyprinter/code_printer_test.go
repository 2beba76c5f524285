package prettyprinter

import (
	"testing"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/scalar"
	"github.com/funvibe/logifold/internal/typesystem"
)

func TestPrint(t *testing.T) {
	logical4 := typesystem.Of(typesystem.Logical, 4)
	int4 := typesystem.Of(typesystem.Integer, 4)
	x := &ast.Designator{Name: "x", Typ: logical4}
	y := &ast.Designator{Name: "y", Typ: logical4}
	tru := ast.LogicalConstant(4, true)

	tests := []struct {
		name     string
		expr     ast.Expr
		expected string
	}{
		{"logical constant", tru, ".TRUE."},
		{"non-default kind", ast.LogicalConstant(1, false), ".FALSE._1"},
		{"integer", ast.ScalarConstant(scalar.NewInteger(4, -3)), "-3"},
		{"character", ast.ScalarConstant(scalar.NewCharacter(1, "it's")), "'it''s'"},
		{
			"and binds tighter than or",
			&ast.LogicalOperation{Op: ast.Or, Left: x, Right: &ast.LogicalOperation{Op: ast.And, Left: y, Right: tru}},
			"x .OR. y .AND. .TRUE.",
		},
		{
			"parenthesised or under and",
			&ast.LogicalOperation{Op: ast.And, Left: &ast.LogicalOperation{Op: ast.Or, Left: x, Right: y}, Right: tru},
			"(x .OR. y) .AND. .TRUE.",
		},
		{"not", &ast.Not{Operand: x}, ".NOT. x"},
		{
			"relation",
			&ast.Relational{
				Op:     ast.LT,
				Left:   ast.ScalarConstant(scalar.NewInteger(4, 3)),
				Right:  ast.ScalarConstant(scalar.NewInteger(4, 5)),
				Result: logical4,
			},
			"3 < 5",
		},
		{
			"array",
			ast.NewConstant(logical4, []scalar.Value{scalar.NewLogical(4, true), scalar.NewLogical(4, false)}, []int{2}),
			"[.TRUE., .FALSE.]",
		},
		{
			"rank two",
			ast.NewConstant(int4, []scalar.Value{
				scalar.NewInteger(4, 1), scalar.NewInteger(4, 2),
				scalar.NewInteger(4, 3), scalar.NewInteger(4, 4),
			}, []int{2, 2}),
			"RESHAPE([1, 2, 3, 4], [2, 2])",
		},
		{"call", ast.NewCall("all", logical4, x, nil), "all(x, <absent>)"},
		{"convert", &ast.Convert{To: typesystem.Of(typesystem.Logical, 1), Operand: x}, "LOGICAL(x, KIND=1)"},
		{"null", &ast.NullPointer{}, "NULL()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.expr); got != tt.expected {
				t.Errorf("Print() = %q, want %q", got, tt.expected)
			}
		})
	}
}
