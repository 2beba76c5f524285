// Package ext re-exports the types a host program needs to plug its own
// analysis into the folder.
package ext

import (
	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/fold"
	"github.com/funvibe/logifold/internal/typesystem"
)

// Re-export expression types
type (
	Expr             = ast.Expr
	Designator       = ast.Designator
	AssumedTypeDummy = ast.AssumedTypeDummy
	Type             = typesystem.Type
)

// ContiguityAnalyzer answers IS_CONTIGUOUS for objects the folder cannot see.
type ContiguityAnalyzer = fold.ContiguityAnalyzer

// ContiguityFunc adapts a plain function to ContiguityAnalyzer.
type ContiguityFunc func(e Expr) (contiguous, known bool)

func (f ContiguityFunc) IsContiguous(e Expr) (bool, bool) { return f(e) }

// ByName answers for designators listed in names and leaves everything
// else undecided.
func ByName(names map[string]bool) ContiguityAnalyzer {
	return ContiguityFunc(func(e Expr) (bool, bool) {
		d, ok := e.(*Designator)
		if !ok {
			return false, false
		}
		c, known := names[d.Name]
		return c, known
	})
}
