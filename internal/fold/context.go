// Package fold rewrites logical-valued expressions into constants when
// their value is decidable at compile time. Anything it cannot decide is
// returned unevaluated, with whatever sub-expressions did fold substituted
// in place; folding never fails.
package fold

import (
	"github.com/google/uuid"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/diagnostics"
)

// ContiguityAnalyzer decides, when it can, whether an object is stored
// contiguously.
type ContiguityAnalyzer interface {
	IsContiguous(e ast.Expr) (contiguous, known bool)
}

// staticContiguity trusts what resolution recorded on the designator.
type staticContiguity struct{}

func (staticContiguity) IsContiguous(e ast.Expr) (bool, bool) {
	switch x := e.(type) {
	case *ast.Designator:
		if x.Dims == 0 {
			return true, true
		}
		if x.Contiguous != nil {
			return *x.Contiguous, true
		}
	case *ast.AssumedTypeDummy:
		if x.Dims == 0 {
			return true, true
		}
		if x.Contiguous != nil {
			return *x.Contiguous, true
		}
	}
	return false, false
}

// Context is the folding state of one analysis unit.
type Context struct {
	unit       uuid.UUID
	file       string
	cfg        *config.Config
	messages   *diagnostics.Messages
	contiguity ContiguityAnalyzer
}

// Option configures a Context.
type Option func(*Context)

// WithConfig replaces the built-in defaults.
func WithConfig(cfg *config.Config) Option {
	return func(c *Context) { c.cfg = cfg }
}

// WithFile names the source of the unit in diagnostics.
func WithFile(path string) Option {
	return func(c *Context) { c.file = path }
}

// WithUnit reuses an ID assigned when the unit was loaded.
func WithUnit(id uuid.UUID) Option {
	return func(c *Context) { c.unit = id }
}

// WithContiguity installs a contiguity analysis.
func WithContiguity(a ContiguityAnalyzer) Option {
	return func(c *Context) { c.contiguity = a }
}

// NewContext creates the folding context of a fresh analysis unit.
func NewContext(opts ...Option) *Context {
	c := &Context{
		unit:       uuid.New(),
		cfg:        config.Default(),
		contiguity: staticContiguity{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.messages = diagnostics.NewMessages(c.file, c.unit.String())
	return c
}

func (c *Context) Unit() uuid.UUID                 { return c.unit }
func (c *Context) Messages() *diagnostics.Messages { return c.messages }
func (c *Context) Config() *config.Config          { return c.cfg }
func (c *Context) Contiguity() ContiguityAnalyzer  { return c.contiguity }
func (c *Context) DefaultRealKind() int            { return c.cfg.DefaultRealKind }

// Diagnostics returns what folding reported for this unit.
func (c *Context) Diagnostics() []*diagnostics.DiagnosticError {
	return c.messages.Errors()
}
