package pipeline

import (
	"github.com/google/uuid"

	"github.com/funvibe/logifold/internal/ast"
	"github.com/funvibe/logifold/internal/config"
	"github.com/funvibe/logifold/internal/diagnostics"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one source file through the stages.
type PipelineContext struct {
	FilePath string
	Source   []byte
	Config   *config.Config

	// Units holds one analysis unit per document in the file.
	Units []*Unit

	// Errors are problems with the file itself; folding diagnostics live
	// on their unit.
	Errors []*diagnostics.DiagnosticError
}

// Unit is one expression document.
type Unit struct {
	ID          uuid.UUID
	Name        string
	Entries     []*ast.Entry
	Diagnostics []*diagnostics.DiagnosticError
}

func NewPipelineContext(path string, source []byte, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{FilePath: path, Source: source, Config: cfg}
}

// HasErrors reports whether any stage or unit produced a diagnostic.
func (c *PipelineContext) HasErrors() bool {
	if len(c.Errors) > 0 {
		return true
	}
	for _, u := range c.Units {
		if len(u.Diagnostics) > 0 {
			return true
		}
	}
	return false
}
