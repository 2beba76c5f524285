package parser

import (
	"github.com/google/uuid"

	"github.com/funvibe/logifold/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.FilePath)
	if ctx.Config != nil {
		p.SetDefaultLogicalKind(ctx.Config.DefaultLogicalKind)
	}
	docs := p.ParseAll(ctx.Source)
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	for _, doc := range docs {
		ctx.Units = append(ctx.Units, &pipeline.Unit{
			ID:      uuid.New(),
			Name:    doc.Name,
			Entries: doc.Entries,
		})
	}
	return ctx
}
