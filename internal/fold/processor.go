package fold

import (
	"log/slog"

	"github.com/funvibe/logifold/internal/pipeline"
	"github.com/funvibe/logifold/internal/prettyprinter"
)

// FoldProcessor folds every entry of every unit in the file. Each unit
// gets its own Context, so diagnostics never leak between documents.
type FoldProcessor struct {
	Logger *slog.Logger // nil means slog.Default()

	// Contiguity replaces the static contiguity analysis when set.
	Contiguity ContiguityAnalyzer
}

func (fp *FoldProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	logger := fp.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, unit := range ctx.Units {
		opts := []Option{
			WithConfig(ctx.Config),
			WithFile(ctx.FilePath),
			WithUnit(unit.ID),
		}
		if fp.Contiguity != nil {
			opts = append(opts, WithContiguity(fp.Contiguity))
		}
		fctx := NewContext(opts...)
		for _, entry := range unit.Entries {
			entry.Folded = Fold(fctx, entry.Expr)
			logger.Debug("folded",
				"file", ctx.FilePath,
				"unit", unit.ID,
				"entry", entry.Name,
				"from", prettyprinter.Print(entry.Expr),
				"to", prettyprinter.Print(entry.Folded))
		}
		unit.Diagnostics = append(unit.Diagnostics, fctx.Diagnostics()...)
	}
	return ctx
}
