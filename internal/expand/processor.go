package expand

import (
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
)

// ExpandProcessor runs the expansion over ctx.AstRoot. Files with lexer or
// parser diagnostics are left alone.
type ExpandProcessor struct {
	Expander *Expander
}

func (ep *ExpandProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || diagnostics.HasErrors(ctx.Errors) {
		return ctx
	}
	e := ep.Expander
	if e == nil {
		e = New()
	}
	out, expansions, errs := e.File(ctx.FilePath, ctx.AstRoot, ctx.SourceCode)
	ctx.Output = out
	ctx.Expansions = expansions
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
