package lexer

import (
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)
	ctx.TokenStream = NewTokenStream(l)

	for _, e := range l.Errors() {
		code := diagnostics.ErrL001
		if e.Unterminated {
			code = diagnostics.ErrL002
		}
		err := diagnostics.NewError(code, e.Token, e.Message)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
