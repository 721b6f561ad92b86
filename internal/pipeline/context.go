package pipeline

import (
	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/token"
)

// TokenStream is the buffered token source produced by the lexer stage.
type TokenStream interface {
	Next() token.Token
	Peek(n int) token.Token
}

// Expansion records one annotated item handled by the expansion stage.
type Expansion struct {
	Original   ast.Item
	Expanded   ast.Item // same as Original when the item was rejected
	Signatures int      // signatures that gained generic parameters
	Params     int      // opaque parameters rewritten
	Failed     bool
}

// PipelineContext carries one source file through the stages. It is never
// shared between files.
type PipelineContext struct {
	FilePath    string
	SourceCode  string
	TokenStream TokenStream
	AstRoot     *ast.File
	Expansions  []Expansion
	Output      string // source after expansion; empty until the stage ran
	Errors      []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{SourceCode: source}
}

// Changed reports whether expansion produced text different from the input.
func (ctx *PipelineContext) Changed() bool {
	return ctx.Output != "" && ctx.Output != ctx.SourceCode
}

// Result returns the expanded source, or the input when expansion did not run.
func (ctx *PipelineContext) Result() string {
	if ctx.Output == "" {
		return ctx.SourceCode
	}
	return ctx.Output
}
