package parser

import (
	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/token"
)

// Parser builds an item-level tree from a token stream. Function bodies and
// declarations that never carry parameter-position types (struct, enum,
// use, ...) are kept as verbatim source text.
//
// curToken is the next token to be consumed; peekToken follows it.
type Parser struct {
	stream pipeline.TokenStream
	ctx    *pipeline.PipelineContext
	src    string

	curToken  token.Token
	peekToken token.Token

	lastEnd  int // byte offset just past the last consumed token
	consumed int
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx, src: ctx.SourceCode}
	p.curToken = stream.Next()
	p.peekToken = stream.Peek(0)
	return p
}

func (p *Parser) nextToken() {
	if p.curToken.Type == token.EOF {
		return
	}
	p.lastEnd = p.curToken.End()
	p.consumed++
	p.curToken = p.stream.Next()
	p.peekToken = p.stream.Peek(0)
}

// peekAt returns the token n positions past curToken; peekAt(0) is curToken.
func (p *Parser) peekAt(n int) token.Token {
	switch n {
	case 0:
		return p.curToken
	case 1:
		return p.peekToken
	}
	return p.stream.Peek(n - 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) curWordIs(word string) bool {
	return p.curToken.Type == token.IDENT && p.curToken.Lexeme == word
}

// expect consumes curToken when it has type t and reports P001 otherwise.
func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.unexpected("`" + string(t) + "`")
	return false
}

func (p *Parser) unexpected(want string) {
	p.addError(diagnostics.ErrP001, p.curToken, "expected %s, found %s", want, describe(p.curToken))
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, msg string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, msg, args...)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) errorCount() int { return len(p.ctx.Errors) }

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of file"
	}
	return "`" + tok.Lexeme + "`"
}

func (p *Parser) text(from token.Token) string {
	if p.lastEnd < from.Offset {
		return ""
	}
	return p.src[from.Offset:p.lastEnd]
}

func (p *Parser) ident() *ast.Identifier {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

// ParseFile parses a whole source file.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Token: p.curToken, Name: p.ctx.FilePath}
	file.Attrs = p.parseInnerAttributes()
	file.Items = p.parseItems(token.EOF)
	file.End = len(p.src)
	return file
}

// skipBalanced consumes a delimited group starting at curToken, which must
// be an opening delimiter, and returns the offset just past its closer.
func (p *Parser) skipBalanced() (int, bool) {
	open := p.curToken
	var stack []token.TokenType
	for {
		switch p.curToken.Type {
		case token.LPAREN:
			stack = append(stack, token.RPAREN)
		case token.LBRACKET:
			stack = append(stack, token.RBRACKET)
		case token.LBRACE:
			stack = append(stack, token.RBRACE)
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1] != p.curToken.Type {
				p.addError(diagnostics.ErrP002, p.curToken, "mismatched closing delimiter `%s`", p.curToken.Lexeme)
				p.nextToken()
				return p.lastEnd, false
			}
			stack = stack[:len(stack)-1]
		case token.EOF:
			p.addError(diagnostics.ErrP002, open, "unclosed delimiter `%s`", open.Lexeme)
			return p.lastEnd, false
		}
		p.nextToken()
		if len(stack) == 0 {
			return p.lastEnd, true
		}
	}
}

// skipUntil consumes tokens up to, not including, the first token at
// delimiter depth zero whose type is in stop. Nested groups are skipped whole.
func (p *Parser) skipUntil(stop ...token.TokenType) bool {
	for {
		for _, t := range stop {
			if p.curTokenIs(t) {
				return true
			}
		}
		switch p.curToken.Type {
		case token.EOF:
			return false
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			if _, ok := p.skipBalanced(); !ok {
				return false
			}
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			p.addError(diagnostics.ErrP002, p.curToken, "mismatched closing delimiter `%s`", p.curToken.Lexeme)
			return false
		default:
			p.nextToken()
		}
	}
}

func isItemStart(t token.TokenType) bool {
	switch t {
	case token.FN, token.TRAIT, token.IMPL, token.MOD, token.STRUCT, token.ENUM,
		token.USE, token.PUB, token.POUND, token.CONST, token.STATIC, token.TYPE,
		token.UNSAFE, token.ASYNC, token.EXTERN:
		return true
	}
	return false
}

// synchronize skips to the next plausible item start after a parse error,
// always consuming at least one token past mark.
func (p *Parser) synchronize(mark int) {
	if p.consumed == mark {
		p.nextToken()
	}
	depth := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.nextToken()
				continue
			}
		}
		if depth == 0 && isItemStart(p.curToken.Type) {
			return
		}
		p.nextToken()
	}
}
