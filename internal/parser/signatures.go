package parser

import (
	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/token"
)

// parseSignature parses [const] [async] [unsafe] [extern "abi"] fn name<...>(...) -> R where ...
// and leaves curToken on the body or the terminating ';'.
func (p *Parser) parseSignature() *ast.Signature {
	sig := &ast.Signature{Token: p.curToken}
qualifiers:
	for {
		switch p.curToken.Type {
		case token.CONST:
			sig.Const = true
		case token.ASYNC:
			sig.Async = true
		case token.UNSAFE:
			sig.Unsafe = true
		case token.EXTERN:
			sig.Extern = true
			if p.peekTokenIs(token.STRING) {
				p.nextToken()
				sig.Abi = p.curToken.Lexeme
			}
		default:
			break qualifiers
		}
		p.nextToken()
	}
	if !p.expect(token.FN) {
		return nil
	}
	if !p.curTokenIs(token.IDENT) {
		p.unexpected("function name")
		return nil
	}
	sig.Name = p.ident()
	p.nextToken()

	if p.curTokenIs(token.LT) {
		if sig.Generics = p.parseGenerics(); sig.Generics == nil {
			return nil
		}
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	if !p.parseFnParams(sig) {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		if sig.ReturnType = p.parseType(true); sig.ReturnType == nil {
			return nil
		}
	}
	if p.curTokenIs(token.WHERE) {
		if sig.Where = p.parseWhereClause(); sig.Where == nil {
			return nil
		}
	}
	sig.End = p.lastEnd
	return sig
}

// isReceiver reports whether curToken starts self, mut self, &self,
// &mut self, &'a self or &'a mut self.
func (p *Parser) isReceiver() bool {
	i := 0
	if p.peekAt(i).Type == token.AMPERSAND {
		i++
		if p.peekAt(i).Type == token.LIFETIME {
			i++
		}
	}
	if p.peekAt(i).Type == token.MUT {
		i++
	}
	return p.peekAt(i).Type == token.SELF_LOWER && p.peekAt(i+1).Type != token.PATH_SEP
}

func (p *Parser) parseFnParams(sig *ast.Signature) bool {
	first := true
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		start := p.curToken
		attrs := p.parseOuterAttributes()

		switch {
		case p.curTokenIs(token.DOTDOTDOT):
			sig.Variadic = true
			p.nextToken()
		case first && p.isReceiver():
			recv := p.parseReceiver(start, attrs)
			if recv == nil {
				return false
			}
			sig.Receiver = recv
		default:
			param := p.parseParam(start, attrs)
			if param == nil {
				return false
			}
			sig.Params = append(sig.Params, param)
		}
		first = false

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return true
}

func (p *Parser) parseReceiver(start token.Token, attrs []*ast.Attribute) *ast.Receiver {
	recv := &ast.Receiver{Token: start, Attrs: attrs}
	if p.curTokenIs(token.AMPERSAND) {
		recv.Ref = true
		p.nextToken()
		if p.curTokenIs(token.LIFETIME) {
			recv.Lifetime = p.curToken.Lexeme
			p.nextToken()
		}
	}
	if p.curTokenIs(token.MUT) {
		recv.Mut = true
		p.nextToken()
	}
	if !p.expect(token.SELF_LOWER) {
		return nil
	}
	if !recv.Ref && p.curTokenIs(token.COLON) {
		p.nextToken()
		if recv.Type = p.parseType(true); recv.Type == nil {
			return nil
		}
	}
	recv.End = p.lastEnd
	return recv
}

// parseParam parses pattern: Type. The pattern is kept verbatim.
func (p *Parser) parseParam(start token.Token, attrs []*ast.Attribute) *ast.Param {
	param := &ast.Param{Token: start, Attrs: attrs}
	patStart := p.curToken
	var words []token.Token
	for !p.curTokenIs(token.COLON) {
		switch p.curToken.Type {
		case token.EOF, token.COMMA, token.RPAREN:
			p.unexpected("`:`")
			return nil
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			words = append(words, p.curToken)
			if _, ok := p.skipBalanced(); !ok {
				return nil
			}
		default:
			words = append(words, p.curToken)
			p.nextToken()
		}
	}
	if len(words) == 0 {
		p.unexpected("parameter pattern")
		return nil
	}
	param.Pattern = p.text(patStart)
	param.Name = bindingName(words)
	p.nextToken()

	if param.Type = p.parseType(true); param.Type == nil {
		return nil
	}
	param.End = p.lastEnd
	return param
}

// bindingName extracts the bound identifier from x, mut x, ref x, ref mut x.
func bindingName(words []token.Token) *ast.Identifier {
	i := 0
	if i < len(words) && words[i].Type == token.IDENT && words[i].Lexeme == "ref" {
		i++
	}
	if i < len(words) && words[i].Type == token.MUT {
		i++
	}
	if i == len(words)-1 && words[i].Type == token.IDENT {
		return &ast.Identifier{Token: words[i], Value: words[i].Lexeme}
	}
	return nil
}
