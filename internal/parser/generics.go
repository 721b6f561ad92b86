package parser

import (
	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/token"
)

// parseGenerics parses a declared parameter list starting at '<'.
// <'a, 'b: 'a, T: Into<String> = String, const N: usize = 3>
func (p *Parser) parseGenerics() *ast.Generics {
	g := &ast.Generics{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.GT) && !p.curTokenIs(token.EOF) {
		start := p.curToken
		attrs := p.parseOuterAttributes()

		var param ast.GenericParam
		switch p.curToken.Type {
		case token.LIFETIME:
			param = p.parseLifetimeParam(start, attrs)
		case token.CONST:
			param = p.parseConstParam(start, attrs)
		case token.IDENT:
			param = p.parseTypeParam(start, attrs)
		default:
			p.unexpected("generic parameter")
			return nil
		}
		if param == nil {
			return nil
		}
		g.Params = append(g.Params, param)

		g.Trailing = p.curTokenIs(token.COMMA)
		if !g.Trailing {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.GT) {
		return nil
	}
	g.End = p.lastEnd
	return g
}

func (p *Parser) parseLifetimeParam(start token.Token, attrs []*ast.Attribute) ast.GenericParam {
	lp := &ast.LifetimeParam{Token: start, Attrs: attrs, Name: p.curToken.Lexeme}
	p.nextToken()
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		lp.Bounds = p.parseLifetimeList()
	}
	lp.End = p.lastEnd
	return lp
}

// parseLifetimeList parses 'a + 'b, allowing a trailing '+'.
func (p *Parser) parseLifetimeList() []string {
	var out []string
	for p.curTokenIs(token.LIFETIME) {
		out = append(out, p.curToken.Lexeme)
		p.nextToken()
		if !p.curTokenIs(token.PLUS) {
			break
		}
		p.nextToken()
	}
	return out
}

func (p *Parser) parseTypeParam(start token.Token, attrs []*ast.Attribute) ast.GenericParam {
	tp := &ast.TypeParam{Token: start, Attrs: attrs, Name: p.ident()}
	p.nextToken()
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		tp.Bounds = p.parseBounds()
	}
	if p.curTokenIs(token.ASSIGN) {
		p.nextToken()
		if tp.Default = p.parseType(true); tp.Default == nil {
			return nil
		}
	}
	tp.End = p.lastEnd
	return tp
}

func (p *Parser) parseConstParam(start token.Token, attrs []*ast.Attribute) ast.GenericParam {
	cp := &ast.ConstParam{Token: start, Attrs: attrs}
	p.nextToken()
	if !p.curTokenIs(token.IDENT) {
		p.unexpected("const parameter name")
		return nil
	}
	cp.Name = p.ident()
	p.nextToken()
	if !p.expect(token.COLON) {
		return nil
	}
	if cp.Type = p.parseType(false); cp.Type == nil {
		return nil
	}
	if p.curTokenIs(token.ASSIGN) {
		p.nextToken()
		from := p.curToken
		if !p.skipConstExpr() {
			return nil
		}
		cp.Default = p.text(from)
	}
	cp.End = p.lastEnd
	return cp
}

// skipConstExpr consumes a const argument or default: a block, a literal
// or a negated literal, or a path.
func (p *Parser) skipConstExpr() bool {
	switch p.curToken.Type {
	case token.LBRACE:
		_, ok := p.skipBalanced()
		return ok
	case token.MINUS:
		p.nextToken()
		if !p.curTokenIs(token.INT) && !p.curTokenIs(token.FLOAT) {
			p.unexpected("literal")
			return false
		}
		p.nextToken()
		return true
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.IDENT:
		p.nextToken()
		return true
	}
	p.unexpected("const expression")
	return false
}

// parseForLifetimes parses for<'a, 'b>.
func (p *Parser) parseForLifetimes() ([]string, bool) {
	p.nextToken()
	if !p.expect(token.LT) {
		return nil, false
	}
	var out []string
	for p.curTokenIs(token.LIFETIME) {
		out = append(out, p.curToken.Lexeme)
		p.nextToken()
		if p.curTokenIs(token.COLON) {
			p.nextToken()
			p.parseLifetimeList()
		}
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.GT) {
		return nil, false
	}
	return out, true
}

func canStartBound(t token.TokenType) bool {
	switch t {
	case token.LIFETIME, token.QUESTION, token.TILDE, token.FOR, token.LPAREN,
		token.IDENT, token.PATH_SEP, token.LT, token.SELF_UPPER, token.SELF_LOWER,
		token.CRATE, token.SUPER:
		return true
	}
	return false
}

// parseBounds parses a '+'-separated bound list. A trailing '+' is allowed.
func (p *Parser) parseBounds() []ast.Bound {
	var bounds []ast.Bound
	for canStartBound(p.curToken.Type) {
		b := p.parseBound()
		if b == nil {
			return bounds
		}
		bounds = append(bounds, b)
		if !p.curTokenIs(token.PLUS) {
			break
		}
		p.nextToken()
	}
	return bounds
}

func (p *Parser) parseBound() ast.Bound {
	switch p.curToken.Type {
	case token.LIFETIME:
		lb := &ast.LifetimeBound{Token: p.curToken, Name: p.curToken.Lexeme}
		p.nextToken()
		return lb
	case token.LPAREN:
		open := p.curToken
		p.nextToken()
		tb := p.parseTraitBound()
		if tb == nil || !p.expect(token.RPAREN) {
			return nil
		}
		tb.Token = open
		tb.Paren = true
		tb.End = p.lastEnd
		return tb
	}
	if tb := p.parseTraitBound(); tb != nil {
		return tb
	}
	return nil
}

func (p *Parser) parseTraitBound() *ast.TraitBound {
	tb := &ast.TraitBound{Token: p.curToken}
	if p.curTokenIs(token.TILDE) {
		p.nextToken()
		if !p.expect(token.CONST) {
			return nil
		}
		tb.Const = true
	}
	if p.curTokenIs(token.QUESTION) {
		tb.Maybe = true
		p.nextToken()
	}
	if p.curTokenIs(token.FOR) {
		lts, ok := p.parseForLifetimes()
		if !ok {
			return nil
		}
		tb.ForLifetimes = lts
	}
	if tb.Path = p.parsePathType(); tb.Path == nil {
		return nil
	}
	tb.End = p.lastEnd
	return tb
}

// parseWhereClause parses where T: A + B, 'a: 'b, for<'c> F: Fn(&'c u8).
func (p *Parser) parseWhereClause() *ast.WhereClause {
	w := &ast.WhereClause{Token: p.curToken}
	p.nextToken()
	for {
		start := p.curToken
		switch {
		case p.curTokenIs(token.LIFETIME):
			lp := &ast.LifetimePredicate{Token: start, Name: p.curToken.Lexeme}
			p.nextToken()
			if !p.expect(token.COLON) {
				return nil
			}
			lp.Bounds = p.parseLifetimeList()
			lp.End = p.lastEnd
			w.Predicates = append(w.Predicates, lp)
		case canStartType(p.curToken.Type):
			bp := &ast.BoundPredicate{Token: start}
			if p.curTokenIs(token.FOR) && p.peekTokenIs(token.LT) {
				lts, ok := p.parseForLifetimes()
				if !ok {
					return nil
				}
				bp.ForLifetimes = lts
			}
			if bp.Type = p.parseType(false); bp.Type == nil {
				return nil
			}
			if !p.expect(token.COLON) {
				return nil
			}
			bp.Bounds = p.parseBounds()
			bp.End = p.lastEnd
			w.Predicates = append(w.Predicates, bp)
		default:
			w.End = p.lastEnd
			return w
		}
		if !p.curTokenIs(token.COMMA) {
			w.End = p.lastEnd
			return w
		}
		p.nextToken()
	}
}
