package parser

import (
	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/token"
)

func canStartType(t token.TokenType) bool {
	switch t {
	case token.AMPERSAND, token.ASTERISK, token.LPAREN, token.LBRACKET, token.IMPL,
		token.DYN, token.BANG, token.UNDERSCORE, token.FN, token.UNSAFE, token.EXTERN,
		token.FOR, token.LT, token.PATH_SEP, token.IDENT, token.SELF_UPPER,
		token.SELF_LOWER, token.CRATE, token.SUPER, token.QUESTION:
		return true
	}
	return false
}

// parseType parses a type expression. allowPlus permits a '+'-separated
// bound list after impl, dyn or a bare trait path; it is false where a '+'
// would be ambiguous, such as after '&' or in a function pointer output.
func (p *Parser) parseType(allowPlus bool) ast.Type {
	switch p.curToken.Type {
	case token.AMPERSAND:
		return p.parseReferenceType()
	case token.ASTERISK:
		return p.parsePointerType()
	case token.LPAREN:
		return p.parseTupleOrParenType()
	case token.LBRACKET:
		return p.parseSliceOrArrayType()
	case token.IMPL:
		it := &ast.ImplTraitType{Token: p.curToken}
		p.nextToken()
		if it.Bounds = p.parseBoundsFor(allowPlus); it.Bounds == nil {
			p.unexpected("trait bound")
			return nil
		}
		it.End = p.lastEnd
		return it
	case token.DYN:
		to := &ast.TraitObjectType{Token: p.curToken, Dyn: true}
		p.nextToken()
		if to.Bounds = p.parseBoundsFor(allowPlus); to.Bounds == nil {
			p.unexpected("trait bound")
			return nil
		}
		to.End = p.lastEnd
		return to
	case token.BANG:
		nt := &ast.NeverType{Token: p.curToken}
		p.nextToken()
		return nt
	case token.UNDERSCORE:
		it := &ast.InferType{Token: p.curToken}
		p.nextToken()
		return it
	case token.FN, token.UNSAFE, token.EXTERN:
		return p.parseBareFnType(p.curToken, nil)
	case token.FOR:
		start := p.curToken
		lts, ok := p.parseForLifetimes()
		if !ok {
			return nil
		}
		switch p.curToken.Type {
		case token.FN, token.UNSAFE, token.EXTERN:
			return p.parseBareFnType(start, lts)
		}
		tb := &ast.TraitBound{Token: start, ForLifetimes: lts}
		if tb.Path = p.parsePathType(); tb.Path == nil {
			return nil
		}
		tb.End = p.lastEnd
		return p.finishBareTraitObject(start, tb, allowPlus)
	case token.QUESTION:
		tb := p.parseTraitBound()
		if tb == nil {
			return nil
		}
		return p.finishBareTraitObject(tb.Token, tb, allowPlus)
	case token.LT, token.PATH_SEP, token.IDENT, token.SELF_UPPER, token.SELF_LOWER, token.CRATE, token.SUPER:
		start := p.curToken
		path := p.parsePathType()
		if path == nil {
			return nil
		}
		if p.curTokenIs(token.BANG) && path.QSelf == nil {
			p.nextToken()
			if !p.curTokenIs(token.LPAREN) && !p.curTokenIs(token.LBRACKET) && !p.curTokenIs(token.LBRACE) {
				p.unexpected("macro delimiter")
				return nil
			}
			end, ok := p.skipBalanced()
			if !ok {
				return nil
			}
			return &ast.MacroType{Token: start, Text: p.src[start.Offset:end], End: end}
		}
		if allowPlus && p.curTokenIs(token.PLUS) {
			tb := &ast.TraitBound{Token: start, Path: path, End: path.End}
			return p.finishBareTraitObject(start, tb, true)
		}
		return path
	}
	p.unexpected("type")
	return nil
}

func (p *Parser) parseBoundsFor(allowPlus bool) []ast.Bound {
	if allowPlus {
		return p.parseBounds()
	}
	if !canStartBound(p.curToken.Type) {
		return nil
	}
	if b := p.parseBound(); b != nil {
		return []ast.Bound{b}
	}
	return nil
}

// finishBareTraitObject builds a trait object written without dyn.
func (p *Parser) finishBareTraitObject(start token.Token, first *ast.TraitBound, allowPlus bool) ast.Type {
	to := &ast.TraitObjectType{Token: start, Bounds: []ast.Bound{first}}
	if allowPlus && p.curTokenIs(token.PLUS) {
		p.nextToken()
		to.Bounds = append(to.Bounds, p.parseBounds()...)
	}
	to.End = p.lastEnd
	return to
}

func (p *Parser) parseReferenceType() ast.Type {
	rt := &ast.ReferenceType{Token: p.curToken}
	p.nextToken()
	if p.curTokenIs(token.LIFETIME) {
		rt.Lifetime = p.curToken.Lexeme
		p.nextToken()
	}
	if p.curTokenIs(token.MUT) {
		rt.Mut = true
		p.nextToken()
	}
	if rt.Elem = p.parseType(false); rt.Elem == nil {
		return nil
	}
	rt.End = p.lastEnd
	return rt
}

func (p *Parser) parsePointerType() ast.Type {
	pt := &ast.PointerType{Token: p.curToken}
	p.nextToken()
	switch p.curToken.Type {
	case token.MUT:
		pt.Mut = true
	case token.CONST:
	default:
		p.unexpected("`const` or `mut`")
		return nil
	}
	p.nextToken()
	if pt.Elem = p.parseType(false); pt.Elem == nil {
		return nil
	}
	pt.End = p.lastEnd
	return pt
}

func (p *Parser) parseTupleOrParenType() ast.Type {
	open := p.curToken
	p.nextToken()
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleType{Token: open, End: p.lastEnd}
	}
	first := p.parseType(true)
	if first == nil {
		return nil
	}
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.ParenType{Token: open, Elem: first, End: p.lastEnd}
	}
	tt := &ast.TupleType{Token: open, Elems: []ast.Type{first}}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if p.curTokenIs(token.RPAREN) {
			break
		}
		elem := p.parseType(true)
		if elem == nil {
			return nil
		}
		tt.Elems = append(tt.Elems, elem)
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	tt.End = p.lastEnd
	return tt
}

func (p *Parser) parseSliceOrArrayType() ast.Type {
	open := p.curToken
	p.nextToken()
	elem := p.parseType(true)
	if elem == nil {
		return nil
	}
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
		from := p.curToken
		if !p.skipUntil(token.RBRACKET) {
			p.unexpected("`]`")
			return nil
		}
		at := &ast.ArrayType{Token: open, Elem: elem, Len: p.text(from)}
		p.nextToken()
		at.End = p.lastEnd
		return at
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return &ast.SliceType{Token: open, Elem: elem, End: p.lastEnd}
}

func (p *Parser) parseBareFnType(start token.Token, lts []string) ast.Type {
	bf := &ast.BareFnType{Token: start, ForLifetimes: lts}
	if p.curTokenIs(token.UNSAFE) {
		bf.Unsafe = true
		p.nextToken()
	}
	if p.curTokenIs(token.EXTERN) {
		bf.Extern = true
		p.nextToken()
		if p.curTokenIs(token.STRING) {
			bf.Abi = p.curToken.Lexeme
			p.nextToken()
		}
	}
	if !p.expect(token.FN) || !p.expect(token.LPAREN) {
		return nil
	}
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		p.parseOuterAttributes()
		if p.curTokenIs(token.DOTDOTDOT) {
			bf.Variadic = true
			p.nextToken()
		} else {
			arg := &ast.BareFnArg{}
			if (p.curTokenIs(token.IDENT) || p.curTokenIs(token.UNDERSCORE)) && p.peekTokenIs(token.COLON) {
				arg.Name = p.curToken.Lexeme
				p.nextToken()
				p.nextToken()
			}
			if arg.Type = p.parseType(true); arg.Type == nil {
				return nil
			}
			bf.Inputs = append(bf.Inputs, arg)
		}
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		if bf.Output = p.parseType(false); bf.Output == nil {
			return nil
		}
	}
	bf.End = p.lastEnd
	return bf
}

// parsePathType parses a::b::C<T>, ::a::B, <T as Trait>::Name and
// Fn(A) -> B.
func (p *Parser) parsePathType() *ast.PathType {
	pt := &ast.PathType{Token: p.curToken}
	switch {
	case p.curTokenIs(token.LT):
		q := &ast.QSelf{Token: p.curToken}
		p.nextToken()
		if q.Type = p.parseType(false); q.Type == nil {
			return nil
		}
		if p.curTokenIs(token.AS) {
			p.nextToken()
			if q.As = p.parsePathType(); q.As == nil {
				return nil
			}
		}
		if !p.expect(token.GT) {
			return nil
		}
		q.End = p.lastEnd
		pt.QSelf = q
		if !p.expect(token.PATH_SEP) {
			return nil
		}
	case p.curTokenIs(token.PATH_SEP):
		pt.Global = true
		p.nextToken()
	}

	for {
		switch p.curToken.Type {
		case token.IDENT, token.SELF_UPPER, token.SELF_LOWER, token.CRATE, token.SUPER:
		default:
			p.unexpected("path segment")
			return nil
		}
		seg := &ast.PathSegment{Name: p.ident()}
		p.nextToken()

		switch {
		case p.curTokenIs(token.LT):
			if seg.Args = p.parseGenericArgs(false); seg.Args == nil {
				return nil
			}
		case p.curTokenIs(token.PATH_SEP) && p.peekTokenIs(token.LT):
			p.nextToken()
			if seg.Args = p.parseGenericArgs(true); seg.Args == nil {
				return nil
			}
		case p.curTokenIs(token.LPAREN):
			if seg.Args = p.parseParenArgs(); seg.Args == nil {
				return nil
			}
		}
		pt.Segments = append(pt.Segments, seg)

		if !p.curTokenIs(token.PATH_SEP) {
			break
		}
		p.nextToken()
	}
	pt.End = p.lastEnd
	return pt
}

// parseGenericArgs parses <...> on a path segment.
func (p *Parser) parseGenericArgs(turbofish bool) *ast.GenericArgs {
	ga := &ast.GenericArgs{Token: p.curToken, Turbofish: turbofish}
	p.nextToken()
	for !p.curTokenIs(token.GT) && !p.curTokenIs(token.EOF) {
		arg := p.parseGenericArg()
		if arg == nil {
			return nil
		}
		ga.Args = append(ga.Args, arg)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.GT) {
		return nil
	}
	ga.End = p.lastEnd
	return ga
}

// angleGroupEnd returns the lookahead index just past the '>' matching the
// '<' at peekAt(i), or -1.
func (p *Parser) angleGroupEnd(i int) int {
	depth := 0
	for ; ; i++ {
		switch p.peekAt(i).Type {
		case token.LT:
			depth++
		case token.GT:
			depth--
			if depth == 0 {
				return i + 1
			}
		case token.EOF, token.SEMICOLON, token.LBRACE, token.RBRACE:
			return -1
		}
	}
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	tok := p.curToken
	switch tok.Type {
	case token.LIFETIME:
		p.nextToken()
		return &ast.LifetimeArg{Token: tok, Name: tok.Lexeme}
	case token.LBRACE, token.MINUS, token.INT, token.FLOAT, token.STRING, token.CHAR:
		if !p.skipConstExpr() {
			return nil
		}
		return &ast.ConstArg{Token: tok, Text: p.text(tok), End: p.lastEnd}
	case token.IDENT:
		next := 1
		if p.peekTokenIs(token.LT) {
			if next = p.angleGroupEnd(1); next < 0 {
				next = 1
			}
		}
		switch p.peekAt(next).Type {
		case token.ASSIGN:
			return p.parseBindingArg(next > 1)
		case token.COLON:
			ca := &ast.ConstraintArg{Token: tok, Name: tok.Lexeme}
			p.nextToken()
			if next > 1 {
				if p.parseGenericArgs(false) == nil {
					return nil
				}
			}
			p.nextToken()
			ca.Bounds = p.parseBounds()
			ca.End = p.lastEnd
			return ca
		}
	}
	t := p.parseType(true)
	if t == nil {
		return nil
	}
	return &ast.TypeArg{Type: t}
}

// parseBindingArg parses Item = T and Item<'a> = T.
func (p *Parser) parseBindingArg(withArgs bool) ast.GenericArg {
	ba := &ast.BindingArg{Token: p.curToken, Name: p.curToken.Lexeme}
	p.nextToken()
	if withArgs {
		if ba.Args = p.parseGenericArgs(false); ba.Args == nil {
			return nil
		}
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	if ba.Type = p.parseType(true); ba.Type == nil {
		return nil
	}
	ba.End = p.lastEnd
	return ba
}

// parseParenArgs parses the Fn(A, B) -> C sugar.
func (p *Parser) parseParenArgs() *ast.GenericArgs {
	ga := &ast.GenericArgs{Token: p.curToken, Paren: true}
	p.nextToken()
	for !p.curTokenIs(token.RPAREN) && !p.curTokenIs(token.EOF) {
		t := p.parseType(true)
		if t == nil {
			return nil
		}
		ga.Inputs = append(ga.Inputs, t)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		if ga.Output = p.parseType(false); ga.Output == nil {
			return nil
		}
	}
	ga.End = p.lastEnd
	return ga
}
