package parser

import (
	"strings"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/token"
)

type itemKind int

const (
	kindNone itemKind = iota
	kindFn
	kindTrait
	kindImpl
	kindMod
	kindVerbatim
)

// classify looks ahead over item qualifiers to decide what curToken starts.
// For verbatim items it also returns the kind name and whether a top-level
// brace group ends the item.
func (p *Parser) classify() (kind itemKind, verbatim string, braced bool) {
	for i := 0; ; i++ {
		tok, next := p.peekAt(i), p.peekAt(i+1)
		switch tok.Type {
		case token.FN:
			return kindFn, "", false
		case token.TRAIT:
			return kindTrait, "", false
		case token.IMPL:
			return kindImpl, "", false
		case token.MOD:
			return kindMod, "", false
		case token.STRUCT:
			return kindVerbatim, "struct", true
		case token.ENUM:
			return kindVerbatim, "enum", true
		case token.USE:
			return kindVerbatim, "use", false
		case token.STATIC:
			return kindVerbatim, "static", false
		case token.TYPE:
			return kindVerbatim, "type", false
		case token.CONST:
			switch next.Type {
			case token.FN, token.ASYNC, token.UNSAFE, token.EXTERN:
				continue
			}
			if next.Type == token.IDENT && next.Lexeme == "default" {
				continue
			}
			return kindVerbatim, "const", false
		case token.ASYNC, token.UNSAFE:
			if next.Type == token.LBRACE {
				return kindNone, "", false
			}
			continue
		case token.EXTERN:
			if next.Type == token.STRING {
				i++
				next = p.peekAt(i + 1)
			}
			switch next.Type {
			case token.LBRACE:
				return kindVerbatim, "extern", true
			case token.CRATE:
				return kindVerbatim, "extern crate", false
			}
			continue
		case token.IDENT:
			switch {
			case tok.Lexeme == "default" && next.Type != token.BANG && next.Type != token.PATH_SEP:
				continue
			case tok.Lexeme == "auto" && next.Type == token.TRAIT:
				continue
			case tok.Lexeme == "union" && next.Type == token.IDENT:
				return kindVerbatim, "union", true
			}
			if p.isMacroCall(i) {
				return kindVerbatim, "macro", true
			}
			return kindNone, "", false
		case token.PATH_SEP, token.SELF_LOWER, token.CRATE, token.SUPER:
			if p.isMacroCall(i) {
				return kindVerbatim, "macro", true
			}
			return kindNone, "", false
		default:
			return kindNone, "", false
		}
	}
}

// isMacroCall reports whether a path starting at peekAt(i) is followed by '!'.
func (p *Parser) isMacroCall(i int) bool {
	for {
		tok := p.peekAt(i)
		switch {
		case tok.Type == token.BANG:
			return true
		case tok.Type == token.PATH_SEP || tok.IsWord():
			i++
		default:
			return false
		}
	}
}

func (p *Parser) parseItems(closer token.TokenType) []ast.Item {
	var items []ast.Item
	for !p.curTokenIs(closer) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		mark, errs := p.consumed, p.errorCount()
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		}
		if item == nil || p.errorCount() > errs {
			p.synchronize(mark)
		}
	}
	return items
}

func (p *Parser) parseItem() ast.Item {
	start := p.curToken
	attrs := p.parseOuterAttributes()
	body := p.curToken
	var vis *ast.Visibility
	if p.curTokenIs(token.PUB) {
		vis = p.parseVisibility()
	}

	kind, verbatim, braced := p.classify()
	switch kind {
	case kindFn:
		if fn := p.parseFnItem(start, attrs, vis); fn != nil {
			return fn
		}
	case kindTrait:
		return p.parseTraitItem(start, attrs, vis, body)
	case kindImpl:
		if vis != nil {
			p.addError(diagnostics.ErrP001, vis.Token, "visibility qualifiers are not permitted on impl blocks")
		}
		if impl := p.parseImplItem(start, attrs); impl != nil {
			return impl
		}
	case kindMod:
		if mod := p.parseModItem(start, attrs, vis); mod != nil {
			return mod
		}
	case kindVerbatim:
		if v := p.parseVerbatim(start, attrs, body, verbatim, braced); v != nil {
			return v
		}
	default:
		p.addError(diagnostics.ErrP003, p.curToken, "expected item, found %s", describe(p.curToken))
	}
	return nil
}

// parseMember parses one declaration inside a trait or impl block.
func (p *Parser) parseMember() ast.Member {
	start := p.curToken
	attrs := p.parseOuterAttributes()
	body := p.curToken
	var vis *ast.Visibility
	if p.curTokenIs(token.PUB) {
		vis = p.parseVisibility()
	}

	kind, verbatim, _ := p.classify()
	switch {
	case kind == kindFn:
		if fn := p.parseFnItem(start, attrs, vis); fn != nil {
			return fn
		}
	case kind == kindVerbatim && (verbatim == "const" || verbatim == "type" || verbatim == "macro"):
		if v := p.parseVerbatim(start, attrs, body, verbatim, verbatim == "macro"); v != nil {
			return v
		}
	default:
		p.addError(diagnostics.ErrP003, p.curToken, "expected associated item, found %s", describe(p.curToken))
	}
	return nil
}

func (p *Parser) parseMembers() []ast.Member {
	var members []ast.Member
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		mark := p.consumed
		m := p.parseMember()
		if m != nil {
			members = append(members, m)
			continue
		}
		p.synchronize(mark)
	}
	return members
}

func (p *Parser) parseVisibility() *ast.Visibility {
	vis := &ast.Visibility{Token: p.curToken}
	p.nextToken()
	if p.curTokenIs(token.LPAREN) {
		switch p.peekToken.Type {
		case token.CRATE, token.SELF_LOWER, token.SUPER, token.IN:
			p.skipBalanced()
		}
	}
	vis.End = p.lastEnd
	vis.Text = p.text(vis.Token)
	return vis
}

func (p *Parser) parseOuterAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.curTokenIs(token.POUND) && !p.peekTokenIs(token.BANG) {
		attr := p.parseAttribute()
		if attr == nil {
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func (p *Parser) parseInnerAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.curTokenIs(token.POUND) && p.peekTokenIs(token.BANG) {
		attr := p.parseAttribute()
		if attr == nil {
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// parseAttribute parses #[path args] or #![path args].
func (p *Parser) parseAttribute() *ast.Attribute {
	attr := &ast.Attribute{Token: p.curToken}
	p.nextToken()
	if p.curTokenIs(token.BANG) {
		attr.Inner = true
		p.nextToken()
	}
	if !p.expect(token.LBRACKET) {
		return nil
	}

	var path strings.Builder
	for p.curTokenIs(token.PATH_SEP) || p.curToken.IsWord() {
		path.WriteString(p.curToken.Lexeme)
		p.nextToken()
	}
	if path.Len() == 0 {
		p.unexpected("attribute path")
		return nil
	}
	attr.Path = path.String()
	pathEnd := p.lastEnd

	if !p.skipUntil(token.RBRACKET) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP002, attr.Token, "unclosed attribute")
		}
		return nil
	}
	attr.Args = strings.TrimSpace(p.src[pathEnd:p.curToken.Offset])
	p.nextToken()
	attr.End = p.lastEnd
	attr.Text = p.text(attr.Token)
	return attr
}

func (p *Parser) parseFnItem(start token.Token, attrs []*ast.Attribute, vis *ast.Visibility) *ast.FnItem {
	fn := &ast.FnItem{Token: start, Attrs: attrs, Vis: vis}
	if p.curWordIs("default") {
		fn.Default = true
		p.nextToken()
	}
	fn.Sig = p.parseSignature()
	if fn.Sig == nil {
		return nil
	}
	switch {
	case p.curTokenIs(token.SEMICOLON):
		p.nextToken()
	case p.curTokenIs(token.LBRACE):
		fn.Body = p.parseBlock()
		if fn.Body == nil {
			return nil
		}
	default:
		p.unexpected("`{` or `;`")
		return nil
	}
	fn.End = p.lastEnd
	return fn
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curToken}
	end, ok := p.skipBalanced()
	if !ok {
		return nil
	}
	block.End = end
	block.Text = p.src[block.Token.Offset:end]
	return block
}

// parseTraitItem parses a trait definition. A trait alias
// (trait A = B + C;) is kept verbatim.
func (p *Parser) parseTraitItem(start token.Token, attrs []*ast.Attribute, vis *ast.Visibility, body token.Token) ast.Item {
	trait := &ast.TraitItem{Token: start, Attrs: attrs, Vis: vis}
	if p.curTokenIs(token.UNSAFE) {
		trait.Unsafe = true
		p.nextToken()
	}
	if p.curWordIs("auto") {
		trait.Auto = true
		p.nextToken()
	}
	if !p.expect(token.TRAIT) {
		return nil
	}
	if !p.curTokenIs(token.IDENT) {
		p.unexpected("trait name")
		return nil
	}
	trait.Name = p.ident()
	p.nextToken()

	if p.curTokenIs(token.LT) {
		if trait.Generics = p.parseGenerics(); trait.Generics == nil {
			return nil
		}
	}
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		trait.SuperTraits = p.parseBounds()
	}
	if p.curTokenIs(token.ASSIGN) {
		if !p.skipUntil(token.SEMICOLON) {
			return nil
		}
		p.nextToken()
		return &ast.VerbatimItem{
			Token: start, Attrs: attrs, Kind: "trait alias", Name: trait.Name.Value,
			TextToken: body, Text: p.text(body), End: p.lastEnd,
		}
	}
	if p.curTokenIs(token.WHERE) {
		if trait.Where = p.parseWhereClause(); trait.Where == nil {
			return nil
		}
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	trait.InnerAttrs = p.parseInnerAttributes()
	trait.Members = p.parseMembers()
	if !p.curTokenIs(token.RBRACE) {
		p.addError(diagnostics.ErrP002, trait.Token, "unclosed trait body")
		return nil
	}
	p.nextToken()
	trait.End = p.lastEnd
	return trait
}

// implGenericsFollow tells impl<T> Trait for X apart from impl <T as A>::B {}.
func (p *Parser) implGenericsFollow() bool {
	if !p.curTokenIs(token.LT) {
		return false
	}
	switch p.peekToken.Type {
	case token.GT, token.POUND, token.LIFETIME, token.CONST:
		return true
	case token.IDENT:
		switch p.peekAt(2).Type {
		case token.GT, token.COMMA, token.COLON, token.ASSIGN:
			return true
		}
	}
	return false
}

func (p *Parser) parseImplItem(start token.Token, attrs []*ast.Attribute) *ast.ImplItem {
	impl := &ast.ImplItem{Token: start, Attrs: attrs}
	if p.curWordIs("default") {
		p.nextToken()
	}
	if p.curTokenIs(token.UNSAFE) {
		impl.Unsafe = true
		p.nextToken()
	}
	if !p.expect(token.IMPL) {
		return nil
	}
	if p.implGenericsFollow() {
		if impl.Generics = p.parseGenerics(); impl.Generics == nil {
			return nil
		}
	}
	if p.curTokenIs(token.BANG) {
		impl.Negative = true
		p.nextToken()
	}
	first := p.parseType(true)
	if first == nil {
		return nil
	}
	if p.curTokenIs(token.FOR) {
		trait, ok := first.(*ast.PathType)
		if !ok {
			p.addError(diagnostics.ErrP001, first.GetToken(), "expected a trait path before `for`")
			return nil
		}
		impl.Trait = trait
		p.nextToken()
		if impl.SelfType = p.parseType(true); impl.SelfType == nil {
			return nil
		}
	} else {
		impl.SelfType = first
	}
	if p.curTokenIs(token.WHERE) {
		if impl.Where = p.parseWhereClause(); impl.Where == nil {
			return nil
		}
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	impl.InnerAttrs = p.parseInnerAttributes()
	impl.Members = p.parseMembers()
	if !p.curTokenIs(token.RBRACE) {
		p.addError(diagnostics.ErrP002, impl.Token, "unclosed impl body")
		return nil
	}
	p.nextToken()
	impl.End = p.lastEnd
	return impl
}

func (p *Parser) parseModItem(start token.Token, attrs []*ast.Attribute, vis *ast.Visibility) *ast.ModItem {
	mod := &ast.ModItem{Token: start, Attrs: attrs, Vis: vis}
	if p.curTokenIs(token.UNSAFE) {
		p.nextToken()
	}
	if !p.expect(token.MOD) {
		return nil
	}
	if !p.curTokenIs(token.IDENT) {
		p.unexpected("module name")
		return nil
	}
	mod.Name = p.ident()
	p.nextToken()

	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
		mod.End = p.lastEnd
		return mod
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	mod.Inline = true
	mod.InnerAttrs = p.parseInnerAttributes()
	mod.Items = p.parseItems(token.RBRACE)
	if !p.curTokenIs(token.RBRACE) {
		p.addError(diagnostics.ErrP002, mod.Token, "unclosed module body")
		return nil
	}
	p.nextToken()
	mod.End = p.lastEnd
	return mod
}

// parseVerbatim consumes an item the tool never interprets. It ends at a
// top-level ';' or, for braced kinds, at the close of a top-level brace group.
func (p *Parser) parseVerbatim(start token.Token, attrs []*ast.Attribute, body token.Token, kind string, braced bool) *ast.VerbatimItem {
	item := &ast.VerbatimItem{Token: start, Attrs: attrs, Kind: kind, TextToken: body}
	for !p.curTokenIs(token.EOF) {
		if item.Name == "" && p.curTokenIs(token.IDENT) && kind != "macro" && kind != "use" && p.curToken.Lexeme != "union" {
			item.Name = p.curToken.Lexeme
		}
		switch p.curToken.Type {
		case token.SEMICOLON:
			p.nextToken()
			return p.finishVerbatim(item, body)
		case token.LBRACE:
			if _, ok := p.skipBalanced(); !ok {
				return nil
			}
			if braced {
				return p.finishVerbatim(item, body)
			}
		case token.LPAREN, token.LBRACKET:
			if _, ok := p.skipBalanced(); !ok {
				return nil
			}
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			p.unexpected("`;`")
			return nil
		default:
			p.nextToken()
		}
	}
	p.unexpected("`;`")
	return nil
}

func (p *Parser) finishVerbatim(item *ast.VerbatimItem, body token.Token) *ast.VerbatimItem {
	item.End = p.lastEnd
	item.Text = p.text(body)
	return item
}
