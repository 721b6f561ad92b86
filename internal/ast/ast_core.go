package ast

import (
	"github.com/funvibe/intogeneric/internal/token"
)

// Node is the base interface for all AST nodes. Every node remembers the
// token it starts at and the byte offset it ends at, so a stage that edits
// source text can map nodes back to the exact characters they came from.
// Nodes created by a rewrite have End == 0 and no valid span.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
	Span() token.Span
	Accept(v Visitor)
}

func span(tok token.Token, end int) token.Span {
	return token.Span{Start: tok.Offset, End: end}
}

// Visitor is implemented by anything that walks the tree, such as the
// code printer.
type Visitor interface {
	VisitFile(n *File)
	VisitAttribute(n *Attribute)
	VisitIdentifier(n *Identifier)
	VisitBlock(n *Block)

	VisitFnItem(n *FnItem)
	VisitTraitItem(n *TraitItem)
	VisitImplItem(n *ImplItem)
	VisitModItem(n *ModItem)
	VisitVerbatimItem(n *VerbatimItem)

	VisitSignature(n *Signature)
	VisitReceiver(n *Receiver)
	VisitParam(n *Param)

	VisitGenerics(n *Generics)
	VisitLifetimeParam(n *LifetimeParam)
	VisitTypeParam(n *TypeParam)
	VisitConstParam(n *ConstParam)
	VisitWhereClause(n *WhereClause)
	VisitBoundPredicate(n *BoundPredicate)
	VisitLifetimePredicate(n *LifetimePredicate)

	VisitTraitBound(n *TraitBound)
	VisitLifetimeBound(n *LifetimeBound)

	VisitPathType(n *PathType)
	VisitReferenceType(n *ReferenceType)
	VisitPointerType(n *PointerType)
	VisitTupleType(n *TupleType)
	VisitParenType(n *ParenType)
	VisitSliceType(n *SliceType)
	VisitArrayType(n *ArrayType)
	VisitImplTraitType(n *ImplTraitType)
	VisitTraitObjectType(n *TraitObjectType)
	VisitBareFnType(n *BareFnType)
	VisitNeverType(n *NeverType)
	VisitInferType(n *InferType)
	VisitMacroType(n *MacroType)

	VisitTypeArg(n *TypeArg)
	VisitLifetimeArg(n *LifetimeArg)
	VisitBindingArg(n *BindingArg)
	VisitConstraintArg(n *ConstraintArg)
	VisitConstArg(n *ConstArg)
}

// File is the root node of every tree the parser produces.
type File struct {
	Token token.Token  // first token of the file
	Name  string       // source file path
	Attrs []*Attribute // inner attributes: #![...]
	Items []Item
	End   int
}

func (f *File) Accept(v Visitor)      { v.VisitFile(f) }
func (f *File) TokenLiteral() string  { return f.Token.Lexeme }
func (f *File) GetToken() token.Token { return f.Token }
func (f *File) Span() token.Span      { return span(f.Token, f.End) }

// Attribute is an outer (#[...]) or inner (#![...]) attribute. Only the path
// is interpreted; arguments are kept as written.
// #[rewrite_impl_trait::into_generic]
// #[derive(Debug, Clone)]
type Attribute struct {
	Token token.Token // '#'
	Inner bool
	Path  string // "derive", "rewrite_impl_trait::into_generic"
	Args  string // verbatim text after the path: "(Debug, Clone)", `= "doc"`
	Text  string // verbatim text of the whole attribute
	End   int
}

func (a *Attribute) Accept(v Visitor)      { v.VisitAttribute(a) }
func (a *Attribute) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Attribute) GetToken() token.Token { return a.Token }
func (a *Attribute) Span() token.Span      { return span(a.Token, a.End) }

// Identifier is a plain or raw (r#type) identifier.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }
func (i *Identifier) Span() token.Span {
	if i.Token.Lexeme == "" {
		return token.Span{Start: i.Token.Offset}
	}
	return span(i.Token, i.Token.End())
}

// NewIdentifier builds an identifier that does not come from source text.
func NewIdentifier(name string, at token.Token) *Identifier {
	return &Identifier{
		Token: token.Token{Type: token.IDENT, Line: at.Line, Column: at.Column, Offset: at.Offset},
		Value: name,
	}
}

// Block is a brace-delimited body kept verbatim: function bodies are never
// interpreted, only carried.
type Block struct {
	Token token.Token // '{'
	Text  string      // from '{' to the matching '}' inclusive
	End   int
}

func (b *Block) Accept(v Visitor)      { v.VisitBlock(b) }
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }
func (b *Block) Span() token.Span      { return span(b.Token, b.End) }

// Visibility is a verbatim visibility qualifier: pub, pub(crate), pub(in a::b).
type Visibility struct {
	Token token.Token
	Text  string
	End   int
}
