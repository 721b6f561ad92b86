package ast

import (
	"github.com/funvibe/intogeneric/internal/token"
)

// Item is a top-level (or module-level) declaration. The set of item
// shapes is closed: FnItem, TraitItem, ImplItem, ModItem, VerbatimItem.
type Item interface {
	Node
	itemNode()
	ItemAttrs() []*Attribute
}

// Member is a declaration inside a trait or impl block: a method (FnItem)
// or an associated const, type or macro invocation (VerbatimItem).
type Member interface {
	Node
	memberNode()
	ItemAttrs() []*Attribute
}

// FnItem is a function, or a method inside a trait or impl block.
// fn other_generic<T: Into<String>>(smash: impl ToString, with: T) -> String { ... }
// fn append_string(&mut self, param: impl ToString);
type FnItem struct {
	Token   token.Token // first token: attribute, visibility or qualifier
	Attrs   []*Attribute
	Vis     *Visibility
	Default bool // `default fn` inside a specializing impl
	Sig     *Signature
	Body    *Block // nil for a declaration ending in ';'
	End     int
}

func (f *FnItem) Accept(v Visitor)        { v.VisitFnItem(f) }
func (f *FnItem) itemNode()               {}
func (f *FnItem) memberNode()             {}
func (f *FnItem) ItemAttrs() []*Attribute { return f.Attrs }
func (f *FnItem) TokenLiteral() string    { return f.Token.Lexeme }
func (f *FnItem) GetToken() token.Token   { return f.Token }
func (f *FnItem) Span() token.Span        { return span(f.Token, f.End) }

// TraitItem is a trait definition.
// pub trait AppendString: Sized { fn append_string(&mut self, param: impl ToString); }
type TraitItem struct {
	Token       token.Token
	Attrs       []*Attribute
	Vis         *Visibility
	Unsafe      bool
	Auto        bool
	Name        *Identifier
	Generics    *Generics // nil when there is no <...> list
	SuperTraits []Bound
	Where       *WhereClause
	InnerAttrs  []*Attribute
	Members     []Member
	End         int
}

func (t *TraitItem) Accept(v Visitor)        { v.VisitTraitItem(t) }
func (t *TraitItem) itemNode()               {}
func (t *TraitItem) ItemAttrs() []*Attribute { return t.Attrs }
func (t *TraitItem) TokenLiteral() string    { return t.Token.Lexeme }
func (t *TraitItem) GetToken() token.Token   { return t.Token }
func (t *TraitItem) Span() token.Span        { return span(t.Token, t.End) }

// ImplItem is a trait implementation, or an inherent impl when Trait is nil.
// impl AppendString for String { ... }
// impl<T> Wrapper<T> { ... }
type ImplItem struct {
	Token      token.Token
	Attrs      []*Attribute
	Unsafe     bool
	Generics   *Generics
	Negative   bool      // impl !Send for T {}
	Trait      *PathType // nil for inherent impls
	SelfType   Type
	Where      *WhereClause
	InnerAttrs []*Attribute
	Members    []Member
	End        int
}

func (i *ImplItem) Accept(v Visitor)        { v.VisitImplItem(i) }
func (i *ImplItem) itemNode()               {}
func (i *ImplItem) ItemAttrs() []*Attribute { return i.Attrs }
func (i *ImplItem) TokenLiteral() string    { return i.Token.Lexeme }
func (i *ImplItem) GetToken() token.Token   { return i.Token }
func (i *ImplItem) Span() token.Span        { return span(i.Token, i.End) }

// ModItem is a module declaration. Items is nil for `mod name;`.
type ModItem struct {
	Token      token.Token
	Attrs      []*Attribute
	Vis        *Visibility
	Name       *Identifier
	InnerAttrs []*Attribute
	Items      []Item
	Inline     bool
	End        int
}

func (m *ModItem) Accept(v Visitor)        { v.VisitModItem(m) }
func (m *ModItem) itemNode()               {}
func (m *ModItem) ItemAttrs() []*Attribute { return m.Attrs }
func (m *ModItem) TokenLiteral() string    { return m.Token.Lexeme }
func (m *ModItem) GetToken() token.Token   { return m.Token }
func (m *ModItem) Span() token.Span        { return span(m.Token, m.End) }

// VerbatimItem is any declaration whose structure this tool never needs:
// struct, enum, union, use, const, static, type alias, extern block, macro
// invocations, and associated consts/types inside traits and impls.
type VerbatimItem struct {
	Token     token.Token
	Attrs     []*Attribute
	Kind      string      // "struct", "enum", "use", "const", "type", "macro", ...
	Name      string      // declared name when there is one
	TextToken token.Token // first token after the attributes
	Text      string      // verbatim text after the attributes, visibility included
	End       int
}

func (v *VerbatimItem) Accept(vis Visitor)      { vis.VisitVerbatimItem(v) }
func (v *VerbatimItem) itemNode()               {}
func (v *VerbatimItem) memberNode()             {}
func (v *VerbatimItem) ItemAttrs() []*Attribute { return v.Attrs }
func (v *VerbatimItem) TokenLiteral() string    { return v.Token.Lexeme }
func (v *VerbatimItem) GetToken() token.Token   { return v.Token }
func (v *VerbatimItem) Span() token.Span        { return span(v.Token, v.End) }

// Signature is the externally visible shape of a function-like item.
// Params never include the receiver.
type Signature struct {
	Token      token.Token // first qualifier or 'fn'
	Const      bool
	Async      bool
	Unsafe     bool
	Extern     bool
	Abi        string // `"C"` as written, empty for a bare extern
	Name       *Identifier
	Generics   *Generics // nil when there is no <...> list
	Receiver   *Receiver
	Params     []*Param
	Variadic   bool
	ReturnType Type // nil for the unit return
	Where      *WhereClause
	End        int
}

func (s *Signature) Accept(v Visitor)      { v.VisitSignature(s) }
func (s *Signature) TokenLiteral() string  { return s.Token.Lexeme }
func (s *Signature) GetToken() token.Token { return s.Token }
func (s *Signature) Span() token.Span      { return span(s.Token, s.End) }

// GenericParams returns the signature's declared generic parameters.
func (s *Signature) GenericParams() []GenericParam {
	if s.Generics == nil {
		return nil
	}
	return s.Generics.Params
}

// Receiver is the self parameter of a method.
// self, mut self, &self, &'a mut self, self: Box<Self>
type Receiver struct {
	Token    token.Token
	Attrs    []*Attribute
	Ref      bool
	Lifetime string
	Mut      bool
	Type     Type // explicit `self: T` form
	End      int
}

func (r *Receiver) Accept(v Visitor)      { v.VisitReceiver(r) }
func (r *Receiver) TokenLiteral() string  { return r.Token.Lexeme }
func (r *Receiver) GetToken() token.Token { return r.Token }
func (r *Receiver) Span() token.Span      { return span(r.Token, r.End) }

// Param is a typed function parameter. The pattern is kept verbatim; Name is
// set when the pattern is a plain binding (x, mut x, ref x).
type Param struct {
	Token   token.Token
	Attrs   []*Attribute
	Pattern string
	Name    *Identifier
	Type    Type
	End     int
}

func (p *Param) Accept(v Visitor)      { v.VisitParam(p) }
func (p *Param) TokenLiteral() string  { return p.Token.Lexeme }
func (p *Param) GetToken() token.Token { return p.Token }
func (p *Param) Span() token.Span      { return span(p.Token, p.End) }

// BindingName returns the simple binding name, or the pattern text.
func (p *Param) BindingName() string {
	if p.Name != nil {
		return p.Name.Value
	}
	return p.Pattern
}
