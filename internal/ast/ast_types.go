package ast

import (
	"github.com/funvibe/intogeneric/internal/token"
)

// --- Type Nodes ---

// Type is a type expression in a signature or generic argument list.
// E.g., String, &'a mut str, Vec<T>, impl ToString + 'a, dyn Fn(u8) -> u8
type Type interface {
	Node
	typeNode()
}

// PathType is a possibly qualified, possibly generic type path.
// String, std::fmt::Display, Vec<T>, <T as Iterator>::Item, Fn(u8) -> u8
type PathType struct {
	Token    token.Token // first token of the path
	QSelf    *QSelf      // <T as Trait>:: prefix
	Global   bool        // leading ::
	Segments []*PathSegment
	End      int
}

func (pt *PathType) Accept(v Visitor)      { v.VisitPathType(pt) }
func (pt *PathType) typeNode()             {}
func (pt *PathType) TokenLiteral() string  { return pt.Token.Lexeme }
func (pt *PathType) GetToken() token.Token { return pt.Token }
func (pt *PathType) Span() token.Span      { return span(pt.Token, pt.End) }

// LastSegment returns the final path segment, or nil for an empty path.
func (pt *PathType) LastSegment() *PathSegment {
	if len(pt.Segments) == 0 {
		return nil
	}
	return pt.Segments[len(pt.Segments)-1]
}

// IsSingle reports whether the path is a bare identifier with no arguments,
// which is how a generic parameter is referenced.
func (pt *PathType) IsSingle() bool {
	return pt.QSelf == nil && !pt.Global && len(pt.Segments) == 1 && pt.Segments[0].Args == nil
}

// QSelf is the qualified-self prefix of a path: <Type as Trait>.
type QSelf struct {
	Token token.Token // '<'
	Type  Type
	As    *PathType // nil for <Type>::Name
	End   int
}

// PathSegment is one component of a path with its optional arguments.
type PathSegment struct {
	Name *Identifier
	Args *GenericArgs
}

// GenericArgs are the arguments of a path segment: angle-bracketed
// (<T, 'a, Item = u8>) or parenthesized (Fn(A, B) -> C).
type GenericArgs struct {
	Token     token.Token // '<', '::' for turbofish, or '('
	Turbofish bool
	Paren     bool
	Args      []GenericArg // angle form
	Inputs    []Type       // paren form
	Output    Type         // paren form, nil for unit
	End       int
}

// ReferenceType is a borrowed reference: &T, &'a mut T.
type ReferenceType struct {
	Token    token.Token // '&'
	Lifetime string
	Mut      bool
	Elem     Type
	End      int
}

func (rt *ReferenceType) Accept(v Visitor)      { v.VisitReferenceType(rt) }
func (rt *ReferenceType) typeNode()             {}
func (rt *ReferenceType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *ReferenceType) GetToken() token.Token { return rt.Token }
func (rt *ReferenceType) Span() token.Span      { return span(rt.Token, rt.End) }

// PointerType is a raw pointer: *const T, *mut T.
type PointerType struct {
	Token token.Token // '*'
	Mut   bool
	Elem  Type
	End   int
}

func (pt *PointerType) Accept(v Visitor)      { v.VisitPointerType(pt) }
func (pt *PointerType) typeNode()             {}
func (pt *PointerType) TokenLiteral() string  { return pt.Token.Lexeme }
func (pt *PointerType) GetToken() token.Token { return pt.Token }
func (pt *PointerType) Span() token.Span      { return span(pt.Token, pt.End) }

// TupleType is a tuple or the unit type: (), (A,), (A, B).
type TupleType struct {
	Token token.Token // '('
	Elems []Type
	End   int
}

func (tt *TupleType) Accept(v Visitor)      { v.VisitTupleType(tt) }
func (tt *TupleType) typeNode()             {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }
func (tt *TupleType) Span() token.Span      { return span(tt.Token, tt.End) }

// ParenType is a parenthesized type: (dyn Fn() + Send).
type ParenType struct {
	Token token.Token // '('
	Elem  Type
	End   int
}

func (pt *ParenType) Accept(v Visitor)      { v.VisitParenType(pt) }
func (pt *ParenType) typeNode()             {}
func (pt *ParenType) TokenLiteral() string  { return pt.Token.Lexeme }
func (pt *ParenType) GetToken() token.Token { return pt.Token }
func (pt *ParenType) Span() token.Span      { return span(pt.Token, pt.End) }

// SliceType is [T].
type SliceType struct {
	Token token.Token // '['
	Elem  Type
	End   int
}

func (st *SliceType) Accept(v Visitor)      { v.VisitSliceType(st) }
func (st *SliceType) typeNode()             {}
func (st *SliceType) TokenLiteral() string  { return st.Token.Lexeme }
func (st *SliceType) GetToken() token.Token { return st.Token }
func (st *SliceType) Span() token.Span      { return span(st.Token, st.End) }

// ArrayType is [T; N]. The length expression is kept verbatim.
type ArrayType struct {
	Token token.Token // '['
	Elem  Type
	Len   string
	End   int
}

func (at *ArrayType) Accept(v Visitor)      { v.VisitArrayType(at) }
func (at *ArrayType) typeNode()             {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }
func (at *ArrayType) Span() token.Span      { return span(at.Token, at.End) }

// ImplTraitType is an opaque type: impl ToString + 'a.
type ImplTraitType struct {
	Token  token.Token // 'impl'
	Bounds []Bound
	End    int
}

func (it *ImplTraitType) Accept(v Visitor)      { v.VisitImplTraitType(it) }
func (it *ImplTraitType) typeNode()             {}
func (it *ImplTraitType) TokenLiteral() string  { return it.Token.Lexeme }
func (it *ImplTraitType) GetToken() token.Token { return it.Token }
func (it *ImplTraitType) Span() token.Span      { return span(it.Token, it.End) }

// TraitObjectType is a trait object: dyn Display + Send. Dyn is false for
// the edition-2015 bare form that only appears after '&' or in a Box.
type TraitObjectType struct {
	Token  token.Token
	Dyn    bool
	Bounds []Bound
	End    int
}

func (to *TraitObjectType) Accept(v Visitor)      { v.VisitTraitObjectType(to) }
func (to *TraitObjectType) typeNode()             {}
func (to *TraitObjectType) TokenLiteral() string  { return to.Token.Lexeme }
func (to *TraitObjectType) GetToken() token.Token { return to.Token }
func (to *TraitObjectType) Span() token.Span      { return span(to.Token, to.End) }

// BareFnType is a function pointer: for<'a> unsafe extern "C" fn(&'a u8) -> u8.
type BareFnType struct {
	Token        token.Token
	ForLifetimes []string
	Unsafe       bool
	Extern       bool
	Abi          string
	Inputs       []*BareFnArg
	Variadic     bool
	Output       Type
	End          int
}

func (bf *BareFnType) Accept(v Visitor)      { v.VisitBareFnType(bf) }
func (bf *BareFnType) typeNode()             {}
func (bf *BareFnType) TokenLiteral() string  { return bf.Token.Lexeme }
func (bf *BareFnType) GetToken() token.Token { return bf.Token }
func (bf *BareFnType) Span() token.Span      { return span(bf.Token, bf.End) }

// BareFnArg is a function pointer input with an optional name.
type BareFnArg struct {
	Name string
	Type Type
}

// NeverType is !.
type NeverType struct {
	Token token.Token
}

func (nt *NeverType) Accept(v Visitor)      { v.VisitNeverType(nt) }
func (nt *NeverType) typeNode()             {}
func (nt *NeverType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NeverType) GetToken() token.Token { return nt.Token }
func (nt *NeverType) Span() token.Span      { return span(nt.Token, nt.Token.End()) }

// InferType is _.
type InferType struct {
	Token token.Token
}

func (it *InferType) Accept(v Visitor)      { v.VisitInferType(it) }
func (it *InferType) typeNode()             {}
func (it *InferType) TokenLiteral() string  { return it.Token.Lexeme }
func (it *InferType) GetToken() token.Token { return it.Token }
func (it *InferType) Span() token.Span      { return span(it.Token, it.Token.End()) }

// MacroType is a macro invocation in type position, kept verbatim.
type MacroType struct {
	Token token.Token
	Text  string
	End   int
}

func (mt *MacroType) Accept(v Visitor)      { v.VisitMacroType(mt) }
func (mt *MacroType) typeNode()             {}
func (mt *MacroType) TokenLiteral() string  { return mt.Token.Lexeme }
func (mt *MacroType) GetToken() token.Token { return mt.Token }
func (mt *MacroType) Span() token.Span      { return span(mt.Token, mt.End) }

// --- Generic Arguments ---

// GenericArg is one entry of an angle-bracketed argument list.
type GenericArg interface {
	Node
	genericArgNode()
}

// TypeArg is a type argument: Vec<T>.
type TypeArg struct {
	Type Type
}

func (ta *TypeArg) Accept(v Visitor)      { v.VisitTypeArg(ta) }
func (ta *TypeArg) genericArgNode()       {}
func (ta *TypeArg) TokenLiteral() string  { return ta.Type.TokenLiteral() }
func (ta *TypeArg) GetToken() token.Token { return ta.Type.GetToken() }
func (ta *TypeArg) Span() token.Span      { return ta.Type.Span() }

// LifetimeArg is a lifetime argument: Cow<'a, str>.
type LifetimeArg struct {
	Token token.Token
	Name  string
}

func (la *LifetimeArg) Accept(v Visitor)      { v.VisitLifetimeArg(la) }
func (la *LifetimeArg) genericArgNode()       {}
func (la *LifetimeArg) TokenLiteral() string  { return la.Token.Lexeme }
func (la *LifetimeArg) GetToken() token.Token { return la.Token }
func (la *LifetimeArg) Span() token.Span      { return span(la.Token, la.Token.End()) }

// BindingArg is an associated type binding: Iterator<Item = u8>.
type BindingArg struct {
	Token token.Token // the name
	Name  string
	Args  *GenericArgs // GAT arguments: Item<'a> = u8
	Type  Type
	End   int
}

func (ba *BindingArg) Accept(v Visitor)      { v.VisitBindingArg(ba) }
func (ba *BindingArg) genericArgNode()       {}
func (ba *BindingArg) TokenLiteral() string  { return ba.Token.Lexeme }
func (ba *BindingArg) GetToken() token.Token { return ba.Token }
func (ba *BindingArg) Span() token.Span      { return span(ba.Token, ba.End) }

// ConstraintArg is an associated type bound: Iterator<Item: Display>.
type ConstraintArg struct {
	Token  token.Token
	Name   string
	Bounds []Bound
	End    int
}

func (ca *ConstraintArg) Accept(v Visitor)      { v.VisitConstraintArg(ca) }
func (ca *ConstraintArg) genericArgNode()       {}
func (ca *ConstraintArg) TokenLiteral() string  { return ca.Token.Lexeme }
func (ca *ConstraintArg) GetToken() token.Token { return ca.Token }
func (ca *ConstraintArg) Span() token.Span      { return span(ca.Token, ca.End) }

// ConstArg is a const argument kept verbatim: [u8; N], Foo<3>, Foo<{ N + 1 }>.
type ConstArg struct {
	Token token.Token
	Text  string
	End   int
}

func (ca *ConstArg) Accept(v Visitor)      { v.VisitConstArg(ca) }
func (ca *ConstArg) genericArgNode()       {}
func (ca *ConstArg) TokenLiteral() string  { return ca.Token.Lexeme }
func (ca *ConstArg) GetToken() token.Token { return ca.Token }
func (ca *ConstArg) Span() token.Span      { return span(ca.Token, ca.End) }

// --- Bounds ---

// Bound is one '+'-separated entry of a bound list.
type Bound interface {
	Node
	boundNode()
}

// TraitBound is a trait bound: ToString, ?Sized, for<'a> Fn(&'a u8).
type TraitBound struct {
	Token        token.Token
	Maybe        bool // ?Sized
	Const        bool // ~const Trait
	ForLifetimes []string
	Path         *PathType
	Paren        bool // (Trait)
	End          int
}

func (tb *TraitBound) Accept(v Visitor)      { v.VisitTraitBound(tb) }
func (tb *TraitBound) boundNode()            {}
func (tb *TraitBound) TokenLiteral() string  { return tb.Token.Lexeme }
func (tb *TraitBound) GetToken() token.Token { return tb.Token }
func (tb *TraitBound) Span() token.Span      { return span(tb.Token, tb.End) }

// LifetimeBound is a lifetime in a bound list: 'a, 'static.
type LifetimeBound struct {
	Token token.Token
	Name  string
}

func (lb *LifetimeBound) Accept(v Visitor)      { v.VisitLifetimeBound(lb) }
func (lb *LifetimeBound) boundNode()            {}
func (lb *LifetimeBound) TokenLiteral() string  { return lb.Token.Lexeme }
func (lb *LifetimeBound) GetToken() token.Token { return lb.Token }
func (lb *LifetimeBound) Span() token.Span      { return span(lb.Token, lb.Token.End()) }

// --- Generics ---

// Generics is a declared parameter list: <'a, T: Into<String>, const N: usize>.
type Generics struct {
	Token    token.Token // '<'
	Params   []GenericParam
	Trailing bool // the last parameter is followed by ','
	End      int  // just past '>'
}

func (g *Generics) Accept(v Visitor)      { v.VisitGenerics(g) }
func (g *Generics) TokenLiteral() string  { return g.Token.Lexeme }
func (g *Generics) GetToken() token.Token { return g.Token }
func (g *Generics) Span() token.Span      { return span(g.Token, g.End) }

// GenericParam is a lifetime, type or const parameter.
type GenericParam interface {
	Node
	genericParamNode()
	ParamName() string
}

// LifetimeParam is 'a: 'b + 'c.
type LifetimeParam struct {
	Token  token.Token
	Attrs  []*Attribute
	Name   string
	Bounds []string
	End    int
}

func (lp *LifetimeParam) Accept(v Visitor)      { v.VisitLifetimeParam(lp) }
func (lp *LifetimeParam) genericParamNode()     {}
func (lp *LifetimeParam) ParamName() string     { return lp.Name }
func (lp *LifetimeParam) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LifetimeParam) GetToken() token.Token { return lp.Token }
func (lp *LifetimeParam) Span() token.Span      { return span(lp.Token, lp.End) }

// TypeParam is T: Bound + 'a = Default.
type TypeParam struct {
	Token   token.Token
	Attrs   []*Attribute
	Name    *Identifier
	Bounds  []Bound
	Default Type
	End     int
}

func (tp *TypeParam) Accept(v Visitor)      { v.VisitTypeParam(tp) }
func (tp *TypeParam) genericParamNode()     {}
func (tp *TypeParam) ParamName() string     { return tp.Name.Value }
func (tp *TypeParam) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TypeParam) GetToken() token.Token { return tp.Token }
func (tp *TypeParam) Span() token.Span      { return span(tp.Token, tp.End) }

// ConstParam is const N: usize = 3. The default is kept verbatim.
type ConstParam struct {
	Token   token.Token // 'const'
	Attrs   []*Attribute
	Name    *Identifier
	Type    Type
	Default string
	End     int
}

func (cp *ConstParam) Accept(v Visitor)      { v.VisitConstParam(cp) }
func (cp *ConstParam) genericParamNode()     {}
func (cp *ConstParam) ParamName() string     { return cp.Name.Value }
func (cp *ConstParam) TokenLiteral() string  { return cp.Token.Lexeme }
func (cp *ConstParam) GetToken() token.Token { return cp.Token }
func (cp *ConstParam) Span() token.Span      { return span(cp.Token, cp.End) }

// WhereClause is where T: Display, 'a: 'b.
type WhereClause struct {
	Token      token.Token // 'where'
	Predicates []WherePredicate
	End        int
}

func (w *WhereClause) Accept(v Visitor)      { v.VisitWhereClause(w) }
func (w *WhereClause) TokenLiteral() string  { return w.Token.Lexeme }
func (w *WhereClause) GetToken() token.Token { return w.Token }
func (w *WhereClause) Span() token.Span      { return span(w.Token, w.End) }

// WherePredicate is one comma-separated entry of a where clause.
type WherePredicate interface {
	Node
	wherePredicateNode()
}

// BoundPredicate is for<'a> Type: Bounds.
type BoundPredicate struct {
	Token        token.Token
	ForLifetimes []string
	Type         Type
	Bounds       []Bound
	End          int
}

func (bp *BoundPredicate) Accept(v Visitor)      { v.VisitBoundPredicate(bp) }
func (bp *BoundPredicate) wherePredicateNode()   {}
func (bp *BoundPredicate) TokenLiteral() string  { return bp.Token.Lexeme }
func (bp *BoundPredicate) GetToken() token.Token { return bp.Token }
func (bp *BoundPredicate) Span() token.Span      { return span(bp.Token, bp.End) }

// LifetimePredicate is 'a: 'b + 'c.
type LifetimePredicate struct {
	Token  token.Token
	Name   string
	Bounds []string
	End    int
}

func (lp *LifetimePredicate) Accept(v Visitor)      { v.VisitLifetimePredicate(lp) }
func (lp *LifetimePredicate) wherePredicateNode()   {}
func (lp *LifetimePredicate) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LifetimePredicate) GetToken() token.Token { return lp.Token }
func (lp *LifetimePredicate) Span() token.Span      { return span(lp.Token, lp.End) }
