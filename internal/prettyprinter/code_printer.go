package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/intogeneric/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders a tree back to source text. Items and signatures are
// printed in a canonical layout; verbatim nodes (bodies, struct and enum
// declarations, macro invocations) are printed exactly as they were parsed.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
	column int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
	// Track column position
	if idx := strings.LastIndex(s, "\n"); idx != -1 {
		p.column = len(s) - idx - 1
	} else {
		p.column += len(s)
	}
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
	p.column = 0
}

func (p *CodePrinter) node(n ast.Node) {
	if n == nil {
		p.write("<???>")
		return
	}
	n.Accept(p)
}

func (p *CodePrinter) outerAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		a.Accept(p)
		p.writeln()
		p.writeIndent()
	}
}

func (p *CodePrinter) innerAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		p.writeIndent()
		a.Accept(p)
		p.writeln()
	}
}

func (p *CodePrinter) vis(v *ast.Visibility) {
	if v != nil {
		p.write(v.Text + " ")
	}
}

func (p *CodePrinter) VisitFile(n *ast.File) {
	p.innerAttrs(n.Attrs)
	if len(n.Attrs) > 0 && len(n.Items) > 0 {
		p.writeln()
	}
	p.items(n.Items)
}

func (p *CodePrinter) items(items []ast.Item) {
	for i, item := range items {
		if i > 0 {
			p.writeln()
		}
		p.writeIndent()
		p.node(item)
		p.writeln()
	}
}

func (p *CodePrinter) VisitAttribute(n *ast.Attribute) {
	if n.Text != "" {
		p.write(n.Text)
		return
	}
	p.write("#")
	if n.Inner {
		p.write("!")
	}
	p.write("[" + n.Path)
	switch {
	case n.Args == "":
	case strings.HasPrefix(n.Args, "="):
		p.write(" " + n.Args)
	default:
		p.write(n.Args)
	}
	p.write("]")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitBlock(n *ast.Block) {
	p.write(n.Text)
}

func (p *CodePrinter) VisitFnItem(n *ast.FnItem) {
	p.outerAttrs(n.Attrs)
	p.vis(n.Vis)
	if n.Default {
		p.write("default ")
	}
	p.node(n.Sig)
	if n.Body == nil {
		p.write(";")
		return
	}
	p.write(" ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitTraitItem(n *ast.TraitItem) {
	p.outerAttrs(n.Attrs)
	p.vis(n.Vis)
	if n.Unsafe {
		p.write("unsafe ")
	}
	if n.Auto {
		p.write("auto ")
	}
	p.write("trait ")
	p.node(n.Name)
	if n.Generics != nil {
		n.Generics.Accept(p)
	}
	if len(n.SuperTraits) > 0 {
		p.write(": ")
		p.bounds(n.SuperTraits)
	}
	if n.Where != nil {
		p.write(" ")
		n.Where.Accept(p)
	}
	p.members(n.InnerAttrs, n.Members)
}

func (p *CodePrinter) VisitImplItem(n *ast.ImplItem) {
	p.outerAttrs(n.Attrs)
	if n.Unsafe {
		p.write("unsafe ")
	}
	p.write("impl")
	if n.Generics != nil {
		n.Generics.Accept(p)
	}
	p.write(" ")
	if n.Negative {
		p.write("!")
	}
	if n.Trait != nil {
		n.Trait.Accept(p)
		p.write(" for ")
	}
	p.node(n.SelfType)
	if n.Where != nil {
		p.write(" ")
		n.Where.Accept(p)
	}
	p.members(n.InnerAttrs, n.Members)
}

func (p *CodePrinter) members(inner []*ast.Attribute, members []ast.Member) {
	if len(inner) == 0 && len(members) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {")
	p.writeln()
	p.indent++
	p.innerAttrs(inner)
	for i, m := range members {
		if i > 0 {
			p.writeln()
		}
		p.writeIndent()
		p.node(m)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitModItem(n *ast.ModItem) {
	p.outerAttrs(n.Attrs)
	p.vis(n.Vis)
	p.write("mod ")
	p.node(n.Name)
	if !n.Inline {
		p.write(";")
		return
	}
	if len(n.InnerAttrs) == 0 && len(n.Items) == 0 {
		p.write(" {}")
		return
	}
	p.write(" {")
	p.writeln()
	p.indent++
	p.innerAttrs(n.InnerAttrs)
	p.items(n.Items)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitVerbatimItem(n *ast.VerbatimItem) {
	p.outerAttrs(n.Attrs)
	p.write(n.Text)
}

func (p *CodePrinter) VisitSignature(n *ast.Signature) {
	if n.Const {
		p.write("const ")
	}
	if n.Async {
		p.write("async ")
	}
	if n.Unsafe {
		p.write("unsafe ")
	}
	if n.Extern {
		p.write("extern ")
		if n.Abi != "" {
			p.write(n.Abi + " ")
		}
	}
	p.write("fn ")
	p.node(n.Name)
	if n.Generics != nil {
		n.Generics.Accept(p)
	}
	p.write("(")
	first := true
	sep := func() {
		if !first {
			p.write(", ")
		}
		first = false
	}
	if n.Receiver != nil {
		sep()
		n.Receiver.Accept(p)
	}
	for _, param := range n.Params {
		sep()
		p.node(param)
	}
	if n.Variadic {
		sep()
		p.write("...")
	}
	p.write(")")
	if n.ReturnType != nil {
		p.write(" -> ")
		n.ReturnType.Accept(p)
	}
	if n.Where != nil {
		p.write(" ")
		n.Where.Accept(p)
	}
}

func (p *CodePrinter) inlineAttrs(attrs []*ast.Attribute) {
	for _, a := range attrs {
		a.Accept(p)
		p.write(" ")
	}
}

func (p *CodePrinter) VisitReceiver(n *ast.Receiver) {
	p.inlineAttrs(n.Attrs)
	if n.Ref {
		p.write("&")
		if n.Lifetime != "" {
			p.write(n.Lifetime + " ")
		}
	}
	if n.Mut {
		p.write("mut ")
	}
	p.write("self")
	if n.Type != nil {
		p.write(": ")
		n.Type.Accept(p)
	}
}

func (p *CodePrinter) VisitParam(n *ast.Param) {
	p.inlineAttrs(n.Attrs)
	p.write(n.Pattern)
	p.write(": ")
	p.node(n.Type)
}

func (p *CodePrinter) VisitGenerics(n *ast.Generics) {
	p.write("<")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.node(param)
	}
	p.write(">")
}

func (p *CodePrinter) lifetimes(names []string) {
	p.write(strings.Join(names, " + "))
}

func (p *CodePrinter) VisitLifetimeParam(n *ast.LifetimeParam) {
	p.inlineAttrs(n.Attrs)
	p.write(n.Name)
	if len(n.Bounds) > 0 {
		p.write(": ")
		p.lifetimes(n.Bounds)
	}
}

func (p *CodePrinter) VisitTypeParam(n *ast.TypeParam) {
	p.inlineAttrs(n.Attrs)
	p.node(n.Name)
	if len(n.Bounds) > 0 {
		p.write(": ")
		p.bounds(n.Bounds)
	}
	if n.Default != nil {
		p.write(" = ")
		n.Default.Accept(p)
	}
}

func (p *CodePrinter) VisitConstParam(n *ast.ConstParam) {
	p.inlineAttrs(n.Attrs)
	p.write("const ")
	p.node(n.Name)
	p.write(": ")
	p.node(n.Type)
	if n.Default != "" {
		p.write(" = " + n.Default)
	}
}

func (p *CodePrinter) VisitWhereClause(n *ast.WhereClause) {
	p.write("where ")
	for i, pred := range n.Predicates {
		if i > 0 {
			p.write(", ")
		}
		p.node(pred)
	}
}

func (p *CodePrinter) forLifetimes(names []string) {
	if len(names) > 0 {
		p.write("for<" + strings.Join(names, ", ") + "> ")
	}
}

func (p *CodePrinter) VisitBoundPredicate(n *ast.BoundPredicate) {
	p.forLifetimes(n.ForLifetimes)
	p.node(n.Type)
	p.write(": ")
	p.bounds(n.Bounds)
}

func (p *CodePrinter) VisitLifetimePredicate(n *ast.LifetimePredicate) {
	p.write(n.Name + ": ")
	p.lifetimes(n.Bounds)
}

func (p *CodePrinter) bounds(bounds []ast.Bound) {
	for i, b := range bounds {
		if i > 0 {
			p.write(" + ")
		}
		p.node(b)
	}
}

func (p *CodePrinter) VisitTraitBound(n *ast.TraitBound) {
	if n.Paren {
		p.write("(")
	}
	if n.Const {
		p.write("~const ")
	}
	if n.Maybe {
		p.write("?")
	}
	p.forLifetimes(n.ForLifetimes)
	p.node(n.Path)
	if n.Paren {
		p.write(")")
	}
}

func (p *CodePrinter) VisitLifetimeBound(n *ast.LifetimeBound) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitPathType(n *ast.PathType) {
	if n.QSelf != nil {
		p.write("<")
		p.node(n.QSelf.Type)
		if n.QSelf.As != nil {
			p.write(" as ")
			n.QSelf.As.Accept(p)
		}
		p.write(">::")
	}
	if n.Global {
		p.write("::")
	}
	for i, seg := range n.Segments {
		if i > 0 {
			p.write("::")
		}
		p.write(seg.Name.Value)
		if seg.Args != nil {
			p.genericArgs(seg.Args)
		}
	}
}

func (p *CodePrinter) genericArgs(ga *ast.GenericArgs) {
	if ga.Paren {
		p.write("(")
		for i, in := range ga.Inputs {
			if i > 0 {
				p.write(", ")
			}
			p.node(in)
		}
		p.write(")")
		if ga.Output != nil {
			p.write(" -> ")
			ga.Output.Accept(p)
		}
		return
	}
	if ga.Turbofish {
		p.write("::")
	}
	p.write("<")
	for i, a := range ga.Args {
		if i > 0 {
			p.write(", ")
		}
		p.node(a)
	}
	p.write(">")
}

func (p *CodePrinter) VisitReferenceType(n *ast.ReferenceType) {
	p.write("&")
	if n.Lifetime != "" {
		p.write(n.Lifetime + " ")
	}
	if n.Mut {
		p.write("mut ")
	}
	p.node(n.Elem)
}

func (p *CodePrinter) VisitPointerType(n *ast.PointerType) {
	if n.Mut {
		p.write("*mut ")
	} else {
		p.write("*const ")
	}
	p.node(n.Elem)
}

func (p *CodePrinter) VisitTupleType(n *ast.TupleType) {
	p.write("(")
	for i, e := range n.Elems {
		if i > 0 {
			p.write(", ")
		}
		p.node(e)
	}
	if len(n.Elems) == 1 {
		p.write(",")
	}
	p.write(")")
}

func (p *CodePrinter) VisitParenType(n *ast.ParenType) {
	p.write("(")
	p.node(n.Elem)
	p.write(")")
}

func (p *CodePrinter) VisitSliceType(n *ast.SliceType) {
	p.write("[")
	p.node(n.Elem)
	p.write("]")
}

func (p *CodePrinter) VisitArrayType(n *ast.ArrayType) {
	p.write("[")
	p.node(n.Elem)
	p.write("; " + n.Len + "]")
}

func (p *CodePrinter) VisitImplTraitType(n *ast.ImplTraitType) {
	p.write("impl ")
	p.bounds(n.Bounds)
}

func (p *CodePrinter) VisitTraitObjectType(n *ast.TraitObjectType) {
	if n.Dyn {
		p.write("dyn ")
	}
	p.bounds(n.Bounds)
}

func (p *CodePrinter) VisitBareFnType(n *ast.BareFnType) {
	p.forLifetimes(n.ForLifetimes)
	if n.Unsafe {
		p.write("unsafe ")
	}
	if n.Extern {
		p.write("extern ")
		if n.Abi != "" {
			p.write(n.Abi + " ")
		}
	}
	p.write("fn(")
	for i, in := range n.Inputs {
		if i > 0 {
			p.write(", ")
		}
		if in.Name != "" {
			p.write(in.Name + ": ")
		}
		p.node(in.Type)
	}
	if n.Variadic {
		if len(n.Inputs) > 0 {
			p.write(", ")
		}
		p.write("...")
	}
	p.write(")")
	if n.Output != nil {
		p.write(" -> ")
		n.Output.Accept(p)
	}
}

func (p *CodePrinter) VisitNeverType(n *ast.NeverType) { p.write("!") }
func (p *CodePrinter) VisitInferType(n *ast.InferType) { p.write("_") }
func (p *CodePrinter) VisitMacroType(n *ast.MacroType) { p.write(n.Text) }

func (p *CodePrinter) VisitTypeArg(n *ast.TypeArg) {
	p.node(n.Type)
}

func (p *CodePrinter) VisitLifetimeArg(n *ast.LifetimeArg) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitBindingArg(n *ast.BindingArg) {
	p.write(n.Name)
	if n.Args != nil {
		p.genericArgs(n.Args)
	}
	p.write(" = ")
	p.node(n.Type)
}

func (p *CodePrinter) VisitConstraintArg(n *ast.ConstraintArg) {
	p.write(n.Name + ": ")
	p.bounds(n.Bounds)
}

func (p *CodePrinter) VisitConstArg(n *ast.ConstArg) {
	p.write(n.Text)
}
