// Package expand applies the rewrite to every item carrying a marker
// attribute and splices the result back into the source text. Only the
// generic parameter list, the rewritten parameter types and the marker
// attributes are edited; every other byte of the input is kept.
package expand

import (
	"strconv"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/prettyprinter"
	"github.com/funvibe/intogeneric/internal/rewrite"
	"github.com/funvibe/intogeneric/internal/token"
)

// Expander recognizes marker attributes by path. It holds no per-file state
// and may be shared between goroutines.
type Expander struct {
	attrs stringset.Set
}

// New returns an Expander for the given attribute paths, or for
// config.DefaultAttributes when none are given.
func New(attributes ...string) *Expander {
	if len(attributes) == 0 {
		attributes = config.DefaultAttributes
	}
	return &Expander{attrs: stringset.New(attributes...)}
}

// IsMarker reports whether attr triggers a rewrite.
func (e *Expander) IsMarker(attr *ast.Attribute) bool {
	return !attr.Inner && e.attrs.Contains(attr.Path)
}

func (e *Expander) markers(attrs []*ast.Attribute) []*ast.Attribute {
	var out []*ast.Attribute
	for _, a := range attrs {
		if e.IsMarker(a) {
			out = append(out, a)
		}
	}
	return out
}

// run is the state of one File call.
type run struct {
	*Expander
	path       string
	src        string
	edits      []Edit
	expansions []pipeline.Expansion
	errors     []*diagnostics.DiagnosticError
}

// File expands every annotated item of file, whose text is src. It returns
// the new text, one record per annotated item, and the diagnostics raised.
// A rejected item is left as it was and its marker becomes a
// compile_error! invocation carrying the diagnostic message.
func (e *Expander) File(path string, file *ast.File, src string) (string, []pipeline.Expansion, []*diagnostics.DiagnosticError) {
	r := &run{Expander: e, path: path, src: src}
	r.items(file.Items)
	if len(r.edits) == 0 {
		return src, r.expansions, r.errors
	}
	out, err := Apply(src, r.edits)
	if err != nil {
		r.report(diagnostics.NewError(diagnostics.ErrE001, file.Token, "internal error: %v", err))
		return src, r.expansions, r.errors
	}
	return out, r.expansions, r.errors
}

func (r *run) report(err *diagnostics.DiagnosticError) {
	err.File = r.path
	r.errors = append(r.errors, err)
}

func (r *run) items(items []ast.Item) {
	for _, item := range items {
		if markers := r.markers(item.ItemAttrs()); len(markers) > 0 {
			r.expand(item, markers, nil)
			if mod, ok := item.(*ast.ModItem); ok {
				r.items(mod.Items)
			}
			continue
		}
		switch it := item.(type) {
		case *ast.ModItem:
			r.items(it.Items)
		case *ast.TraitItem:
			r.members(it.Members, it.Generics)
		case *ast.ImplItem:
			r.members(it.Members, it.Generics)
		}
	}
}

// members expands methods annotated on their own inside a block that is not
// annotated itself. The block's generics stay in scope for name clashes.
func (r *run) members(members []ast.Member, generics *ast.Generics) {
	var outer []ast.GenericParam
	if generics != nil {
		outer = generics.Params
	}
	for _, m := range members {
		markers := r.markers(m.ItemAttrs())
		if len(markers) == 0 {
			continue
		}
		item, ok := m.(ast.Item)
		if !ok {
			continue
		}
		r.expand(item, markers, outer)
	}
}

func (r *run) expand(item ast.Item, markers []*ast.Attribute, outer []ast.GenericParam) {
	rw := &rewrite.Rewriter{Outer: outer}
	out, res, err := rw.Dispatch(item)

	exp := pipeline.Expansion{Original: item, Expanded: out, Signatures: res.Signatures, Params: res.Params}
	if err != nil {
		exp.Failed = true
		r.report(err)
		r.edits = append(r.edits, Edit{
			Start: markers[0].Span().Start,
			End:   markers[0].Span().End,
			Text:  config.CompileErrorMacro + "(" + strconv.Quote(err.Message) + ");",
		})
		markers = markers[1:]
	}
	for _, m := range markers {
		r.removeAttribute(m)
	}
	r.nestedMarkers(item)
	r.expansions = append(r.expansions, exp)
	if err == nil {
		r.diffItem(item, out)
	}
}

// nestedMarkers drops redundant markers on the methods of an annotated
// trait or impl block.
func (r *run) nestedMarkers(item ast.Item) {
	var members []ast.Member
	switch it := item.(type) {
	case *ast.TraitItem:
		members = it.Members
	case *ast.ImplItem:
		members = it.Members
	}
	for _, m := range members {
		for _, a := range r.markers(m.ItemAttrs()) {
			r.removeAttribute(a)
		}
	}
}

// removeAttribute deletes attr together with the whitespace that follows it,
// so the item keeps the indentation the attribute had.
func (r *run) removeAttribute(attr *ast.Attribute) {
	sp := attr.Span()
	end := sp.End
	for end < len(r.src) && strings.IndexByte(" \t\r\n", r.src[end]) >= 0 {
		end++
	}
	r.edits = append(r.edits, Edit{Start: sp.Start, End: end})
}

func (r *run) diffItem(old, rewritten ast.Item) {
	if old == rewritten {
		return
	}
	switch o := old.(type) {
	case *ast.FnItem:
		r.diffSignature(o.Sig, rewritten.(*ast.FnItem).Sig)
	case *ast.TraitItem:
		r.diffMembers(o.Members, rewritten.(*ast.TraitItem).Members)
	case *ast.ImplItem:
		r.diffMembers(o.Members, rewritten.(*ast.ImplItem).Members)
	}
}

func (r *run) diffMembers(old, rewritten []ast.Member) {
	for i := range old {
		if old[i] == rewritten[i] {
			continue
		}
		of, ok := old[i].(*ast.FnItem)
		if !ok {
			continue
		}
		r.diffSignature(of.Sig, rewritten[i].(*ast.FnItem).Sig)
	}
}

// diffSignature turns a rewritten signature into edits: one per rewritten
// parameter type, and one extending or inserting the generic list.
func (r *run) diffSignature(old, rewritten *ast.Signature) {
	if old == rewritten {
		return
	}
	var added []string
	for i, p := range old.Params {
		if p == rewritten.Params[i] {
			continue
		}
		it, ok := p.Type.(*ast.ImplTraitType)
		if !ok {
			continue
		}
		name := prettyprinter.Print(rewritten.Params[i].Type)
		sp := it.Span()
		r.edits = append(r.edits, Edit{Start: sp.Start, End: sp.End, Text: name})
		added = append(added, r.genericText(name, it))
	}
	if len(added) == 0 {
		return
	}
	list := strings.Join(added, ", ")

	if old.Generics == nil {
		at := old.Name.Span().End
		r.edits = append(r.edits, Edit{Start: at, End: at, Text: "<" + list + ">"})
		return
	}
	gt := old.Generics.End - 1
	switch {
	case len(old.Generics.Params) == 0:
	case old.Generics.Trailing:
		list = " " + list
	default:
		list = ", " + list
	}
	r.edits = append(r.edits, Edit{Start: gt, End: gt, Text: list})
}

// genericText renders "Name: Bounds", taking the bounds exactly as written.
func (r *run) genericText(name string, it *ast.ImplTraitType) string {
	if len(it.Bounds) == 0 {
		return name
	}
	bounds := token.Span{Start: it.Bounds[0].Span().Start, End: it.End}.Text(r.src)
	if bounds == "" {
		bounds = prettyprinter.PrintBounds(it.Bounds)
	}
	return name + ": " + bounds
}
