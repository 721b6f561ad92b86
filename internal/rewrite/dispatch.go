package rewrite

import (
	"bitbucket.org/creachadair/stringset"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/token"
)

// Result reports what a dispatch rewrote.
type Result struct {
	Signatures int // signatures that gained generic parameters
	Params     int // opaque parameters rewritten
}

func (r *Result) add(n int) {
	if n > 0 {
		r.Signatures++
		r.Params += n
	}
}

// Rewriter dispatches one annotated item. Outer lists generic parameters
// already in scope, those of an enclosing trait or impl when a single
// method is annotated on its own; they are only consulted for name clashes.
type Rewriter struct {
	Outer []ast.GenericParam
}

// Dispatch rewrites item with no enclosing generics in scope.
func Dispatch(item ast.Item) (ast.Item, Result, *diagnostics.DiagnosticError) {
	return (&Rewriter{}).Dispatch(item)
}

// Dispatch classifies item and rewrites the signatures it owns: the
// signature of a function, or the signature of every method of a trait or
// impl block. Associated consts, types and macro invocations pass through.
//
// Any other item yields an R001 diagnostic. A synthesized name that is
// already a generic parameter in scope yields R002. In both cases item is
// returned as is and nothing is rewritten.
func (r *Rewriter) Dispatch(item ast.Item) (ast.Item, Result, *diagnostics.DiagnosticError) {
	var res Result
	switch it := item.(type) {
	case *ast.FnItem:
		if err := checkNames(it.Sig, r.Outer); err != nil {
			return item, res, err
		}
		sig, n := RewriteSignature(it.Sig)
		if n == 0 {
			return item, res, nil
		}
		res.add(n)
		out := *it
		out.Sig = sig
		return &out, res, nil

	case *ast.TraitItem:
		members, res, err := rewriteMembers(it.Members, r.scope(it.Generics))
		if err != nil || res.Signatures == 0 {
			return item, Result{}, err
		}
		out := *it
		out.Members = members
		return &out, res, nil

	case *ast.ImplItem:
		members, res, err := rewriteMembers(it.Members, r.scope(it.Generics))
		if err != nil || res.Signatures == 0 {
			return item, Result{}, err
		}
		out := *it
		out.Members = members
		return &out, res, nil

	default:
		// ModItem, VerbatimItem and anything else.
		var tok token.Token
		if item != nil {
			tok = item.GetToken()
		}
		return item, res, diagnostics.NewError(diagnostics.ErrR001, tok, config.UnsupportedItemMessage)
	}
}

func (r *Rewriter) scope(g *ast.Generics) []ast.GenericParam {
	if g == nil {
		return r.Outer
	}
	out := make([]ast.GenericParam, 0, len(r.Outer)+len(g.Params))
	out = append(out, r.Outer...)
	return append(out, g.Params...)
}

// rewriteMembers checks every method before rewriting any, so a clash
// anywhere leaves the whole block untouched.
func rewriteMembers(members []ast.Member, outer []ast.GenericParam) ([]ast.Member, Result, *diagnostics.DiagnosticError) {
	var res Result
	for _, m := range members {
		if fn, ok := m.(*ast.FnItem); ok {
			if err := checkNames(fn.Sig, outer); err != nil {
				return members, res, err
			}
		}
	}

	var out []ast.Member
	for i, m := range members {
		fn, ok := m.(*ast.FnItem)
		if !ok {
			continue
		}
		sig, n := RewriteSignature(fn.Sig)
		if n == 0 {
			continue
		}
		if out == nil {
			out = append([]ast.Member(nil), members...)
		}
		nf := *fn
		nf.Sig = sig
		out[i] = &nf
		res.add(n)
	}
	if out == nil {
		return members, res, nil
	}
	return out, res, nil
}

// checkNames reports a generic parameter of sig or of the enclosing scope
// whose name equals one that rewriting sig would synthesize.
func checkNames(sig *ast.Signature, outer []ast.GenericParam) *diagnostics.DiagnosticError {
	n := opaqueCount(sig)
	if n == 0 {
		return nil
	}
	synthesized := stringset.New()
	for i := 0; i < n; i++ {
		synthesized.Add(GenericName(i))
	}
	for _, params := range [][]ast.GenericParam{outer, sig.GenericParams()} {
		for _, gp := range params {
			if synthesized.Contains(gp.ParamName()) {
				return diagnostics.NewError(diagnostics.ErrR002, gp.GetToken(),
					"generic parameter `%s` clashes with the name synthesized for an `impl Trait` parameter of `%s`",
					gp.ParamName(), sig.Name.Value)
			}
		}
	}
	return nil
}
