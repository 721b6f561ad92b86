package rewrite

import (
	"github.com/funvibe/intogeneric/internal/ast"
)

// opaque returns the opaque type of a parameter. Only a top-level
// impl Bounds counts: &impl T, Vec<impl T> and (impl T) are left alone.
func opaque(p *ast.Param) (*ast.ImplTraitType, bool) {
	it, ok := p.Type.(*ast.ImplTraitType)
	return it, ok
}

func opaqueCount(sig *ast.Signature) int {
	n := 0
	for _, p := range sig.Params {
		if _, ok := opaque(p); ok {
			n++
		}
	}
	return n
}

// RewriteSignature replaces every opaque parameter type of sig with a
// synthesized generic parameter and returns the new signature together with
// the number of parameters rewritten.
//
// Parameters keep their order and binding patterns; non-opaque parameters
// are carried over as the same values. The synthesized parameters are
// appended after all existing generics, in parameter order. The receiver,
// the return type and the where clause are never inspected. When nothing
// is rewritten sig itself is returned.
func RewriteSignature(sig *ast.Signature) (*ast.Signature, int) {
	var (
		params      []*ast.Param
		synthesized []ast.GenericParam
	)
	for i, p := range sig.Params {
		it, ok := opaque(p)
		if !ok {
			continue
		}
		if params == nil {
			params = append([]*ast.Param(nil), sig.Params...)
		}
		tp := SynthesizeParam(len(synthesized), it.Bounds, it.Token)
		synthesized = append(synthesized, tp)

		np := *p
		np.Type = &ast.PathType{
			Token:    tp.Token,
			Segments: []*ast.PathSegment{{Name: ast.NewIdentifier(tp.Name.Value, it.Token)}},
		}
		params[i] = &np
	}
	if len(synthesized) == 0 {
		return sig, 0
	}

	out := *sig
	out.Params = params
	generics := &ast.Generics{Token: sig.Name.Token}
	if sig.Generics != nil {
		g := *sig.Generics
		generics = &g
	}
	existing := sig.GenericParams()
	generics.Params = make([]ast.GenericParam, 0, len(existing)+len(synthesized))
	generics.Params = append(generics.Params, existing...)
	generics.Params = append(generics.Params, synthesized...)
	out.Generics = generics
	return &out, len(synthesized)
}
