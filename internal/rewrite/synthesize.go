// Package rewrite turns parameter-position opaque types (x: impl Bounds)
// into explicit generic parameters on functions and on the methods of
// trait definitions and impl blocks.
//
// The package never modifies its input. Rewritten items are new values that
// share every untouched node with the original tree.
package rewrite

import (
	"strconv"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/token"
)

// GenericName returns the name of the index-th synthesized parameter of a
// signature: RewriteImplTrait0, RewriteImplTrait1, ...
func GenericName(index int) string {
	return config.GenericPrefix + strconv.Itoa(index)
}

// SynthesizeParam builds the generic parameter that replaces the index-th
// opaque parameter of a signature. The bound list is deep-copied in order;
// no default, no ?Sized and no extra bound is added. at positions the new
// parameter for diagnostics.
func SynthesizeParam(index int, bounds []ast.Bound, at token.Token) *ast.TypeParam {
	name := ast.NewIdentifier(GenericName(index), at)
	return &ast.TypeParam{
		Token:  name.Token,
		Name:   name,
		Bounds: ast.CloneBounds(bounds),
	}
}
