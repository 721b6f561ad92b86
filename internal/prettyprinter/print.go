package prettyprinter

import (
	"github.com/funvibe/intogeneric/internal/ast"
)

// Print renders any node with a fresh CodePrinter.
func Print(n ast.Node) string {
	p := NewCodePrinter()
	p.node(n)
	return p.String()
}

// PrintBounds renders a '+'-separated bound list.
func PrintBounds(bounds []ast.Bound) string {
	p := NewCodePrinter()
	p.bounds(bounds)
	return p.String()
}
