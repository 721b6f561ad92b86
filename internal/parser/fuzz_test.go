package parser

import (
	"testing"

	"github.com/funvibe/intogeneric/internal/lexer"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/prettyprinter"
)

func parseString(input string) *pipeline.PipelineContext {
	return pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(pipeline.NewPipelineContext(input))
}

// FuzzFormatter verifies that printing is stable once a file has been
// through the printer.
// code1 = print(parse(input))
// code2 = print(parse(code1))
// code1 == code2
func FuzzFormatter(f *testing.F) {
	f.Add("fn f(x: impl Copy) {}")
	f.Add("#[into_generic]\npub trait T { fn m(&self, a: impl A + 'static); }")
	f.Add("impl<T: Clone> S<T> where T: Debug { const X: u8 = 1; fn f<'a>(&'a self) -> &'a T { &self.0 } }")
	f.Add("mod m { use a::b; struct S(u8); fn g(f: for<'a> fn(&'a u8) -> u8) {} }")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 2000 {
			return
		}
		ctx1 := parseString(input)
		if len(ctx1.Errors) > 0 {
			return
		}
		code1 := prettyprinter.Print(ctx1.AstRoot)

		ctx2 := parseString(code1)
		if len(ctx2.Errors) > 0 {
			t.Fatalf("printer produced unparsable code:\n%s\nerrors: %v", code1, ctx2.Errors)
		}
		if code2 := prettyprinter.Print(ctx2.AstRoot); code1 != code2 {
			t.Errorf("printer instability:\npass 1:\n%s\npass 2:\n%s", code1, code2)
		}
	})
}

// FuzzParse checks that the parser never panics and that every item span
// lies within the input.
func FuzzParse(f *testing.F) {
	f.Add("fn f(")
	f.Add("impl<T> for {}")
	f.Add("#[a] #[b(c)] fn g<'a, T: ?Sized, const N: usize = {1}>() where {}")
	f.Add("trait A = B; extern \"C\" { } macro_rules! m { () => {} }")

	f.Fuzz(func(t *testing.T, input string) {
		ctx := parseString(input)
		if ctx.AstRoot == nil {
			t.Fatal("no tree")
		}
		for _, item := range ctx.AstRoot.Items {
			sp := item.Span()
			if sp.Start < 0 || sp.End > len(input) || sp.End < sp.Start {
				t.Errorf("item %T span [%d,%d) outside input of %d bytes", item, sp.Start, sp.End, len(input))
			}
		}
	})
}
