package rewrite

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/lexer"
	"github.com/funvibe/intogeneric/internal/parser"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/prettyprinter"
)

func parseItem(t *testing.T, src string) ast.Item {
	t.Helper()
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(src))
	if len(ctx.Errors) > 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	if len(ctx.AstRoot.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(ctx.AstRoot.Items))
	}
	return ctx.AstRoot.Items[0]
}

func TestGenericName(t *testing.T) {
	for i, want := range map[int]string{0: "RewriteImplTrait0", 1: "RewriteImplTrait1", 12: "RewriteImplTrait12"} {
		if got := GenericName(i); got != want {
			t.Errorf("GenericName(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestDispatchFn(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		result Result
	}{
		{
			name:   "other_generic",
			input:  "fn other_generic<T: Into<String>>(smash: impl ToString, with: T) -> String { smash.to_string() + &with.into() }",
			want:   "fn other_generic<T: Into<String>, RewriteImplTrait0: ToString>(smash: RewriteImplTrait0, with: T) -> String",
			result: Result{Signatures: 1, Params: 1},
		},
		{
			name:   "multiple_impls",
			input:  "fn multiple_impls(a: impl ToString, b: u8, c: impl Into<String> + Clone) {}",
			want:   "fn multiple_impls<RewriteImplTrait0: ToString, RewriteImplTrait1: Into<String> + Clone>(a: RewriteImplTrait0, b: u8, c: RewriteImplTrait1)",
			result: Result{Signatures: 1, Params: 2},
		},
		{
			name:   "borrowed_lifetime",
			input:  "fn borrowed_lifetime<'a>(string: &'a mut String, smash: impl ToString + 'a) {}",
			want:   "fn borrowed_lifetime<'a, RewriteImplTrait0: ToString + 'a>(string: &'a mut String, smash: RewriteImplTrait0)",
			result: Result{Signatures: 1, Params: 1},
		},
		{
			name:   "receiver and where clause are kept",
			input:  "fn m<T>(&self, mut x: impl Fn(T) -> T) -> impl Copy where T: Copy {}",
			want:   "fn m<T, RewriteImplTrait0: Fn(T) -> T>(&self, mut x: RewriteImplTrait0) -> impl Copy where T: Copy",
			result: Result{Signatures: 1, Params: 1},
		},
		{
			name:   "existing name with a free index",
			input:  "fn f<RewriteImplTrait1>(x: impl Copy, y: RewriteImplTrait1) {}",
			want:   "fn f<RewriteImplTrait1, RewriteImplTrait0: Copy>(x: RewriteImplTrait0, y: RewriteImplTrait1)",
			result: Result{Signatures: 1, Params: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := parseItem(t, tt.input)
			out, res, err := Dispatch(item)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got := prettyprinter.Print(out.(*ast.FnItem).Sig); got != tt.want {
				t.Errorf("signature mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
			if res != tt.result {
				t.Errorf("result = %+v, want %+v", res, tt.result)
			}
		})
	}
}

func TestDispatchUnchanged(t *testing.T) {
	inputs := []string{
		"fn return_impl() -> impl ToString { 1 }",
		"fn nested(a: &impl Display, b: Vec<impl Display>, c: (impl Display), d: Box<dyn Display>) {}",
		"fn method(self: impl Deref<Target = Self>) {}",
		"trait Empty {}",
		"impl Foo { const X: u8 = 1; fn plain(&self) {} }",
	}
	for _, input := range inputs {
		item := parseItem(t, input)
		out, res, err := Dispatch(item)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", input, err)
		}
		if out != item {
			t.Errorf("%s: expected the original item back", input)
		}
		if res != (Result{}) {
			t.Errorf("%s: result = %+v, want zero", input, res)
		}
	}
}

func TestDispatchTraitAndImpl(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "pub trait AppendString {\n    const X: u8;\n\n    fn append_string(&mut self, param: impl ToString);\n\n    fn plain(&self);\n}",
			want:  "pub trait AppendString {\n    const X: u8;\n\n    fn append_string<RewriteImplTrait0: ToString>(&mut self, param: RewriteImplTrait0);\n\n    fn plain(&self);\n}",
		},
		{
			input: "impl<T> AppendString for Vec<T> {\n    fn append_string(&mut self, param: impl ToString) {}\n\n    fn two(a: impl A, b: impl B) {}\n}",
			want:  "impl<T> AppendString for Vec<T> {\n    fn append_string<RewriteImplTrait0: ToString>(&mut self, param: RewriteImplTrait0) {}\n\n    fn two<RewriteImplTrait0: A, RewriteImplTrait1: B>(a: RewriteImplTrait0, b: RewriteImplTrait1) {}\n}",
		},
	}
	for _, tt := range tests {
		item := parseItem(t, tt.input)
		out, res, err := Dispatch(item)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got := prettyprinter.Print(out); got != tt.want {
			t.Errorf("mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
		}
		if res.Signatures == 0 || out == item {
			t.Errorf("expected a rewritten copy, got result %+v", res)
		}
	}

	item := parseItem(t, tests[0].input)
	out, _, _ := Dispatch(item)
	before, after := item.(*ast.TraitItem).Members, out.(*ast.TraitItem).Members
	if before[0] != after[0] || before[2] != after[2] {
		t.Errorf("untouched members must be shared with the original")
	}
	if before[1] == after[1] {
		t.Errorf("rewritten member must be a new value")
	}
}

func TestDispatchDoesNotMutateInput(t *testing.T) {
	src := "impl Foo {\n    fn a<T>(x: impl Into<T> + 'static, y: T) {}\n}"
	item := parseItem(t, src)
	printed := prettyprinter.Print(item)
	member := item.(*ast.ImplItem).Members[0].(*ast.FnItem)
	origBounds := member.Sig.Params[0].Type.(*ast.ImplTraitType).Bounds

	out, _, err := Dispatch(item)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got := prettyprinter.Print(item); got != printed {
		t.Errorf("input changed (-before +after):\n%s", cmp.Diff(printed, got))
	}
	if len(member.Sig.Generics.Params) != 1 {
		t.Errorf("input generics grew to %d", len(member.Sig.Generics.Params))
	}

	rewritten := out.(*ast.ImplItem).Members[0].(*ast.FnItem).Sig
	synth := rewritten.Generics.Params[1].(*ast.TypeParam)
	if synth.Bounds[0] == origBounds[0] || synth.Bounds[0].(*ast.TraitBound).Path == origBounds[0].(*ast.TraitBound).Path {
		t.Errorf("synthesized bounds must be copies")
	}
	if rewritten.Params[1] != member.Sig.Params[1] {
		t.Errorf("non-opaque parameters must be carried over unchanged")
	}
}

func TestDispatchUnsupported(t *testing.T) {
	inputs := []string{
		"struct S { x: u8 }",
		"mod m { fn f(x: impl Copy) {} }",
		"use std::fmt;",
		"enum E { A }",
		"const C: u8 = 0;",
	}
	for _, input := range inputs {
		item := parseItem(t, input)
		out, _, err := Dispatch(item)
		if err == nil {
			t.Errorf("%s: expected an error", input)
			continue
		}
		if err.Code != diagnostics.ErrR001 || err.Message != config.UnsupportedItemMessage {
			t.Errorf("%s: got %s %q", input, err.Code, err.Message)
		}
		if err.Token.Line != 1 || err.Token.Column != 1 {
			t.Errorf("%s: error at %d:%d, want 1:1", input, err.Token.Line, err.Token.Column)
		}
		if out != item {
			t.Errorf("%s: rejected item must be returned as is", input)
		}
	}

	if _, _, err := Dispatch(nil); err == nil || err.Code != diagnostics.ErrR001 {
		t.Errorf("Dispatch(nil) = %v, want R001", err)
	}
}

func TestDispatchNameClash(t *testing.T) {
	item := parseItem(t, "fn f<RewriteImplTrait0>(x: impl Copy) {}")
	out, res, err := Dispatch(item)
	if err == nil || err.Code != diagnostics.ErrR002 {
		t.Fatalf("expected R002, got %v", err)
	}
	if want := "generic parameter `RewriteImplTrait0` clashes with the name synthesized for an `impl Trait` parameter of `f`"; err.Message != want {
		t.Errorf("message = %q", err.Message)
	}
	if out != item || res != (Result{}) {
		t.Errorf("a clash must leave the item untouched")
	}

	block := parseItem(t, "impl<RewriteImplTrait1> Foo<RewriteImplTrait1> {\n    fn ok(a: impl A) {}\n\n    fn bad(a: impl A, b: impl B) {}\n}")
	out, _, err = Dispatch(block)
	if err == nil || err.Code != diagnostics.ErrR002 {
		t.Fatalf("expected R002 from the block generics, got %v", err)
	}
	if out != block {
		t.Errorf("a clash in one method must leave the whole block untouched")
	}

	method := parseItem(t, "fn m(a: impl A) {}")
	outer := []ast.GenericParam{&ast.TypeParam{Name: &ast.Identifier{Value: "RewriteImplTrait0"}}}
	if _, _, err := (&Rewriter{Outer: outer}).Dispatch(method); err == nil || err.Code != diagnostics.ErrR002 {
		t.Errorf("expected R002 from outer generics, got %v", err)
	}
	if _, _, err := (&Rewriter{Outer: outer}).Dispatch(parseItem(t, "fn m(a: u8) {}")); err != nil {
		t.Errorf("a method without opaque parameters never clashes, got %v", err)
	}
}
