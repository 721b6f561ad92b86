package expand

import (
	"testing"
)

// FuzzExpand checks that expanding a well-formed file yields a well-formed
// file, and that expanding the result again changes nothing.
func FuzzExpand(f *testing.F) {
	f.Add("#[into_generic]\nfn f<T,>(x: impl Copy, y: T) {}")
	f.Add("#[into_generic]\nimpl S {\n    #[into_generic]\n    fn m(&self, a: impl A) {}\n}")
	f.Add("#[into_generic]\nstruct S;\n#[into_generic]\nfn c<RewriteImplTrait0>(x: impl A) {}")
	f.Add("mod m {\n    #[rewrite_impl_trait::into_generic]\n    fn g(f: impl Fn(u8) -> u8 + Send) {}\n}")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 2000 {
			return
		}
		first := expandSource("fuzz.rs", input, nil)
		if first.AstRoot == nil || first.Output == "" {
			return
		}

		second := expandSource("fuzz.rs", first.Output, nil)
		for _, err := range second.Errors {
			switch err.Code[0] {
			case 'L', 'P':
				t.Fatalf("expansion produced unparsable code:\n%s\nerror: %s", first.Output, err)
			}
		}
		if second.Result() != first.Output {
			t.Errorf("expansion is not idempotent:\npass 1:\n%s\npass 2:\n%s", first.Output, second.Result())
		}
	})
}
