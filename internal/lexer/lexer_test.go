package lexer

import (
	"testing"

	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `fn borrowed_lifetime<'a>(string: &'a mut String, smash: impl ToString + 'a) -> String {
    let c = 'x';
    r#type::<u8>(b"bytes", r#"raw "str""#, 1.5, 0..3)
}`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.FN, "fn"},
		{token.IDENT, "borrowed_lifetime"},
		{token.LT, "<"},
		{token.LIFETIME, "'a"},
		{token.GT, ">"},
		{token.LPAREN, "("},
		{token.IDENT, "string"},
		{token.COLON, ":"},
		{token.AMPERSAND, "&"},
		{token.LIFETIME, "'a"},
		{token.MUT, "mut"},
		{token.IDENT, "String"},
		{token.COMMA, ","},
		{token.IDENT, "smash"},
		{token.COLON, ":"},
		{token.IMPL, "impl"},
		{token.IDENT, "ToString"},
		{token.PLUS, "+"},
		{token.LIFETIME, "'a"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "String"},
		{token.LBRACE, "{"},
		{token.IDENT, "let"},
		{token.IDENT, "c"},
		{token.ASSIGN, "="},
		{token.CHAR, "'x'"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "r#type"},
		{token.PATH_SEP, "::"},
		{token.LT, "<"},
		{token.IDENT, "u8"},
		{token.GT, ">"},
		{token.LPAREN, "("},
		{token.STRING, `b"bytes"`},
		{token.COMMA, ","},
		{token.STRING, `r#"raw "str""#`},
		{token.COMMA, ","},
		{token.FLOAT, "1.5"},
		{token.COMMA, ","},
		{token.INT, "0"},
		{token.DOTDOT, ".."},
		{token.INT, "3"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Type != token.EOF && input[tok.Offset:tok.End()] != tok.Lexeme {
			t.Fatalf("tests[%d] - offset %d does not point at %q", i, tok.Offset, tok.Lexeme)
		}
	}
	if errs := l.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
}

func TestLifetimeVersusChar(t *testing.T) {
	tests := []struct {
		input    string
		expected token.TokenType
		lexeme   string
	}{
		{"'a", token.LIFETIME, "'a"},
		{"'static>", token.LIFETIME, "'static"},
		{"'a'", token.CHAR, "'a'"},
		{`'\n'`, token.CHAR, `'\n'`},
		{`'\''`, token.CHAR, `'\''`},
		{"b'x'", token.CHAR, "b'x'"},
		{"'_", token.LIFETIME, "'_"},
	}
	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expected || tok.Lexeme != tt.lexeme {
			t.Errorf("%q: got %s %q, want %s %q", tt.input, tok.Type, tok.Lexeme, tt.expected, tt.lexeme)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "// line\n/* outer /* nested */ still comment */ /// doc\nfn"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.FN {
		t.Fatalf("expected fn after comments, got %s %q", tok.Type, tok.Lexeme)
	}
	if tok.Line != 3 || tok.Column != 1 {
		t.Fatalf("expected fn at 3:1, got %d:%d", tok.Line, tok.Column)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input        string
		unterminated bool
	}{
		{"fn f() { \"open", true},
		{"/* never closed", true},
		{"fn §", false},
	}
	for _, tt := range tests {
		l := New(tt.input)
		for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		}
		errs := l.Errors()
		if len(errs) != 1 {
			t.Fatalf("%q: expected 1 error, got %d", tt.input, len(errs))
		}
		if errs[0].Unterminated != tt.unterminated {
			t.Errorf("%q: unterminated=%v, want %v (%s)", tt.input, errs[0].Unterminated, tt.unterminated, errs[0].Message)
		}
	}
}

func TestTokenStreamPeek(t *testing.T) {
	s := NewTokenStream(New("a :: b"))
	if got := s.Peek(1).Type; got != token.PATH_SEP {
		t.Fatalf("Peek(1) = %s, want ::", got)
	}
	for _, want := range []token.TokenType{token.IDENT, token.PATH_SEP, token.IDENT, token.EOF, token.EOF} {
		if got := s.Next().Type; got != want {
			t.Fatalf("Next() = %s, want %s", got, want)
		}
	}
	if got := s.Peek(5).Type; got != token.EOF {
		t.Fatalf("Peek past end = %s, want EOF", got)
	}
}

func TestLexerProcessorCodes(t *testing.T) {
	ctx := pipeline.NewPipelineContext("fn § () { 'x }\nconst S: &str = \"open")
	ctx.FilePath = "bad.rs"
	ctx = (&LexerProcessor{}).Process(ctx)

	if ctx.TokenStream == nil {
		t.Fatal("TokenStream not set")
	}
	if len(ctx.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(ctx.Errors), ctx.Errors)
	}
	first, second := ctx.Errors[0], ctx.Errors[1]
	if first.Code != diagnostics.ErrL001 || first.Error() != `bad.rs:1:4: error[L001]: illegal character "§"` {
		t.Errorf("first error = %q", first.Error())
	}
	if second.Code != diagnostics.ErrL002 || second.Token.Line != 2 {
		t.Errorf("second error = %q, want L002 on line 2", second.Error())
	}
}
