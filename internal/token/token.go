package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT    TokenType = "IDENT"    // foo, Foo, r#type
	LIFETIME TokenType = "LIFETIME" // 'a, 'static
	INT      TokenType = "INT"      // 42, 0xff_u8
	FLOAT    TokenType = "FLOAT"    // 1.5
	STRING   TokenType = "STRING"   // "x", r#"x"#, b"x"
	CHAR     TokenType = "CHAR"     // 'x', b'x'

	// Delimiters
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Punctuation. Composite operators that only occur inside bodies
	// (>=, <<=, &&, ...) are lexed as single characters; bodies are kept
	// verbatim so this never loses information.
	LT         TokenType = "<"
	GT         TokenType = ">"
	COMMA      TokenType = ","
	SEMICOLON  TokenType = ";"
	COLON      TokenType = ":"
	PATH_SEP   TokenType = "::"
	ARROW      TokenType = "->"
	FAT_ARROW  TokenType = "=>"
	ASSIGN     TokenType = "="
	PLUS       TokenType = "+"
	MINUS      TokenType = "-"
	ASTERISK   TokenType = "*"
	SLASH      TokenType = "/"
	PERCENT    TokenType = "%"
	CARET      TokenType = "^"
	BANG       TokenType = "!"
	AMPERSAND  TokenType = "&"
	PIPE       TokenType = "|"
	QUESTION   TokenType = "?"
	DOT        TokenType = "."
	DOTDOT     TokenType = ".."
	DOTDOTDOT  TokenType = "..."
	DOTDOTEQ   TokenType = "..="
	POUND      TokenType = "#"
	DOLLAR     TokenType = "$"
	AT         TokenType = "@"
	TILDE      TokenType = "~"
	UNDERSCORE TokenType = "_"

	// Keywords
	FN         TokenType = "fn"
	TRAIT      TokenType = "trait"
	IMPL       TokenType = "impl"
	FOR        TokenType = "for"
	WHERE      TokenType = "where"
	PUB        TokenType = "pub"
	CRATE      TokenType = "crate"
	SELF_LOWER TokenType = "self"
	SELF_UPPER TokenType = "Self"
	SUPER      TokenType = "super"
	IN         TokenType = "in"
	MOD        TokenType = "mod"
	STRUCT     TokenType = "struct"
	ENUM       TokenType = "enum"
	USE        TokenType = "use"
	CONST      TokenType = "const"
	STATIC     TokenType = "static"
	TYPE       TokenType = "type"
	MUT        TokenType = "mut"
	UNSAFE     TokenType = "unsafe"
	ASYNC      TokenType = "async"
	EXTERN     TokenType = "extern"
	DYN        TokenType = "dyn"
	AS         TokenType = "as"
)

var keywords = map[string]TokenType{
	"fn":     FN,
	"trait":  TRAIT,
	"impl":   IMPL,
	"for":    FOR,
	"where":  WHERE,
	"pub":    PUB,
	"crate":  CRATE,
	"self":   SELF_LOWER,
	"Self":   SELF_UPPER,
	"super":  SUPER,
	"in":     IN,
	"mod":    MOD,
	"struct": STRUCT,
	"enum":   ENUM,
	"use":    USE,
	"const":  CONST,
	"static": STATIC,
	"type":   TYPE,
	"mut":    MUT,
	"unsafe": UNSAFE,
	"async":  ASYNC,
	"extern": EXTERN,
	"dyn":    DYN,
	"as":     AS,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexeme. Lexeme is the exact source slice, so
// Offset+len(Lexeme) is the byte offset just past the token.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Offset + len(t.Lexeme) }

// IsWord reports whether the token is an identifier or a keyword.
func (t Token) IsWord() bool {
	return t.Type == IDENT || (t.Lexeme != "" && keywords[t.Lexeme] == t.Type)
}

// IsValid reports whether the token carries a source position.
func (t Token) IsValid() bool { return t.Line > 0 }

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Span is a half-open byte range [Start, End) in a source file.
type Span struct {
	Start int
	End   int
}

// IsValid reports whether the span covers source text. Nodes synthesized
// by a rewrite have no span.
func (s Span) IsValid() bool { return s.End > s.Start }

// Text returns the source text covered by s.
func (s Span) Text(src string) string {
	if !s.IsValid() || s.End > len(src) {
		return ""
	}
	return src[s.Start:s.End]
}
