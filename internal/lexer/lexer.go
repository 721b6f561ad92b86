package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/intogeneric/internal/token"
)

// Error is a lexical error recorded while scanning. Scanning never stops on
// an error; the offending input is returned as an ILLEGAL token.
type Error struct {
	Token        token.Token
	Message      string
	Unterminated bool
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
	errors       []Error
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []Error {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start, line, col := l.position, l.line, l.column
	if l.atEOF() {
		return token.Token{Type: token.EOF, Line: line, Column: col, Offset: len(l.input)}
	}

	switch l.ch {
	case '(':
		l.readChar()
		return l.makeToken(token.LPAREN, start, line, col)
	case ')':
		l.readChar()
		return l.makeToken(token.RPAREN, start, line, col)
	case '{':
		l.readChar()
		return l.makeToken(token.LBRACE, start, line, col)
	case '}':
		l.readChar()
		return l.makeToken(token.RBRACE, start, line, col)
	case '[':
		l.readChar()
		return l.makeToken(token.LBRACKET, start, line, col)
	case ']':
		l.readChar()
		return l.makeToken(token.RBRACKET, start, line, col)
	case ':':
		l.readChar()
		if l.ch == ':' {
			l.readChar()
			return l.makeToken(token.PATH_SEP, start, line, col)
		}
		return l.makeToken(token.COLON, start, line, col)
	case '-':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return l.makeToken(token.ARROW, start, line, col)
		}
		return l.makeToken(token.MINUS, start, line, col)
	case '=':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return l.makeToken(token.FAT_ARROW, start, line, col)
		}
		return l.makeToken(token.ASSIGN, start, line, col)
	case '.':
		l.readChar()
		if l.ch != '.' {
			return l.makeToken(token.DOT, start, line, col)
		}
		l.readChar()
		switch l.ch {
		case '.':
			l.readChar()
			return l.makeToken(token.DOTDOTDOT, start, line, col)
		case '=':
			l.readChar()
			return l.makeToken(token.DOTDOTEQ, start, line, col)
		}
		return l.makeToken(token.DOTDOT, start, line, col)
	case '\'':
		return l.readQuote(start, line, col)
	case '"':
		return l.readString(start, line, col)
	}

	if single, ok := singleCharTokens[l.ch]; ok {
		l.readChar()
		return l.makeToken(single, start, line, col)
	}

	if isDigit(l.ch) {
		return l.readNumber(start, line, col)
	}

	if isLetter(l.ch) {
		if tok, ok := l.readPrefixedLiteral(start, line, col); ok {
			return tok
		}
		ident := l.readIdentifier()
		if ident == "_" {
			return l.makeToken(token.UNDERSCORE, start, line, col)
		}
		return l.makeToken(token.LookupIdent(ident), start, line, col)
	}

	l.readChar()
	tok := l.makeToken(token.ILLEGAL, start, line, col)
	l.errors = append(l.errors, Error{Token: tok, Message: "illegal character " + strconv.Quote(tok.Lexeme)})
	return tok
}

var singleCharTokens = map[rune]token.TokenType{
	'<': token.LT,
	'>': token.GT,
	',': token.COMMA,
	';': token.SEMICOLON,
	'+': token.PLUS,
	'*': token.ASTERISK,
	'/': token.SLASH,
	'%': token.PERCENT,
	'^': token.CARET,
	'!': token.BANG,
	'&': token.AMPERSAND,
	'|': token.PIPE,
	'?': token.QUESTION,
	'#': token.POUND,
	'$': token.DOLLAR,
	'@': token.AT,
	'~': token.TILDE,
}

func (l *Lexer) makeToken(t token.TokenType, start, line, col int) token.Token {
	end := l.position
	if end > len(l.input) {
		end = len(l.input)
	}
	return token.Token{Type: t, Lexeme: l.input[start:end], Line: line, Column: col, Offset: start}
}

func (l *Lexer) unterminated(t token.TokenType, start, line, col int, what string) token.Token {
	tok := l.makeToken(token.ILLEGAL, start, line, col)
	l.errors = append(l.errors, Error{Token: tok, Message: "unterminated " + what, Unterminated: true})
	return tok
}

// readQuote handles both lifetimes ('a, 'static) and char literals ('a', '\n').
// A quote followed by an identifier that is not itself closed by a quote is
// a lifetime.
func (l *Lexer) readQuote(start, line, col int) token.Token {
	if isLetter(l.peekChar()) {
		j := l.readPosition
		for j < len(l.input) {
			r, w := utf8.DecodeRuneInString(l.input[j:])
			if !isLetter(r) && !isDigit(r) {
				break
			}
			j += w
		}
		if j >= len(l.input) || l.input[j] != '\'' {
			l.readChar() // consume '
			l.readIdentifier()
			return l.makeToken(token.LIFETIME, start, line, col)
		}
	}
	return l.readCharLiteral(start, line, col)
}

func (l *Lexer) readCharLiteral(start, line, col int) token.Token {
	l.readChar() // consume opening '
	for {
		switch {
		case l.atEOF() || l.ch == '\n':
			return l.unterminated(token.CHAR, start, line, col, "character literal")
		case l.ch == '\\':
			l.readChar()
			l.readChar()
		case l.ch == '\'':
			l.readChar()
			return l.makeToken(token.CHAR, start, line, col)
		default:
			l.readChar()
		}
	}
}

func (l *Lexer) readString(start, line, col int) token.Token {
	l.readChar() // consume opening "
	for {
		switch {
		case l.atEOF():
			return l.unterminated(token.STRING, start, line, col, "string literal")
		case l.ch == '\\':
			l.readChar()
			l.readChar()
		case l.ch == '"':
			l.readChar()
			return l.makeToken(token.STRING, start, line, col)
		default:
			l.readChar()
		}
	}
}

// readRawString reads r"..." / r#"..."# after the r (and any b/c prefix)
// has been consumed.
func (l *Lexer) readRawString(start, line, col int) token.Token {
	hashes := 0
	for l.ch == '#' {
		hashes++
		l.readChar()
	}
	if l.ch != '"' {
		return l.unterminated(token.STRING, start, line, col, "raw string literal")
	}
	l.readChar()
	for !l.atEOF() {
		if l.ch == '"' {
			l.readChar()
			n := 0
			for n < hashes && l.ch == '#' {
				n++
				l.readChar()
			}
			if n == hashes {
				return l.makeToken(token.STRING, start, line, col)
			}
			continue
		}
		l.readChar()
	}
	return l.unterminated(token.STRING, start, line, col, "raw string literal")
}

// readPrefixedLiteral recognizes literal and identifier prefixes: b'x',
// b"..", br"..", c"..", cr"..", r"..", r#".."# and raw identifiers r#ident.
func (l *Lexer) readPrefixedLiteral(start, line, col int) (token.Token, bool) {
	rest := l.input[l.position:]
	switch {
	case strings.HasPrefix(rest, "b'"):
		l.readChar()
		return l.readCharLiteral(start, line, col), true
	case strings.HasPrefix(rest, "b\""), strings.HasPrefix(rest, "c\""):
		l.readChar()
		return l.readString(start, line, col), true
	case strings.HasPrefix(rest, "br\""), strings.HasPrefix(rest, "br#"), strings.HasPrefix(rest, "cr\""), strings.HasPrefix(rest, "cr#"):
		l.readChar()
		l.readChar()
		return l.readRawString(start, line, col), true
	case strings.HasPrefix(rest, "r\""):
		l.readChar()
		return l.readRawString(start, line, col), true
	case strings.HasPrefix(rest, "r#"):
		if len(rest) > 2 {
			r, _ := utf8.DecodeRuneInString(rest[2:])
			if isLetter(r) {
				l.readChar() // r
				l.readChar() // #
				l.readIdentifier()
				return l.makeToken(token.IDENT, start, line, col), true
			}
		}
		l.readChar()
		return l.readRawString(start, line, col), true
	}
	return token.Token{}, false
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber(start, line, col int) token.Token {
	tokType := token.INT
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	// 1.5 is a float; 1..2 and x.0.1 are not.
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokType = token.FLOAT
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.makeToken(tokType, start, line, col)
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments, including doc comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				for l.ch != '\n' && !l.atEOF() {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.skipBlockComment()
				continue
			}
		}
		break
	}
}

// skipBlockComment skips a possibly nested /* ... */ comment.
func (l *Lexer) skipBlockComment() {
	start, line, col := l.position, l.line, l.column
	l.readChar() // consume /
	l.readChar() // consume *
	depth := 1
	for !l.atEOF() {
		switch {
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			depth++
		case l.ch == '*' && l.peekChar() == '/':
			l.readChar()
			l.readChar()
			depth--
			if depth == 0 {
				return
			}
		default:
			l.readChar()
		}
	}
	l.unterminated(token.ILLEGAL, start, line, col, "block comment")
}
