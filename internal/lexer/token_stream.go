package lexer

import "github.com/funvibe/intogeneric/internal/token"

// TokenStream is a fully buffered token sequence with arbitrary lookahead.
// The last token is always EOF, and reading past the end keeps returning it.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

func NewTokenStream(l *Lexer) *TokenStream {
	s := &TokenStream{}
	for {
		tok := l.NextToken()
		s.tokens = append(s.tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return s
}

// Next returns the next token and advances.
func (s *TokenStream) Next() token.Token {
	tok := s.Peek(0)
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

// Peek returns the token n positions ahead without advancing; Peek(0) is
// the token the next call to Next returns.
func (s *TokenStream) Peek(n int) token.Token {
	i := s.pos + n
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Tokens returns every buffered token, EOF included.
func (s *TokenStream) Tokens() []token.Token {
	return s.tokens
}
