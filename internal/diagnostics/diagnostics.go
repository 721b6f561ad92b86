package diagnostics

import (
	"fmt"

	"github.com/funvibe/intogeneric/internal/token"
)

// ErrorCode is a stable identifier for a diagnostic.
type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated literal or comment

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // unbalanced delimiter
	ErrP003 ErrorCode = "P003" // expected item

	// Rewrite
	ErrR001 ErrorCode = "R001" // annotation on an unsupported item
	ErrR002 ErrorCode = "R002" // synthesized generic name already in use

	// Expansion
	ErrE001 ErrorCode = "E001" // overlapping source edits
)

// Kind returns the human-readable category of the code.
func (c ErrorCode) Kind() string {
	switch c {
	case ErrL001, ErrL002:
		return "lexical error"
	case ErrP001, ErrP002, ErrP003:
		return "syntax error"
	case ErrR001:
		return "unsupported item"
	case ErrR002:
		return "generic name collision"
	case ErrE001:
		return "expansion error"
	}
	return "error"
}

// DiagnosticError is a located, coded diagnostic. It implements error so
// that stages can hand it around like any other failure.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a diagnostic anchored at tok. When args are given, msg is
// used as a format string.
func NewError(code ErrorCode, tok token.Token, msg string, args ...interface{}) *DiagnosticError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

func (e *DiagnosticError) Error() string {
	loc := e.Location()
	if loc == "" {
		return fmt.Sprintf("error[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: error[%s]: %s", loc, e.Code, e.Message)
}

// Location renders file:line:col, omitting whatever is unknown.
func (e *DiagnosticError) Location() string {
	switch {
	case e.File != "" && e.Token.IsValid():
		return fmt.Sprintf("%s:%d:%d", e.File, e.Token.Line, e.Token.Column)
	case e.Token.IsValid():
		return fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Column)
	default:
		return e.File
	}
}

// HasErrors reports whether any diagnostic in errs has one of the given
// codes, or any diagnostic at all when no code is given.
func HasErrors(errs []*DiagnosticError, codes ...ErrorCode) bool {
	if len(codes) == 0 {
		return len(errs) > 0
	}
	for _, err := range errs {
		for _, c := range codes {
			if err.Code == c {
				return true
			}
		}
	}
	return false
}
