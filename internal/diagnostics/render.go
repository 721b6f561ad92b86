package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorMode selects when the renderer emits ANSI colour codes.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a user-supplied colour mode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// Renderer prints diagnostics with the offending source line and a caret,
// in the style of rustc.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer writes to w. In ColorAuto mode colour is enabled only when w
// is a terminal.
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	color := mode == ColorAlways
	if mode == ColorAuto {
		if f, ok := w.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return &Renderer{w: w, color: color}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// Render prints err. src is the text of err.File; when empty only the
// header line is printed.
func (r *Renderer) Render(err *DiagnosticError, src string) {
	header := r.paint(ansiBold+ansiRed, fmt.Sprintf("error[%s]", err.Code))
	if loc := err.Location(); loc != "" {
		fmt.Fprintf(r.w, "%s: %s: %s\n", loc, header, r.paint(ansiBold, err.Message))
	} else {
		fmt.Fprintf(r.w, "%s: %s\n", header, r.paint(ansiBold, err.Message))
	}

	line := sourceLine(src, err.Token.Line)
	if line == "" {
		return
	}
	num := strconv.Itoa(err.Token.Line)
	gutter := strings.Repeat(" ", len(num))
	bar := r.paint(ansiBlue, "|")

	width := len(err.Token.Lexeme)
	if nl := strings.IndexByte(err.Token.Lexeme, '\n'); nl >= 0 {
		width = nl
	}
	if width == 0 {
		width = 1
	}
	marker := r.paint(ansiBold+ansiRed, strings.Repeat("^", width)+" "+err.Code.Kind())
	fmt.Fprintf(r.w, "%s %s\n", gutter, bar)
	fmt.Fprintf(r.w, "%s %s %s\n", r.paint(ansiBlue, num), bar, line)
	fmt.Fprintf(r.w, "%s %s %s%s\n", gutter, bar, caretPadding(line, err.Token.Column-1), marker)
}

// caretPadding blanks the first col characters of line, keeping tabs so the
// caret lines up under the token.
func caretPadding(line string, col int) string {
	var pad strings.Builder
	for _, c := range line {
		if col <= 0 {
			break
		}
		if c == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
		col--
	}
	return pad.String()
}

// RenderAll prints every diagnostic in order.
func (r *Renderer) RenderAll(errs []*DiagnosticError, src string) {
	for _, err := range errs {
		r.Render(err, src)
	}
}

func sourceLine(src string, line int) string {
	if src == "" || line <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
