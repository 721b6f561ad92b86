// Package difftext renders line-based unified diffs.
package difftext

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

type line struct {
	op    diffmatchpatch.Operation
	text  string
	oldNo int
	newNo int
}

// lineTable maps each distinct line to one rune so the diff runs over
// whole lines. Surrogate code points are skipped.
type lineTable struct {
	index map[string]rune
	lines []string
}

func (t *lineTable) encode(text string) []rune {
	var out []rune
	for _, l := range strings.SplitAfter(text, "\n") {
		if l == "" {
			continue
		}
		r, ok := t.index[l]
		if !ok {
			r = rune(len(t.lines))
			if r >= 0xD800 {
				r += 0x800
			}
			t.index[l] = r
			t.lines = append(t.lines, l)
		}
		out = append(out, r)
	}
	return out
}

func (t *lineTable) decode(r rune) string {
	if r >= 0xE000 {
		r -= 0x800
	}
	return t.lines[r]
}

func diffLines(a, b string) []line {
	t := &lineTable{index: make(map[string]rune)}
	ra, rb := t.encode(a), t.encode(b)
	diffs := diffmatchpatch.New().DiffMainRunes(ra, rb, false)

	var out []line
	o, n := 1, 1
	for _, d := range diffs {
		for _, r := range d.Text {
			out = append(out, line{op: d.Type, text: t.decode(r), oldNo: o, newNo: n})
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				o++
				n++
			case diffmatchpatch.DiffDelete:
				o++
			case diffmatchpatch.DiffInsert:
				n++
			}
		}
	}
	return out
}

// Unified returns the unified diff from a to b with the given file labels,
// or "" when the texts are equal.
func Unified(oldName, newName, a, b string) string {
	if a == b {
		return ""
	}
	ls := diffLines(a, b)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", oldName, newName)
	for i := 0; i < len(ls); {
		for i < len(ls) && ls[i].op == diffmatchpatch.DiffEqual {
			i++
		}
		if i == len(ls) {
			break
		}
		start := max(0, i-Context)
		end := i
		for {
			for end < len(ls) && ls[end].op != diffmatchpatch.DiffEqual {
				end++
			}
			next := end
			for next < len(ls) && ls[next].op == diffmatchpatch.DiffEqual {
				next++
			}
			if next < len(ls) && next-end <= 2*Context {
				end = next
				continue
			}
			end = min(len(ls), end+Context)
			break
		}
		writeHunk(&buf, ls[start:end])
		i = end
	}
	return buf.String()
}

func writeHunk(buf *strings.Builder, hunk []line) {
	oldStart, newStart := hunk[0].oldNo, hunk[0].newNo
	oldCount, newCount := 0, 0
	for _, l := range hunk {
		switch l.op {
		case diffmatchpatch.DiffEqual:
			oldCount++
			newCount++
		case diffmatchpatch.DiffDelete:
			oldCount++
		case diffmatchpatch.DiffInsert:
			newCount++
		}
	}
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range hunk {
		prefix := " "
		switch l.op {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		buf.WriteString(prefix + l.text)
		if !strings.HasSuffix(l.text, "\n") {
			buf.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
