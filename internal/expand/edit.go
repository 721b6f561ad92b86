package expand

import (
	"fmt"
	"sort"
	"strings"
)

// Edit replaces src[Start:End] with Text. Start == End inserts.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Apply applies edits to src. Edits may be given in any order but must not
// overlap; two insertions at the same offset keep their given order.
func Apply(src string, edits []Edit) (string, error) {
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(src))
	pos := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return "", fmt.Errorf("edit [%d,%d) out of range for %d bytes", e.Start, e.End, len(src))
		}
		if e.Start < pos {
			prev := sorted[i-1]
			return "", fmt.Errorf("edits [%d,%d) and [%d,%d) overlap", prev.Start, prev.End, e.Start, e.End)
		}
		b.WriteString(src[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
	}
	b.WriteString(src[pos:])
	return b.String(), nil
}
