package difftext

import (
	"strings"
	"testing"
)

func TestUnifiedEqual(t *testing.T) {
	if got := Unified("a", "b", "same\n", "same\n"); got != "" {
		t.Errorf("Unified of equal texts = %q, want empty", got)
	}
}

func TestUnifiedSingleChange(t *testing.T) {
	a := "#[into_generic]\nfn f(x: impl Copy) {}\n"
	b := "fn f<RewriteImplTrait0: Copy>(x: RewriteImplTrait0) {}\n"
	want := strings.Join([]string{
		"--- a/lib.rs",
		"+++ b/lib.rs",
		"@@ -1,2 +1,1 @@",
		"-#[into_generic]",
		"-fn f(x: impl Copy) {}",
		"+fn f<RewriteImplTrait0: Copy>(x: RewriteImplTrait0) {}",
		"",
	}, "\n")
	if got := Unified("a/lib.rs", "b/lib.rs", a, b); got != want {
		t.Errorf("Unified mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnifiedContextAndHunks(t *testing.T) {
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, "line"+string(rune('a'+i-1)))
	}
	a := strings.Join(lines, "\n") + "\n"
	changed := append([]string(nil), lines...)
	changed[1] = "CHANGED b"
	changed[17] = "CHANGED r"
	b := strings.Join(changed, "\n") + "\n"

	got := Unified("old", "new", a, b)
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Fatalf("expected 2 hunks, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "@@ -1,5 +1,5 @@\n linea\n-lineb\n+CHANGED b\n linec\n lined\n linee\n") {
		t.Errorf("first hunk wrong:\n%s", got)
	}
	if !strings.Contains(got, "@@ -15,6 +15,6 @@\n lineo\n linep\n lineq\n-liner\n+CHANGED r\n lines\n linet\n") {
		t.Errorf("second hunk wrong:\n%s", got)
	}
}

func TestUnifiedNoFinalNewline(t *testing.T) {
	got := Unified("a", "b", "x", "y")
	want := "--- a\n+++ b\n@@ -1,1 +1,1 @@\n-x\n\\ No newline at end of file\n+y\n\\ No newline at end of file\n"
	if got != want {
		t.Errorf("Unified = %q, want %q", got, want)
	}
}

func TestUnifiedKeepsLinesApart(t *testing.T) {
	a := "#[into_generic]\nfn a(x: impl Copy) {}\nfn b() {}\n"
	b := "fn a<RewriteImplTrait0: Copy>(x: RewriteImplTrait0) {}\nfn b() {}\n"
	want := strings.Join([]string{
		"--- lib.rs",
		"+++ lib.rs",
		"@@ -1,3 +1,2 @@",
		"-#[into_generic]",
		"-fn a(x: impl Copy) {}",
		"+fn a<RewriteImplTrait0: Copy>(x: RewriteImplTrait0) {}",
		" fn b() {}",
		"",
	}, "\n")
	if got := Unified("lib.rs", "lib.rs", a, b); got != want {
		t.Errorf("Unified mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnifiedManyDistinctLines(t *testing.T) {
	var a, b strings.Builder
	for i := 0; i < 300; i++ {
		line := strings.Repeat("x", i%7) + string(rune('a'+i%26)) + strings.Repeat("y", i/26)
		a.WriteString(line + "\n")
		if i == 150 {
			b.WriteString("inserted\n")
		}
		b.WriteString(line + "\n")
	}
	got := Unified("old", "new", a.String(), b.String())
	if n := strings.Count(got, "\n+"); n != 2 {
		t.Errorf("expected the header and one inserted line, got %d:\n%s", n, got)
	}
	if strings.Contains(got, "\n-") {
		t.Errorf("nothing was deleted:\n%s", got)
	}
	if !strings.Contains(got, "@@ -148,6 +148,7 @@\n") || !strings.Contains(got, "\n+inserted\n") {
		t.Errorf("hunk wrong:\n%s", got)
	}
}
