package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildBinary compiles the command into a temporary directory so the
// tests exercise what users run.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	gobin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not available")
	}
	bin := filepath.Join(t.TempDir(), "intogeneric")
	cmd := exec.Command(gobin, "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("building binary: %v\n%s", err, out)
	}
	return bin
}

// runBinary runs bin inside testdata and returns its output and exit code.
func runBinary(t *testing.T, bin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = "testdata"
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exit):
		code = exit.ExitCode()
	default:
		t.Fatalf("running %v: %v", args, err)
	}
	return out.String(), errOut.String(), code
}

// TestFunctional runs `rewrite` over every testdata/*.rs file that has a
// .want file and compares stdout with it. A .stderr file lists lines the
// diagnostics must contain and means the run is expected to fail.
func TestFunctional(t *testing.T) {
	bin := buildBinary(t)

	sources, err := filepath.Glob(filepath.Join("testdata", "*.rs"))
	if err != nil {
		t.Fatal(err)
	}
	for _, src := range sources {
		base := strings.TrimSuffix(src, ".rs")
		want, err := os.ReadFile(base + ".want")
		if err != nil {
			continue
		}
		t.Run(filepath.Base(base), func(t *testing.T) {
			stdout, stderr, code := runBinary(t, bin, "rewrite", filepath.Base(src))
			if diff := cmp.Diff(string(want), stdout); diff != "" {
				t.Errorf("stdout mismatch (-want +got):\n%s", diff)
			}

			wantErr, err := os.ReadFile(base + ".stderr")
			if err != nil {
				if code != 0 {
					t.Errorf("exit code = %d, want 0\n%s", code, stderr)
				}
				return
			}
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			for _, line := range strings.Split(strings.TrimSpace(string(wantErr)), "\n") {
				if !strings.Contains(stderr, line) {
					t.Errorf("stderr does not contain %q:\n%s", line, stderr)
				}
			}
		})
	}
}

func TestFunctionalCheck(t *testing.T) {
	bin := buildBinary(t)

	stdout, _, code := runBinary(t, bin, "check", ".")
	want := `basic.rs:1:1: fn greet: 1 parameter rewritten in 1 signature
basic.rs:6:1: trait Sink: 1 parameter rewritten in 1 signature
rejected.rs:1:1: enum Shape: rejected
rejected.rs:6:1: fn area: 1 parameter rewritten in 1 signature
`
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("check mismatch (-want +got):\n%s", diff)
	}
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	stdout, stderr, code := runBinary(t, bin, "rewrite", "-w", "-d", "basic.rs")
	if code != 2 || stdout != "" || !strings.Contains(stderr, "mutually exclusive") {
		t.Errorf("rewrite -w -d: code %d, stdout %q, stderr %q", code, stdout, stderr)
	}

	stdout, _, code = runBinary(t, bin, "rewrite", "-d", "basic.rs")
	wantDiff := strings.Join([]string{
		"--- basic.rs",
		"+++ basic.rs",
		"@@ -1,9 +1,7 @@",
		"-#[into_generic]",
		"-pub fn greet(name: impl AsRef<str>, times: usize) -> String {",
		"+pub fn greet<RewriteImplTrait0: AsRef<str>>(name: RewriteImplTrait0, times: usize) -> String {",
		"     name.as_ref().repeat(times)",
		" }",
		" ",
		"-#[into_generic]",
		" trait Sink {",
		"-    fn push(&mut self, item: impl Into<String>);",
		"+    fn push<RewriteImplTrait0: Into<String>>(&mut self, item: RewriteImplTrait0);",
		" }",
		"",
	}, "\n")
	if code != 0 {
		t.Errorf("rewrite -d: exit code = %d, want 0", code)
	}
	if diff := cmp.Diff(wantDiff, stdout); diff != "" {
		t.Errorf("rewrite -d mismatch (-want +got):\n%s", diff)
	}
}
