package main

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"github.com/funvibe/intogeneric/internal/driver"
)

func TestWriteExpansions(t *testing.T) {
	src := `#[into_generic]
fn a(x: impl Copy, y: impl Clone) {}

#[into_generic]
impl Show for Point {
    fn show(&self, out: impl Write) {}
}

#[into_generic]
trait Empty {}

#[into_generic]
struct Point;
`
	res := driver.New(nil).Source("lib.rs", src)
	var buf bytes.Buffer
	writeExpansions(&buf, res)
	want := `lib.rs:1:1: fn a: 2 parameters rewritten in 1 signature
lib.rs:4:1: impl Show for Point: 1 parameter rewritten in 1 signature
lib.rs:9:1: trait Empty: nothing to rewrite
lib.rs:12:1: struct Point: rejected
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("writeExpansions mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectFlagsLoad(t *testing.T) {
	f := &projectFlags{workers: -1}
	if _, _, err := f.load(); err == nil {
		t.Errorf("expected an error for a negative -j")
	}
	f = &projectFlags{color: "plaid"}
	if _, _, err := f.load(); err == nil {
		t.Errorf("expected an error for an unknown colour mode")
	}
	f = &projectFlags{workers: 3, color: "never"}
	d, r, err := f.load()
	if err != nil {
		t.Fatal(err)
	}
	if d.Project().Workers != 3 || d.Project().Color != "never" || r == nil {
		t.Errorf("flag overrides not applied: %+v", d.Project())
	}
}

func TestCommandInfo(t *testing.T) {
	cmd := newCheckCommand()
	if cmd.Name() != "check" {
		t.Errorf("Name() = %q", cmd.Name())
	}
	want := "check [-q] [-config path] <file-or-dir>...\n\nreport annotated items and diagnostics without writing.\n\nOptions:\n"
	if got := cmd.Usage(); got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	info := newCommandInfo("rewrite", "", "")
	if got := info.UsageError("no input files"); got != subcommands.ExitUsageError {
		t.Errorf("UsageError = %v", got)
	}
	if got := info.Fail("reading %s", "lib.rs"); got != subcommands.ExitFailure {
		t.Errorf("Fail = %v", got)
	}
	for _, line := range []string{"rewrite: ERROR: no input files", "rewrite: ERROR: reading lib.rs"} {
		if !bytes.Contains(buf.Bytes(), []byte(line)) {
			t.Errorf("log output %q does not contain %q", buf.String(), line)
		}
	}
}
