package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	data := `
attributes:
  - into_generic
  - my_crate::generic
extensions: [".rs", ".rs.in"]
workers: 2
color: NEVER
exclude:
  - target
`
	p, err := ParseConfig([]byte(data), "test.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := &Project{
		Attributes: []string{"into_generic", "my_crate::generic"},
		Extensions: []string{".rs", ".rs.in"},
		Workers:    2,
		Color:      "never",
		Exclude:    []string{"target"},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	for _, data := range []string{"", "   \n", "workers: 0\n"} {
		p, err := ParseConfig([]byte(data), "empty.yaml")
		if err != nil {
			t.Fatalf("ParseConfig(%q): %v", data, err)
		}
		if diff := cmp.Diff(DefaultProject(), p); diff != "" {
			t.Errorf("ParseConfig(%q) mismatch (-want +got):\n%s", data, diff)
		}
	}
	d := DefaultProject()
	if d.Workers != DefaultWorkers || d.Color != "auto" || !d.HasExtension("lib.rs") {
		t.Errorf("unexpected defaults: %+v", d)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		data string
		want string
	}{
		{"attributes: [\"\"]\n", "empty attribute path"},
		{"attributes: [\"#[into_generic]\"]\n", "is not an attribute path"},
		{"extensions: [rs]\n", "must start with '.'"},
		{"workers: -1\n", "workers must not be negative"},
		{"color: sometimes\n", "color must be auto, always or never"},
		{"colour: never\n", "parsing bad.yaml"},
		{"workers: [\n", "parsing bad.yaml"},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.data), "bad.yaml")
		if err == nil {
			t.Errorf("ParseConfig(%q): expected error", tt.data)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("ParseConfig(%q) error = %q, want it to contain %q", tt.data, err, tt.want)
		}
	}
}

func TestFindAndResolve(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	p, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("Resolve without config: %v", err)
	}
	if p.Workers != DefaultWorkers {
		t.Errorf("expected defaults, got %+v", p)
	}

	cfg := filepath.Join(root, ProjectConfigFile)
	if err := os.WriteFile(cfg, []byte("workers: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	found, err := FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != cfg {
		t.Errorf("FindConfig = %q, want %q", found, cfg)
	}
	p, err = Resolve("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if p.Workers != 3 {
		t.Errorf("Workers = %d, want 3", p.Workers)
	}

	if _, err := LoadConfig(filepath.Join(root, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("LoadConfig(missing) error = %v", err)
	}
}

func TestExcludedAndExtensions(t *testing.T) {
	p := &Project{Extensions: []string{".rs"}, Exclude: []string{"target", "vendor"}}
	if !p.Excluded("target") || p.Excluded("src") {
		t.Errorf("Excluded mismatch")
	}
	if p.HasExtension("main.go") || !p.HasExtension(filepath.Join("src", "lib.rs")) {
		t.Errorf("HasExtension mismatch")
	}
}
