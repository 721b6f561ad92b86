package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/pipeline"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "lib.rs"), "")
	writeFile(t, filepath.Join(root, "src", "util", "mod.rs"), "")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "")
	writeFile(t, filepath.Join(root, "target", "gen.rs"), "")
	writeFile(t, filepath.Join(root, "build.txt"), "")

	project := config.DefaultProject()
	project.Exclude = []string{"target"}
	d := New(project)

	explicit := filepath.Join(root, "build.txt")
	got, err := d.Collect([]string{root, filepath.Join(root, "src", "lib.rs"), explicit})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []string{
		explicit,
		filepath.Join(root, "src", "lib.rs"),
		filepath.Join(root, "src", "util", "mod.rs"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}

	if _, err := d.Collect([]string{filepath.Join(root, "missing")}); err == nil {
		t.Errorf("expected an error for a missing path")
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for _, name := range []string{"a.rs", "b.rs", "c.rs", "d.rs"} {
		p := filepath.Join(root, name)
		writeFile(t, p, "#[into_generic]\nfn "+name[:1]+"(x: impl Copy) {}\n")
		paths = append(paths, p)
	}
	project := config.DefaultProject()
	project.Workers = 2
	d := New(project)

	results, err := d.Files(context.Background(), paths)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, res := range results {
		if res.FilePath != paths[i] {
			t.Errorf("results[%d] is %s, want %s", i, res.FilePath, paths[i])
		}
		name := filepath.Base(paths[i])[:1]
		want := "fn " + name + "<RewriteImplTrait0: Copy>(x: RewriteImplTrait0) {}\n"
		if res.Result() != want {
			t.Errorf("%s: got %q, want %q", paths[i], res.Result(), want)
		}
	}

	if _, err := d.Files(context.Background(), append(paths, filepath.Join(root, "missing.rs"))); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestSource(t *testing.T) {
	d := New(nil)
	if d.Project().Workers != config.DefaultWorkers {
		t.Errorf("New(nil) must use the default project")
	}
	res := d.Source("x.rs", "#[into_generic]\nenum E {}\n")
	if !diagnostics.HasErrors(res.Errors, diagnostics.ErrR001) {
		t.Errorf("expected R001, got %v", res.Errors)
	}
	parsed := d.Pipeline(false).Run(pipeline.NewPipelineContext("#[into_generic]\nenum E {}\n"))
	if parsed.AstRoot == nil || len(parsed.Errors) != 0 || len(parsed.Expansions) != 0 {
		t.Errorf("parse-only pipeline must parse without expanding, got %v", parsed.Errors)
	}
}
