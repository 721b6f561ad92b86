// Package driver runs the lex, parse and expand pipeline over source files.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/expand"
	"github.com/funvibe/intogeneric/internal/lexer"
	"github.com/funvibe/intogeneric/internal/parser"
	"github.com/funvibe/intogeneric/internal/pipeline"
)

// Driver holds the settings shared by every file of one run. It is safe for
// concurrent use.
type Driver struct {
	project  *config.Project
	expander *expand.Expander
}

func New(project *config.Project) *Driver {
	if project == nil {
		project = config.DefaultProject()
	}
	return &Driver{project: project, expander: expand.New(project.Attributes...)}
}

// Project returns the settings the driver was built with.
func (d *Driver) Project() *config.Project { return d.project }

// Pipeline returns the stages run over each file. With expansion disabled
// the file is only lexed and parsed.
func (d *Driver) Pipeline(withExpansion bool) *pipeline.Pipeline {
	if !withExpansion {
		return pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	}
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&expand.ExpandProcessor{Expander: d.expander},
	)
}

// Source runs the full pipeline over one in-memory file.
func (d *Driver) Source(path, src string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = path
	return d.Pipeline(true).Run(ctx)
}

// File reads path and runs the full pipeline over it.
func (d *Driver) File(path string) (*pipeline.PipelineContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return d.Source(path, string(data)), nil
}

// Files processes paths concurrently, at most project.Workers at a time.
// Results are returned in the order of paths. The first I/O error cancels
// the remaining work.
func (d *Driver) Files(ctx context.Context, paths []string) ([]*pipeline.PipelineContext, error) {
	results := make([]*pipeline.PipelineContext, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.project.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := d.File(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Collect expands the command-line arguments into the list of files to
// process. Files named explicitly are always kept; directories are walked
// for files with a configured extension, skipping excluded names. The
// result is sorted and free of duplicates.
func (d *Driver) Collect(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != arg && d.project.Excluded(entry.Name()) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && d.project.HasExtension(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
