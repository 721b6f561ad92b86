package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/funvibe/intogeneric/internal/ast"
	"github.com/funvibe/intogeneric/internal/config"
	"github.com/funvibe/intogeneric/internal/diagnostics"
	"github.com/funvibe/intogeneric/internal/driver"
	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/prettyprinter"
)

// commandInfo supplies the name, synopsis and usage of a subcommand and
// its error exits.
type commandInfo struct {
	name, synopsis, args string
}

func newCommandInfo(name, synopsis, args string) commandInfo {
	return commandInfo{name: name, synopsis: synopsis, args: args}
}

func (c commandInfo) Name() string     { return c.name }
func (c commandInfo) Synopsis() string { return c.synopsis }
func (c commandInfo) Usage() string {
	return fmt.Sprintf("%s %s\n\n%s.\n\nOptions:\n", c.name, c.args, c.synopsis)
}

// Fail logs msg and returns subcommands.ExitFailure.
func (c commandInfo) Fail(msg string, args ...any) subcommands.ExitStatus {
	log.Printf("%s: ERROR: %s", c.name, fmt.Sprintf(msg, args...))
	return subcommands.ExitFailure
}

// UsageError logs msg and returns subcommands.ExitUsageError.
func (c commandInfo) UsageError(msg string, args ...any) subcommands.ExitStatus {
	log.Printf("%s: ERROR: %s", c.name, fmt.Sprintf(msg, args...))
	return subcommands.ExitUsageError
}

func warnf(msg string, args ...any) {
	log.Printf("WARNING: "+msg, args...)
}

// projectFlags are the settings every command accepts.
type projectFlags struct {
	configPath string
	color      string
	workers    int
}

func (f *projectFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path of the project config file (default: "+config.ProjectConfigFile+" found upward from the working directory)")
	fs.StringVar(&f.color, "color", "", "Colour diagnostics: auto, always or never (default: from config, else auto)")
	fs.IntVar(&f.workers, "j", 0, "Maximum number of files processed concurrently (default: from config)")
}

// load resolves the project config and applies flag overrides.
func (f *projectFlags) load() (*driver.Driver, *diagnostics.Renderer, error) {
	project, err := config.Resolve(f.configPath, ".")
	if err != nil {
		return nil, nil, err
	}
	if f.workers < 0 {
		return nil, nil, fmt.Errorf("-j must not be negative, got %d", f.workers)
	}
	if f.workers > 0 {
		project.Workers = f.workers
	}
	if f.color != "" {
		project.Color = f.color
	}
	mode, err := diagnostics.ParseColorMode(project.Color)
	if err != nil {
		return nil, nil, err
	}
	return driver.New(project), diagnostics.NewRenderer(os.Stderr, mode), nil
}

// report renders the diagnostics of every result and tells whether any
// were found.
func report(r *diagnostics.Renderer, results []*pipeline.PipelineContext) bool {
	failed := false
	for _, res := range results {
		if diagnostics.HasErrors(res.Errors) {
			failed = true
			r.RenderAll(res.Errors, res.SourceCode)
		}
	}
	return failed
}

// describeItem names an item the way a reader would look for it.
func describeItem(item ast.Item) string {
	switch it := item.(type) {
	case *ast.FnItem:
		return "fn " + it.Sig.Name.Value
	case *ast.TraitItem:
		return "trait " + it.Name.Value
	case *ast.ImplItem:
		if it.Trait != nil {
			return "impl " + prettyprinter.Print(it.Trait) + " for " + prettyprinter.Print(it.SelfType)
		}
		return "impl " + prettyprinter.Print(it.SelfType)
	case *ast.ModItem:
		return "mod " + it.Name.Value
	case *ast.VerbatimItem:
		if it.Name != "" {
			return it.Kind + " " + it.Name
		}
		return it.Kind
	}
	return "item"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func writeExpansions(w io.Writer, res *pipeline.PipelineContext) {
	for _, exp := range res.Expansions {
		tok := exp.Original.GetToken()
		loc := fmt.Sprintf("%s:%d:%d", res.FilePath, tok.Line, tok.Column)
		switch {
		case exp.Failed:
			fmt.Fprintf(w, "%s: %s: rejected\n", loc, describeItem(exp.Original))
		case exp.Params == 0:
			fmt.Fprintf(w, "%s: %s: nothing to rewrite\n", loc, describeItem(exp.Original))
		default:
			fmt.Fprintf(w, "%s: %s: %s rewritten in %s\n", loc, describeItem(exp.Original),
				plural(exp.Params, "parameter"), plural(exp.Signatures, "signature"))
		}
	}
}
