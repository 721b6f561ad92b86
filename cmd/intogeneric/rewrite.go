package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/funvibe/intogeneric/internal/difftext"
)

type rewriteCommand struct {
	commandInfo
	projectFlags

	write bool
	diff  bool
}

func newRewriteCommand() subcommands.Command {
	return &rewriteCommand{
		commandInfo: newCommandInfo("rewrite", "rewrite annotated items and print or write the result",
			"[-w | -d] [-j N] [-config path] <file-or-dir>..."),
	}
}

// SetFlags implements the subcommands interface and provides command-specific flags
// for the rewrite command.
func (c *rewriteCommand) SetFlags(fs *flag.FlagSet) {
	c.projectFlags.register(fs)
	fs.BoolVar(&c.write, "w", false, "Write the result back to each source file instead of stdout")
	fs.BoolVar(&c.diff, "d", false, "Print a unified diff instead of the rewritten source")
}

// Execute implements the subcommands interface and rewrites the requested files.
func (c *rewriteCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if fs.NArg() == 0 {
		return c.UsageError("no input files")
	}
	if c.write && c.diff {
		return c.UsageError("-w and -d are mutually exclusive")
	}
	d, renderer, err := c.load()
	if err != nil {
		return c.UsageError("%v", err)
	}
	files, err := d.Collect(fs.Args())
	if err != nil {
		return c.Fail("%v", err)
	}
	results, err := d.Files(ctx, files)
	if err != nil {
		return c.Fail("%v", err)
	}

	failed := report(renderer, results)
	for _, res := range results {
		switch {
		case c.write:
			if len(res.Errors) > 0 || !res.Changed() {
				continue
			}
			info, err := os.Stat(res.FilePath)
			if err != nil {
				return c.Fail("%v", err)
			}
			if err := os.WriteFile(res.FilePath, []byte(res.Output), info.Mode().Perm()); err != nil {
				return c.Fail("writing %s: %v", res.FilePath, err)
			}
		case c.diff:
			fmt.Print(difftext.Unified(res.FilePath, res.FilePath, res.SourceCode, res.Result()))
		default:
			fmt.Print(res.Result())
		}
	}
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
