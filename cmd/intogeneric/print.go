package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/funvibe/intogeneric/internal/pipeline"
	"github.com/funvibe/intogeneric/internal/prettyprinter"
)

type printCommand struct {
	commandInfo
	projectFlags

	expanded bool
}

func newPrintCommand() subcommands.Command {
	return &printCommand{
		commandInfo: newCommandInfo("print", "pretty-print the items of a source file",
			"[-expanded] [-config path] <file>"),
	}
}

// SetFlags implements the subcommands interface and provides command-specific flags
// for the print command.
func (c *printCommand) SetFlags(fs *flag.FlagSet) {
	c.projectFlags.register(fs)
	fs.BoolVar(&c.expanded, "expanded", false, "Print the items after annotated items are rewritten")
}

// Execute implements the subcommands interface and prints the requested file.
func (c *printCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		return c.UsageError("expected exactly one file")
	}
	d, renderer, err := c.load()
	if err != nil {
		return c.UsageError("%v", err)
	}
	res, err := d.File(fs.Arg(0))
	if err != nil {
		return c.Fail("%v", err)
	}
	if report(renderer, []*pipeline.PipelineContext{res}) {
		return subcommands.ExitFailure
	}

	if c.expanded {
		// Parse the expanded text again so the printout reflects it exactly.
		reparsed := pipeline.NewPipelineContext(res.Result())
		reparsed.FilePath = res.FilePath
		res = d.Pipeline(false).Run(reparsed)
		if report(renderer, []*pipeline.PipelineContext{res}) {
			return subcommands.ExitFailure
		}
	}
	fmt.Print(prettyprinter.Print(res.AstRoot))
	return subcommands.ExitSuccess
}
