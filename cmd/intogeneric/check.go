package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

type checkCommand struct {
	commandInfo
	projectFlags

	quiet bool
}

func newCheckCommand() subcommands.Command {
	return &checkCommand{
		commandInfo: newCommandInfo("check", "report annotated items and diagnostics without writing",
			"[-q] [-config path] <file-or-dir>..."),
	}
}

// SetFlags implements the subcommands interface and provides command-specific flags
// for the check command.
func (c *checkCommand) SetFlags(fs *flag.FlagSet) {
	c.projectFlags.register(fs)
	fs.BoolVar(&c.quiet, "q", false, "Only print diagnostics")
}

// Execute implements the subcommands interface and checks the requested files.
func (c *checkCommand) Execute(ctx context.Context, fs *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if fs.NArg() == 0 {
		return c.UsageError("no input files")
	}
	d, renderer, err := c.load()
	if err != nil {
		return c.UsageError("%v", err)
	}
	files, err := d.Collect(fs.Args())
	if err != nil {
		return c.Fail("%v", err)
	}
	if len(files) == 0 {
		warnf("no source files found")
	}
	results, err := d.Files(ctx, files)
	if err != nil {
		return c.Fail("%v", err)
	}

	if !c.quiet {
		for _, res := range results {
			writeExpansions(os.Stdout, res)
		}
	}
	if report(renderer, results) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
