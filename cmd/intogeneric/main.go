// Binary intogeneric rewrites parameter-position `impl Trait` types in
// annotated functions, traits and impl blocks into explicit generic
// parameters.
//
// Examples:
//
//	# Print the rewritten source of one file.
//	intogeneric rewrite src/lib.rs
//
//	# Rewrite every .rs file under src/ in place.
//	intogeneric rewrite -w src/
//
//	# Report what would change without writing anything.
//	intogeneric check src/
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"
)

func init() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newRewriteCommand(), "")
	subcommands.Register(newCheckCommand(), "")
	subcommands.Register(newPrintCommand(), "")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("intogeneric: ")
	flag.Parse()
	ctx := context.Background()

	os.Exit(int(subcommands.Execute(ctx)))
}
