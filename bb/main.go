// Command bb is the BussinBank command line: a personal ledger with net
// worth, runway and cash flow forecasts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Sam-oo1/bussinBank/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	// Exits when invoked by the shell to complete a command line.
	cmd.Completion(flag.CommandLine).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
