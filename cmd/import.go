package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sam-oo1/bussinBank"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import accounts, goals and transactions from a YAML seed" }
func (*importCmd) Usage() string {
	return `bb import <seed.yaml>

  Opens the seed accounts, sets its goals and records its transactions. The
  import stops at the first invalid entry, what came before is kept.

  See 'bb topic import' for the seed format.
`
}

func (*importCmd) SetFlags(f *flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one seed file.")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening seed: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	seed, err := bussinbank.DecodeSeed(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		sum, err := a.store.Import(ctx, seed)
		fmt.Fprintf(stdout, "Imported %d accounts, %d goals and %d transactions.\n", sum.Accounts, sum.Goals, sum.Transactions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
