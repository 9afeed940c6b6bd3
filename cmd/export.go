package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sam-oo1/bussinBank/export"
	"github.com/google/subcommands"
)

type exportSQLiteCmd struct{}

func (*exportSQLiteCmd) Name() string     { return "export-sqlite" }
func (*exportSQLiteCmd) Synopsis() string { return "export the ledger to a SQLite database" }
func (*exportSQLiteCmd) Usage() string {
	return `bb export-sqlite <file.db>

  Writes accounts, goals and transactions into a new SQLite database, for ad
  hoc SQL analysis. The file must not exist.
`
}

func (*exportSQLiteCmd) SetFlags(f *flag.FlagSet) {}

func (*exportSQLiteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one database file.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		if err := export.ToSQLite(ctx, f.Arg(0), a.store.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Exported to %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	})
}
