package cmd

import (
	"context"
	"flag"

	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/google/subcommands"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "show net worth, runway, spending and goals" }
func (*statusCmd) Usage() string {
	return `bb status

  Displays the financial overview of the ledger today: net worth, liquid cash,
  burn rate, runway, emergency fund, accounts, spending this month and goals.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (*statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.RenderStatus(renderer.NewStatus(a.store)))
		return subcommands.ExitSuccess
	})
}
