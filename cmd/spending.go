package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/google/subcommands"
)

type spendingCmd struct {
	month string
}

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "show spending by category for a month" }
func (*spendingCmd) Usage() string {
	return `bb spending [-month <YYYY-MM>]

  Sums the outflows of a month by top level category, sorted by name.
  The month defaults to the current one.
`
}

func (c *spendingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to report on, as YYYY-MM.")
}

func (c *spendingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var month date.Date
	if c.month != "" {
		t, err := time.Parse("2006-01", c.month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
			return subcommands.ExitUsageError
		}
		month = date.FromTime(t)
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		label := month
		if label.IsZero() {
			label = a.store.Today()
		}
		printMarkdown(renderer.SpendingMarkdown(label.Format("January 2006"), a.store.MonthlySpendingByCategory(month)))
		return subcommands.ExitSuccess
	})
}
