package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/google/subcommands"
)

type transactionsCmd struct {
	account string
	period  string
	start   string
	date    string
	head    int
	tail    int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions in the ledger" }
func (*transactionsCmd) Usage() string {
	return `bb transactions [-a <account>] [-p <period> | -s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting the output.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Only list transactions of this account.")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		// If no date range flags are provided, use the full range of the ledger.
		useFullRange := c.start == "" && c.date == "" && c.period == ""

		var r date.Range
		if !useFullRange {
			end, err := parseDay(c.date, a.store.Today())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
				return subcommands.ExitFailure
			}
			switch {
			case c.start != "":
				start, err := date.ParseRelative(c.start, a.store.Today())
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
					return subcommands.ExitFailure
				}
				r = date.Range{From: start, To: end}
			case c.period != "":
				period, err := date.ParsePeriod(c.period)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
					return subcommands.ExitFailure
				}
				r = date.NewRange(end, period)
			default:
				r = date.Range{To: end}
			}
		}

		var transactions []bussinbank.Transaction
		for _, tx := range a.store.Transactions() {
			if c.account != "" && tx.AccountID() != c.account {
				continue
			}
			if useFullRange || r.Contains(tx.Date()) {
				transactions = append(transactions, tx)
			}
		}

		if c.head > 0 && len(transactions) > c.head {
			transactions = transactions[:c.head]
		}
		if c.tail > 0 && len(transactions) > c.tail {
			transactions = transactions[len(transactions)-c.tail:]
		}

		printMarkdown(renderer.TransactionsMarkdown(transactions))
		return subcommands.ExitSuccess
	})
}
