package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Sam-oo1/bussinBank"
	"github.com/google/subcommands"
)

type addCmd struct {
	account     string
	amount      string
	kind        string
	category    string
	merchant    string
	description string
	notes       string
	tags        string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction" }
func (*addCmd) Usage() string {
	return `bb add -a <account> -amount <amount> [-type <type>] [-c <category>] [-m <merchant>] [-desc <text>] [-d <date>] [-tags <a,b>] [-notes <text>]

  Records a transaction and updates the account balance.

  The amount is signed: positive money comes in, negative money goes out.
  The date defaults to today, and accepts relative dates like -1d.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account id.")
	f.StringVar(&c.amount, "amount", "", "Signed amount.")
	f.StringVar(&c.kind, "type", "", "Transaction type: income, expense, transfer, refund or adjustment. Defaults from the amount sign.")
	f.StringVar(&c.category, "c", "", "Category, like food:groceries.")
	f.StringVar(&c.merchant, "m", "", "Merchant.")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.StringVar(&c.notes, "notes", "", "Free notes.")
	f.StringVar(&c.tags, "tags", "", "Comma separated tags.")
	f.StringVar(&c.date, "d", "", "Transaction date. Defaults to today.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -a and -amount are required.")
		return subcommands.ExitUsageError
	}
	kind := c.kind
	if kind == "" {
		kind = string(bussinbank.Income)
		if strings.HasPrefix(strings.TrimSpace(c.amount), "-") {
			kind = string(bussinbank.Expense)
		}
	}
	var tags []string
	for _, tag := range strings.Split(c.tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		on, err := parseDay(c.date, a.store.Today())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitFailure
		}
		tx, err := a.store.AddTransaction(ctx, bussinbank.RawTransaction{
			Date:        on.String(),
			Amount:      json.Number(strings.TrimSpace(c.amount)),
			Description: c.description,
			Merchant:    c.merchant,
			Category:    c.category,
			AccountID:   c.account,
			Type:        kind,
			Tags:        tags,
			Notes:       c.notes,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Recorded %s %s on %s in %s (%s)\n", tx.Type(), tx.Amount().SignedString(), tx.Date(), tx.AccountID(), tx.ID())
		return subcommands.ExitSuccess
	})
}
