package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `bb accounts
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.AccountsMarkdown(a.store.Accounts()))
		return subcommands.ExitSuccess
	})
}

type accountCmd struct {
	id          string
	name        string
	kind        string
	balance     string
	currency    string
	institution string
	creditLimit string
	exclude     bool
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "open a new account" }
func (*accountCmd) Usage() string {
	return `bb account -id <id> -name <name> -type <type> [-balance <amount>] [-currency <code>] [-institution <name>] [-credit-limit <amount>] [-exclude]

  Opens an account. Its balance starts at the opening balance and then follows
  every transaction recorded against it.

  Types are checking, savings, credit_card, investment, crypto, loan and other.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id, used to record transactions.")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.kind, "type", string(bussinbank.Checking), "Account type.")
	f.StringVar(&c.balance, "balance", "", "Opening balance.")
	f.StringVar(&c.currency, "currency", bussinbank.DefaultCurrency, "Currency code, shared by every account of the ledger.")
	f.StringVar(&c.institution, "institution", "", "Bank or provider name.")
	f.StringVar(&c.creditLimit, "credit-limit", "", "Credit limit, for credit cards.")
	f.BoolVar(&c.exclude, "exclude", false, "Exclude the account from the net worth.")
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -name are required.")
		return subcommands.ExitUsageError
	}
	in := bussinbank.AccountInput{
		ID:             c.id,
		Name:           c.name,
		Type:           c.kind,
		OpeningBalance: json.Number(c.balance),
		Currency:       c.currency,
		Institution:    c.institution,
		CreditLimit:    json.Number(c.creditLimit),
	}
	if c.exclude {
		include := false
		in.IncludeInNetWorth = &include
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		acc, err := a.store.OpenAccount(ctx, in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening account: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Opened %s (%s) with %s\n", acc.ID, acc.Type, acc.Balance)
		return subcommands.ExitSuccess
	})
}
