package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/Sam-oo1/bussinBank/tools"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type projectCmd struct {
	date     string
	extra    string
	expenses stringList
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project liquid cash on a future date" }
func (*projectCmd) Usage() string {
	return `bb project -d <date> [-extra <amount>] [-expense <date>:<amount>]...

  Projects liquid cash on a future date, extrapolating the average daily net
  flow of the last 90 days. -extra adds monthly savings on top, and every
  -expense subtracts a known one time expense due before the date.

  Dates accept relative forms like +6m.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "+1y", "Date to project to.")
	f.StringVar(&c.extra, "extra", "0", "Extra savings per month.")
	f.Var(&c.expenses, "expense", "One time expense as <date>:<amount>. Can be repeated.")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	extra, err := decimal.NewFromString(c.extra)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing extra savings: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		today := a.store.Today()
		target, err := date.ParseRelative(c.date, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitFailure
		}
		if !target.After(today) {
			fmt.Fprintf(os.Stderr, "Error: %s is today or in the past.\n", target)
			return subcommands.ExitFailure
		}
		var oneTime []forecast.OneTimeExpense
		for _, e := range c.expenses {
			on, amount, ok := strings.Cut(e, ":")
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: expense %q is not <date>:<amount>.\n", e)
				return subcommands.ExitUsageError
			}
			d, err := date.ParseRelative(on, today)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing expense date: %v\n", err)
				return subcommands.ExitFailure
			}
			m, err := bussinbank.ParseMoney(amount, a.store.Currency())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing expense amount: %v\n", err)
				return subcommands.ExitFailure
			}
			oneTime = append(oneTime, forecast.OneTimeExpense{Date: d, Amount: m.Abs()})
		}

		balance := forecast.New(a.store).ProjectBalance(target, extra, oneTime...)
		fmt.Fprintln(stdout, tools.FormatProjection(tools.Projection{
			Date:         target,
			ExtraSavings: bussinbank.M(extra, balance.Currency()),
			Balance:      balance,
		}))
		return subcommands.ExitSuccess
	})
}

type monthsUntilCmd struct {
	target string
}

func (*monthsUntilCmd) Name() string     { return "months-until" }
func (*monthsUntilCmd) Synopsis() string { return "estimate when net worth reaches an amount" }
func (*monthsUntilCmd) Usage() string {
	return `bb months-until -target <amount>
`
}

func (c *monthsUntilCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.target, "target", "", "Net worth to reach.")
}

func (c *monthsUntilCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.target == "" {
		fmt.Fprintln(os.Stderr, "Error: -target is required.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		target, err := bussinbank.ParseMoney(c.target, a.store.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing target: %v\n", err)
			return subcommands.ExitFailure
		}
		months, ok := forecast.New(a.store).MonthsUntilGoal(target).Value()
		if !ok {
			fmt.Fprintf(stdout, "Net worth never reaches %s at the current pace.\n", target)
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(stdout, "Net worth reaches %s in %d months.\n", target, months)
		return subcommands.ExitSuccess
	})
}

type retireCmd struct {
	expenses string
	rate     string
}

func (*retireCmd) Name() string     { return "retire" }
func (*retireCmd) Synopsis() string { return "estimate when you can retire" }
func (*retireCmd) Usage() string {
	return `bb retire -expenses <annual amount> [-rate <rate>]

  Computes the nest egg that sustains the annual expenses at the safe
  withdrawal rate, and when net worth reaches it.
`
}

func (c *retireCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.expenses, "expenses", "", "Annual expenses in retirement.")
	f.StringVar(&c.rate, "rate", forecast.DefaultSafeWithdrawalRate.String(), "Safe withdrawal rate.")
}

func (c *retireCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.expenses == "" {
		fmt.Fprintln(os.Stderr, "Error: -expenses is required.")
		return subcommands.ExitUsageError
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing rate: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		annual, err := bussinbank.ParseMoney(c.expenses, a.store.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing expenses: %v\n", err)
			return subcommands.ExitFailure
		}
		r, err := forecast.New(a.store).WhenCanIRetire(annual, rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Nest egg: %s\nMonths: %s\nDate: %s\n", r.NestEgg, r.Months.Format("never"), r.Date.Format("never"))
		return subcommands.ExitSuccess
	})
}

type forecastCmd struct {
	months int
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "forecast liquid cash month by month" }
func (*forecastCmd) Usage() string {
	return `bb forecast [-months <n>]
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", forecast.DefaultMonthsAhead, "Number of months to forecast.")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.months < 0 || c.months > forecast.MaxMonthsAhead {
		fmt.Fprintf(os.Stderr, "Error: -months must be between 0 and %d.\n", forecast.MaxMonthsAhead)
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.ForecastMarkdown(forecast.New(a.store).ForecastMonthlyBalances(c.months)))
		return subcommands.ExitSuccess
	})
}
