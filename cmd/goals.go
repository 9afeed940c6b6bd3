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

type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list financial goals" }
func (*goalsCmd) Usage() string {
	return `bb goals
`
}

func (*goalsCmd) SetFlags(f *flag.FlagSet) {}

func (*goalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		printMarkdown(renderer.GoalsMarkdown(a.store.Goals()))
		return subcommands.ExitSuccess
	})
}

type goalCmd struct {
	id          string
	name        string
	description string
	target      string
	current     string
	date        string
	priority    string
	status      string
	monthly     string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "create or update a financial goal" }
func (*goalCmd) Usage() string {
	return `bb goal -name <name> -target <amount> [-id <id>] [-current <amount>] [-d <date>] [-priority <priority>] [-status <status>] [-monthly <amount>]

  Sets a goal. Without -id a new goal is created, with the id of an existing
  goal it is replaced.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Goal id. Generated when empty.")
	f.StringVar(&c.name, "name", "", "Goal name.")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.StringVar(&c.target, "target", "", "Target amount.")
	f.StringVar(&c.current, "current", "", "Amount already saved.")
	f.StringVar(&c.date, "d", "", "Target date, accepts relative dates like +6m.")
	f.StringVar(&c.priority, "priority", "", "Priority: low, medium, high or critical.")
	f.StringVar(&c.status, "status", "", "Status: active, on_track, behind, completed or paused.")
	f.StringVar(&c.monthly, "monthly", "", "Planned monthly contribution.")
}

func (c *goalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.target == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -target are required.")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		in := bussinbank.GoalInput{
			ID:                  c.id,
			Name:                c.name,
			Description:         c.description,
			TargetAmount:        json.Number(c.target),
			CurrentAmount:       json.Number(c.current),
			Priority:            c.priority,
			Status:              c.status,
			MonthlyContribution: json.Number(c.monthly),
		}
		if c.date != "" {
			on, err := parseDay(c.date, a.store.Today())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
				return subcommands.ExitFailure
			}
			in.TargetDate = on.String()
		}
		g, err := a.store.SetGoal(ctx, in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting goal: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Goal %q (%s): %s of %s\n", g.Name, g.ID, g.CurrentAmount, g.TargetAmount)
		return subcommands.ExitSuccess
	})
}
