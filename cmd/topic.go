package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Sam-oo1/bussinBank/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded guides: the ledger, importing, metrics and
// forecasting.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the guides on accounts, imports, metrics and forecasts" }
func (*topicCmd) Usage() string {
	return `bb topic [-list] [<topic>...]

  Prints the guide for each topic, e.g. "bb topic forecast metrics".
  Without a topic it prints the overview, with '*' every guide.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the topic names.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	available, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		for _, name := range available {
			fmt.Fprintln(stdout, name)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{docs.Readme}
	}
	guide, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nAvailable topics: %s\n", err, strings.Join(available, ", "))
		return subcommands.ExitFailure
	}
	printMarkdown(guide)
	return subcommands.ExitSuccess
}
