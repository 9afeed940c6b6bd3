// Package cmd implements the bb command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/config"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/events"
	"github.com/Sam-oo1/bussinBank/logger"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile = flag.String("ledger", "", "Path to the ledger file. Overrides BUSSINBANK_LEDGER.")
	plain      = flag.Bool("plain", false, "Print markdown as is, without rendering it for the terminal.")

	stdout io.Writer = os.Stdout
)

// Commands lists every subcommand by group.
var Commands = map[string][]subcommands.Command{
	"ledger": {
		&statusCmd{},
		&accountsCmd{},
		&accountCmd{},
		&addCmd{},
		&transactionsCmd{},
		&spendingCmd{},
		&goalCmd{},
		&goalsCmd{},
	},
	"forecast": {
		&projectCmd{},
		&monthsUntilCmd{},
		&retireCmd{},
		&forecastCmd{},
	},
	"data": {
		&queryCmd{},
		&importCmd{},
		&exportSQLiteCmd{},
		&snapshotCmd{},
		&backupCmd{},
	},
	"services": {
		&serveCmd{},
		&mcpCmd{},
		&assistCmd{},
	},
	"help": {
		&topicCmd{},
	},
}

// groups lists the Commands groups in help order.
var groups = []string{"ledger", "forecast", "data", "services", "help"}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, group := range groups {
		for _, cmd := range Commands[group] {
			c.Register(cmd, group)
		}
	}
}

// loadConfig loads the configuration, the -ledger flag wins over the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerPath = *ledgerFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// app is what a command needs to work on the ledger.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *bussinbank.Store
	close func()
}

// openApp loads the configuration and opens the ledger store. Transactions
// are published to Kafka when brokers are configured.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var recorder bussinbank.TransactionRecorder = events.Nop{}
	closeRecorder := func() {}
	if len(cfg.KafkaBrokers) > 0 {
		k := events.NewKafkaRecorder(cfg.KafkaBrokers, cfg.KafkaTopic)
		recorder = k
		closeRecorder = func() {
			if err := k.Close(); err != nil {
				log.Warn().Err(err).Msg("could not close the kafka writer")
			}
		}
	}

	store, err := bussinbank.OpenFile(cfg.LedgerPath,
		bussinbank.WithClock(cfg.Clock()),
		bussinbank.WithLogger(log),
		bussinbank.WithRecorder(recorder),
	)
	if err != nil {
		closeRecorder()
		return nil, fmt.Errorf("could not open ledger %q: %w", cfg.LedgerPath, err)
	}
	return &app{cfg: cfg, log: log, store: store, close: closeRecorder}, nil
}

// withApp runs fn on the opened app, reporting failures the usual way.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()
	return fn(logger.WithContext(ctx, a.log), a)
}

// parseDay parses a date flag relative to today.
func parseDay(s string, today date.Date) (date.Date, error) {
	if s == "" {
		return today, nil
	}
	return date.ParseRelative(s, today)
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
