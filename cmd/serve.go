package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Sam-oo1/bussinBank/agent"
	"github.com/Sam-oo1/bussinBank/api"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/Sam-oo1/bussinBank/mcpserver"
	"github.com/Sam-oo1/bussinBank/tools"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// Version is reported by the MCP server.
var Version = "dev"

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over HTTP" }
func (*serveCmd) Usage() string {
	return `bb serve [-addr <address>]

  Serves the JSON API and the HTML report of the ledger until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides BUSSINBANK_HTTP_ADDR.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		addr := a.cfg.HTTPAddr
		if c.addr != "" {
			addr = c.addr
		}
		server := &http.Server{
			Addr:         addr,
			Handler:      api.NewServer(a.store, a.log).Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			a.log.Info().Str("addr", addr).Msg("starting API server")
			errc <- server.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				a.log.Error().Err(err).Msg("server failed")
				return subcommands.ExitFailure
			}
			return subcommands.ExitSuccess
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.log.Error().Err(err).Msg("server forced to shutdown")
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type mcpCmd struct{}

func (*mcpCmd) Name() string     { return "mcp" }
func (*mcpCmd) Synopsis() string { return "serve the assistant tools over MCP on stdio" }
func (*mcpCmd) Usage() string {
	return `bb mcp

  Runs a Model Context Protocol server on stdin and stdout exposing
  get_net_worth, get_runway, get_monthly_burn, get_spending_this_month and
  project_future_balance.
`
}

func (*mcpCmd) SetFlags(f *flag.FlagSet) {}

func (*mcpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		tb := tools.New(a.store, forecast.New(a.store))
		if err := mcpserver.Run(ctx, tb, Version); err != nil {
			a.log.Error().Err(err).Msg("mcp server failed")
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI accountant" }
func (*assistCmd) Usage() string {
	return `bb assist [question...]

  Starts a chat with an assistant that answers with the ledger figures. The
  Gemini client is configured from GOOGLE_API_KEY or the Vertex AI environment.
`
}

func (*assistCmd) SetFlags(f *flag.FlagSet) {}

func (*assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	return withApp(ctx, func(ctx context.Context, a *app) subcommands.ExitStatus {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}

		tb := tools.New(a.store, forecast.New(a.store))
		assistant := agent.New(os.Stdout, os.Stdin, agent.NewAccountant(tb, a.cfg.Model))
		if err := assistant.Run(ctx, client, prompts...); err != nil {
			fmt.Fprintln(os.Stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
