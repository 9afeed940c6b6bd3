// Package mcpserver exposes the ledger tools to MCP clients.
package mcpserver

import (
	"context"
	"errors"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
)

// Name is the implementation name announced to clients.
const Name = "bussinbank"

// NoInput is the input of the tools without arguments.
type NoInput struct{}

// AmountOutput is the result of the tools returning an amount.
type AmountOutput struct {
	Text     string `json:"text" jsonschema:"the answer as a sentence"`
	Amount   string `json:"amount" jsonschema:"the decimal amount"`
	Currency string `json:"currency" jsonschema:"the ISO 4217 currency code"`
}

// RunwayOutput is the result of get_runway.
type RunwayOutput struct {
	Text     string `json:"text" jsonschema:"the answer as a sentence"`
	Days     int    `json:"days" jsonschema:"days of runway, 0 when infinite"`
	Infinite bool   `json:"infinite" jsonschema:"true when nothing is spent"`
}

// ProjectInput is the input of project_future_balance.
type ProjectInput struct {
	TargetDate   string  `json:"target_date" jsonschema:"the future date in the YYYY-MM-DD format"`
	ExtraSavings float64 `json:"extra_savings,omitempty" jsonschema:"additional amount saved every month"`
}

// ProjectOutput is the result of project_future_balance.
type ProjectOutput struct {
	Text         string `json:"text" jsonschema:"the answer as a sentence"`
	Date         string `json:"date" jsonschema:"the target date"`
	ExtraSavings string `json:"extra_savings" jsonschema:"the additional monthly savings"`
	Balance      string `json:"balance" jsonschema:"the projected liquid cash"`
}

// New returns an MCP server exposing the tools of tb.
func New(tb *tools.Toolbox, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)
	summary := make(map[string]string, len(tools.Descriptions))
	for _, d := range tools.Descriptions {
		summary[d.Name] = d.Summary
	}
	tool := func(name string) *mcp.Tool { return &mcp.Tool{Name: name, Description: summary[name]} }

	mcp.AddTool(server, tool(tools.GetNetWorth), amountHandler(tb.NetWorth, tools.FormatNetWorth))
	mcp.AddTool(server, tool(tools.GetMonthlyBurn), amountHandler(tb.MonthlyBurn, tools.FormatMonthlyBurn))
	mcp.AddTool(server, tool(tools.GetSpendingThisMonth), amountHandler(tb.SpendingThisMonth, tools.FormatSpendingThisMonth))
	mcp.AddTool(server, tool(tools.GetRunway), runwayHandler(tb))
	mcp.AddTool(server, tool(tools.ProjectFutureBalance), projectHandler(tb))
	return server
}

// Run serves tb over stdin and stdout until the client disconnects or ctx is done.
func Run(ctx context.Context, tb *tools.Toolbox, version string) error {
	return New(tb, version).Run(ctx, &mcp.StdioTransport{})
}

func text(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

func amountHandler(get func() bussinbank.Money, format func(bussinbank.Money) string) mcp.ToolHandlerFor[NoInput, AmountOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, AmountOutput, error) {
		m := get()
		out := AmountOutput{Text: format(m), Amount: m.Decimal().StringFixed(2), Currency: m.Currency()}
		return text(out.Text), out, nil
	}
}

func runwayHandler(tb *tools.Toolbox) mcp.ToolHandlerFor[NoInput, RunwayOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, RunwayOutput, error) {
		runway := tb.Runway()
		days, finite := runway.Value()
		out := RunwayOutput{Text: tools.FormatRunway(runway), Days: days, Infinite: !finite}
		return text(out.Text), out, nil
	}
}

func projectHandler(tb *tools.Toolbox) mcp.ToolHandlerFor[ProjectInput, ProjectOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProjectInput) (*mcp.CallToolResult, ProjectOutput, error) {
		p, err := tb.ProjectFutureBalance(in.TargetDate, decimal.NewFromFloat(in.ExtraSavings))
		if err != nil {
			return nil, ProjectOutput{}, errors.New(tools.FormatProjectionError(in.TargetDate, err))
		}
		out := ProjectOutput{
			Text:         tools.FormatProjection(p),
			Date:         p.Date.String(),
			ExtraSavings: p.ExtraSavings.Decimal().StringFixed(2),
			Balance:      p.Balance.Decimal().StringFixed(2),
		}
		return text(out.Text), out, nil
	}
}
