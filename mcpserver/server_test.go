package mcpserver

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/Sam-oo1/bussinBank/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

// connect serves a ledger holding 6000, that earned 3000 and spent 1200 this
// month, and returns a client session on it.
func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	s, err := bussinbank.OpenFile(filepath.Join(t.TempDir(), "ledger.json"), bussinbank.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	if _, err := s.OpenAccount(ctx, bussinbank.AccountInput{ID: "chase", Name: "Chase", Type: "checking", OpeningBalance: "4200"}); err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	for _, raw := range []bussinbank.RawTransaction{
		{Date: "2025-06-01", Amount: "3000", AccountID: "chase", Type: "income"},
		{Date: "2025-06-02", Amount: "-1200", AccountID: "chase", Type: "expense", Category: "rent"},
	} {
		if _, err := s.AddTransaction(ctx, raw); err != nil {
			t.Fatalf("AddTransaction() failed: %v", err)
		}
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := New(tools.New(s, forecast.New(s)), "test").Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestListTools(t *testing.T) {
	session := connect(t)
	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() failed: %v", err)
	}
	var got []string
	for _, tool := range res.Tools {
		got = append(got, tool.Name)
	}
	slices.Sort(got)
	want := []string{tools.GetMonthlyBurn, tools.GetNetWorth, tools.GetRunway, tools.GetSpendingThisMonth, tools.ProjectFutureBalance}
	if !slices.Equal(got, want) {
		t.Errorf("ListTools() = %v, want %v", got, want)
	}
}

func TestCallTool(t *testing.T) {
	session := connect(t)
	testCases := []struct {
		name      string
		args      map[string]any
		want      string
		wantError bool
	}{
		{name: tools.GetNetWorth, want: "Your current net worth is $6,000.00"},
		{name: tools.GetRunway, want: "You have 150 days of runway at current burn rate."},
		{name: tools.GetMonthlyBurn, want: "You burn $1,200.00 per month on average."},
		{name: tools.GetSpendingThisMonth, want: "You've spent $1,200.00 so far this month."},
		{name: tools.ProjectFutureBalance, args: map[string]any{"target_date": "2025-07-15", "extra_savings": 304.375}, want: "On 2025-07-15, you'll have ≈ $33,300.00 in liquid cash (+$304.38/mo saved)"},
		{name: tools.ProjectFutureBalance, args: map[string]any{"target_date": "2025-01-01"}, want: "2025-01-01 is today or in the past. Ask for a future date like 2026-12-31.", wantError: true},
		{name: tools.ProjectFutureBalance, args: map[string]any{"target_date": "soon"}, want: "Please use a valid date format: YYYY-MM-DD", wantError: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := tc.args
			if args == nil {
				args = map[string]any{}
			}
			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: tc.name, Arguments: args})
			if err != nil {
				t.Fatalf("CallTool() failed: %v", err)
			}
			if res.IsError != tc.wantError {
				t.Errorf("IsError = %v, want %v", res.IsError, tc.wantError)
			}
			if len(res.Content) != 1 {
				t.Fatalf("len(Content) = %d, want 1", len(res.Content))
			}
			text, ok := res.Content[0].(*mcp.TextContent)
			if !ok {
				t.Fatalf("Content[0] is a %T, want text", res.Content[0])
			}
			if text.Text != tc.want {
				t.Errorf("CallTool() = %q, want %q", text.Text, tc.want)
			}
		})
	}
}

func TestCallTool_Structured(t *testing.T) {
	session := connect(t)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: tools.GetRunway, Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("CallTool() failed: %v", err)
	}
	got, ok := res.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("StructuredContent is a %T, want an object", res.StructuredContent)
	}
	if got["days"] != 150.0 || got["infinite"] != false {
		t.Errorf("StructuredContent = %v, want 150 finite days", got)
	}
}
