package tools

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)

// newToolbox returns a toolbox on a ledger holding 6000 in cash, that spent
// 1200 this month and earned 3000, hence an average daily net flow of 900.
func newToolbox(t *testing.T, withHistory bool) *Toolbox {
	t.Helper()
	s, err := bussinbank.OpenFile(filepath.Join(t.TempDir(), "ledger.json"), bussinbank.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	ctx := context.Background()
	if _, err := s.OpenAccount(ctx, bussinbank.AccountInput{ID: "chase", Name: "Chase", Type: "checking", OpeningBalance: "4200"}); err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	if withHistory {
		for _, raw := range []bussinbank.RawTransaction{
			{Date: "2025-06-01", Amount: "3000", AccountID: "chase", Type: "income"},
			{Date: "2025-06-02", Amount: "-1200", AccountID: "chase", Type: "expense", Category: "rent"},
		} {
			if _, err := s.AddTransaction(ctx, raw); err != nil {
				t.Fatalf("AddTransaction() failed: %v", err)
			}
		}
	}
	return New(s, forecast.New(s))
}

func TestToolbox_Run(t *testing.T) {
	tb := newToolbox(t, true)
	testCases := []struct {
		name string
		args map[string]any
		want string
	}{
		{GetNetWorth, nil, "Your current net worth is $6,000.00"},
		{GetRunway, nil, "You have 150 days of runway at current burn rate."},
		{GetMonthlyBurn, nil, "You burn $1,200.00 per month on average."},
		{GetSpendingThisMonth, nil, "You've spent $1,200.00 so far this month."},
		{ProjectFutureBalance, map[string]any{"target_date": "2025-07-15"}, "On 2025-07-15, you'll have ≈ $33,000.00 in liquid cash (+$0.00/mo saved)"},
		{ProjectFutureBalance, map[string]any{"target_date": " 2025-07-15 ", "extra_savings": 304.375}, "On 2025-07-15, you'll have ≈ $33,300.00 in liquid cash (+$304.38/mo saved)"},
		{ProjectFutureBalance, map[string]any{"target_date": "15/07/2025"}, "Please use a valid date format: YYYY-MM-DD"},
		{ProjectFutureBalance, map[string]any{"target_date": "2025-06-15"}, "2025-06-15 is today or in the past. Ask for a future date like 2026-12-31."},
		{ProjectFutureBalance, map[string]any{"target_date": "2024-01-01"}, "2024-01-01 is today or in the past. Ask for a future date like 2026-12-31."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tb.Run(tc.name, tc.args)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Run() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToolbox_Run_Errors(t *testing.T) {
	tb := newToolbox(t, false)
	if _, err := tb.Run("get_secrets", nil); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Run(unknown) error = %v, want %v", err, ErrUnknownTool)
	}
	if _, err := tb.Run(ProjectFutureBalance, map[string]any{"target_date": "2025-07-15", "extra_savings": true}); err == nil {
		t.Errorf("Run() with a boolean amount should fail")
	}
}

func TestToolbox_InfiniteRunway(t *testing.T) {
	tb := newToolbox(t, false)
	if got, want := FormatRunway(tb.Runway()), "You have infinite runway: you're either rich or not spending anything."; got != want {
		t.Errorf("FormatRunway() = %q, want %q", got, want)
	}
}

func TestToolbox_ProjectFutureBalance(t *testing.T) {
	tb := newToolbox(t, false)
	p, err := tb.ProjectFutureBalance("2025-07-15", decimal.Zero)
	if err != nil {
		t.Fatalf("ProjectFutureBalance() failed: %v", err)
	}
	if !p.Balance.Equal(bussinbank.M(4200, "USD")) {
		t.Errorf("Balance = %v, want the current liquid cash without history", p.Balance)
	}
	for _, in := range []string{"2025-7-15", "", "tomorrow"} {
		if _, err := tb.ProjectFutureBalance(in, decimal.Zero); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ProjectFutureBalance(%q) error = %v, want %v", in, err, ErrInvalidDate)
		}
	}
	if _, err := tb.ProjectFutureBalance("2025-06-15", decimal.Zero); !errors.Is(err, ErrDateNotInFuture) {
		t.Errorf("ProjectFutureBalance(today) error = %v, want %v", err, ErrDateNotInFuture)
	}
}
