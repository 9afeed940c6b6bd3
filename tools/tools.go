// Package tools is the small set of named operations an assistant may call
// on a ledger. Each one has a structured result, and a Format function
// rendering it as the sentence shown to the user.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/shopspring/decimal"
)

// Names of the tools.
const (
	GetNetWorth          = "get_net_worth"
	GetRunway            = "get_runway"
	GetMonthlyBurn       = "get_monthly_burn"
	GetSpendingThisMonth = "get_spending_this_month"
	ProjectFutureBalance = "project_future_balance"
)

var (
	// ErrInvalidDate is returned for a target date not in the YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")
	// ErrDateNotInFuture is returned for a target date that is today or earlier.
	ErrDateNotInFuture = errors.New("date is not in the future")
	// ErrUnknownTool is returned by Run for a name that is not a tool.
	ErrUnknownTool = errors.New("unknown tool")
)

// Description describes a tool to an assistant.
type Description struct {
	Name    string
	Summary string
}

// Descriptions lists every tool.
var Descriptions = []Description{
	{GetNetWorth, "Return the current net worth."},
	{GetRunway, "How many days of cash are left at the current burn rate."},
	{GetMonthlyBurn, "Return the average monthly expenditure over the last 30 days."},
	{GetSpendingThisMonth, "Return the expenditure since the first day of the current month."},
	{ProjectFutureBalance, "Predict the liquid cash on a future date (YYYY-MM-DD), optionally saving extra_savings more every month."},
}

// Toolbox runs the tools against a store.
type Toolbox struct {
	store      *bussinbank.Store
	forecaster *forecast.Forecaster
}

// New returns a Toolbox reading store, projecting with f.
func New(store *bussinbank.Store, f *forecast.Forecaster) *Toolbox {
	return &Toolbox{store: store, forecaster: f}
}

// NetWorth returns the current net worth.
func (t *Toolbox) NetWorth() bussinbank.Money { return t.store.NetWorth() }

// Runway returns the runway in days, unbounded when nothing is spent.
func (t *Toolbox) Runway() bussinbank.Bound[int] { return t.store.RunwayDays() }

// MonthlyBurn returns the trailing monthly burn rate.
func (t *Toolbox) MonthlyBurn() bussinbank.Money { return t.store.MonthlyBurnRate() }

// SpendingThisMonth returns the month to date spending.
func (t *Toolbox) SpendingThisMonth() bussinbank.Money { return t.store.SpendingThisMonth() }

// Projection is the result of ProjectFutureBalance.
type Projection struct {
	Date         date.Date        `json:"date"`
	ExtraSavings bussinbank.Money `json:"extra_savings"`
	Balance      bussinbank.Money `json:"balance"`
}

// ProjectFutureBalance projects liquid cash on isoDate, a strict YYYY-MM-DD
// date after today, saving extraSavings more every month.
func (t *Toolbox) ProjectFutureBalance(isoDate string, extraSavings decimal.Decimal) (Projection, error) {
	target, err := date.ParseISO(strings.TrimSpace(isoDate))
	if err != nil {
		return Projection{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, isoDate, err)
	}
	if !target.After(t.store.Today()) {
		return Projection{}, fmt.Errorf("%s: %w", target, ErrDateNotInFuture)
	}
	balance := t.forecaster.ProjectBalance(target, extraSavings)
	return Projection{
		Date:         target,
		ExtraSavings: bussinbank.M(extraSavings, balance.Currency()),
		Balance:      balance,
	}, nil
}

// Run calls the tool name with args and renders its result. Tool failures
// the user can fix, like a bad date, are rendered too, only an unknown tool
// or a malformed argument is an error.
func (t *Toolbox) Run(name string, args map[string]any) (string, error) {
	switch name {
	case GetNetWorth:
		return FormatNetWorth(t.NetWorth()), nil
	case GetRunway:
		return FormatRunway(t.Runway()), nil
	case GetMonthlyBurn:
		return FormatMonthlyBurn(t.MonthlyBurn()), nil
	case GetSpendingThisMonth:
		return FormatSpendingThisMonth(t.SpendingThisMonth()), nil
	case ProjectFutureBalance:
		target, _ := args["target_date"].(string)
		extra, err := decimalArg(args, "extra_savings")
		if err != nil {
			return "", err
		}
		p, err := t.ProjectFutureBalance(target, extra)
		if err != nil {
			return FormatProjectionError(target, err), nil
		}
		return FormatProjection(p), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownTool, name)
	}
}

// decimalArg reads an optional numeric argument, zero when absent.
func decimalArg(args map[string]any, name string) (decimal.Decimal, error) {
	switch v := args[name].(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("argument %q is not a number: %w", name, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("argument %q is not a number but %T", name, v)
	}
}
