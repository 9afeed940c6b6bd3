// Package forecast extrapolates the trailing transaction flow of a ledger
// into future balances, goal dates and a retirement date.
//
// The model is linear: the mean signed amount of the transactions of the
// trailing 90 days is taken as the daily net flow, and projected forward.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/shopspring/decimal"
)

// DefaultSafeWithdrawalRate is the yearly share of a nest egg that can be spent forever.
var DefaultSafeWithdrawalRate = decimal.RequireFromString("0.04")

// DefaultMonthsAhead is the horizon of ForecastMonthlyBalances when none is given.
const DefaultMonthsAhead = 24

// MaxMonthsAhead is the longest horizon of ForecastMonthlyBalances.
const MaxMonthsAhead = 1200

// maxMonths is the longest finite MonthsUntilGoal, past it the goal is never reached.
const maxMonths = 12 * 10000

// lastDate is the last date a forecast can report.
var lastDate = date.New(9999, time.December, 31)

// Ledger is the read side of a ledger store.
type Ledger interface {
	Snapshot() *bussinbank.LedgerData
	Today() date.Date
}

// Forecaster computes projections from a Ledger. It never modifies it, and
// every call reads the ledger afresh.
type Forecaster struct {
	ledger Ledger
}

// New returns a Forecaster reading from ledger.
func New(ledger Ledger) *Forecaster { return &Forecaster{ledger: ledger} }

// OneTimeExpense is a known future expense, Amount is its positive magnitude.
type OneTimeExpense struct {
	Date   date.Date        `json:"date"`
	Amount bussinbank.Money `json:"amount"`
}

// MonthlyBalance is the projected liquid cash on the first day of a month.
type MonthlyBalance struct {
	Date    date.Date        `json:"date"`
	Balance bussinbank.Money `json:"balance"`
}

// Retirement is the outcome of WhenCanIRetire.
type Retirement struct {
	NestEgg bussinbank.Money           `json:"nest_egg"`
	Months  bussinbank.Bound[int]       `json:"months"`
	Date    bussinbank.Bound[date.Date] `json:"date"`
}

// averageDailyNetFlow is the mean signed amount of the trailing transactions of l.
func averageDailyNetFlow(l *bussinbank.LedgerData, today date.Date) decimal.Decimal {
	txs := l.Trailing(today, bussinbank.FlowWindowDays)
	if len(txs) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount().Decimal())
	}
	return total.Div(decimal.NewFromInt(int64(len(txs))))
}

// AverageDailyNetFlow returns the mean signed amount of the transactions of
// the trailing 90 days, zero when there are none.
func (f *Forecaster) AverageDailyNetFlow() decimal.Decimal {
	return averageDailyNetFlow(f.ledger.Snapshot(), f.ledger.Today())
}

// MonthlyNetFlow returns the average daily net flow over an average month.
func (f *Forecaster) MonthlyNetFlow() decimal.Decimal {
	return f.AverageDailyNetFlow().Mul(bussinbank.AvgDaysPerMonth)
}

// ProjectBalance projects liquid cash on target, adding extraMonthlySavings
// every month and removing the one time expenses due after today and on or
// before target. A target of today or earlier gets the current liquid cash.
func (f *Forecaster) ProjectBalance(target date.Date, extraMonthlySavings decimal.Decimal, oneTime ...OneTimeExpense) bussinbank.Money {
	l, today := f.ledger.Snapshot(), f.ledger.Today()
	return project(l, today, target, averageDailyNetFlow(l, today), extraMonthlySavings, oneTime)
}

func project(l *bussinbank.LedgerData, today, target date.Date, daily, extraMonthly decimal.Decimal, oneTime []OneTimeExpense) bussinbank.Money {
	cash := l.LiquidCash()
	days := today.DaysUntil(target)
	if days <= 0 {
		return cash
	}
	rate := daily.Add(extraMonthly.Div(bussinbank.AvgDaysPerMonth))
	projected := cash.Decimal().Add(rate.Mul(decimal.NewFromInt(int64(days))))
	for _, e := range oneTime {
		if e.Date.After(today) && !e.Date.After(target) {
			projected = projected.Sub(e.Amount.Decimal().Abs())
		}
	}
	return bussinbank.M(projected, cash.Currency())
}

// MonthsUntilGoal returns how many months of trailing net flow it takes for
// net worth to reach target. It is 0 when net worth already meets it, and
// unbounded (never) when the trailing flow is not positive.
func (f *Forecaster) MonthsUntilGoal(target bussinbank.Money) bussinbank.Bound[int] {
	l, today := f.ledger.Snapshot(), f.ledger.Today()
	return monthsUntil(l.NetWorth().Decimal(), target.Decimal(), averageDailyNetFlow(l, today))
}

func monthsUntil(current, target, daily decimal.Decimal) bussinbank.Bound[int] {
	if current.GreaterThanOrEqual(target) {
		return bussinbank.Finite(0)
	}
	monthly := daily.Mul(bussinbank.AvgDaysPerMonth)
	if !monthly.IsPositive() {
		return bussinbank.Unbounded[int]()
	}
	months := target.Sub(current).Div(monthly).Ceil()
	if months.GreaterThan(decimal.NewFromInt(maxMonths)) {
		return bussinbank.Unbounded[int]()
	}
	return bussinbank.Finite(max(1, int(months.IntPart())))
}

// ForecastMonthlyBalances projects liquid cash on the first day of the
// current month and of each of the next monthsAhead months. Dates not after
// today report the current liquid cash. monthsAhead is clamped to
// [0, MaxMonthsAhead].
func (f *Forecaster) ForecastMonthlyBalances(monthsAhead int) []MonthlyBalance {
	monthsAhead = min(max(0, monthsAhead), MaxMonthsAhead)
	l, today := f.ledger.Snapshot(), f.ledger.Today()
	daily := averageDailyNetFlow(l, today)
	first := today.StartOf(date.Monthly)
	balances := make([]MonthlyBalance, 0, monthsAhead+1)
	for i := 0; i <= monthsAhead; i++ {
		on := first.AddMonths(i)
		balances = append(balances, MonthlyBalance{
			Date:    on,
			Balance: project(l, today, on, daily, decimal.Zero, nil),
		})
	}
	return balances
}

// ErrInvalidWithdrawalRate is returned for a safe withdrawal rate that is not positive.
var ErrInvalidWithdrawalRate = errors.New("safe withdrawal rate must be positive")

// WhenCanIRetire computes the nest egg that sustains annualSpending at the
// safe withdrawal rate swr, and when net worth reaches it. A month counts
// as 30 days for the date, which is unbounded past year 9999.
func (f *Forecaster) WhenCanIRetire(annualSpending bussinbank.Money, swr decimal.Decimal) (Retirement, error) {
	if !swr.IsPositive() {
		return Retirement{}, fmt.Errorf("invalid rate %s: %w", swr, ErrInvalidWithdrawalRate)
	}
	l, today := f.ledger.Snapshot(), f.ledger.Today()
	nestEgg := bussinbank.M(annualSpending.Decimal().Div(swr), annualSpending.Currency())
	r := Retirement{
		NestEgg: nestEgg,
		Months:  monthsUntil(l.NetWorth().Decimal(), nestEgg.Decimal(), averageDailyNetFlow(l, today)),
	}
	if months, ok := r.Months.Value(); ok {
		if on := today.Add(30 * months); !on.After(lastDate) {
			r.Date = bussinbank.Finite(on)
		}
	}
	return r, nil
}
