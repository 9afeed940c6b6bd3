package bussinbank

import (
	"slices"

	"github.com/Sam-oo1/bussinBank/date"
	"github.com/shopspring/decimal"
)

// Trailing windows, in days, used by every rate computation.
const (
	BurnWindowDays = 30
	FlowWindowDays = 90
)

// AvgDaysPerMonth converts between days and months everywhere.
var AvgDaysPerMonth = decimal.RequireFromString("30.4375")

var thirty = decimal.NewFromInt(30)

// CategorySpending is the total spent in a top level category.
type CategorySpending struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// GoalProgress summarizes an active goal.
type GoalProgress struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	Remaining       Money           `json:"remaining"`
	DaysLeft        *int            `json:"days_left"`
	MonthlyNeeded   *Money          `json:"monthly_needed"`
	OnTrack         bool            `json:"on_track"`
}

// NetWorth returns the sum of the balances of accounts included in net worth.
func (l *LedgerData) NetWorth() Money {
	total := l.zero()
	for _, a := range l.Accounts {
		if a.IncludeInNetWorth {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// LiquidCash returns the sum of positive checking and savings balances.
func (l *LedgerData) LiquidCash() Money {
	total := l.zero()
	for _, a := range l.Accounts {
		if a.IsLiquid() && a.Balance.IsPositive() {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// Trailing returns the transactions dated from n days before today through today
// (n+1 days), in insertion order.
func (l *LedgerData) Trailing(today date.Date, days int) []Transaction {
	r := date.Trailing(today, days)
	var txs []Transaction
	for _, tx := range l.Transactions {
		if r.Contains(tx.Date()) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// outflows sums the magnitude of outgoing transactions in txs.
func (l *LedgerData) outflows(txs []Transaction) Money {
	total := l.zero()
	for _, tx := range txs {
		if tx.IsOutflow() {
			total = total.Add(tx.Amount().Abs())
		}
	}
	return total
}

// MonthlyBurnRate returns the total of outgoing amounts over the trailing 30 days.
func (l *LedgerData) MonthlyBurnRate(today date.Date) Money {
	return l.outflows(l.Trailing(today, BurnWindowDays))
}

// RunwayDays returns how many days liquid cash lasts at the current burn rate.
// It is unbounded when nothing is burnt.
func (l *LedgerData) RunwayDays(today date.Date) Bound[int] {
	burn := l.MonthlyBurnRate(today)
	if !burn.IsPositive() {
		return Unbounded[int]()
	}
	cash := l.LiquidCash()
	if !cash.IsPositive() {
		return Finite(0)
	}
	// cash / (burn/30)
	days := cash.Decimal().Mul(thirty).Div(burn.Decimal()).Floor()
	return Finite(int(days.IntPart()))
}

// EmergencyFundMonths returns how many months of trailing expenses liquid cash
// covers, rounded to one decimal. It is unbounded when there are no expenses.
func (l *LedgerData) EmergencyFundMonths(today date.Date) Bound[decimal.Decimal] {
	expenses := l.MonthlyBurnRate(today)
	if !expenses.IsPositive() {
		return Unbounded[decimal.Decimal]()
	}
	return Finite(l.LiquidCash().Decimal().Div(expenses.Decimal()).Round(1))
}

// Spending returns the total of outgoing amounts dated within r.
func (l *LedgerData) Spending(r date.Range) Money {
	var txs []Transaction
	for _, tx := range l.Transactions {
		if r.Contains(tx.Date()) {
			txs = append(txs, tx)
		}
	}
	return l.outflows(txs)
}

// SpendingByCategory groups outgoing amounts of the calendar month containing
// month by top level category, sorted by category name.
func (l *LedgerData) SpendingByCategory(month date.Date) []CategorySpending {
	r := date.NewRange(month, date.Monthly)
	totals := make(map[string]Money)
	var order []string
	for _, tx := range l.Transactions {
		if !r.Contains(tx.Date()) || !tx.IsOutflow() {
			continue
		}
		cat := tx.TopCategory()
		total, ok := totals[cat]
		if !ok {
			total = l.zero()
			order = append(order, cat)
		}
		totals[cat] = total.Add(tx.Amount().Abs())
	}
	slices.Sort(order)
	spending := make([]CategorySpending, 0, len(order))
	for _, cat := range order {
		spending = append(spending, CategorySpending{Category: cat, Total: totals[cat]})
	}
	return spending
}

// GoalSummary reports the progress of every active goal.
func (l *LedgerData) GoalSummary(today date.Date) []GoalProgress {
	var summary []GoalProgress
	for _, g := range l.SortedGoals() {
		if g.Status != Active {
			continue
		}
		p := GoalProgress{
			ID:              g.ID,
			Name:            g.Name,
			ProgressPercent: g.ProgressPercent().Round(1),
			Remaining:       g.Remaining(),
			OnTrack:         g.IsOnTrack(today),
		}
		if days, ok := g.DaysLeft(today); ok {
			p.DaysLeft = &days
		}
		if m, ok := g.RequiredMonthlyContribution(today); ok {
			p.MonthlyNeeded = &m
		}
		summary = append(summary, p)
	}
	return summary
}
