package renderer

import (
	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/shopspring/decimal"
)

// Status is the overview of a ledger on a day.
type Status struct {
	Date              date.Date
	NetWorth          bussinbank.Money
	LiquidCash        bussinbank.Money
	MonthlyBurn       bussinbank.Money
	SpendingThisMonth bussinbank.Money
	Runway            bussinbank.Bound[int]
	EmergencyFund     bussinbank.Bound[decimal.Decimal]
	Accounts          []bussinbank.Account
	Spending          []bussinbank.CategorySpending
	Goals             []bussinbank.GoalProgress
}

// NewStatus computes the Status of s today.
func NewStatus(s *bussinbank.Store) *Status {
	return &Status{
		Date:              s.Today(),
		NetWorth:          s.NetWorth(),
		LiquidCash:        s.LiquidCash(),
		MonthlyBurn:       s.MonthlyBurnRate(),
		SpendingThisMonth: s.SpendingThisMonth(),
		Runway:            s.RunwayDays(),
		EmergencyFund:     s.EmergencyFundMonths(),
		Accounts:          s.Accounts(),
		Spending:          s.MonthlySpendingByCategory(date.Date{}),
		Goals:             s.GoalSummary(),
	}
}
