package tools

import (
	"errors"
	"fmt"

	"github.com/Sam-oo1/bussinBank"
)

func FormatNetWorth(m bussinbank.Money) string {
	return fmt.Sprintf("Your current net worth is %s", m)
}

func FormatRunway(days bussinbank.Bound[int]) string {
	if days.IsUnbounded() {
		return "You have infinite runway: you're either rich or not spending anything."
	}
	return fmt.Sprintf("You have %s days of runway at current burn rate.", days)
}

func FormatMonthlyBurn(m bussinbank.Money) string {
	return fmt.Sprintf("You burn %s per month on average.", m)
}

func FormatSpendingThisMonth(m bussinbank.Money) string {
	return fmt.Sprintf("You've spent %s so far this month.", m)
}

func FormatProjection(p Projection) string {
	return fmt.Sprintf("On %s, you'll have ≈ %s in liquid cash (+%s/mo saved)", p.Date, p.Balance, p.ExtraSavings)
}

// FormatProjectionError renders a ProjectFutureBalance failure on input.
func FormatProjectionError(input string, err error) string {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return "Please use a valid date format: YYYY-MM-DD"
	case errors.Is(err, ErrDateNotInFuture):
		return fmt.Sprintf("%s is today or in the past. Ask for a future date like 2026-12-31.", input)
	default:
		return fmt.Sprintf("Could not project the balance on %s: %v", input, err)
	}
}
