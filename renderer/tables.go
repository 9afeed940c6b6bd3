package renderer

import (
	"fmt"
	"strings"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/forecast"
)

// TransactionsMarkdown renders transactions as a markdown table, in the given order.
func TransactionsMarkdown(txs []bussinbank.Transaction) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Date | Account | Type | Category | Amount | Description |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|:---|")
	for _, tx := range txs {
		desc := tx.Description()
		if tx.Merchant() != "" {
			desc = strings.TrimSpace(tx.Merchant() + " " + desc)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Date(), tx.AccountID(), tx.Type(), tx.Category(), tx.Amount().SignedString(), desc)
	}
	return b.String()
}

// AccountsMarkdown renders accounts as a markdown table.
func AccountsMarkdown(accounts []bussinbank.Account) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Account | Name | Type | Institution | Balance | Net Worth |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|:---:|")
	for _, a := range accounts {
		included := " "
		if a.IncludeInNetWorth {
			included = "X"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", a.ID, a.Name, a.Type, a.Institution, a.Balance, included)
	}
	return b.String()
}

// GoalsMarkdown renders goals as a markdown table, most important first.
func GoalsMarkdown(goals []bussinbank.FinancialGoal) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Goal | Priority | Status | Current | Target | Target Date |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|:---|")
	for _, g := range goals {
		on := "-"
		if !g.TargetDate.IsZero() {
			on = g.TargetDate.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", g.Name, g.Priority, g.Status, g.CurrentAmount, g.TargetAmount, on)
	}
	return b.String()
}

// SpendingMarkdown renders a month of spending by category.
func SpendingMarkdown(month string, spending []bussinbank.CategorySpending) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Spending in %s\n\n", month)
	if len(spending) == 0 {
		fmt.Fprintln(&b, "Nothing spent.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Category | Total |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, c := range spending {
		fmt.Fprintf(&b, "| %s | %s |\n", c.Category, c.Total)
	}
	return b.String()
}

// ForecastMarkdown renders projected monthly balances.
func ForecastMarkdown(balances []forecast.MonthlyBalance) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Month | Projected Liquid Cash |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, m := range balances {
		fmt.Fprintf(&b, "| %s | %s |\n", m.Date.Format("2006-01"), m.Balance)
	}
	return b.String()
}
