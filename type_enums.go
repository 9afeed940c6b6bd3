package bussinbank

import (
	"fmt"
	"slices"
)

// TransactionType is the kind of money movement a Transaction records.
type TransactionType string

const (
	// Income brings money in, its amount is always positive.
	Income TransactionType = "income"
	// Expense sends money out, its amount is always negative.
	Expense TransactionType = "expense"
	// Transfer moves money between the user's own accounts, one leg per transaction.
	Transfer TransactionType = "transfer"
	// Refund returns money from a previous expense.
	Refund TransactionType = "refund"
	// Adjustment corrects a balance, either direction.
	Adjustment TransactionType = "adjustment"
)

var transactionTypes = []TransactionType{Income, Expense, Transfer, Refund, Adjustment}

// ParseTransactionType returns the TransactionType named s.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !slices.Contains(transactionTypes, t) {
		return "", fmt.Errorf("unknown transaction type %q, want one of %v", s, transactionTypes)
	}
	return t, nil
}

// AccountType classifies an Account.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Investment AccountType = "investment"
	Crypto     AccountType = "crypto"
	Loan       AccountType = "loan"
	Other      AccountType = "other"
)

var accountTypes = []AccountType{Checking, Savings, CreditCard, Investment, Crypto, Loan, Other}

// ParseAccountType returns the AccountType named s.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !slices.Contains(accountTypes, t) {
		return "", fmt.Errorf("unknown account type %q, want one of %v", s, accountTypes)
	}
	return t, nil
}

// IsLiquid reports whether balances of this type count as liquid cash.
func (t AccountType) IsLiquid() bool { return t == Checking || t == Savings }

// Priority ranks goals.
type Priority string

const (
	Low      Priority = "low"
	Medium   Priority = "medium"
	High     Priority = "high"
	Critical Priority = "critical"
)

var priorities = []Priority{Low, Medium, High, Critical}

// ParsePriority returns the Priority named s, the empty string is Medium.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return Medium, nil
	}
	p := Priority(s)
	if !slices.Contains(priorities, p) {
		return "", fmt.Errorf("unknown priority %q, want one of %v", s, priorities)
	}
	return p, nil
}

// GoalStatus is the lifecycle state of a FinancialGoal.
type GoalStatus string

const (
	Active    GoalStatus = "active"
	OnTrack   GoalStatus = "on_track"
	Behind    GoalStatus = "behind"
	Completed GoalStatus = "completed"
	Paused    GoalStatus = "paused"
)

var goalStatuses = []GoalStatus{Active, OnTrack, Behind, Completed, Paused}

// ParseGoalStatus returns the GoalStatus named s, the empty string is Active.
func ParseGoalStatus(s string) (GoalStatus, error) {
	if s == "" {
		return Active, nil
	}
	g := GoalStatus(s)
	if !slices.Contains(goalStatuses, g) {
		return "", fmt.Errorf("unknown goal status %q, want one of %v", s, goalStatuses)
	}
	return g, nil
}
