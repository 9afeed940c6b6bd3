package bussinbank

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/Sam-oo1/bussinBank/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalInput is the untrusted input shape used to set a FinancialGoal.
type GoalInput struct {
	ID                  string      `json:"id,omitempty" yaml:"id"`
	Name                string      `json:"name" yaml:"name"`
	Description         string      `json:"description,omitempty" yaml:"description"`
	TargetAmount        json.Number `json:"target_amount" yaml:"target_amount"`
	CurrentAmount       json.Number `json:"current_amount,omitempty" yaml:"current_amount"`
	TargetDate          string      `json:"target_date,omitempty" yaml:"target_date"`
	Priority            string      `json:"priority,omitempty" yaml:"priority"`
	Status              string      `json:"status,omitempty" yaml:"status"`
	MonthlyContribution json.Number `json:"monthly_contribution,omitempty" yaml:"monthly_contribution"`
}

// FinancialGoal is an amount the user is saving towards, or paying down.
type FinancialGoal struct {
	ID                  string
	Name                string
	Description         string
	TargetAmount        Money
	CurrentAmount       Money
	TargetDate          date.Date // zero when there is none
	Priority            Priority
	Status              GoalStatus
	MonthlyContribution Money // zero when there is none
	CreatedAt           time.Time
}

// NewGoal validates in into a FinancialGoal in the given currency.
func NewGoal(in GoalInput, currency string, now time.Time) (FinancialGoal, error) {
	g := FinancialGoal{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now.UTC(),
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	var err error
	if in.TargetAmount == "" {
		return FinancialGoal{}, invalid("target_amount", "is required")
	}
	if g.TargetAmount, err = ParseMoney(in.TargetAmount.String(), currency); err != nil {
		return FinancialGoal{}, &ValidationError{Field: "target_amount", Reason: "unparseable", Err: err}
	}
	g.CurrentAmount = M(0, currency)
	if in.CurrentAmount != "" {
		if g.CurrentAmount, err = ParseMoney(in.CurrentAmount.String(), currency); err != nil {
			return FinancialGoal{}, &ValidationError{Field: "current_amount", Reason: "unparseable", Err: err}
		}
	}
	g.MonthlyContribution = M(0, currency)
	if in.MonthlyContribution != "" {
		if g.MonthlyContribution, err = ParseMoney(in.MonthlyContribution.String(), currency); err != nil {
			return FinancialGoal{}, &ValidationError{Field: "monthly_contribution", Reason: "unparseable", Err: err}
		}
	}
	if s := strings.TrimSpace(in.TargetDate); s != "" {
		if g.TargetDate, err = date.Parse(s); err != nil {
			return FinancialGoal{}, &ValidationError{Field: "target_date", Reason: "unparseable", Err: err}
		}
	}
	if g.Priority, err = ParsePriority(strings.TrimSpace(in.Priority)); err != nil {
		return FinancialGoal{}, &ValidationError{Field: "priority", Reason: "unknown", Err: err}
	}
	if g.Status, err = ParseGoalStatus(strings.TrimSpace(in.Status)); err != nil {
		return FinancialGoal{}, &ValidationError{Field: "status", Reason: "unknown", Err: err}
	}
	return g, g.Validate()
}

// Validate checks the invariants of a single goal.
func (g FinancialGoal) Validate() error {
	switch {
	case g.ID == "":
		return invalid("id", "is required")
	case g.Name == "":
		return invalid("name", "is required")
	case !g.TargetAmount.IsPositive():
		return invalid("target_amount", "must be positive")
	case g.CurrentAmount.IsNegative():
		return invalid("current_amount", "must not be negative")
	case g.MonthlyContribution.IsNegative():
		return invalid("monthly_contribution", "must not be negative")
	}
	if _, err := ParsePriority(string(g.Priority)); err != nil {
		return &ValidationError{Field: "priority", Reason: "unknown", Err: err}
	}
	if _, err := ParseGoalStatus(string(g.Status)); err != nil {
		return &ValidationError{Field: "status", Reason: "unknown", Err: err}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// ProgressPercent returns current/target as a percentage, capped at 100.
func (g FinancialGoal) ProgressPercent() decimal.Decimal {
	p := g.CurrentAmount.Decimal().Div(g.TargetAmount.Decimal()).Mul(hundred)
	return decimal.Min(p, hundred)
}

// Remaining returns the amount left to reach the target, never negative.
func (g FinancialGoal) Remaining() Money {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return M(0, r.Currency())
	}
	return r
}

// DaysLeft returns the number of days from today to the target date, ok is false without target date.
func (g FinancialGoal) DaysLeft(today date.Date) (days int, ok bool) {
	if g.TargetDate.IsZero() {
		return 0, false
	}
	return today.DaysUntil(g.TargetDate), true
}

// RequiredMonthlyContribution returns the monthly amount that closes the gap by the target date.
// ok is false without a target date, or when the target date is today or past.
func (g FinancialGoal) RequiredMonthlyContribution(today date.Date) (m Money, ok bool) {
	days, ok := g.DaysLeft(today)
	if !ok || days <= 0 {
		return Money{}, false
	}
	r := g.Remaining()
	monthly := r.Decimal().Mul(AvgDaysPerMonth).Div(decimal.NewFromInt(int64(days)))
	return M(monthly, r.Currency()), true
}

// IsOnTrack compares the daily contribution still required to reach the
// target on time with the planned monthly contribution spread over 30 days.
// A goal without target date is always on track.
func (g FinancialGoal) IsOnTrack(today date.Date) bool {
	days, ok := g.DaysLeft(today)
	if !ok {
		return true
	}
	remaining := g.Remaining().Decimal()
	if !remaining.IsPositive() {
		return true
	}
	if days <= 0 {
		return false
	}
	requiredDaily := remaining.Div(decimal.NewFromInt(int64(days)))
	plannedDaily := g.MonthlyContribution.Decimal().Div(decimal.NewFromInt(30))
	return requiredDaily.LessThanOrEqual(plannedDaily)
}

// goalJSON is the persisted shape of a FinancialGoal.
type goalJSON struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	TargetAmount        Money      `json:"target_amount"`
	CurrentAmount       Money      `json:"current_amount"`
	TargetDate          *date.Date `json:"target_date,omitempty"`
	Priority            Priority   `json:"priority"`
	Status              GoalStatus `json:"status"`
	MonthlyContribution *Money     `json:"monthly_contribution,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (g FinancialGoal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", g.ID)
	w.Append("name", g.Name)
	w.Optional("description", g.Description)
	w.Append("target_amount", g.TargetAmount)
	w.Append("current_amount", g.CurrentAmount)
	w.Optional("target_date", g.TargetDate)
	w.Append("priority", g.Priority)
	w.Append("status", g.Status)
	w.Optional("monthly_contribution", g.MonthlyContribution)
	w.Append("created_at", g.CreatedAt)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a strict persisted goal, amounts are left without currency.
func (g *FinancialGoal) UnmarshalJSON(b []byte) error {
	var j goalJSON
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return err
	}
	v := FinancialGoal{
		ID:            j.ID,
		Name:          j.Name,
		Description:   j.Description,
		TargetAmount:  j.TargetAmount,
		CurrentAmount: j.CurrentAmount,
		Priority:      j.Priority,
		Status:        j.Status,
		CreatedAt:     j.CreatedAt,
	}
	if j.TargetDate != nil {
		v.TargetDate = *j.TargetDate
	}
	if j.MonthlyContribution != nil {
		v.MonthlyContribution = *j.MonthlyContribution
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*g = v
	return nil
}

// in returns a copy of g with its amounts bound to currency.
func (g FinancialGoal) in(currency string) FinancialGoal {
	g.TargetAmount = g.TargetAmount.In(currency)
	g.CurrentAmount = g.CurrentAmount.In(currency)
	g.MonthlyContribution = g.MonthlyContribution.In(currency)
	return g
}
