package bussinbank

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
)

// AccountInput is the untrusted input shape used to open an Account.
type AccountInput struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Type              string      `json:"type" yaml:"type"`
	OpeningBalance    json.Number `json:"opening_balance,omitempty" yaml:"opening_balance"`
	Currency          string      `json:"currency,omitempty" yaml:"currency"`
	Institution       string      `json:"institution,omitempty" yaml:"institution"`
	IncludeInNetWorth *bool       `json:"include_in_net_worth,omitempty" yaml:"include_in_net_worth"`
	CreditLimit       json.Number `json:"credit_limit,omitempty" yaml:"credit_limit"`
}

// Account is a bank account, a credit card, a wallet...
//
// Balance is a running total maintained by the store: it always equals
// OpeningBalance plus the amounts of every transaction recorded against the account.
type Account struct {
	ID                string
	Name              string
	Type              AccountType
	Balance           Money
	OpeningBalance    Money
	Currency          string
	Institution       string
	IsActive          bool
	IncludeInNetWorth bool
	CreditLimit       Money // zero when there is none
}

// NewAccount validates in into a freshly opened Account whose balance is its opening balance.
func NewAccount(in AccountInput) (Account, error) {
	a := Account{
		ID:                strings.TrimSpace(in.ID),
		Name:              strings.TrimSpace(in.Name),
		Currency:          strings.ToUpper(strings.TrimSpace(in.Currency)),
		Institution:       strings.TrimSpace(in.Institution),
		IsActive:          true,
		IncludeInNetWorth: true,
	}
	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}
	if in.IncludeInNetWorth != nil {
		a.IncludeInNetWorth = *in.IncludeInNetWorth
	}
	kind, err := ParseAccountType(strings.TrimSpace(in.Type))
	if err != nil {
		return Account{}, &ValidationError{Field: "type", Reason: "unknown", Err: err}
	}
	a.Type = kind

	a.OpeningBalance = M(0, a.Currency)
	if in.OpeningBalance != "" {
		if a.OpeningBalance, err = ParseMoney(in.OpeningBalance.String(), a.Currency); err != nil {
			return Account{}, &ValidationError{Field: "opening_balance", Reason: "unparseable", Err: err}
		}
	}
	a.Balance = a.OpeningBalance
	a.CreditLimit = M(0, a.Currency)
	if in.CreditLimit != "" {
		if a.CreditLimit, err = ParseMoney(in.CreditLimit.String(), a.Currency); err != nil {
			return Account{}, &ValidationError{Field: "credit_limit", Reason: "unparseable", Err: err}
		}
	}
	return a, a.Validate()
}

// Validate checks the invariants of a single account.
func (a Account) Validate() error {
	switch {
	case a.ID == "":
		return invalid("id", "is required")
	case a.Name == "":
		return invalid("name", "is required")
	case money.GetCurrency(a.Currency) == nil:
		return invalid("currency", "unknown currency %q", a.Currency)
	case a.CreditLimit.IsNegative():
		return invalid("credit_limit", "must not be negative")
	}
	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return &ValidationError{Field: "type", Reason: "unknown", Err: err}
	}
	return nil
}

// IsLiquid reports whether the account balance counts as liquid cash.
func (a Account) IsLiquid() bool { return a.Type.IsLiquid() }

// accountJSON is the persisted shape of an Account.
type accountJSON struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Type              AccountType `json:"type"`
	Balance           Money       `json:"balance"`
	OpeningBalance    Money       `json:"opening_balance"`
	Currency          string      `json:"currency"`
	Institution       string      `json:"institution,omitempty"`
	IsActive          *bool       `json:"is_active,omitempty"`
	IncludeInNetWorth *bool       `json:"include_in_net_worth,omitempty"`
	CreditLimit       *Money      `json:"credit_limit,omitempty"`
}

func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("type", a.Type)
	w.Append("balance", a.Balance)
	w.Append("opening_balance", a.OpeningBalance)
	w.Append("currency", a.Currency)
	w.Optional("institution", a.Institution)
	w.Append("is_active", a.IsActive)
	w.Append("include_in_net_worth", a.IncludeInNetWorth)
	w.Optional("credit_limit", a.CreditLimit)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a strict persisted account and validates it.
func (a *Account) UnmarshalJSON(b []byte) error {
	var j accountJSON
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return err
	}
	v := Account{
		ID:                j.ID,
		Name:              j.Name,
		Type:              j.Type,
		Currency:          j.Currency,
		Institution:       j.Institution,
		IsActive:          j.IsActive == nil || *j.IsActive,
		IncludeInNetWorth: j.IncludeInNetWorth == nil || *j.IncludeInNetWorth,
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	v.Balance = j.Balance.In(v.Currency)
	v.OpeningBalance = j.OpeningBalance.In(v.Currency)
	v.CreditLimit = M(0, v.Currency)
	if j.CreditLimit != nil {
		v.CreditLimit = j.CreditLimit.In(v.Currency)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*a = v
	return nil
}
