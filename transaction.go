package bussinbank

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/Sam-oo1/bussinBank/date"
	"github.com/google/uuid"
)

// Uncategorized is the category of transactions recorded without one.
const Uncategorized = "uncategorized"

// RawTransaction is the untrusted input shape of a Transaction.
type RawTransaction struct {
	ID          string      `json:"id,omitempty" yaml:"id"`
	Date        string      `json:"date" yaml:"date"`
	Amount      json.Number `json:"amount" yaml:"amount"`
	Description string      `json:"description,omitempty" yaml:"description"`
	Merchant    string      `json:"merchant,omitempty" yaml:"merchant"`
	Category    string      `json:"category,omitempty" yaml:"category"`
	AccountID   string      `json:"account_id" yaml:"account_id"`
	Type        string      `json:"type" yaml:"type"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags"`
	Notes       string      `json:"notes,omitempty" yaml:"notes"`
}

// Transaction is a single money movement. It is immutable once created.
//
// The sign of the amount encodes its direction: positive money in, negative money out.
type Transaction struct {
	id          string
	on          date.Date
	amount      Money
	description string
	merchant    string
	category    string
	accountID   string
	kind        TransactionType
	tags        []string
	notes       string
}

// NewTransaction validates raw into a Transaction. It is the only way to build one.
//
// The amount is rounded to cents, an id is generated when missing, and the
// tags are sorted and deduplicated. Failures are reported as *ValidationError.
func NewTransaction(raw RawTransaction) (Transaction, error) {
	tx := Transaction{
		id:          strings.TrimSpace(raw.ID),
		description: strings.TrimSpace(raw.Description),
		merchant:    strings.TrimSpace(raw.Merchant),
		category:    strings.TrimSpace(raw.Category),
		accountID:   strings.TrimSpace(raw.AccountID),
		notes:       strings.TrimSpace(raw.Notes),
	}
	if tx.id == "" {
		tx.id = uuid.New().String()
	}
	if tx.category == "" {
		tx.category = Uncategorized
	}

	if raw.Date == "" {
		return Transaction{}, invalid("date", "is required")
	}
	on, err := date.Parse(strings.TrimSpace(raw.Date))
	if err != nil {
		return Transaction{}, &ValidationError{Field: "date", Reason: "unparseable", Err: err}
	}
	tx.on = on

	if raw.Amount == "" {
		return Transaction{}, invalid("amount", "is required")
	}
	amount, err := ParseMoney(raw.Amount.String(), "")
	if err != nil {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "unparseable", Err: err}
	}
	tx.amount = amount

	if tx.accountID == "" {
		return Transaction{}, invalid("account_id", "is required")
	}

	kind, err := ParseTransactionType(strings.TrimSpace(raw.Type))
	if err != nil {
		return Transaction{}, &ValidationError{Field: "type", Reason: "unknown", Err: err}
	}
	tx.kind = kind

	switch {
	case kind == Income && !amount.IsPositive():
		return Transaction{}, invalid("amount", "income must be positive, got %s", amount.Decimal())
	case kind == Expense && !amount.IsNegative():
		return Transaction{}, invalid("amount", "expense must be negative, got %s", amount.Decimal())
	}

	for _, tag := range raw.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tx.tags = append(tx.tags, tag)
		}
	}
	slices.Sort(tx.tags)
	tx.tags = slices.Compact(tx.tags)
	return tx, nil
}

func (t Transaction) ID() string            { return t.id }
func (t Transaction) Date() date.Date       { return t.on }
func (t Transaction) Amount() Money         { return t.amount }
func (t Transaction) Description() string   { return t.description }
func (t Transaction) Merchant() string      { return t.merchant }
func (t Transaction) Category() string      { return t.category }
func (t Transaction) AccountID() string     { return t.accountID }
func (t Transaction) Type() TransactionType { return t.kind }
func (t Transaction) Notes() string         { return t.notes }

// Tags returns a copy of the transaction tags.
func (t Transaction) Tags() []string { return slices.Clone(t.tags) }

// TopCategory returns the first segment of the hierarchical category ("food" for "food:groceries").
func (t Transaction) TopCategory() string {
	top, _, _ := strings.Cut(t.category, ":")
	if top = strings.TrimSpace(top); top == "" {
		return Uncategorized
	}
	return top
}

// IsOutflow reports whether money leaves the account.
func (t Transaction) IsOutflow() bool { return t.amount.IsNegative() }

// in returns a copy of t with its amount bound to currency.
func (t Transaction) in(currency string) Transaction {
	t.amount = t.amount.In(currency)
	return t
}

// Equal reports whether t and u hold the same values.
func (t Transaction) Equal(u Transaction) bool {
	return t.id == u.id &&
		t.on == u.on &&
		t.amount.Equal(u.amount) &&
		t.description == u.description &&
		t.merchant == u.merchant &&
		t.category == u.category &&
		t.accountID == u.accountID &&
		t.kind == u.kind &&
		slices.Equal(t.tags, u.tags) &&
		t.notes == u.notes
}

// Raw returns the input shape that NewTransaction turns back into t.
func (t Transaction) Raw() RawTransaction {
	return RawTransaction{
		ID:          t.id,
		Date:        t.on.String(),
		Amount:      json.Number(t.amount.Decimal().StringFixed(2)),
		Description: t.description,
		Merchant:    t.merchant,
		Category:    t.category,
		AccountID:   t.accountID,
		Type:        string(t.kind),
		Tags:        slices.Clone(t.tags),
		Notes:       t.notes,
	}
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.id)
	w.Append("date", t.on)
	w.Append("amount", t.amount)
	w.Optional("description", t.description)
	w.Optional("merchant", t.merchant)
	w.Append("category", t.category)
	w.Append("account_id", t.accountID)
	w.Append("type", t.kind)
	w.Optional("tags", t.tags)
	w.Optional("notes", t.notes)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a strict RawTransaction and validates it.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	var raw RawTransaction
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	tx, err := NewTransaction(raw)
	if err != nil {
		return err
	}
	*t = tx
	return nil
}
