package bussinbank

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"
)

// SchemaVersion is the only ledger document version this package reads and writes.
const SchemaVersion = 1

// Metadata describes a ledger document.
type Metadata struct {
	SchemaVersion int       `json:"schema_version"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
}

// LedgerData is the aggregate root: every account, transaction and goal, and
// the document metadata. It is the single unit of persistence and of validation.
type LedgerData struct {
	Metadata     Metadata                 `json:"metadata"`
	Accounts     map[string]Account       `json:"accounts"`
	Transactions []Transaction            `json:"transactions"` // insertion order
	Goals        map[string]FinancialGoal `json:"goals"`
}

// NewLedgerData returns an empty ledger created at now.
func NewLedgerData(now time.Time) *LedgerData {
	now = now.UTC()
	return &LedgerData{
		Metadata: Metadata{
			SchemaVersion: SchemaVersion,
			Currency:      DefaultCurrency,
			CreatedAt:     now,
			LastUpdated:   now,
		},
		Accounts:     make(map[string]Account),
		Transactions: []Transaction{},
		Goals:        make(map[string]FinancialGoal),
	}
}

// Clone returns a deep copy of l. Transactions are immutable so they are shared.
func (l *LedgerData) Clone() *LedgerData {
	return &LedgerData{
		Metadata:     l.Metadata,
		Accounts:     maps.Clone(l.Accounts),
		Transactions: slices.Clone(l.Transactions),
		Goals:        maps.Clone(l.Goals),
	}
}

// Validate checks every invariant of a ledger document: schema version,
// entity validity, referential integrity, unique transaction ids, and
// account balances matching their opening balance plus their transactions.
func (l *LedgerData) Validate() error {
	if l.Metadata.SchemaVersion != SchemaVersion {
		return fmt.Errorf("schema version %d: %w", l.Metadata.SchemaVersion, ErrUnsupportedSchema)
	}
	for id, a := range l.Accounts {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("account %q: %w", id, err)
		}
		if id != a.ID {
			return fmt.Errorf("account %q: %w", id, invalid("id", "does not match its key %q", id))
		}
		if a.Currency != l.Metadata.Currency {
			return fmt.Errorf("account %q: %w", id, invalid("currency", "%s differs from the ledger currency %s", a.Currency, l.Metadata.Currency))
		}
	}
	for id, g := range l.Goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %q: %w", id, err)
		}
		if id != g.ID {
			return fmt.Errorf("goal %q: %w", id, invalid("id", "does not match its key %q", id))
		}
	}

	sums := make(map[string]Money, len(l.Accounts))
	seen := make(map[string]bool, len(l.Transactions))
	for i, tx := range l.Transactions {
		if seen[tx.ID()] {
			return fmt.Errorf("transaction #%d %q: %w", i, tx.ID(), ErrDuplicateID)
		}
		seen[tx.ID()] = true
		a, ok := l.Accounts[tx.AccountID()]
		if !ok {
			return fmt.Errorf("transaction #%d %q references account %q: %w", i, tx.ID(), tx.AccountID(), ErrUnknownAccount)
		}
		if s, ok := sums[a.ID]; ok {
			sums[a.ID] = s.Add(tx.Amount())
		} else {
			sums[a.ID] = tx.Amount()
		}
	}
	for id, a := range l.Accounts {
		want := a.OpeningBalance.Add(sums[id])
		if !want.Equal(a.Balance) {
			return fmt.Errorf("account %q has balance %s, want %s: %w", id, a.Balance.Decimal(), want.Decimal(), ErrBalanceMismatch)
		}
	}
	return nil
}

// bind sets every amount to the ledger currency.
func (l *LedgerData) bind() {
	for i, tx := range l.Transactions {
		currency := l.Metadata.Currency
		if a, ok := l.Accounts[tx.AccountID()]; ok {
			currency = a.Currency
		}
		l.Transactions[i] = tx.in(currency)
	}
	for id, g := range l.Goals {
		l.Goals[id] = g.in(l.Metadata.Currency)
	}
}

// apply appends tx and moves the referenced account balance by the transaction amount.
func (l *LedgerData) apply(tx Transaction) (Transaction, error) {
	a, ok := l.Accounts[tx.AccountID()]
	if !ok {
		return Transaction{}, &ValidationError{Field: "account_id", Reason: fmt.Sprintf("%q does not exist", tx.AccountID()), Err: ErrUnknownAccount}
	}
	if slices.ContainsFunc(l.Transactions, func(t Transaction) bool { return t.ID() == tx.ID() }) {
		return Transaction{}, &ValidationError{Field: "id", Reason: fmt.Sprintf("%q is already recorded", tx.ID()), Err: ErrDuplicateID}
	}
	tx = tx.in(a.Currency)
	a.Balance = a.Balance.Add(tx.Amount())
	l.Accounts[a.ID] = a
	l.Transactions = append(l.Transactions, tx)
	return tx, nil
}

// SortedAccounts returns the accounts ordered by id.
func (l *LedgerData) SortedAccounts() []Account {
	return slices.SortedFunc(maps.Values(l.Accounts), func(a, b Account) int { return cmp.Compare(a.ID, b.ID) })
}

// SortedGoals returns the goals ordered by priority (critical first), then name.
func (l *LedgerData) SortedGoals() []FinancialGoal {
	rank := func(p Priority) int { return slices.Index(priorities, p) }
	return slices.SortedFunc(maps.Values(l.Goals), func(a, b FinancialGoal) int {
		return cmp.Or(
			cmp.Compare(rank(b.Priority), rank(a.Priority)),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// zero returns a zero amount in the ledger currency.
func (l *LedgerData) zero() Money { return M(0, l.Metadata.Currency) }
