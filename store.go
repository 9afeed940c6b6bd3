package bussinbank

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"
	"time"

	"github.com/Sam-oo1/bussinBank/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionRecorder is notified of every committed transaction.
type TransactionRecorder interface {
	Record(ctx context.Context, tx Transaction) error
}

// Store exclusively owns a LedgerData. It serves derived metrics and the
// only sanctioned mutations, and persists the whole ledger on every mutation.
//
// Mutations are applied to a copy, the copy is saved, and only then does it
// replace the live ledger: a failed mutation, including a failed save, leaves
// the store exactly as it was. A committed LedgerData is never modified
// again, so readers only hold the lock long enough to grab it.
type Store struct {
	mu       sync.RWMutex
	data     *LedgerData
	storage  Storage
	now      func() time.Time
	log      zerolog.Logger
	recorder TransactionRecorder
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for "today" and for timestamps.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithLogger sets the store logger, the default discards everything.
func WithLogger(log zerolog.Logger) Option { return func(s *Store) { s.log = log } }

// WithRecorder sets a recorder notified after each committed transaction.
func WithRecorder(r TransactionRecorder) Option { return func(s *Store) { s.recorder = r } }

// Open loads the ledger from storage. A storage with nothing persisted yet
// yields a fresh empty ledger, any other load failure is returned as is.
func Open(storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := storage.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Info().Msg("no ledger found, starting fresh")
		data = NewLedgerData(s.now())
	case err != nil:
		return nil, err
	default:
		s.log.Debug().
			Int("accounts", len(data.Accounts)).
			Int("transactions", len(data.Transactions)).
			Int("goals", len(data.Goals)).
			Msg("ledger loaded")
	}
	s.data = data
	return s, nil
}

// OpenFile opens a Store persisted in the file at path.
func OpenFile(path string, opts ...Option) (*Store, error) {
	return Open(NewFileStorage(path), opts...)
}

// current returns the committed ledger, it must not be modified.
func (s *Store) current() *LedgerData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Today returns the current date according to the store clock.
func (s *Store) Today() date.Date { return date.FromTime(s.now()) }

// Currency returns the ledger currency.
func (s *Store) Currency() string { return s.current().Metadata.Currency }

// Snapshot returns a deep copy of the current ledger.
func (s *Store) Snapshot() *LedgerData { return s.current().Clone() }

// NetWorth returns the sum of balances of accounts flagged for inclusion.
func (s *Store) NetWorth() Money { return s.current().NetWorth() }

// LiquidCash returns the sum of positive checking and savings balances.
func (s *Store) LiquidCash() Money { return s.current().LiquidCash() }

// MonthlyBurnRate returns the trailing 30-day total of outgoing amounts.
func (s *Store) MonthlyBurnRate() Money { return s.current().MonthlyBurnRate(s.Today()) }

// RunwayDays returns the days of liquid cash left at the current burn rate, unbounded when nothing is burnt.
func (s *Store) RunwayDays() Bound[int] { return s.current().RunwayDays(s.Today()) }

// EmergencyFundMonths returns the months of trailing expenses covered by liquid cash.
func (s *Store) EmergencyFundMonths() Bound[decimal.Decimal] {
	return s.current().EmergencyFundMonths(s.Today())
}

// MonthlySpendingByCategory returns the spending of the month containing
// month by top level category. The zero date means the current month.
func (s *Store) MonthlySpendingByCategory(month date.Date) []CategorySpending {
	if month.IsZero() {
		month = s.Today()
	}
	return s.current().SpendingByCategory(month)
}

// SpendingThisMonth returns the total spent since the first of the current month.
func (s *Store) SpendingThisMonth() Money {
	return s.current().Spending(date.NewRange(s.Today(), date.Monthly))
}

// GoalSummary reports the progress of every active goal.
func (s *Store) GoalSummary() []GoalProgress { return s.current().GoalSummary(s.Today()) }

// Accounts returns every account ordered by id.
func (s *Store) Accounts() []Account { return s.current().SortedAccounts() }

// Goals returns every goal, most important first.
func (s *Store) Goals() []FinancialGoal { return s.current().SortedGoals() }

// Transactions returns the transactions in insertion order.
func (s *Store) Transactions() []Transaction { return slices.Clone(s.current().Transactions) }

// commit applies mutate to a copy of the ledger, saves it, and makes it live.
func (s *Store) commit(mutate func(next *LedgerData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	next.Metadata.LastUpdated = s.now().UTC()
	if err := s.storage.Save(next); err != nil {
		s.log.Error().Err(err).Msg("could not save ledger")
		return err
	}
	s.data = next
	s.log.Debug().Time("last_updated", next.Metadata.LastUpdated).Msg("ledger saved")
	return nil
}

// AddTransaction validates raw, appends it, moves the referenced account
// balance by its amount and persists the ledger before returning the
// committed transaction. On any failure the store is left unmodified.
func (s *Store) AddTransaction(ctx context.Context, raw RawTransaction) (Transaction, error) {
	tx, err := NewTransaction(raw)
	if err != nil {
		return Transaction{}, err
	}
	err = s.commit(func(next *LedgerData) error {
		tx, err = next.apply(tx)
		return err
	})
	if err != nil {
		return Transaction{}, err
	}
	s.log.Info().
		Str("tx_id", tx.ID()).
		Str("account_id", tx.AccountID()).
		Str("amount", tx.Amount().Decimal().StringFixed(2)).
		Msg("transaction recorded")

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, tx); err != nil {
			s.log.Warn().Err(err).Str("tx_id", tx.ID()).Msg("could not record transaction event")
		}
	}
	return tx, nil
}

// OpenAccount validates in and adds the resulting account to the ledger.
//
// Every account shares the ledger currency. The first account of an empty
// ledger sets it.
func (s *Store) OpenAccount(ctx context.Context, in AccountInput) (Account, error) {
	a, err := NewAccount(in)
	if err != nil {
		return Account{}, err
	}
	err = s.commit(func(next *LedgerData) error {
		if _, ok := next.Accounts[a.ID]; ok {
			return &ValidationError{Field: "id", Reason: fmt.Sprintf("account %q already exists", a.ID), Err: ErrDuplicateID}
		}
		if len(next.Accounts) == 0 && len(next.Transactions) == 0 {
			next.Metadata.Currency = a.Currency
			for id, g := range next.Goals {
				next.Goals[id] = g.in(a.Currency)
			}
		}
		if a.Currency != next.Metadata.Currency {
			return invalid("currency", "%s differs from the ledger currency %s", a.Currency, next.Metadata.Currency)
		}
		next.Accounts[a.ID] = a
		return nil
	})
	if err != nil {
		return Account{}, err
	}
	s.log.Info().Str("account_id", a.ID).Str("type", string(a.Type)).Msg("account opened")
	return a, nil
}

// SetGoal validates in and stores the resulting goal, replacing any goal with the same id.
func (s *Store) SetGoal(ctx context.Context, in GoalInput) (FinancialGoal, error) {
	var g FinancialGoal
	err := s.commit(func(next *LedgerData) error {
		var err error
		g, err = NewGoal(in, next.Metadata.Currency, s.now())
		if err != nil {
			return err
		}
		if prev, ok := next.Goals[g.ID]; ok {
			g.CreatedAt = prev.CreatedAt
		}
		next.Goals[g.ID] = g
		return nil
	})
	if err != nil {
		return FinancialGoal{}, err
	}
	s.log.Info().Str("goal_id", g.ID).Msg("goal set")
	return g, nil
}
