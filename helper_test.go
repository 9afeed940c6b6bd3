package bussinbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/Sam-oo1/bussinBank/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// testNow is the fixed clock of every test: Sunday 2025-06-15.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

var testToday = date.New(2025, time.June, 15)

// memStorage is an in-memory Storage that can be told to fail.
type memStorage struct {
	data  *LedgerData
	saves int
	fail  error
}

func (m *memStorage) Load() (*LedgerData, error) {
	if m.data == nil {
		return nil, fmt.Errorf("empty memory storage: %w", fs.ErrNotExist)
	}
	return m.data.Clone(), nil
}

func (m *memStorage) Save(l *LedgerData) error {
	if m.fail != nil {
		return &PersistenceError{Op: "write", Path: "memory", Err: m.fail}
	}
	m.saves++
	m.data = l.Clone()
	return nil
}

var errDiskFull = errors.New("disk full")

// raw builds a RawTransaction for tests.
func raw(on, amount, account string, kind TransactionType, category string) RawTransaction {
	return RawTransaction{
		Date:      on,
		Amount:    json.Number(amount),
		AccountID: account,
		Type:      string(kind),
		Category:  category,
	}
}

// newTestStore returns a store on memory storage with a checking account
// "chase" holding opening, and a savings account "ally" holding 1000.
func newTestStore(t *testing.T, opening string) (*Store, *memStorage) {
	t.Helper()
	storage := &memStorage{}
	s, err := Open(storage, WithClock(testClock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ctx := context.Background()
	if _, err := s.OpenAccount(ctx, AccountInput{ID: "chase", Name: "Chase Checking", Type: "checking", OpeningBalance: json.Number(opening)}); err != nil {
		t.Fatalf("OpenAccount(chase) failed: %v", err)
	}
	if _, err := s.OpenAccount(ctx, AccountInput{ID: "ally", Name: "Ally Savings", Type: "savings", OpeningBalance: "1000"}); err != nil {
		t.Fatalf("OpenAccount(ally) failed: %v", err)
	}
	return s, storage
}

// mustAdd records transactions or fails the test.
func mustAdd(t *testing.T, s *Store, txs ...RawTransaction) {
	t.Helper()
	for _, r := range txs {
		if _, err := s.AddTransaction(context.Background(), r); err != nil {
			t.Fatalf("AddTransaction(%+v) failed: %v", r, err)
		}
	}
}

// jsonNumber converts a test literal, "" stays empty.
func jsonNumber(s string) json.Number { return json.Number(s) }
