package bussinbank

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_AddTransaction(t *testing.T) {
	s, storage := newTestStore(t, "5000")
	before := s.Snapshot()

	tx, err := s.AddTransaction(context.Background(), raw("2025-06-10", "-42.10", "chase", Expense, "food:groceries"))
	if err != nil {
		t.Fatalf("AddTransaction() failed: %v", err)
	}
	if got, want := tx.Amount(), USD(-42.10); !got.Equal(want) {
		t.Errorf("Amount() = %v, want %v", got, want)
	}

	after := s.Snapshot()
	want := before.Accounts["chase"].Balance.Add(tx.Amount())
	if got := after.Accounts["chase"].Balance; !got.Equal(want) {
		t.Errorf("balance = %v, want %v", got, want)
	}
	if got := after.Accounts["ally"].Balance; !got.Equal(before.Accounts["ally"].Balance) {
		t.Errorf("an unrelated account moved to %v", got)
	}
	if !after.Metadata.LastUpdated.Equal(testNow) {
		t.Errorf("LastUpdated = %v, want %v", after.Metadata.LastUpdated, testNow)
	}

	// the persisted ledger reproduces the same sequence.
	reloaded, err := Open(storage, WithClock(testClock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if diff := cmp.Diff(s.Transactions(), reloaded.Transactions()); diff != "" {
		t.Errorf("persisted transactions mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AddTransaction_Rejected(t *testing.T) {
	testCases := []struct {
		name    string
		raw     RawTransaction
		wantErr error
	}{
		{name: "sign contradicts type", raw: raw("2025-06-10", "42", "chase", Expense, "food")},
		{name: "unknown account", raw: raw("2025-06-10", "-42", "bofa", Expense, "food"), wantErr: ErrUnknownAccount},
		{name: "duplicate id", raw: RawTransaction{ID: "first", Date: "2025-06-10", Amount: "-1", AccountID: "chase", Type: "expense"}, wantErr: ErrDuplicateID},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, storage := newTestStore(t, "5000")
			mustAdd(t, s, RawTransaction{ID: "first", Date: "2025-06-01", Amount: "-1", AccountID: "chase", Type: "expense"})
			before, saves := s.Snapshot(), storage.saves

			_, err := s.AddTransaction(context.Background(), tc.raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("AddTransaction() error = %v, want a *ValidationError", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("AddTransaction() error = %v, want %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
				t.Errorf("a rejected transaction changed the ledger (-want +got):\n%s", diff)
			}
			if storage.saves != saves {
				t.Errorf("a rejected transaction was persisted")
			}
		})
	}
}

func TestStore_AddTransaction_PersistenceFailure(t *testing.T) {
	s, storage := newTestStore(t, "5000")
	before := s.Snapshot()
	storage.fail = errDiskFull

	_, err := s.AddTransaction(context.Background(), raw("2025-06-10", "-42", "chase", Expense, "food"))
	var perr *PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, errDiskFull) {
		t.Fatalf("AddTransaction() error = %v, want a *PersistenceError wrapping %v", err, errDiskFull)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("a failed save changed the ledger (-want +got):\n%s", diff)
	}
}

func TestStore_OpenAccount(t *testing.T) {
	s, _ := newTestStore(t, "5000")
	ctx := context.Background()

	_, err := s.OpenAccount(ctx, AccountInput{ID: "chase", Name: "Again", Type: "checking"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("OpenAccount() on an existing id error = %v, want %v", err, ErrDuplicateID)
	}
	_, err = s.OpenAccount(ctx, AccountInput{ID: "n26", Name: "N26", Type: "checking", Currency: "EUR"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "currency" {
		t.Errorf("OpenAccount() in another currency error = %v, want invalid currency", err)
	}
	_, err = s.OpenAccount(ctx, AccountInput{ID: "x", Name: "X", Type: "mattress"})
	if !errors.As(err, &verr) || verr.Field != "type" {
		t.Errorf("OpenAccount() with an unknown type error = %v, want invalid type", err)
	}

	no := false
	a, err := s.OpenAccount(ctx, AccountInput{ID: "loan", Name: "Student Loan", Type: "loan", OpeningBalance: "-20000", IncludeInNetWorth: &no})
	if err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	if a.IncludeInNetWorth || !a.IsActive || !a.Balance.Equal(USD(-20000)) {
		t.Errorf("OpenAccount() = %+v", a)
	}
	if got, want := s.NetWorth(), USD(6000); !got.Equal(want) {
		t.Errorf("NetWorth() = %v, want %v", got, want)
	}
}

func TestStore_FirstAccountSetsCurrency(t *testing.T) {
	s, err := Open(&memStorage{}, WithClock(testClock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.OpenAccount(context.Background(), AccountInput{ID: "n26", Name: "N26", Type: "checking", Currency: "eur", OpeningBalance: "10"}); err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	if got, want := s.NetWorth(), M(10, "EUR"); !got.Equal(want) {
		t.Errorf("NetWorth() = %v, want %v", got, want)
	}
}

func TestStore_SetGoal_Replaces(t *testing.T) {
	s, _ := newTestStore(t, "5000")
	ctx := context.Background()
	first, err := s.SetGoal(ctx, GoalInput{ID: "trip", Name: "Trip", TargetAmount: "1000"})
	if err != nil {
		t.Fatalf("SetGoal() failed: %v", err)
	}
	second, err := s.SetGoal(ctx, GoalInput{ID: "trip", Name: "Trip", TargetAmount: "1500", CurrentAmount: "100"})
	if err != nil {
		t.Fatalf("SetGoal() failed: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("replacing a goal must keep its creation time")
	}
	goals := s.Goals()
	if len(goals) != 1 || !goals[0].TargetAmount.Equal(USD(1500)) {
		t.Errorf("Goals() = %+v, want the replaced goal only", goals)
	}
}

// TestStore_Scenario is a checking account with $5000 and a negative net flow over the trailing 90 days.
func TestStore_Scenario(t *testing.T) {
	s, err := Open(&memStorage{}, WithClock(testClock))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.OpenAccount(context.Background(), AccountInput{ID: "chase", Name: "Chase", Type: "checking", OpeningBalance: "5300"}); err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	mustAdd(t, s,
		raw("2025-05-01", "1000", "chase", Income, "salary"),
		raw("2025-06-01", "-1300", "chase", Expense, "rent"),
	)
	if got := s.NetWorth(); !got.Equal(USD(5000)) {
		t.Fatalf("NetWorth() = %v, want $5,000.00", got)
	}
	days, ok := s.RunwayDays().Value()
	if !ok || days <= 0 {
		t.Errorf("RunwayDays() = %v, %v, want a finite positive number of days", days, ok)
	}
}

type recorderFunc func(ctx context.Context, tx Transaction) error

func (f recorderFunc) Record(ctx context.Context, tx Transaction) error { return f(ctx, tx) }

func TestStore_Recorder(t *testing.T) {
	var recorded []Transaction
	rec := recorderFunc(func(_ context.Context, tx Transaction) error {
		recorded = append(recorded, tx)
		return errors.New("broker down")
	})
	storage := &memStorage{}
	s, err := Open(storage, WithClock(testClock), WithRecorder(rec))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.OpenAccount(context.Background(), AccountInput{ID: "chase", Name: "Chase", Type: "checking"}); err != nil {
		t.Fatalf("OpenAccount() failed: %v", err)
	}
	tx, err := s.AddTransaction(context.Background(), raw("2025-06-01", "10", "chase", Income, ""))
	if err != nil {
		t.Fatalf("a recorder failure must not fail the transaction: %v", err)
	}
	if len(recorded) != 1 || !recorded[0].Equal(tx) {
		t.Errorf("recorded = %v, want [%v]", recorded, tx)
	}
	_, _ = s.AddTransaction(context.Background(), raw("2025-06-01", "10", "nope", Income, ""))
	if len(recorded) != 1 {
		t.Errorf("a rejected transaction must not be recorded")
	}
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s, _ := newTestStore(t, "0")
	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := raw("2025-06-01", "1", "chase", Income, "")
			r.ID = fmt.Sprintf("tx-%d", i)
			if _, err := s.AddTransaction(context.Background(), r); err != nil {
				t.Errorf("AddTransaction() failed: %v", err)
			}
			_ = s.NetWorth()
		}()
	}
	wg.Wait()
	if got := len(s.Transactions()); got != n {
		t.Errorf("got %d transactions, want %d", got, n)
	}
	if got := s.Snapshot().Accounts["chase"].Balance; !got.Equal(USD(n)) {
		t.Errorf("balance = %v, want %v", got, USD(n))
	}
	if err := s.Snapshot().Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}
