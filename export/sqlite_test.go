package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/google/go-cmp/cmp"
)

func newLedger(t *testing.T) *bussinbank.LedgerData {
	t.Helper()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	s, err := bussinbank.OpenFile(filepath.Join(t.TempDir(), "ledger.json"), bussinbank.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	seed := &bussinbank.Seed{
		Accounts: []bussinbank.AccountInput{
			{ID: "chase", Name: "Chase", Type: "checking", OpeningBalance: "5000"},
			{ID: "amex", Name: "Amex", Type: "credit_card", CreditLimit: "3000"},
		},
		Goals: []bussinbank.GoalInput{
			{ID: "trip", Name: "Trip", TargetAmount: "3000", TargetDate: "2025-12-01"},
			{ID: "fund", Name: "Fund", TargetAmount: "10000"},
		},
		Transactions: []bussinbank.RawTransaction{
			{Date: "2025-06-01", Amount: "-42.10", AccountID: "chase", Type: "expense", Category: "food:groceries", Tags: []string{"weekly", "food"}},
			{Date: "2025-06-02", Amount: "-0.005", AccountID: "amex", Type: "adjustment"},
		},
	}
	if _, err := s.Import(context.Background(), seed); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	return s.Snapshot()
}

func TestToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	if err := ToSQLite(context.Background(), path, newLedger(t)); err != nil {
		t.Fatalf("ToSQLite() failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	defer db.Close()

	var balance, credit string
	if err := db.QueryRow(`SELECT balance, credit_limit FROM accounts WHERE id = 'amex'`).Scan(&balance, &credit); err != nil {
		t.Fatalf("query accounts failed: %v", err)
	}
	if balance != "0.00" || credit != "3000.00" {
		t.Errorf("amex balance, credit_limit = %s, %s, want 0.00, 3000.00", balance, credit)
	}

	rows, err := db.Query(`SELECT amount, top_category, tags FROM transactions ORDER BY seq`)
	if err != nil {
		t.Fatalf("query transactions failed: %v", err)
	}
	defer rows.Close()
	var got [][3]string
	for rows.Next() {
		var r [3]string
		if err := rows.Scan(&r[0], &r[1], &r[2]); err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	want := [][3]string{
		{"-42.10", "food", "food,weekly"},
		{"0.00", "uncategorized", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transactions mismatch (-want +got):\n%s", diff)
	}

	var dated, undated int
	if err := db.QueryRow(`SELECT COUNT(target_date), COUNT(*) - COUNT(target_date) FROM goals`).Scan(&dated, &undated); err != nil {
		t.Fatalf("query goals failed: %v", err)
	}
	if dated != 1 || undated != 1 {
		t.Errorf("goals with and without target date = %d, %d, want 1, 1", dated, undated)
	}
}

func TestToSQLite_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	if err := os.WriteFile(path, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ToSQLite(context.Background(), path, newLedger(t)); err == nil {
		t.Fatalf("ToSQLite() over an existing file should fail")
	}
	if b, _ := os.ReadFile(path); string(b) != "keep me" {
		t.Errorf("the existing file was modified: %q", b)
	}
}
