// Package export writes a ledger into other formats for analysis.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sam-oo1/bussinBank"
	_ "modernc.org/sqlite"
)

// Schema is the SQLite schema of an exported ledger. Amounts are TEXT
// decimal strings, so that no precision is lost.
const Schema = `
CREATE TABLE metadata (
  schema_version INTEGER NOT NULL,
  currency       TEXT NOT NULL,
  created_at     TEXT NOT NULL,
  last_updated   TEXT NOT NULL
);
CREATE TABLE accounts (
  id                   TEXT PRIMARY KEY,
  name                 TEXT NOT NULL,
  type                 TEXT NOT NULL,
  balance              TEXT NOT NULL,
  opening_balance      TEXT NOT NULL,
  currency             TEXT NOT NULL,
  institution          TEXT NOT NULL,
  is_active            INTEGER NOT NULL,
  include_in_net_worth INTEGER NOT NULL,
  credit_limit         TEXT NOT NULL
);
CREATE TABLE transactions (
  seq          INTEGER PRIMARY KEY,
  id           TEXT NOT NULL UNIQUE,
  date         TEXT NOT NULL,
  amount       TEXT NOT NULL,
  description  TEXT NOT NULL,
  merchant     TEXT NOT NULL,
  category     TEXT NOT NULL,
  top_category TEXT NOT NULL,
  account_id   TEXT NOT NULL REFERENCES accounts(id),
  type         TEXT NOT NULL,
  tags         TEXT NOT NULL,
  notes        TEXT NOT NULL
);
CREATE TABLE goals (
  id                   TEXT PRIMARY KEY,
  name                 TEXT NOT NULL,
  description          TEXT NOT NULL,
  target_amount        TEXT NOT NULL,
  current_amount       TEXT NOT NULL,
  target_date          TEXT,
  priority             TEXT NOT NULL,
  status               TEXT NOT NULL,
  monthly_contribution TEXT NOT NULL,
  created_at           TEXT NOT NULL
);
`

// ToSQLite writes l into a new SQLite database at path, in a single database
// transaction. It refuses to overwrite an existing file.
func ToSQLite(ctx context.Context, path string, l *bussinbank.LedgerData) (err error) {
	if strings.TrimSpace(path) == "" {
		return errors.New("export path is required")
	}
	path = filepath.Clean(path)
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("export file %q already exists", path)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close sqlite db: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := write(ctx, tx, l); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func amount(m bussinbank.Money) string { return m.Decimal().StringFixed(2) }

func write(ctx context.Context, tx *sql.Tx, l *bussinbank.LedgerData) error {
	if _, err := tx.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO metadata (schema_version, currency, created_at, last_updated) VALUES (?, ?, ?, ?)`,
		l.Metadata.SchemaVersion, l.Metadata.Currency,
		l.Metadata.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		l.Metadata.LastUpdated.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}

	for _, a := range l.SortedAccounts() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, type, balance, opening_balance, currency, institution, is_active, include_in_net_worth, credit_limit)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, string(a.Type), amount(a.Balance), amount(a.OpeningBalance), a.Currency,
			a.Institution, a.IsActive, a.IncludeInNetWorth, amount(a.CreditLimit),
		)
		if err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
	}

	for i, t := range l.Transactions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (seq, id, date, amount, description, merchant, category, top_category, account_id, type, tags, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i+1, t.ID(), t.Date().String(), amount(t.Amount()), t.Description(), t.Merchant(),
			t.Category(), t.TopCategory(), t.AccountID(), string(t.Type()), strings.Join(t.Tags(), ","), t.Notes(),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID(), err)
		}
	}

	for _, g := range l.SortedGoals() {
		var targetDate sql.NullString
		if !g.TargetDate.IsZero() {
			targetDate = sql.NullString{String: g.TargetDate.String(), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO goals (id, name, description, target_amount, current_amount, target_date, priority, status, monthly_contribution, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Description, amount(g.TargetAmount), amount(g.CurrentAmount), targetDate,
			string(g.Priority), string(g.Status), amount(g.MonthlyContribution),
			g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		)
		if err != nil {
			return fmt.Errorf("insert goal %s: %w", g.ID, err)
		}
	}
	return nil
}
