package bussinbank

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Seed is a YAML document listing accounts, goals and transactions to add to a ledger.
//
//	accounts:
//	  - id: chase
//	    name: Chase Checking
//	    type: checking
//	    opening_balance: 5000
//	transactions:
//	  - date: 2025-06-01
//	    amount: -42.10
//	    category: food:groceries
//	    account_id: chase
//	    type: expense
type Seed struct {
	Accounts     []AccountInput   `yaml:"accounts"`
	Goals        []GoalInput      `yaml:"goals"`
	Transactions []RawTransaction `yaml:"transactions"`
}

// DecodeSeed reads a YAML seed document, unknown fields are rejected.
func DecodeSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode seed: %w", err)
	}
	return &seed, nil
}

// ImportSummary counts what an import added.
type ImportSummary struct {
	Accounts     int `json:"accounts"`
	Goals        int `json:"goals"`
	Transactions int `json:"transactions"`
}

// Import opens the seed accounts, sets its goals and records its transactions,
// in that order, each through the regular mutation path. It stops at the
// first failure, what was imported before stays committed.
func (s *Store) Import(ctx context.Context, seed *Seed) (ImportSummary, error) {
	var sum ImportSummary
	for i, in := range seed.Accounts {
		if _, err := s.OpenAccount(ctx, in); err != nil {
			return sum, fmt.Errorf("account #%d %q: %w", i, in.ID, err)
		}
		sum.Accounts++
	}
	for i, in := range seed.Goals {
		if _, err := s.SetGoal(ctx, in); err != nil {
			return sum, fmt.Errorf("goal #%d %q: %w", i, in.Name, err)
		}
		sum.Goals++
	}
	for i, raw := range seed.Transactions {
		if _, err := s.AddTransaction(ctx, raw); err != nil {
			return sum, fmt.Errorf("transaction #%d: %w", i, err)
		}
		sum.Transactions++
	}
	return sum, nil
}
