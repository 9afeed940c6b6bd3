// Package events publishes the transactions committed to a ledger.
//
// Recorders plug into the store with bussinbank.WithRecorder, and are
// called after the ledger is durably saved.
package events

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
)

// TransactionRecorded is the event published for a committed transaction.
type TransactionRecorded struct {
	ID         string           `json:"id"`
	Date       date.Date        `json:"date"`
	AccountID  string           `json:"account_id"`
	Amount     bussinbank.Money `json:"amount"`
	Currency   string           `json:"currency"`
	Type       string           `json:"type"`
	Category   string           `json:"category"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// NewTransactionRecorded returns the event of tx committed at.
func NewTransactionRecorded(tx bussinbank.Transaction, at time.Time) TransactionRecorded {
	return TransactionRecorded{
		ID:         tx.ID(),
		Date:       tx.Date(),
		AccountID:  tx.AccountID(),
		Amount:     tx.Amount(),
		Currency:   tx.Amount().Currency(),
		Type:       string(tx.Type()),
		Category:   tx.Category(),
		RecordedAt: at.UTC(),
	}
}

// Nop discards every transaction.
type Nop struct{}

func (Nop) Record(context.Context, bussinbank.Transaction) error { return nil }

// Memory keeps the events in memory.
type Memory struct {
	mu     sync.Mutex
	now    func() time.Time
	events []TransactionRecorded
}

// NewMemory returns an empty Memory recorder stamping events with now.
func NewMemory(now func() time.Time) *Memory { return &Memory{now: now} }

func (m *Memory) Record(_ context.Context, tx bussinbank.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, NewTransactionRecorded(tx, m.now()))
	return nil
}

// Events returns the recorded events, oldest first.
func (m *Memory) Events() []TransactionRecorded {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

var (
	_ bussinbank.TransactionRecorder = Nop{}
	_ bussinbank.TransactionRecorder = (*Memory)(nil)
	_ bussinbank.TransactionRecorder = (*KafkaRecorder)(nil)
)
