// Package ledger holds the transactions of a running session. It loads
// the full set from a storage backend once at start, collects additions
// in memory and writes everything back on save.
package ledger

import (
	"context"
	"fmt"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage"
)

type Ledger struct {
	backend storage.Backend
	records []core.Transaction
}

// Open loads the stored transactions through backend and returns a
// ledger positioned on them.
func Open(ctx context.Context, backend storage.Backend) (*Ledger, error) {
	records, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return &Ledger{backend: backend, records: records}, nil
}

// Add normalizes and validates tx, appends it and returns the record as
// stored. An invalid transaction leaves the ledger unchanged.
func (l *Ledger) Add(tx core.Transaction) (core.Transaction, error) {
	normalized, err := core.NewTransaction(tx.Date, tx.Category, tx.Description, tx.Kind, tx.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	l.records = append(l.records, normalized)
	return normalized, nil
}

// Save writes the current set back through the backend.
func (l *Ledger) Save(ctx context.Context) error {
	if err := l.backend.Save(ctx, l.records); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Transactions returns a copy of the current set in insertion order.
func (l *Ledger) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), l.records...)
}

func (l *Ledger) Len() int {
	return len(l.records)
}
