// Package storage defines the port implemented by the persistence
// backends under csvfile, sqlite and memory.
package storage

import (
	"context"
	"errors"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
)

// ErrMalformedRecord marks a stored record that cannot be parsed back
// into a transaction.
var ErrMalformedRecord = errors.New("malformed record")

// LoadPolicy controls what a backend does with malformed records.
type LoadPolicy string

const (
	// PolicySkip drops malformed records with a warning and keeps loading.
	PolicySkip LoadPolicy = "skip"
	// PolicyStrict aborts the load on the first malformed record.
	PolicyStrict LoadPolicy = "strict"
)

// Ports for persistence adapters.
type (
	// Backend loads and saves the full transaction set. Load returns no
	// error when the underlying store does not exist yet; Save replaces
	// the stored set wholesale.
	Backend interface {
		Load(ctx context.Context) ([]core.Transaction, error)
		Save(ctx context.Context, records []core.Transaction) error
		Close() error
	}
)
