// Package sqlite persists transactions in a SQLite database. Save
// replaces the stored set inside one database transaction so the table
// always mirrors the last saved ledger.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage"

	_ "modernc.org/sqlite"
)

// Dates are stored in ISO form so lexical order matches date order.
const dateColumnLayout = "2006-01-02"

type Store struct {
	db     *sql.DB
	policy storage.LoadPolicy
	logger *slog.Logger
}

func Open(path string, policy storage.LoadPolicy, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, policy: policy, logger: logger}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns all stored transactions in insertion order. Rows that no
// longer parse into a valid transaction follow the load policy: skipped
// with a warning or treated as a load failure.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tx_date, category, description, kind, amount_cents
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.Transaction
	for rows.Next() {
		var (
			id                               int64
			day, category, description, kind string
			cents                            int64
		)
		if err := rows.Scan(&id, &day, &category, &description, &kind, &cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := parseRow(day, category, description, kind, cents)
		if err != nil {
			if s.policy == storage.PolicyStrict {
				return nil, fmt.Errorf("transaction %d: %w: %v", id, storage.ErrMalformedRecord, err)
			}
			s.logger.Warn("skipping malformed record", "id", id, "error", err)
			continue
		}
		records = append(records, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

func parseRow(day, category, description, kind string, cents int64) (core.Transaction, error) {
	when, err := time.Parse(dateColumnLayout, day)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("bad date %q", day)
	}
	k, err := core.ParseKind(kind)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(core.Date{Time: when}, category, description, k, core.Money{Cents: cents})
}

// Save replaces the stored transactions with records.
func (s *Store) Save(ctx context.Context, records []core.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (tx_date, category, description, kind, amount_cents)
			VALUES (?, ?, ?, ?, ?)`,
			rec.Date.Format(dateColumnLayout),
			rec.Category,
			rec.Description,
			string(rec.Kind),
			rec.Amount.Cents,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}
	return nil
}
