package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openStore(t *testing.T, path string, policy storage.LoadPolicy) *Store {
	t.Helper()
	store, err := Open(path, policy, testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadFreshDatabase(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "tracker.db"), storage.PolicySkip)
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty load, got %d records", len(got))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "tracker.db"), storage.PolicyStrict)
	ctx := context.Background()

	records := []core.Transaction{
		{Date: core.NewDate(2025, 7, 1), Category: "Food", Description: "Lunch", Kind: core.Expense, Amount: core.Money{Cents: 1550}},
		{Date: core.NewDate(2025, 7, 14), Category: "Wages", Description: "Pay", Kind: core.Income, Amount: core.Money{Cents: 250000}},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestSaveReplacesPreviousSet(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "tracker.db"), storage.PolicySkip)
	ctx := context.Background()

	first := []core.Transaction{
		{Date: core.NewDate(2025, 1, 1), Category: "Food", Description: "A", Kind: core.Expense, Amount: core.Money{Cents: 100}},
		{Date: core.NewDate(2025, 1, 2), Category: "Food", Description: "B", Kind: core.Expense, Amount: core.Money{Cents: 200}},
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, first[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "A" {
		t.Fatalf("got %+v, want single record A", got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store, err := Open(path, storage.PolicySkip, testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	records := []core.Transaction{
		{Date: core.NewDate(2025, 3, 10), Category: "Rent", Description: "March", Kind: core.Expense, Amount: core.Money{Cents: 120000}},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openStore(t, path, storage.PolicySkip)
	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if len(got) != 1 || got[0] != records[0] {
		t.Fatalf("got %+v, want %+v", got, records)
	}
}

func TestLoadPolicyOnMalformedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store := openStore(t, path, storage.PolicySkip)
	records := []core.Transaction{
		{Date: core.NewDate(2025, 7, 1), Category: "Food", Description: "Lunch", Kind: core.Expense, Amount: core.Money{Cents: 1550}},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}
	// The date column has no format constraint, so a row written by
	// another tool can hold a date this loader cannot parse.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO transactions (tx_date, category, description, kind, amount_cents)
		VALUES ('not-a-date', 'Food', 'Broken', 'expense', 100)`)
	if err != nil {
		t.Fatalf("inject bad row: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("skip policy load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Lunch" {
		t.Fatalf("skip policy kept wrong rows: %+v", got)
	}

	strict := openStore(t, path, storage.PolicyStrict)
	if _, err := strict.Load(ctx); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestLoadPolicyOnInvalidRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store := openStore(t, path, storage.PolicySkip)
	records := []core.Transaction{
		{Date: core.NewDate(2025, 7, 1), Category: "Food", Description: "Lunch", Kind: core.Expense, Amount: core.Money{Cents: 1550}},
	}
	if err := store.Save(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}
	// The schema cannot reject an empty category, but the domain does.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO transactions (tx_date, category, description, kind, amount_cents)
		VALUES ('2025-07-02', '', 'No category', 'expense', 100)`)
	if err != nil {
		t.Fatalf("inject invalid row: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("skip policy load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "Lunch" {
		t.Fatalf("skip policy kept wrong rows: %+v", got)
	}
	for _, tx := range got {
		if err := tx.Validate(); err != nil {
			t.Fatalf("loaded record fails validation: %v", err)
		}
	}

	strict := openStore(t, path, storage.PolicyStrict)
	if _, err := strict.Load(ctx); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestLoadNormalizesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	store := openStore(t, path, storage.PolicyStrict)
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO transactions (tx_date, category, description, kind, amount_cents)
		VALUES ('2025-07-01', ' food ', 'Lunch', 'expense', 1550)`)
	if err != nil {
		t.Fatalf("inject row: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("load: %v (%d records)", err, len(got))
	}
	if got[0].Category != "Food" {
		t.Fatalf("category not normalized: %q", got[0].Category)
	}
}
