package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage/memory"
)

func TestOpenLoadsExistingRecords(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	seed := []core.Transaction{
		{Date: core.NewDate(2025, 7, 1), Category: "Food", Description: "Lunch", Kind: core.Expense, Amount: core.Money{Cents: 1550}},
	}
	if err := backend.Save(ctx, seed); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	l, err := Open(ctx, backend)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
}

func TestAddValidatesAndNormalizes(t *testing.T) {
	l, err := Open(context.Background(), memory.New())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	stored, err := l.Add(core.Transaction{
		Date:        core.NewDate(2025, 7, 2),
		Category:    "  groceries ",
		Description: " weekly shop ",
		Kind:        core.Expense,
		Amount:      core.Money{Cents: 7550},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if stored.Category != "Groceries" || stored.Description != "weekly shop" {
		t.Fatalf("not normalized: %+v", stored)
	}

	_, err = l.Add(core.Transaction{Date: core.NewDate(2025, 7, 2), Category: " ", Description: "d", Kind: core.Expense, Amount: core.Money{Cents: 1}})
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("invalid add changed ledger, len = %d", l.Len())
	}
}

func TestSaveWritesThrough(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	l, err := Open(ctx, backend)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Add(core.Transaction{Date: core.NewDate(2025, 7, 3), Category: "Rent", Description: "July", Kind: core.Expense, Amount: core.Money{Cents: 120000}}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Nothing reaches the backend before Save.
	stored, _ := backend.Load(ctx)
	if len(stored) != 0 {
		t.Fatalf("backend written before save: %d records", len(stored))
	}

	if err := l.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	stored, _ = backend.Load(ctx)
	if len(stored) != 1 || stored[0].Category != "Rent" {
		t.Fatalf("backend contents: %+v", stored)
	}
}

func TestTransactionsReturnsCopy(t *testing.T) {
	l, err := Open(context.Background(), memory.New())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Add(core.Transaction{Date: core.NewDate(2025, 7, 3), Category: "Food", Description: "Lunch", Kind: core.Expense, Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := l.Transactions()
	got[0].Description = "mutated"
	if l.Transactions()[0].Description != "Lunch" {
		t.Fatalf("ledger mutated through returned slice")
	}
}

type failBackend struct{}

func (failBackend) Load(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("disk gone")
}
func (failBackend) Save(context.Context, []core.Transaction) error {
	return errors.New("disk gone")
}
func (failBackend) Close() error { return nil }

func TestOpenPropagatesLoadError(t *testing.T) {
	if _, err := Open(context.Background(), failBackend{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSavePropagatesBackendError(t *testing.T) {
	l := &Ledger{backend: failBackend{}}
	if err := l.Save(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
