// Package query implements read-only views over a set of transactions:
// filtering by category or date range and aggregate summaries. All
// functions leave their input untouched and return fresh slices.
package query

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidRange    = errors.New("start date after end date")
)

// Sorted returns a copy of records ordered newest first. Records sharing
// a date keep their relative insertion order.
func Sorted(records []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// Categories returns the distinct category names in the order they first
// appear in records.
func Categories(records []core.Transaction) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tx := range records {
		if seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		out = append(out, tx.Category)
	}
	return out
}

// ResolveCategory maps a user-supplied token to a known category name.
// A numeric token selects by 1-based position in the Categories listing;
// anything else matches a name ignoring case and surrounding spaces.
func ResolveCategory(records []core.Transaction, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty selection", ErrUnknownCategory)
	}

	names := Categories(records)
	if idx, err := strconv.Atoi(token); err == nil {
		if idx < 1 || idx > len(names) {
			return "", fmt.Errorf("%w: number %d out of range", ErrUnknownCategory, idx)
		}
		return names[idx-1], nil
	}
	for _, name := range names {
		if strings.EqualFold(name, token) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, token)
}

// ByCategory returns the transactions whose category matches token,
// newest first. Token resolution follows ResolveCategory.
func ByCategory(records []core.Transaction, token string) ([]core.Transaction, error) {
	name, err := ResolveCategory(records, token)
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, tx := range records {
		if tx.Category == name {
			out = append(out, tx)
		}
	}
	return Sorted(out), nil
}

// ByDateRange returns the transactions dated within [start, end],
// bounds included, newest first.
func ByDateRange(records []core.Transaction, start, end core.Date) ([]core.Transaction, error) {
	if start.After(end.Time) {
		return nil, ErrInvalidRange
	}
	var out []core.Transaction
	for _, tx := range records {
		if tx.Date.Before(start.Time) || tx.Date.After(end.Time) {
			continue
		}
		out = append(out, tx)
	}
	return Sorted(out), nil
}

// SumTotals adds up income, expenses and the signed net balance.
func SumTotals(records []core.Transaction) core.Totals {
	var t core.Totals
	for _, tx := range records {
		switch tx.Kind {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expenses.Cents += tx.Amount.Cents
		}
		t.Net.Cents += tx.Signed()
	}
	return t
}

// Summarize computes the overall statistics: record count, totals and
// the distinct categories in first-seen order.
func Summarize(records []core.Transaction) core.Summary {
	totals := SumTotals(records)
	return core.Summary{
		Transactions: len(records),
		Income:       totals.Income,
		Expenses:     totals.Expenses,
		Net:          totals.Net,
		Categories:   Categories(records),
	}
}

// SummarizeByCategory aggregates per-category counts and totals, keeping
// categories in the order they first appear in records.
func SummarizeByCategory(records []core.Transaction) []core.CategoryTotal {
	idx := make(map[string]int)
	var out []core.CategoryTotal
	for _, tx := range records {
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, core.CategoryTotal{Category: tx.Category})
		}
		out[i].Count++
		switch tx.Kind {
		case core.Income:
			out[i].Income.Cents += tx.Amount.Cents
		case core.Expense:
			out[i].Expenses.Cents += tx.Amount.Cents
		}
		out[i].Net.Cents += tx.Signed()
	}
	return out
}
