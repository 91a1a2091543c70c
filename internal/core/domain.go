package core

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// DateLayout is the wire format for calendar dates. The flat file, every
// prompt and every listing all use DD/MM/YYYY.
const DateLayout = "02/01/2006"

type (
	Kind string

	// Date is a calendar day pinned to midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is one income or expense entry in the ledger. The sign of
	// the amount is carried by Kind; Amount itself is always a magnitude.
	Transaction struct {
		Date        Date
		Category    string
		Description string
		Kind        Kind
		Amount      Money
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("kind must be income or expense")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
)

var titleCaser = cases.Title(language.English)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a DD/MM/YYYY string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date in the DD/MM/YYYY wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// ParseKind parses "income" or "expense", ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) Validate() error {
	if k != Income && k != Expense {
		return ErrInvalidKind
	}
	return nil
}

// Title returns the display form of the kind ("Income", "Expense").
func (k Kind) Title() string {
	return titleCaser.String(string(k))
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeCategory trims and title-cases a category label so "food",
// " FOOD " and "Food" all store and match as the same category.
func NormalizeCategory(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// NewTransaction normalizes the inputs and returns a validated record.
// Every path that creates a Transaction (interactive entry and the storage
// loaders) goes through here, so normalization is applied exactly once.
func NewTransaction(date Date, category, description string, kind Kind, amount Money) (Transaction, error) {
	tx := Transaction{
		Date:        date,
		Category:    NormalizeCategory(category),
		Description: strings.TrimSpace(description),
		Kind:        kind,
		Amount:      amount,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return t.Amount.Validate()
}

// Signed returns the amount with its sign applied: positive for income,
// negative for expense. Aggregations sum these to get a net balance.
func (t Transaction) Signed() int64 {
	if t.Kind == Income {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}
