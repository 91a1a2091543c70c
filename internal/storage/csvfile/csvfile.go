// Package csvfile persists transactions to a single CSV file. The file
// carries a header row and columns are matched by name, so column order
// does not matter on load. Save rewrites the whole file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/storage"
)

var header = []string{"date", "category", "description", "kind", "amount"}

type Store struct {
	path   string
	policy storage.LoadPolicy
	logger *slog.Logger
}

func New(path string, policy storage.LoadPolicy, logger *slog.Logger) *Store {
	return &Store{path: path, policy: policy, logger: logger}
}

// Load reads every transaction from the file. A missing file is not an
// error: the tracker starts with an empty ledger. Malformed rows are
// skipped with a warning or abort the load, depending on the policy.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("transactions file not found, starting empty", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	return s.read(f)
}

// read parses the stream. Only *csv.ParseError is row-scoped; any other
// read error means the source itself failed and aborts the load no
// matter the policy.
func (s *Store) read(r io.Reader) ([]core.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	head, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", s.path, err)
	}
	cols, err := mapHeader(head)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []core.Transaction
	for row := 2; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("read %s: %w", s.path, err)
			}
		} else {
			var tx core.Transaction
			tx, err = parseRow(cols, rec)
			if err == nil {
				records = append(records, tx)
				continue
			}
		}
		if s.policy == storage.PolicyStrict {
			return nil, fmt.Errorf("%s row %d: %w: %v", s.path, row, storage.ErrMalformedRecord, err)
		}
		s.logger.Warn("skipping malformed record", "path", s.path, "row", row, "error", err)
	}
	return records, nil
}

// Save writes all records back to the file, replacing its contents.
func (s *Store) Save(ctx context.Context, records []core.Transaction) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	w.Write(header)
	for _, tx := range records {
		w.Write([]string{
			tx.Date.String(),
			tx.Category,
			tx.Description,
			string(tx.Kind),
			tx.Amount.Decimal(),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

type columns struct {
	date, category, description, kind, amount int
}

func mapHeader(head []string) (columns, error) {
	cols := columns{date: -1, category: -1, description: -1, kind: -1, amount: -1}
	for i, name := range head {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "category":
			cols.category = i
		case "description":
			cols.description = i
		case "kind":
			cols.kind = i
		case "amount":
			cols.amount = i
		}
	}
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"date", cols.date},
		{"category", cols.category},
		{"description", cols.description},
		{"kind", cols.kind},
		{"amount", cols.amount},
	} {
		if col.idx < 0 {
			return columns{}, fmt.Errorf("header missing %q column", col.name)
		}
	}
	return cols, nil
}

func parseRow(cols columns, rec []string) (core.Transaction, error) {
	for _, idx := range []int{cols.date, cols.category, cols.description, cols.kind, cols.amount} {
		if idx >= len(rec) {
			return core.Transaction{}, errors.New("too few fields")
		}
	}
	date, err := core.ParseDate(rec[cols.date])
	if err != nil {
		return core.Transaction{}, err
	}
	kind, err := core.ParseKind(rec[cols.kind])
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseAmount(rec[cols.amount])
	if err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(date, rec[cols.category], rec[cols.description], kind, amount)
}
