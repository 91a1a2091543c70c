package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/query"
)

func (m *Menu) viewAll() {
	m.renderListing("All Transactions", query.Sorted(m.ledger.Transactions()))
}

func (m *Menu) viewByCategory() {
	records := m.ledger.Transactions()
	names := query.Categories(records)
	if len(names) == 0 {
		fmt.Fprintln(m.out, "No categories found.")
		return
	}

	fmt.Fprintf(m.out, "\n%s\n", sepDash)
	fmt.Fprintln(m.out, "Available Categories:")
	fmt.Fprintln(m.out, sepDash)
	for i, name := range names {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, name)
	}

	fmt.Fprint(m.out, "\nEnter category number or type category name: ")
	token, ok := m.readLine()
	if !ok {
		return
	}

	matches, err := query.ByCategory(records, token)
	if err != nil {
		if _, numErr := strconv.Atoi(token); numErr == nil {
			fmt.Fprintln(m.out, "Invalid category number.")
		} else {
			fmt.Fprintf(m.out, "Unknown category '%s'.\n", token)
		}
		return
	}
	// A resolved category always has at least one record backing it.
	m.renderListing(fmt.Sprintf("Transactions in '%s' Category", matches[0].Category), matches)
}

func (m *Menu) viewByDateRange() {
	fmt.Fprintf(m.out, "\n%s\n", sepDash)
	fmt.Fprintln(m.out, "Enter Date Range")
	fmt.Fprintln(m.out, sepDash)

	start, ok := m.promptDate("Enter start date (DD/MM/YYYY): ")
	if !ok {
		return
	}
	end, ok := m.promptDate("Enter end date (DD/MM/YYYY): ")
	if !ok {
		return
	}

	matches, err := query.ByDateRange(m.ledger.Transactions(), start, end)
	if errors.Is(err, query.ErrInvalidRange) {
		fmt.Fprintln(m.out, "Start date must be before or equal to end date.")
		return
	}
	if err != nil {
		fmt.Fprintf(m.out, "Error viewing transactions by date range: %v\n", err)
		return
	}
	m.renderListing(fmt.Sprintf("Transactions from %s to %s", start, end), matches)
}

func (m *Menu) viewSummary() {
	s := query.Summarize(m.ledger.Transactions())

	fmt.Fprintf(m.out, "\n%s\n", sepDash)
	fmt.Fprintln(m.out, "Summary Statistics")
	fmt.Fprintln(m.out, sepDash)
	fmt.Fprintf(m.out, "Total Transactions: %d\n", s.Transactions)
	fmt.Fprintf(m.out, "Total Income: $%s\n", s.Income.Decimal())
	fmt.Fprintf(m.out, "Total Expenses: $%s\n", s.Expenses.Decimal())
	fmt.Fprintf(m.out, "Net Balance: $%s\n", s.Net.Decimal())
	fmt.Fprintf(m.out, "Categories: %d\n", len(s.Categories))
	if len(s.Categories) > 0 {
		fmt.Fprintf(m.out, "Category List: %s\n", strings.Join(s.Categories, ", "))
	}
}

func (m *Menu) viewCategorySummary() {
	rows := query.SummarizeByCategory(m.ledger.Transactions())
	if len(rows) == 0 {
		fmt.Fprintln(m.out, "No categories found.")
		return
	}

	fmt.Fprintf(m.out, "\n%s\n", sepDash)
	fmt.Fprintln(m.out, "Category Summary")
	fmt.Fprintln(m.out, sepDash)

	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tCount\tIncome\tExpenses\tNet")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t$%s\t$%s\t%s\n",
			row.Category, row.Count, row.Income.Decimal(), row.Expenses.Decimal(), suffixed(row.Net))
	}
	w.Flush()
}

// renderListing prints records as a table with a totals footer. Records
// are expected newest first.
func (m *Menu) renderListing(title string, records []core.Transaction) {
	fmt.Fprintf(m.out, "\n%s\n", title)
	if len(records) == 0 {
		fmt.Fprintln(m.out, "No transactions found.")
		return
	}
	fmt.Fprintln(m.out, sepWide)

	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tCategory\tDescription\tType\tAmount")
	for _, tx := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Category, tx.Description, tx.Kind.Title(), amountCell(tx))
	}
	w.Flush()

	totals := query.SumTotals(records)
	fmt.Fprintln(m.out, "\nTransaction Summary:")
	fmt.Fprintf(m.out, "Total Income:   $%s+\n", totals.Income.Decimal())
	fmt.Fprintf(m.out, "Total Expenses: $%s-\n", totals.Expenses.Decimal())
	fmt.Fprintf(m.out, "Net Balance:    %s\n", suffixed(totals.Net))
}

// amountCell shows the amount with its sign trailing: $12.34- for an
// expense, $500.00+ for income.
func amountCell(tx core.Transaction) string {
	if tx.Kind == core.Expense {
		return "$" + tx.Amount.Decimal() + "-"
	}
	return "$" + tx.Amount.Decimal() + "+"
}

func suffixed(m core.Money) string {
	if m.Cents < 0 {
		return "$" + m.Abs().Decimal() + "-"
	}
	return "$" + m.Decimal() + "+"
}
