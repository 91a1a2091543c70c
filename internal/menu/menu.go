// Package menu implements the interactive terminal session: the numbered
// action menu, input prompts and the rendered views. All reads come from
// a single scanner and all output goes to one writer so sessions can be
// scripted in tests.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BeeGeeEss/personal-expense-tracker/internal/core"
	"github.com/BeeGeeEss/personal-expense-tracker/internal/ledger"
)

var (
	sepEq   = strings.Repeat("=", 50)
	sepDash = strings.Repeat("-", 50)
	sepWide = strings.Repeat("-", 80)
)

type Menu struct {
	ledger *ledger.Ledger
	in     *bufio.Scanner
	out    io.Writer
	today  func() core.Date
}

func New(l *ledger.Ledger, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		ledger: l,
		in:     bufio.NewScanner(in),
		out:    out,
		today:  core.Today,
	}
}

// Run drives the session until the user exits or input ends. The ledger
// is saved on every way out, including end of input.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "Welcome to the Personal Expense Tracker!")

	for {
		m.printMenu()
		choice, ok := m.promptChoice()
		if !ok {
			return m.interrupted(ctx)
		}

		if choice == 7 {
			fmt.Fprintln(m.out, "Saving data...")
			if err := m.ledger.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(m.out, "Thank you for using the Personal Expense Tracker!")
			return nil
		}

		switch choice {
		case 1:
			m.addTransaction()
		case 2:
			m.viewAll()
		case 3:
			m.viewByCategory()
		case 4:
			m.viewByDateRange()
		case 5:
			m.viewSummary()
		case 6:
			m.viewCategorySummary()
		}

		if !m.pause() {
			return m.interrupted(ctx)
		}
	}
}

// interrupted is the exit path for end of input: save, then goodbye.
func (m *Menu) interrupted(ctx context.Context) error {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Saving data...")
	if err := m.ledger.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Goodbye!")
	return nil
}

func (m *Menu) printMenu() {
	fmt.Fprintf(m.out, "\n%s\n", sepEq)
	fmt.Fprintln(m.out, "$ Personal Expense Tracker $")
	fmt.Fprintln(m.out, sepEq)
	fmt.Fprintln(m.out, "1. Add New Transaction")
	fmt.Fprintln(m.out, "2. View All Transactions")
	fmt.Fprintln(m.out, "3. View Transactions by Category")
	fmt.Fprintln(m.out, "4. View Transactions by Date Range")
	fmt.Fprintln(m.out, "5. View Summary Statistics")
	fmt.Fprintln(m.out, "6. View Category Summary")
	fmt.Fprintln(m.out, "7. Exit")
	fmt.Fprintln(m.out, sepEq)
}

func (m *Menu) pause() bool {
	fmt.Fprintf(m.out, "\n%s\nPress Enter to continue...", sepDash)
	if _, ok := m.readLine(); !ok {
		return false
	}
	fmt.Fprintln(m.out, sepDash)
	return true
}

// readLine reads the next input line, trimmed. ok is false once input
// is exhausted.
func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptChoice() (int, bool) {
	for {
		fmt.Fprint(m.out, "Enter your choice (1-7): ")
		line, ok := m.readLine()
		if !ok {
			return 0, false
		}
		if choice, err := strconv.Atoi(line); err == nil && choice >= 1 && choice <= 7 {
			return choice, true
		}
		fmt.Fprintln(m.out, "Invalid choice. Please enter a number between 1 and 7.")
	}
}

func (m *Menu) promptDate(prompt string) (core.Date, bool) {
	for {
		fmt.Fprint(m.out, prompt)
		line, ok := m.readLine()
		if !ok {
			return core.Date{}, false
		}
		if line == "" {
			today := m.today()
			fmt.Fprintf(m.out, "Using today's date: %s\n", today)
			return today, true
		}
		date, err := core.ParseDate(line)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid date format. Please use DD/MM/YYYY (e.g., 01/01/2025)")
			continue
		}
		return date, true
	}
}

func (m *Menu) promptAmount(prompt string) (core.Money, bool) {
	for {
		fmt.Fprint(m.out, prompt)
		line, ok := m.readLine()
		if !ok {
			return core.Money{}, false
		}
		amount, err := core.ParseAmount(line)
		if err != nil {
			// A parseable negative gets the range message, not the
			// format one.
			if rest, found := strings.CutPrefix(line, "-"); found {
				if _, negErr := core.ParseAmount(rest); negErr == nil {
					fmt.Fprintln(m.out, "Amount must be greater than 0.")
					continue
				}
			}
			fmt.Fprintln(m.out, "Invalid amount. Please enter a valid number.")
			continue
		}
		if amount.Cents == 0 {
			fmt.Fprintln(m.out, "Amount must be greater than 0.")
			continue
		}
		return amount, true
	}
}

func (m *Menu) promptKind() (core.Kind, bool) {
	for {
		fmt.Fprintln(m.out, "\nTransaction Type:")
		fmt.Fprintln(m.out, "1. Income")
		fmt.Fprintln(m.out, "2. Expense")
		fmt.Fprint(m.out, "Choose transaction type (1 or 2): ")
		line, ok := m.readLine()
		if !ok {
			return "", false
		}
		switch line {
		case "1":
			return core.Income, true
		case "2":
			return core.Expense, true
		}
		fmt.Fprintln(m.out, "Invalid choice. Please enter 1 or 2.")
	}
}

func (m *Menu) addTransaction() {
	fmt.Fprintf(m.out, "\n%s\n", sepDash)
	fmt.Fprintln(m.out, "Add New Transaction")
	fmt.Fprintln(m.out, sepDash)

	date, ok := m.promptDate("Enter date (DD/MM/YYYY), or press Enter for today: ")
	if !ok {
		return
	}
	fmt.Fprint(m.out, "Enter category: ")
	category, ok := m.readLine()
	if !ok {
		return
	}
	fmt.Fprint(m.out, "Enter description: ")
	description, ok := m.readLine()
	if !ok {
		return
	}
	amount, ok := m.promptAmount("Enter amount: $")
	if !ok {
		return
	}
	kind, ok := m.promptKind()
	if !ok {
		return
	}

	if category == "" || description == "" {
		fmt.Fprintln(m.out, "Category and description are required.")
		return
	}

	stored, err := m.ledger.Add(core.Transaction{
		Date:        date,
		Category:    category,
		Description: description,
		Kind:        kind,
		Amount:      amount,
	})
	if err != nil {
		fmt.Fprintf(m.out, "Error adding transaction: %v\n", err)
		return
	}

	fmt.Fprintln(m.out, "Transaction added successfully!")
	fmt.Fprintln(m.out, formatLine(stored))
}

// formatLine renders one transaction the way the add confirmation shows
// it: date | category | description | signed amount.
func formatLine(tx core.Transaction) string {
	sign := "-"
	if tx.Kind == core.Income {
		sign = "+"
	}
	return fmt.Sprintf("%s | %s | %s | %s$%s", tx.Date, tx.Category, tx.Description, sign, tx.Amount.Decimal())
}
