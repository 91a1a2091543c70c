package core

// Totals holds the income and expense sums for a set of transactions plus
// the derived net balance. Net may be negative when expenses dominate.
type Totals struct {
	Income   Money
	Expenses Money
	Net      Money
}

// Summary is the ledger-wide aggregate view.
type Summary struct {
	Transactions int
	Income       Money
	Expenses     Money
	Net          Money
	Categories   []string // distinct names, first-seen order
}

// CategoryTotal is one aggregate row of the per-category breakdown.
type CategoryTotal struct {
	Category string
	Count    int
	Income   Money
	Expenses Money
	Net      Money
}
