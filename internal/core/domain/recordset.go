package domain

import "time"

// RecordSet is one fetch of every record collection for a user.
// A collection whose fetch failed is empty.
type RecordSet struct {
	Transactions []Transaction
	Loans        []Loan
	Investments  []Investment
	Budgets      []Budget
	FetchedAt    time.Time
}
