package domain

import "github.com/shopspring/decimal"

// LoanType tells whether the user lent (given) or borrowed (taken) the money.
type LoanType string

const (
	LoanGiven LoanType = "given"
	LoanTaken LoanType = "taken"
)

// LoanStatus tracks repayment.
type LoanStatus string

const (
	LoanOutstanding LoanStatus = "outstanding"
	LoanPaid        LoanStatus = "paid"
)

// Loan is money lent to or borrowed from a contact.
type Loan struct {
	ID           string           `json:"id"`
	LoanType     LoanType         `json:"loanType"`
	Amount       MonetaryAmount   `json:"amount"`
	Status       LoanStatus       `json:"status"`
	Date         Date             `json:"date"`
	Deadline     *Date            `json:"deadline,omitempty"`
	Contact      string           `json:"contact,omitempty"`
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"`
}

func (l Loan) IsGiven() bool       { return l.LoanType == LoanGiven }
func (l Loan) IsTaken() bool       { return l.LoanType == LoanTaken }
func (l Loan) IsOutstanding() bool { return l.Status == LoanOutstanding }
