package backend

import (
	"fmt"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

type transactionRecord struct {
	ID       string           `json:"id" validate:"required"`
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
	Currency string           `json:"currency"`
	Date     string           `json:"date" validate:"required"`
	Category string           `json:"category"`
	Note     string           `json:"note"`
}

func (r transactionRecord) toDomain() (domain.Transaction, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return domain.Transaction{
		ID:       r.ID,
		Date:     date,
		Amount:   domain.NewMonetaryAmount(*r.Amount, r.Currency),
		Category: r.Category,
		Note:     r.Note,
	}, nil
}

type loanRecord struct {
	ID           string           `json:"id" validate:"required"`
	LoanType     string           `json:"loan_type" validate:"required,oneof=given taken"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
	Currency     string           `json:"currency"`
	Contact      string           `json:"contact"`
	Status       string           `json:"status" validate:"omitempty,oneof=outstanding paid"`
	Date         string           `json:"date" validate:"required"`
	Deadline     *string          `json:"deadline"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
}

func (r loanRecord) toDomain() (domain.Loan, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %s: %w", r.ID, err)
	}
	deadline, err := optionalDate(r.Deadline)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %s deadline: %w", r.ID, err)
	}
	status := domain.LoanStatus(r.Status)
	if status == "" {
		status = domain.LoanOutstanding
	}
	return domain.Loan{
		ID:           r.ID,
		LoanType:     domain.LoanType(r.LoanType),
		Amount:       domain.NewMonetaryAmount(*r.Amount, r.Currency),
		Status:       status,
		Date:         date,
		Deadline:     deadline,
		Contact:      r.Contact,
		InterestRate: r.InterestRate,
	}, nil
}

type investmentRecord struct {
	ID             string           `json:"id" validate:"required"`
	Name           string           `json:"name" validate:"required"`
	Platform       string           `json:"platform"`
	InvestmentType string           `json:"investment_type"`
	InitialAmount  *decimal.Decimal `json:"initial_amount" validate:"required"`
	CurrentValue   *decimal.Decimal `json:"current_value"`
	Currency       string           `json:"currency"`
	PurchaseDate   string           `json:"purchase_date" validate:"required"`
	MaturityDate   *string          `json:"maturity_date"`
	Status         string           `json:"status" validate:"omitempty,oneof=active matured sold"`
}

func (r investmentRecord) toDomain() (domain.Investment, error) {
	purchased, err := domain.ParseDate(r.PurchaseDate)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("investment %s: %w", r.ID, err)
	}
	maturity, err := optionalDate(r.MaturityDate)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("investment %s maturity: %w", r.ID, err)
	}
	status := domain.InvestmentStatus(r.Status)
	if status == "" {
		status = domain.InvestmentActive
	}
	return domain.Investment{
		ID:             r.ID,
		Name:           r.Name,
		Platform:       r.Platform,
		InvestmentType: r.InvestmentType,
		InitialAmount:  domain.NewMonetaryAmount(*r.InitialAmount, r.Currency),
		CurrentValue:   r.CurrentValue,
		Status:         status,
		PurchaseDate:   purchased,
		MaturityDate:   maturity,
	}, nil
}

type budgetRecord struct {
	ID       string           `json:"id" validate:"required"`
	Name     string           `json:"name"`
	Category string           `json:"category" validate:"required"`
	Amount   *decimal.Decimal `json:"amount" validate:"required"`
	Spent    *decimal.Decimal `json:"spent"`
	Currency string           `json:"currency"`
	Period   string           `json:"period" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

func (r budgetRecord) toDomain() (domain.Budget, error) {
	spent := decimal.Zero
	if r.Spent != nil {
		spent = *r.Spent
	}
	period := domain.BudgetPeriod(r.Period)
	if period == "" {
		period = domain.BudgetMonthly
	}
	return domain.Budget{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Limit:    domain.NewMonetaryAmount(*r.Amount, r.Currency),
		Spent:    domain.NewMonetaryAmount(spent, r.Currency),
		Period:   period,
	}, nil
}

func optionalDate(s *string) (*domain.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
