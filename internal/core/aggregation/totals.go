package aggregation

import (
	"context"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlyStats folds the transactions dated within w into income, expenses and balance.
// Positive amounts are income, negative amounts count as expenses by magnitude.
func MonthlyStats(ctx context.Context, conv Converter, txns []domain.Transaction, w Window) domain.AggregateResult {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txns {
		if !w.Contains(t.Date) {
			continue
		}
		v := convert(ctx, conv, t.Amount)
		if v.IsPositive() {
			income = income.Add(v)
		} else {
			expenses = expenses.Add(v.Abs())
		}
	}
	return domain.NewAggregateResult(income, expenses)
}

// NetBalance is the signed sum of every transaction plus the loan impact:
// loans given add to the balance, loans taken subtract from it.
func NetBalance(ctx context.Context, conv Converter, txns []domain.Transaction, loans []domain.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(convert(ctx, conv, t.Amount))
	}
	for _, l := range loans {
		v := convert(ctx, conv, l.Amount)
		switch {
		case l.IsGiven():
			total = total.Add(v)
		case l.IsTaken():
			total = total.Sub(v)
		}
	}
	return total
}

// AssetsAndLiabilities sums outstanding given loans and active investments
// (current value when known) into assets, and outstanding taken loans into liabilities.
func AssetsAndLiabilities(ctx context.Context, conv Converter, loans []domain.Loan, investments []domain.Investment) (assets, liabilities decimal.Decimal) {
	assets = decimal.Zero
	liabilities = decimal.Zero
	for _, l := range ActiveLoans(loans) {
		v := convert(ctx, conv, l.Amount)
		switch {
		case l.IsGiven():
			assets = assets.Add(v)
		case l.IsTaken():
			liabilities = liabilities.Add(v)
		}
	}
	for _, i := range ActiveInvestments(investments) {
		assets = assets.Add(convert(ctx, conv, i.Valuation()))
	}
	return assets, liabilities
}

// UpcomingLoanPayments sums outstanding taken loans whose deadline falls in
// now's month, on or after today.
func UpcomingLoanPayments(ctx context.Context, conv Converter, loans []domain.Loan, now time.Time) decimal.Decimal {
	month := MonthOf(now)
	today := startOfDay(now)
	total := decimal.Zero
	for _, l := range loans {
		if !l.IsTaken() || !l.IsOutstanding() || l.Deadline == nil {
			continue
		}
		if !month.Contains(*l.Deadline) || l.Deadline.In(time.Local).Before(today) {
			continue
		}
		total = total.Add(convert(ctx, conv, l.Amount))
	}
	return total
}

// RemainingDays counts today and every later day of now's month.
func RemainingDays(now time.Time) int {
	now = now.In(time.Local)
	return domain.DaysInMonth(now) - now.Day() + 1
}

// DailyBudget spreads what is left of this month's income, after expenses and
// upcoming loan payments, over the remaining days. It never goes below zero.
func DailyBudget(ctx context.Context, conv Converter, txns []domain.Transaction, loans []domain.Loan, now time.Time) decimal.Decimal {
	stats := MonthlyStats(ctx, conv, txns, MonthOf(now))
	upcoming := UpcomingLoanPayments(ctx, conv, loans, now)
	available := stats.Income.Sub(stats.Expenses).Sub(upcoming)
	if !available.IsPositive() {
		return decimal.Zero
	}
	return available.Div(decimal.NewFromInt(int64(RemainingDays(now))))
}
