package aggregation

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
)

// Window is a half-open local-time range [Start, End). A zero Window matches every date.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// MonthOf returns the calendar month containing now.
func MonthOf(now time.Time) Window {
	now = now.In(time.Local)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Label: start.Format("January 2006"),
	}
}

// TrailingDays returns the n calendar days up to and including today.
func TrailingDays(now time.Time, n int) Window {
	today := startOfDay(now)
	return Window{
		Start: today.AddDate(0, 0, -n),
		End:   today.AddDate(0, 0, 1),
		Label: fmt.Sprintf("last %d days", n),
	}
}

// AllTime matches every date.
func AllTime() Window {
	return Window{Label: "all time"}
}

// WindowByName resolves a window name: "" or "month", "week" or "7d", "30d", "all".
func WindowByName(name string, now time.Time) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "month":
		return MonthOf(now), nil
	case "week", "7d":
		return TrailingDays(now, 7), nil
	case "30d":
		return TrailingDays(now, 30), nil
	case "all":
		return AllTime(), nil
	default:
		return Window{}, fmt.Errorf("%w: unknown window %q", apperrors.ErrValidation, name)
	}
}

// Contains reports whether d falls within the window.
func (w Window) Contains(d domain.Date) bool {
	if w.Start.IsZero() && w.End.IsZero() {
		return true
	}
	t := d.In(time.Local)
	return !t.Before(w.Start) && t.Before(w.End)
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// FilterTransactions keeps the transactions dated within w, preserving order.
func FilterTransactions(txns []domain.Transaction, w Window) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveLoans keeps outstanding loans.
func ActiveLoans(loans []domain.Loan) []domain.Loan {
	out := make([]domain.Loan, 0, len(loans))
	for _, l := range loans {
		if l.IsOutstanding() {
			out = append(out, l)
		}
	}
	return out
}

// ActiveInvestments keeps investments with status active.
func ActiveInvestments(investments []domain.Investment) []domain.Investment {
	out := make([]domain.Investment, 0, len(investments))
	for _, i := range investments {
		if i.IsActive() {
			out = append(out, i)
		}
	}
	return out
}
