package aggregation

import (
	"context"
	"sort"

	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/shopspring/decimal"
)

const unknownInvestmentType = "Unknown"

var hundred = decimal.NewFromInt(100)

// ROI is the return of a single investment in its own currency.
// Defined is false when the initial amount is zero; Percent is then zero.
type ROI struct {
	Initial decimal.Decimal `json:"initial"`
	Current decimal.Decimal `json:"current"`
	Gain    decimal.Decimal `json:"gain"`
	Percent decimal.Decimal `json:"percent"`
	Defined bool            `json:"defined"`
}

// InvestmentROI computes (current - initial) / initial * 100 without conversion.
func InvestmentROI(inv domain.Investment) ROI {
	initial := inv.InitialAmount.Value
	current := inv.Valuation().Value
	return newROI(initial, current)
}

func newROI(initial, current decimal.Decimal) ROI {
	roi := ROI{
		Initial: initial,
		Current: current,
		Gain:    current.Sub(initial),
		Percent: decimal.Zero,
	}
	if initial.IsZero() {
		return roi
	}
	roi.Percent = roi.Gain.Div(initial).Mul(hundred)
	roi.Defined = true
	return roi
}

// TypeBreakdown groups investments of one type.
type TypeBreakdown struct {
	InvestmentType    string          `json:"investmentType"`
	Count             int             `json:"count"`
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalCurrentValue decimal.Decimal `json:"totalCurrentValue"`
	AverageROI        decimal.Decimal `json:"averageRoi"`
}

// Performer names an investment and its ROI percentage.
type Performer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	ROI  ROI    `json:"roi"`
}

// PortfolioAnalytics summarizes every investment in the reporting currency.
type PortfolioAnalytics struct {
	Count             int             `json:"count"`
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalCurrentValue decimal.Decimal `json:"totalCurrentValue"`
	TotalGainLoss     decimal.Decimal `json:"totalGainLoss"`
	TotalROIPercent   decimal.Decimal `json:"totalRoiPercent"`
	ByType            []TypeBreakdown `json:"byType"`
	Best              *Performer      `json:"best,omitempty"`
	Worst             *Performer      `json:"worst,omitempty"`
}

// InvestmentAnalytics converts and totals all investments regardless of status.
// Best and worst performers are ranked by unconverted ROI percentage; the
// first investment wins ties.
func InvestmentAnalytics(ctx context.Context, conv Converter, investments []domain.Investment) PortfolioAnalytics {
	out := PortfolioAnalytics{
		Count:             len(investments),
		TotalInvested:     decimal.Zero,
		TotalCurrentValue: decimal.Zero,
		TotalROIPercent:   decimal.Zero,
		ByType:            []TypeBreakdown{},
	}

	byType := map[string]*TypeBreakdown{}
	var order []string
	for _, inv := range investments {
		invested := convert(ctx, conv, inv.InitialAmount)
		current := convert(ctx, conv, inv.Valuation())
		out.TotalInvested = out.TotalInvested.Add(invested)
		out.TotalCurrentValue = out.TotalCurrentValue.Add(current)

		kind := inv.InvestmentType
		if kind == "" {
			kind = unknownInvestmentType
		}
		b, ok := byType[kind]
		if !ok {
			b = &TypeBreakdown{InvestmentType: kind, TotalInvested: decimal.Zero, TotalCurrentValue: decimal.Zero, AverageROI: decimal.Zero}
			byType[kind] = b
			order = append(order, kind)
		}
		b.Count++
		b.TotalInvested = b.TotalInvested.Add(invested)
		b.TotalCurrentValue = b.TotalCurrentValue.Add(current)

		p := Performer{ID: inv.ID, Name: inv.Name, ROI: InvestmentROI(inv)}
		if out.Best == nil || p.ROI.Percent.GreaterThan(out.Best.ROI.Percent) {
			best := p
			out.Best = &best
		}
		if out.Worst == nil || p.ROI.Percent.LessThan(out.Worst.ROI.Percent) {
			worst := p
			out.Worst = &worst
		}
	}

	out.TotalGainLoss = out.TotalCurrentValue.Sub(out.TotalInvested)
	if out.TotalInvested.IsPositive() {
		out.TotalROIPercent = out.TotalGainLoss.Div(out.TotalInvested).Mul(hundred)
	}

	for _, kind := range order {
		b := byType[kind]
		if b.TotalInvested.IsPositive() {
			b.AverageROI = b.TotalCurrentValue.Sub(b.TotalInvested).Div(b.TotalInvested).Mul(hundred)
		}
		out.ByType = append(out.ByType, *b)
	}
	sort.SliceStable(out.ByType, func(i, j int) bool {
		return out.ByType[i].TotalInvested.GreaterThan(out.ByType[j].TotalInvested)
	})
	return out
}
