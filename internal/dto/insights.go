package dto

import (
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
)

// AnalyticsQuery selects the analytics window.
type AnalyticsQuery struct {
	Window string `form:"window" binding:"omitempty,oneof=month week 7d 30d all"`
}

// BudgetsQuery selects the budget period.
type BudgetsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=daily weekly monthly yearly"`
}

// InvestmentAnalyticsResponse is the portfolio summary without per-investment lines.
type InvestmentAnalyticsResponse struct {
	Ready         bool                        `json:"ready"`
	Currency      string                      `json:"currency"`
	Count         int                         `json:"count"`
	TotalInvested presentation.Figure         `json:"totalInvested"`
	TotalCurrent  presentation.Figure         `json:"totalCurrentValue"`
	TotalGainLoss presentation.Figure         `json:"totalGainLoss"`
	TotalROI      string                      `json:"totalRoi"`
	ByType        []presentation.TypeLine     `json:"byType"`
	Best          *presentation.PerformerLine `json:"bestPerformer,omitempty"`
	Worst         *presentation.PerformerLine `json:"worstPerformer,omitempty"`
}

// ToInvestmentAnalyticsResponse drops the per-investment lines of a view.
func ToInvestmentAnalyticsResponse(v presentation.InvestmentView) InvestmentAnalyticsResponse {
	return InvestmentAnalyticsResponse{
		Ready:         v.Ready,
		Currency:      v.Currency,
		Count:         len(v.Investments),
		TotalInvested: v.TotalInvested,
		TotalCurrent:  v.TotalCurrent,
		TotalGainLoss: v.TotalGainLoss,
		TotalROI:      v.TotalROI,
		ByType:        v.ByType,
		Best:          v.Best,
		Worst:         v.Worst,
	}
}
