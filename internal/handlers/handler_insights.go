package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/dto"
	"github.com/SscSPs/captainledger_insights/internal/middleware"
	"github.com/SscSPs/captainledger_insights/internal/refresh"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// insightsHandler serves the aggregated views.
type insightsHandler struct {
	insightsService portssvc.InsightsSvc
	refresher       *refresh.Refresher
}

func newInsightsHandler(is portssvc.InsightsSvc, refresher *refresh.Refresher) *insightsHandler {
	return &insightsHandler{
		insightsService: is,
		refresher:       refresher,
	}
}

// RegisterInsightsRoutes registers the dashboard, analytics, budgets,
// investments and conversion routes.
func RegisterInsightsRoutes(rg *gin.RouterGroup, insightsService portssvc.InsightsSvc, refresher *refresh.Refresher) {
	h := newInsightsHandler(insightsService, refresher)

	rg.GET("/dashboard", h.getDashboard)
	rg.GET("/analytics", h.getAnalytics)
	rg.GET("/budgets", h.getBudgets)
	rg.GET("/convert", h.convert)

	investments := rg.Group("/investments")
	{
		investments.GET("", h.getInvestments)
		investments.GET("/analytics", h.getInvestmentAnalytics)
	}
}

// sessionFromContext builds the caller's session from what AuthMiddleware stored.
func sessionFromContext(c *gin.Context) (domain.Session, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return domain.Session{}, false
	}
	return domain.Session{UserID: userID, Token: middleware.GetBearerTokenFromContext(c)}, true
}

// writePassError maps an aggregation pass failure to a response.
func writePassError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rejected aggregation request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Aggregation pass abandoned", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"})
	default:
		logger.Error("Aggregation pass failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
	}
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Returns the latest dashboard. When none has been computed yet, responds 202 with a placeholder view and starts a pass. fresh=true computes synchronously.
// @Tags insights
// @Produce  json
// @Param   fresh query bool false "Compute synchronously"
// @Success 200 {object} presentation.DashboardView
// @Success 202 {object} presentation.DashboardView "Placeholder while the first pass runs"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *insightsHandler) getDashboard(c *gin.Context) {
	logger := middleware.LoggerOrDefault(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.refresher.Touch(session)

	if c.Query("fresh") == "true" {
		view, err := h.refresher.RunPass(c.Request.Context(), session)
		if err != nil {
			writePassError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	if snap, found := h.refresher.Dashboard(session.UserID); found {
		c.Header("X-Generated-At", snap.StoredAt.UTC().Format(http.TimeFormat))
		c.JSON(http.StatusOK, snap.Value)
		return
	}

	logger.Info("No dashboard yet, starting first pass")
	h.refresher.Kick(session)
	c.JSON(http.StatusAccepted, h.insightsService.PlaceholderDashboard(c.Request.Context(), session))
}

// getAnalytics godoc
// @Summary Get spending analytics
// @Description Income, expenses, top categories and expense breakdown over a window
// @Tags insights
// @Produce  json
// @Param   window query string false "month (default), week, 7d, 30d or all"
// @Success 200 {object} presentation.AnalyticsView
// @Failure 400 {object} map[string]string "Unknown window"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /analytics [get]
func (h *insightsHandler) getAnalytics(c *gin.Context) {
	logger := middleware.LoggerOrDefault(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var q dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	view, err := h.insightsService.Analytics(c.Request.Context(), session, q.Window)
	if err != nil {
		writePassError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// getBudgets godoc
// @Summary Get budget progress
// @Description Converted limit, spent and alert level of every budget in a period
// @Tags insights
// @Produce  json
// @Param   period query string false "daily, weekly, monthly or yearly"
// @Success 200 {object} presentation.BudgetView
// @Failure 400 {object} map[string]string "Unknown period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /budgets [get]
func (h *insightsHandler) getBudgets(c *gin.Context) {
	logger := middleware.LoggerOrDefault(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var q dto.BudgetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	view, err := h.insightsService.Budgets(c.Request.Context(), session, domain.BudgetPeriod(q.Period))
	if err != nil {
		writePassError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// getInvestments godoc
// @Summary List investments with returns
// @Tags insights
// @Produce  json
// @Success 200 {object} presentation.InvestmentView
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /investments [get]
func (h *insightsHandler) getInvestments(c *gin.Context) {
	logger := middleware.LoggerOrDefault(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.insightsService.Investments(c.Request.Context(), session)
	if err != nil {
		writePassError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// getInvestmentAnalytics godoc
// @Summary Portfolio summary
// @Description Totals, per-type breakdown and best and worst performers
// @Tags insights
// @Produce  json
// @Success 200 {object} dto.InvestmentAnalyticsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /investments/analytics [get]
func (h *insightsHandler) getInvestmentAnalytics(c *gin.Context) {
	logger := middleware.LoggerOrDefault(c.Request.Context())
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.insightsService.Investments(c.Request.Context(), session)
	if err != nil {
		writePassError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestmentAnalyticsResponse(view))
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount into the caller's primary currency. Conversion failures return the amount unchanged with wasConverted=false.
// @Tags insights
// @Produce  json
// @Param   amount query string true "Amount"
// @Param   from   query string false "Currency code of the amount"
// @Success 200 {object} services.ConversionQuote
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /convert [get]
func (h *insightsHandler) convert(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var q dto.ConvertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	quote := h.insightsService.Convert(c.Request.Context(), session.UserID, domain.NewMonetaryAmount(amount, q.From))
	c.JSON(http.StatusOK, quote)
}
