package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/core/presentation"
	"github.com/SscSPs/captainledger_insights/internal/dto"
	"github.com/SscSPs/captainledger_insights/internal/handlers"
	"github.com/SscSPs/captainledger_insights/internal/middleware"
	"github.com/SscSPs/captainledger_insights/internal/refresh"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InsightsService ---
type MockInsightsService struct {
	mock.Mock
}

func (m *MockInsightsService) Snapshot(ctx context.Context, session domain.Session) (domain.RecordSet, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(domain.RecordSet), args.Error(1)
}
func (m *MockInsightsService) Dashboard(ctx context.Context, session domain.Session) (presentation.DashboardView, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(presentation.DashboardView), args.Error(1)
}
func (m *MockInsightsService) PlaceholderDashboard(ctx context.Context, session domain.Session) presentation.DashboardView {
	args := m.Called(ctx, session)
	return args.Get(0).(presentation.DashboardView)
}
func (m *MockInsightsService) Analytics(ctx context.Context, session domain.Session, window string) (presentation.AnalyticsView, error) {
	args := m.Called(ctx, session, window)
	return args.Get(0).(presentation.AnalyticsView), args.Error(1)
}
func (m *MockInsightsService) Budgets(ctx context.Context, session domain.Session, period domain.BudgetPeriod) (presentation.BudgetView, error) {
	args := m.Called(ctx, session, period)
	return args.Get(0).(presentation.BudgetView), args.Error(1)
}
func (m *MockInsightsService) Investments(ctx context.Context, session domain.Session) (presentation.InvestmentView, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(presentation.InvestmentView), args.Error(1)
}
func (m *MockInsightsService) Convert(ctx context.Context, userID string, amount domain.MonetaryAmount) portssvc.ConversionQuote {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(portssvc.ConversionQuote)
}

var _ portssvc.InsightsSvc = (*MockInsightsService)(nil)

// --- Test Suite ---
type InsightsHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockInsightsService *MockInsightsService
	refresher           *refresh.Refresher
	jwtSecret           string
	userID              string
	token               string
}

func (suite *InsightsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.token = generateTestToken(suite.T(), suite.jwtSecret, suite.userID)

	suite.mockInsightsService = new(MockInsightsService)
	suite.refresher = refresh.NewRefresher(suite.mockInsightsService, refresh.NewStore[presentation.DashboardView]())

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterInsightsRoutes(v1, suite.mockInsightsService, suite.refresher)
}

func (suite *InsightsHandlerTestSuite) TearDownTest() {
	suite.refresher.Wait()
	suite.mockInsightsService.AssertExpectations(suite.T())
}

func (suite *InsightsHandlerTestSuite) session() domain.Session {
	return domain.Session{UserID: suite.userID, Token: suite.token}
}

func (suite *InsightsHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *InsightsHandlerTestSuite) TestDashboard_PlaceholderThenStored() {
	placeholder := presentation.DashboardView{Currency: "USD", Income: presentation.Figure{Display: presentation.Placeholder}}
	ready := presentation.DashboardView{Ready: true, Currency: "USD", Period: "April 2024",
		Income: presentation.Figure{Value: decimal.NewFromInt(3000), Display: "$3,000.00"}}
	suite.mockInsightsService.On("PlaceholderDashboard", mock.Anything, suite.session()).Return(placeholder).Once()
	suite.mockInsightsService.On("Dashboard", mock.Anything, suite.session()).Return(ready, nil).Once()

	first := suite.get("/api/v1/dashboard")
	suite.Equal(http.StatusAccepted, first.Code)
	var view presentation.DashboardView
	suite.Require().NoError(json.Unmarshal(first.Body.Bytes(), &view))
	suite.False(view.Ready)
	suite.Equal(presentation.Placeholder, view.Income.Display)

	suite.refresher.Wait()

	second := suite.get("/api/v1/dashboard")
	suite.Equal(http.StatusOK, second.Code)
	suite.Require().NoError(json.Unmarshal(second.Body.Bytes(), &view))
	suite.True(view.Ready)
	suite.Equal("$3,000.00", view.Income.Display)
	suite.NotEmpty(second.Header().Get("X-Generated-At"))
	suite.Equal(1, suite.refresher.Focused())
}

func (suite *InsightsHandlerTestSuite) TestDashboard_FreshRunsSynchronously() {
	ready := presentation.DashboardView{Ready: true, Currency: "EUR", Period: "April 2024"}
	suite.mockInsightsService.On("Dashboard", mock.Anything, suite.session()).Return(ready, nil).Once()

	w := suite.get("/api/v1/dashboard?fresh=true")

	suite.Equal(http.StatusOK, w.Code)
	snap, ok := suite.refresher.Dashboard(suite.userID)
	suite.Require().True(ok)
	suite.Equal("EUR", snap.Value.Currency)
}

func (suite *InsightsHandlerTestSuite) TestDashboard_FreshCancelled() {
	suite.mockInsightsService.On("Dashboard", mock.Anything, suite.session()).
		Return(presentation.DashboardView{}, context.Canceled).Once()

	w := suite.get("/api/v1/dashboard?fresh=true")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	_, ok := suite.refresher.Dashboard(suite.userID)
	suite.False(ok)
}

func (suite *InsightsHandlerTestSuite) TestDashboard_FreshFailure() {
	suite.mockInsightsService.On("Dashboard", mock.Anything, suite.session()).
		Return(presentation.DashboardView{}, errors.New("boom")).Once()

	w := suite.get("/api/v1/dashboard?fresh=true")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *InsightsHandlerTestSuite) TestAnalytics_ForwardsWindow() {
	suite.mockInsightsService.On("Analytics", mock.Anything, suite.session(), "30d").
		Return(presentation.AnalyticsView{Ready: true, Currency: "USD", Window: "Last 30 days"}, nil).Once()

	w := suite.get("/api/v1/analytics?window=30d")

	suite.Equal(http.StatusOK, w.Code)
	var view presentation.AnalyticsView
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &view))
	suite.Equal("Last 30 days", view.Window)
}

func (suite *InsightsHandlerTestSuite) TestAnalytics_UnknownWindow() {
	w := suite.get("/api/v1/analytics?window=fortnight")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInsightsService.AssertNotCalled(suite.T(), "Analytics", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InsightsHandlerTestSuite) TestBudgets_ForwardsPeriod() {
	suite.mockInsightsService.On("Budgets", mock.Anything, suite.session(), domain.BudgetWeekly).
		Return(presentation.BudgetView{Ready: true, Currency: "USD"}, nil).Once()

	w := suite.get("/api/v1/budgets?period=weekly")

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *InsightsHandlerTestSuite) TestBudgets_ServiceValidationError() {
	suite.mockInsightsService.On("Budgets", mock.Anything, suite.session(), domain.BudgetPeriod("")).
		Return(presentation.BudgetView{}, apperrors.NewValidationError("bad period")).Once()

	w := suite.get("/api/v1/budgets")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *InsightsHandlerTestSuite) TestInvestmentAnalytics_DropsLines() {
	view := presentation.InvestmentView{
		Ready:    true,
		Currency: "USD",
		Investments: []presentation.InvestmentLine{
			{ID: "i1", Name: "Index fund"},
			{ID: "i2", Name: "Bond"},
		},
		TotalROI: "12.50%",
		Best:     &presentation.PerformerLine{Name: "Index fund", ROI: "20.00%"},
	}
	suite.mockInsightsService.On("Investments", mock.Anything, suite.session()).Return(view, nil).Twice()

	w := suite.get("/api/v1/investments/analytics")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvestmentAnalyticsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Count)
	suite.Equal("12.50%", resp.TotalROI)
	suite.Require().NotNil(resp.Best)
	suite.Equal("Index fund", resp.Best.Name)
	suite.NotContains(w.Body.String(), `"investments"`)

	w = suite.get("/api/v1/investments")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"investments"`)
}

func (suite *InsightsHandlerTestSuite) TestConvert_Success() {
	amount := domain.NewMonetaryAmount(decimal.RequireFromString("12.5"), "EUR")
	suite.mockInsightsService.On("Convert", mock.Anything, suite.userID, mock.MatchedBy(func(a domain.MonetaryAmount) bool {
		return a.CurrencyCode == "EUR" && a.Value.Equal(amount.Value)
	})).Return(portssvc.ConversionQuote{From: amount, To: "USD", Value: decimal.NewFromInt(25), Display: "$25.00", WasConverted: true}).Once()

	w := suite.get("/api/v1/convert?amount=12.5&from=EUR")

	suite.Equal(http.StatusOK, w.Code)
	var quote portssvc.ConversionQuote
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &quote))
	suite.True(quote.WasConverted)
	suite.Equal("$25.00", quote.Display)
}

func (suite *InsightsHandlerTestSuite) TestConvert_InvalidAmount() {
	w := suite.get("/api/v1/convert?amount=abc&from=EUR")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.get("/api/v1/convert?from=EUR")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestInsightsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(InsightsHandlerTestSuite))
}
