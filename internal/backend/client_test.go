package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/backend"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	mux     *http.ServeMux
	server  *httptest.Server
	client  *backend.Client
	session domain.Session
}

func (s *ClientTestSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = backend.NewClient(s.server.URL + "/api/")
	s.session = domain.Session{UserID: "user-1", Token: "tok-123"}
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) respond(path, body string) {
	s.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func (s *ClientTestSuite) TestTransactions_ForwardsTokenAndDecodesEnvelope() {
	s.mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"transactions":[
			{"id":"t1","amount":-12.5,"currency":"eur","date":"2024-04-03","category":"Food","note":"lunch"},
			{"id":"t2","amount":1000,"date":"2024-04-01"}
		]}}`))
	})

	txs, err := s.client.Transactions(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Equal("t1", txs[0].ID)
	s.Equal("-12.5", txs[0].Amount.Value.String())
	s.Equal("EUR", txs[0].Amount.CurrencyCode)
	s.Equal("2024-04-03", txs[0].Date.String())
	s.Equal("Food", txs[0].Category)
	s.Equal("", txs[1].Amount.CurrencyCode)
	s.Equal(domain.DefaultCategory, txs[1].CategoryOrDefault())
}

func (s *ClientTestSuite) TestTransactions_SkipsInvalidRecords() {
	s.respond("/api/transactions", `{"data":{"transactions":[
		{"id":"ok","amount":5,"currency":"USD","date":"2024-04-03"},
		{"id":"no-amount","currency":"USD","date":"2024-04-03"},
		{"id":"bad-date","amount":5,"date":"03/04/2024"},
		{"amount":5,"date":"2024-04-03"}
	]}}`)

	txs, err := s.client.Transactions(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal("ok", txs[0].ID)
}

func (s *ClientTestSuite) TestTransactions_KeepsNonISOCurrencyCodes() {
	s.respond("/api/transactions", `{"data":{"transactions":[
		{"id":"t1","amount":10,"currency":"USD","date":"2024-04-03"},
		{"id":"t2","amount":0.5,"currency":"usdt","date":"2024-04-03"},
		{"id":"t3","amount":7,"currency":"US1","date":"2024-04-03"}
	]}}`)

	txs, err := s.client.Transactions(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal("USD", txs[0].Amount.CurrencyCode)
	s.Equal("USDT", txs[1].Amount.CurrencyCode)
	s.Equal("US1", txs[2].Amount.CurrencyCode)
}

func (s *ClientTestSuite) TestBudgets_KeepsNonISOCurrencyCodes() {
	s.respond("/api/budgets", `{"data":{"budgets":[{"id":"b1","category":"Crypto","amount":100,"spent":20,"currency":"USDT"}]}}`)

	budgets, err := s.client.Budgets(context.Background(), s.session, "")

	s.Require().NoError(err)
	s.Require().Len(budgets, 1)
	s.Equal("USDT", budgets[0].Limit.CurrencyCode)
	s.Equal("USDT", budgets[0].Spent.CurrencyCode)
}

func (s *ClientTestSuite) TestTransactions_AcceptsBareCollection() {
	s.respond("/api/transactions", `{"transactions":[{"id":"t1","amount":"3.10","date":"2024-04-03T10:00:00Z"}]}`)

	txs, err := s.client.Transactions(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal("3.1", txs[0].Amount.Value.String())
}

func (s *ClientTestSuite) TestTransactions_EmptyCollection() {
	s.respond("/api/transactions", `{"data":{"transactions":null}}`)

	txs, err := s.client.Transactions(context.Background(), s.session)

	s.Require().NoError(err)
	s.NotNil(txs)
	s.Empty(txs)
}

func (s *ClientTestSuite) TestTransactions_Non2xxIsUpstreamError() {
	s.mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	})

	_, err := s.client.Transactions(context.Background(), s.session)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUpstream)
	s.Contains(err.Error(), "401")
}

func (s *ClientTestSuite) TestTransactions_MalformedBody() {
	s.respond("/api/transactions", `<html>oops</html>`)

	_, err := s.client.Transactions(context.Background(), s.session)

	s.ErrorIs(err, apperrors.ErrUpstream)
}

func (s *ClientTestSuite) TestLoans() {
	s.respond("/api/loans", `{"data":{"loans":[
		{"id":"l1","loan_type":"taken","amount":500,"currency":"USD","contact":"Sam","status":"outstanding","date":"2024-03-01","deadline":"2024-04-30","interest_rate":2.5},
		{"id":"l2","loan_type":"given","amount":20,"date":"2024-03-02","deadline":null},
		{"id":"l3","loan_type":"lent","amount":20,"date":"2024-03-02"}
	]}}`)

	loans, err := s.client.Loans(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(loans, 2)
	s.True(loans[0].IsTaken())
	s.Require().NotNil(loans[0].Deadline)
	s.Equal("2024-04-30", loans[0].Deadline.String())
	s.Require().NotNil(loans[0].InterestRate)
	s.Equal("2.5", loans[0].InterestRate.String())
	s.True(loans[1].IsGiven())
	s.Equal(domain.LoanOutstanding, loans[1].Status)
	s.Nil(loans[1].Deadline)
}

func (s *ClientTestSuite) TestInvestments() {
	s.respond("/api/investments", `{"data":{"investments":[
		{"id":"i1","name":"Index fund","platform":"Broker","investment_type":"stocks","initial_amount":1000,"current_value":1250.5,"currency":"USD","purchase_date":"2023-01-10","status":"active"},
		{"id":"i2","name":"Bond","initial_amount":300,"current_value":null,"purchase_date":"2023-02-10","maturity_date":"2026-02-10"},
		{"id":"i3","initial_amount":300,"purchase_date":"2023-02-10"}
	]}}`)

	invs, err := s.client.Investments(context.Background(), s.session)

	s.Require().NoError(err)
	s.Require().Len(invs, 2)
	s.Require().NotNil(invs[0].CurrentValue)
	s.Equal("1250.5", invs[0].Valuation().Value.String())
	s.Equal(domain.InvestmentActive, invs[1].Status)
	s.Nil(invs[1].CurrentValue)
	s.Equal("300", invs[1].Valuation().Value.String())
	s.Require().NotNil(invs[1].MaturityDate)
}

func (s *ClientTestSuite) TestBudgets_SendsPeriod() {
	s.mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("weekly", r.URL.Query().Get("period"))
		_, _ = w.Write([]byte(`{"data":{"budgets":[
			{"id":"b1","name":"Groceries","category":"Food","amount":200,"spent":50,"currency":"EUR","period":"weekly"},
			{"id":"b2","category":"Fun","amount":100}
		]}}`))
	})

	budgets, err := s.client.Budgets(context.Background(), s.session, domain.BudgetWeekly)

	s.Require().NoError(err)
	s.Require().Len(budgets, 2)
	s.Equal("EUR", budgets[0].Spent.CurrencyCode)
	s.Equal("50", budgets[0].Spent.Value.String())
	s.Equal(domain.BudgetMonthly, budgets[1].Period)
	s.True(budgets[1].Spent.IsZero())
}

func (s *ClientTestSuite) TestBudgets_OmitsEmptyPeriod() {
	s.mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		s.Empty(r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"data":{"budgets":[]}}`))
	})

	budgets, err := s.client.Budgets(context.Background(), s.session, "")

	s.Require().NoError(err)
	s.Empty(budgets)
}

func (s *ClientTestSuite) TestNoTokenSendsNoAuthorization() {
	s.mux.HandleFunc("/api/loans", func(w http.ResponseWriter, r *http.Request) {
		s.Empty(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":{"loans":[]}}`))
	})

	_, err := s.client.Loans(context.Background(), domain.Session{UserID: "anon"})

	s.NoError(err)
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c := backend.NewClient(srv.URL, backend.WithTimeout(50*time.Millisecond))

	_, err := c.Transactions(context.Background(), domain.Session{Token: "t"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
