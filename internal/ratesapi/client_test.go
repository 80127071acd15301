package ratesapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/ratesapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestPairRate(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/secret/pair/EUR/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","target_code":"USD","conversion_rate":1.0842}`))
	})
	c := ratesapi.NewClient("secret", ratesapi.WithBaseURL(srv.URL+"/v6"), ratesapi.WithRateLimit(0))

	got, err := c.PairRate(context.Background(), "eur", "usd")

	require.NoError(t, err)
	assert.Equal(t, "1.0842", got.String())
}

func TestPairRate_ProviderError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	})
	c := ratesapi.NewClient("secret", ratesapi.WithBaseURL(srv.URL), ratesapi.WithRateLimit(0))

	_, err := c.PairRate(context.Background(), "EUR", "XXX")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "unsupported-code")
}

func TestPairRate_NoKey(t *testing.T) {
	c := ratesapi.NewClient("")

	_, err := c.PairRate(context.Background(), "EUR", "USD")

	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
}

func TestPairRate_HTTPErrorHidesKey(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	c := ratesapi.NewClient("secret", ratesapi.WithBaseURL(srv.URL), ratesapi.WithRateLimit(0))

	_, err := c.PairRate(context.Background(), "EUR", "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "429")
	assert.NotContains(t, err.Error(), "secret")
}

func TestLatestRates(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/latest/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"USD":1,"eur":0.92,"JPY":151.2}}`))
	})
	c := ratesapi.NewClient("", ratesapi.WithFallbackURL(srv.URL+"/v4"), ratesapi.WithRateLimit(0))

	rates, err := c.LatestRates(context.Background(), "usd")

	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.Equal(t, "0.92", rates["EUR"].String())
	assert.Equal(t, "151.2", rates["JPY"].String())
}

func TestLatestRates_Empty(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{}}`))
	})
	c := ratesapi.NewClient("", ratesapi.WithFallbackURL(srv.URL), ratesapi.WithRateLimit(0))

	_, err := c.LatestRates(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestLatestRates_MalformedBody(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	c := ratesapi.NewClient("", ratesapi.WithFallbackURL(srv.URL), ratesapi.WithRateLimit(0))

	_, err := c.LatestRates(context.Background(), "USD")

	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestSupportedCodes(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","supported_codes":[["EUR","Euro"],["USD","US Dollar"]]}`))
	})
	c := ratesapi.NewClient("secret", ratesapi.WithBaseURL(srv.URL), ratesapi.WithRateLimit(0))

	assert.Equal(t, []string{"EUR", "USD"}, c.SupportedCodes(context.Background()))
}

func TestSupportedCodes_FallsBackToDefaults(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := ratesapi.NewClient("secret", ratesapi.WithBaseURL(srv.URL), ratesapi.WithRateLimit(0))

	assert.Equal(t, ratesapi.DefaultCurrencies, c.SupportedCodes(context.Background()))
	assert.Equal(t, ratesapi.DefaultCurrencies, ratesapi.NewClient("").SupportedCodes(context.Background()))
}

func TestCancelledContext(t *testing.T) {
	c := ratesapi.NewClient("", ratesapi.WithFallbackURL("http://127.0.0.1:1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LatestRates(ctx, "USD")

	assert.Error(t, err)
}
