// Package ratesapi fetches live exchange rates from exchangerate-api.com.
//
// Two endpoints are used: the keyed v6 pair endpoint for a single rate, and
// the keyless v4 "latest" endpoint that lists every rate against a base.
package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL     = "https://v6.exchangerate-api.com/v6"
	DefaultFallbackURL = "https://api.exchangerate-api.com/v4"
	DefaultTimeout     = 10 * time.Second

	maxBodyBytes = 1 << 20
)

// DefaultCurrencies is served by SupportedCodes when the provider cannot be reached.
var DefaultCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "SEK", "NZD",
	"MXN", "SGD", "HKD", "NOK", "KRW", "TRY", "RUB", "INR", "BRL", "ZAR",
	"NPR", "PKR", "BDT", "LKR", "THB", "MYR", "IDR", "PHP", "VND", "AED",
}

// Client talks to the exchange rate provider.
type Client struct {
	apiKey      string
	baseURL     string
	fallbackURL string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the keyed endpoint root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithFallbackURL overrides the keyless endpoint root.
func WithFallbackURL(u string) Option {
	return func(c *Client) { c.fallbackURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a client. apiKey may be empty, in which case only the
// keyless endpoint is used.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		fallbackURL: DefaultFallbackURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portssvc.RemoteRateProvider = (*Client)(nil)

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	BaseCode       string          `json:"base_code"`
	TargetCode     string          `json:"target_code"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type codesResponse struct {
	Result         string     `json:"result"`
	SupportedCodes [][]string `json:"supported_codes"`
}

// PairRate fetches the rate converting one unit of from into to.
func (c *Client) PairRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	if c.apiKey == "" {
		return decimal.Zero, fmt.Errorf("%w: no exchange rate API key configured", apperrors.ErrRateUnavailable)
	}
	from, to := strings.ToUpper(fromCode), strings.ToUpper(toCode)

	var body pairResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, from, to), &body); err != nil {
		return decimal.Zero, err
	}
	if body.Result != "success" {
		return decimal.Zero, fmt.Errorf("%w: pair %s/%s: %s", apperrors.ErrUpstream, from, to, body.ErrorType)
	}
	if !body.ConversionRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s/%s", apperrors.ErrRateUnavailable, from, to)
	}
	return body.ConversionRate, nil
}

// LatestRates fetches every rate quoted against base from the keyless endpoint.
func (c *Client) LatestRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	base := strings.ToUpper(baseCode)

	var body latestResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/latest/%s", c.fallbackURL, base), &body); err != nil {
		return nil, err
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: no rates returned for base %s", apperrors.ErrUpstream, base)
	}
	rates := make(map[string]decimal.Decimal, len(body.Rates))
	for code, r := range body.Rates {
		rates[strings.ToUpper(code)] = r
	}
	return rates, nil
}

// SupportedCodes lists the currency codes the provider knows, falling back to
// DefaultCurrencies when it cannot be reached.
func (c *Client) SupportedCodes(ctx context.Context) []string {
	if c.apiKey == "" {
		return DefaultCurrencies
	}
	var body codesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/codes", c.baseURL, c.apiKey), &body); err != nil || body.Result != "success" {
		if err != nil {
			slog.WarnContext(ctx, "Failed to list supported currency codes, using defaults", slog.String("error", err.Error()))
		}
		return DefaultCurrencies
	}
	codes := make([]string, 0, len(body.SupportedCodes))
	for _, pair := range body.SupportedCodes {
		if len(pair) > 0 {
			codes = append(codes, pair[0])
		}
	}
	if len(codes) == 0 {
		return DefaultCurrencies
	}
	return codes
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrUpstream, redact(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: exchange rate API returned %d: %s", apperrors.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode exchange rate response: %v", apperrors.ErrUpstream, err)
	}
	return nil
}

// redact keeps the API key out of error messages, which embed the request URL.
func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "***")
}
