// Package backend fetches a user's records from the records backend API.
//
// Every collection endpoint answers with an envelope of the form
// {"data": {"<collection>": [...]}}. Records that fail validation are
// skipped with a warning rather than failing the whole fetch.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds every request to the records backend.
const DefaultTimeout = 15 * time.Second

const maxBodyBytes = 8 << 20

// Client reads transactions, loans, investments and budgets on behalf of a session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the base HTTP client. The session token is layered on top of it.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the request timeout of the base HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewClient creates a client rooted at baseURL, e.g. "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portssvc.RecordSource = (*Client)(nil)

// Transactions fetches every transaction of the session's user.
func (c *Client) Transactions(ctx context.Context, session domain.Session) ([]domain.Transaction, error) {
	var wire []transactionRecord
	if err := c.list(ctx, session, "transactions", nil, &wire); err != nil {
		return nil, err
	}
	return collect(ctx, c, "transaction", wire, transactionRecord.toDomain), nil
}

// Loans fetches every loan of the session's user.
func (c *Client) Loans(ctx context.Context, session domain.Session) ([]domain.Loan, error) {
	var wire []loanRecord
	if err := c.list(ctx, session, "loans", nil, &wire); err != nil {
		return nil, err
	}
	return collect(ctx, c, "loan", wire, loanRecord.toDomain), nil
}

// Investments fetches every investment of the session's user.
func (c *Client) Investments(ctx context.Context, session domain.Session) ([]domain.Investment, error) {
	var wire []investmentRecord
	if err := c.list(ctx, session, "investments", nil, &wire); err != nil {
		return nil, err
	}
	return collect(ctx, c, "investment", wire, investmentRecord.toDomain), nil
}

// Budgets fetches the session user's budgets, optionally restricted to one period.
func (c *Client) Budgets(ctx context.Context, session domain.Session, period domain.BudgetPeriod) ([]domain.Budget, error) {
	var query url.Values
	if period != "" {
		query = url.Values{"period": []string{string(period)}}
	}
	var wire []budgetRecord
	if err := c.list(ctx, session, "budgets", query, &wire); err != nil {
		return nil, err
	}
	return collect(ctx, c, "budget", wire, budgetRecord.toDomain), nil
}

// collect validates and maps every wire record, dropping the ones that fail.
func collect[W any, D any](ctx context.Context, c *Client, kind string, wire []W, toDomain func(W) (D, error)) []D {
	logger := middleware.LoggerOrDefault(ctx)
	out := make([]D, 0, len(wire))
	for i, rec := range wire {
		if err := c.validate.Struct(rec); err != nil {
			logger.Warn("Skipping invalid record", slog.String("kind", kind), slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		d, err := toDomain(rec)
		if err != nil {
			logger.Warn("Skipping invalid record", slog.String("kind", kind), slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		out = append(out, d)
	}
	return out
}

// list GETs /<name> and decodes the named collection out of the response envelope.
func (c *Client) list(ctx context.Context, session domain.Session, name string, query url.Values, out any) error {
	endpoint := c.baseURL + "/" + name
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.clientFor(ctx, session).Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetching %s: %v", apperrors.ErrUpstream, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: records backend returned %d for %s: %s", apperrors.ErrUpstream, resp.StatusCode, name, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", apperrors.ErrUpstream, name, err)
	}
	raw, err := unwrapEnvelope(body, name)
	if err != nil {
		return fmt.Errorf("%w: decoding %s: %v", apperrors.ErrUpstream, name, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", apperrors.ErrUpstream, name, err)
	}
	return nil
}

// clientFor returns an HTTP client that sends the session's bearer token.
// The oauth2 transport wraps the base client's transport and keeps its timeout.
func (c *Client) clientFor(ctx context.Context, session domain.Session) *http.Client {
	if session.Token == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.Token,
		TokenType:   "Bearer",
	}))
}

// unwrapEnvelope extracts the named array from {"data":{name:[...]}}, a bare
// {name:[...]} object, or a top-level array. A missing or null collection yields nil.
func unwrapEnvelope(body []byte, name string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, err
	}
	if data, ok := top["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			return nullToNil(inner[name]), nil
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err == nil {
			return data, nil
		}
		return nil, fmt.Errorf("unexpected data field")
	}
	return nullToNil(top[name]), nil
}

func nullToNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
