package pgsql

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	"github.com/SscSPs/captainledger_insights/internal/models"
	"github.com/SscSPs/captainledger_insights/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RateRetention is how many rates are kept per currency pair.
const RateRetention = 20

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, source, date_effective,
		created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the exchange rate repository ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a rate and prunes the pair's history to RateRetention rows.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrencyCode)
	toCurrency := strings.ToUpper(rate.ToCurrencyCode)

	if fromCurrency == toCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrencyCode = fromCurrency
	modelRate.ToCurrencyCode = toCurrency

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO exchange_rates (`+exchangeRateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			modelRate.ExchangeRateID, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode,
			modelRate.Rate, modelRate.Source, modelRate.DateEffective, modelRate.CreatedAt,
			modelRate.CreatedBy, modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM exchange_rates
			WHERE from_currency_code = $1 AND to_currency_code = $2
			AND exchange_rate_id NOT IN (
				SELECT exchange_rate_id FROM exchange_rates
				WHERE from_currency_code = $1 AND to_currency_code = $2
				ORDER BY created_at DESC
				LIMIT $3
			)`,
			fromCurrency, toCurrency, RateRetention,
		)
		return err
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save exchange rate", err)
	}
	return nil
}

// FindExchangeRate retrieves the most recent rate between two currencies,
// inverting the opposite pair when no direct rate is stored.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	directRate, err := r.FindLatestExchangeRate(ctx, fromCurrency, toCurrency)
	if err == nil {
		return directRate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverseRate, err := r.FindLatestExchangeRate(ctx, toCurrency, fromCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + fromCurrency + " to " + toCurrency)
		}
		return nil, err
	}
	if inverseRate.Rate.IsZero() {
		return nil, apperrors.NewNotFoundError("no usable exchange rate for currency pair " + fromCurrency + " to " + toCurrency)
	}

	inverseRate.FromCurrencyCode = fromCurrency
	inverseRate.ToCurrencyCode = toCurrency
	inverseRate.Rate = decimal.NewFromInt(1).Div(inverseRate.Rate)
	inverseRate.Source = domain.RateSourceCalculated
	return inverseRate, nil
}

// FindLatestExchangeRate retrieves the most recently recorded direct rate, any age.
func (r *PgxExchangeRateRepository) FindLatestExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY created_at DESC
		LIMIT 1;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode)).Scan(
		&modelRate.ExchangeRateID, &modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode,
		&modelRate.Rate, &modelRate.Source, &modelRate.DateEffective, &modelRate.CreatedAt,
		&modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, "exchange rate")
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}
