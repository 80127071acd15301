package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/captainledger_insights/internal/apperrors"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/dto"
)

const defaultDecimalPlaces = 2

// currencyService provides business logic for the currency catalogue.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	places := defaultDecimalPlaces
	if req.DecimalPlaces != nil {
		places = *req.DecimalPlaces
	}

	currency := domain.Currency{
		CurrencyCode:  code,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Country:       req.Country,
		DecimalPlaces: places,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, time.Now()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	// make the new code usable by the converter straight away
	RegisterCurrencies([]domain.Currency{currency})

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	if currency == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency %s", code))
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
