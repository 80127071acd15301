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

// DefaultCurrency is the reporting currency when neither the user nor the
// configuration names one.
const DefaultCurrency = "USD"

type preferenceService struct {
	BaseService
	prefRepo        portsrepo.PreferenceRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	defaultCurrency string
}

// NewPreferenceService creates a preference service. prefRepo may be nil, in
// which case every user reports in defaultCurrency.
func NewPreferenceService(prefRepo portsrepo.PreferenceRepositoryFacade, currencyService portssvc.CurrencyReaderSvc, defaultCurrency string) portssvc.PreferenceSvc {
	defaultCurrency = strings.ToUpper(strings.TrimSpace(defaultCurrency))
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &preferenceService{
		prefRepo:        prefRepo,
		currencyService: currencyService,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.PreferenceSvc = (*preferenceService)(nil)

func (s *preferenceService) ListPreferences(ctx context.Context, userID string) ([]domain.CurrencyPreference, error) {
	if s.prefRepo == nil {
		return []domain.CurrencyPreference{}, nil
	}
	prefs, err := s.prefRepo.ListPreferences(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currency preferences", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list currency preferences in service: %w", err)
	}
	if prefs == nil {
		return []domain.CurrencyPreference{}, nil
	}
	return prefs, nil
}

func (s *preferenceService) SetPreference(ctx context.Context, userID string, req dto.SetPreferenceRequest) (*domain.CurrencyPreference, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user", apperrors.ErrUnauthorized)
	}
	if s.prefRepo == nil {
		return nil, fmt.Errorf("%w: preferences are not stored in this deployment", apperrors.ErrValidation)
	}
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if req.DisplayOrder < 0 {
		return nil, fmt.Errorf("%w: display order must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}

	pref := domain.CurrencyPreference{
		UserID:       userID,
		CurrencyCode: code,
		IsPrimary:    req.IsPrimary,
		DisplayOrder: req.DisplayOrder,
		AuditFields:  domain.NewAuditFields(userID, time.Now()),
	}
	if err := s.prefRepo.SavePreference(ctx, pref); err != nil {
		s.LogError(ctx, err, "Failed to save currency preference", slog.String("user_id", userID), slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to save currency preference in service: %w", err)
	}
	return &pref, nil
}

func (s *preferenceService) PrimaryCurrency(ctx context.Context, userID string) string {
	if s.prefRepo == nil || userID == "" {
		return s.defaultCurrency
	}
	pref, err := s.prefRepo.FindPrimaryPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Failed to read primary currency, using default", slog.String("user_id", userID))
		}
		return s.defaultCurrency
	}
	if pref == nil || pref.CurrencyCode == "" {
		return s.defaultCurrency
	}
	return strings.ToUpper(pref.CurrencyCode)
}
