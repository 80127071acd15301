package services

import (
	portsrepo "github.com/SscSPs/captainledger_insights/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/captainledger_insights/internal/core/ports/services"
	"github.com/SscSPs/captainledger_insights/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// remote may be nil when no exchange rate API is reachable; table may be nil
// for a fresh rate table.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	records portssvc.RecordSource,
	remote portssvc.RemoteRateProvider,
	table *RateTable,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Preference = NewPreferenceService(repos.PreferenceRepo, container.Currency, cfg.DefaultCurrency)

	resolverOpts := []ResolverOption{WithRateFreshness(cfg.RateFreshFor, cfg.RateStaleFor)}
	if remote != nil {
		resolverOpts = append(resolverOpts, WithRemoteProvider(remote))
	}
	container.Conversion = NewConversionService(table, NewRateResolver(repos.ExchangeRateRepo, resolverOpts...))

	container.Insights = NewInsightsService(records, container.Conversion, container.Preference)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*currencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.ConversionSvc         = (*conversionService)(nil)
	_ portssvc.RateSource            = (*rateResolver)(nil)
)
