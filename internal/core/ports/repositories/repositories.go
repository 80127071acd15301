package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	PreferenceRepo   PreferenceRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
}
