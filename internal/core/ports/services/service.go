package services

// ServiceContainer holds instances of all the application services.
// It is the main entry point for accessing service functionality and is used
// by the handlers, the refresher and the CLI.
type ServiceContainer struct {
	Currency     CurrencySvcFacade
	Preference   PreferenceSvc
	ExchangeRate ExchangeRateSvcFacade
	Conversion   ConversionSvc
	Insights     InsightsSvc
}
