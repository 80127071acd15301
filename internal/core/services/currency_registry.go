package services

import (
	"strings"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/captainledger_insights/internal/core/domain"
)

// go-money keeps its currency registry in an unguarded package map, so every
// lookup, display and add goes through registryMu.
var registryMu sync.RWMutex

func lookupCurrency(code string) *money.Currency {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return money.GetCurrency(code)
}

// displayMinor formats an amount in minor units of a registered currency.
func displayMinor(minor int64, code string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return money.New(minor, code).Display()
}

// RegisterCurrencies adds currencies missing from the ISO 4217 registry
// (e.g. crypto assets) so they can be converted and formatted.
// It returns the codes that were added.
func RegisterCurrencies(currencies []domain.Currency) []string {
	registryMu.Lock()
	defer registryMu.Unlock()

	var added []string
	for _, c := range currencies {
		code := strings.ToUpper(c.CurrencyCode)
		if code == "" || money.GetCurrency(code) != nil {
			continue
		}
		symbol := c.Symbol
		if symbol == "" {
			symbol = code
		}
		money.AddCurrency(code, symbol, "1 $", ".", ",", c.DecimalPlaces)
		added = append(added, code)
	}
	return added
}
