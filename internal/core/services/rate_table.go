package services

import (
	"sync"

	"github.com/shopspring/decimal"
)

type ratePair struct {
	from string
	to   string
}

// RateTable is the in-memory conversion rate cache shared by every converter.
// Entries are filled lazily and never invalidated for the table's lifetime;
// writing a pair twice is harmless because values are idempotent.
type RateTable struct {
	mu    sync.RWMutex
	rates map[ratePair]decimal.Decimal
}

// NewRateTable creates an empty table.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[ratePair]decimal.Decimal)}
}

// Get returns the cached rate for from→to.
func (t *RateTable) Get(from, to string) (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[ratePair{from, to}]
	return r, ok
}

// Put stores the rate for from→to.
func (t *RateTable) Put(from, to string, rate decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates[ratePair{from, to}] = rate
}

// Len reports how many pairs are cached.
func (t *RateTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rates)
}
