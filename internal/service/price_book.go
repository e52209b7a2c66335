package service

import (
	"sync"

	"arb_go/internal/domain"
)

// PriceBook holds the latest quote for every pair symbol. The feed writes
// at unbounded frequency; the detection engine reads via Snapshot so a
// whole tick observes one consistent version of the table.
type PriceBook struct {
	mu     sync.RWMutex
	quotes map[string]domain.Quote
}

// NewPriceBook creates an empty PriceBook.
func NewPriceBook() *PriceBook {
	return &PriceBook{
		quotes: make(map[string]domain.Quote),
	}
}

// Update overwrites the quote for a symbol. Entries are never deleted.
func (b *PriceBook) Update(symbol string, price float64, observedAt int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.quotes[symbol] = domain.Quote{Price: price, ObservedAt: observedAt}
}

// Get returns the quote for a symbol.
func (b *PriceBook) Get(symbol string) (domain.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	q, ok := b.quotes[symbol]
	return q, ok
}

// Snapshot returns a copy of the full table. Quotes are values, so the
// copy is fully detached from concurrent feed writes.
func (b *PriceBook) Snapshot() domain.PriceTable {
	b.mu.RLock()
	defer b.mu.RUnlock()

	table := make(domain.PriceTable, len(b.quotes))
	for symbol, q := range b.quotes {
		table[symbol] = q
	}
	return table
}

// Len returns the number of known symbols.
func (b *PriceBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.quotes)
}
