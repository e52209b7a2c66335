package domain

// Quote is the latest observed price for a single pair symbol.
// Written by the feed, read-only to the detection engine.
type Quote struct {
	Price      float64 `json:"price"`       // Last trade price
	ObservedAt int64   `json:"observed_at"` // Event time in Unix milliseconds
}

// PriceTable is a point-in-time view of the market, keyed by pair symbol
// (e.g. "BTCUSDT"). Snapshots are plain value copies; mutating one never
// affects the live book.
type PriceTable map[string]Quote

// Triplet is an ordered 3-tuple of currency codes evaluated for
// triangular arbitrage as A -> B -> C -> A.
type Triplet [3]string

// String returns the round-trip path, e.g. "USDT -> BTC -> ETH -> USDT".
func (t Triplet) String() string {
	return t[0] + " -> " + t[1] + " -> " + t[2] + " -> " + t[0]
}
