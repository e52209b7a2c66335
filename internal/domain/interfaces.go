package domain

import "context"

// FeedWorker defines the interface for market-data WebSocket connectors
type FeedWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// SnapshotSource provides a consistent point-in-time view of the price table.
// The engine takes one snapshot per detection tick and never mutates it.
type SnapshotSource interface {
	Snapshot() PriceTable
}

// Ledger receives detected opportunities and simulates their execution.
// Each call is atomic from the ledger's perspective: balances and the
// trade log are never observable in a half-updated state.
type Ledger interface {
	// OnTriangularOpportunity simulates the three-leg round trip
	// A -> B -> C -> A starting with tradeAmount units of A.
	OnTriangularOpportunity(triplet Triplet, tradeAmount float64, rateAB, rateBC, rateCA float64, netProfit float64, detectedAt int64) TradeResult

	// OnCycleOpportunity simulates a multi-currency cycle trade starting
	// with tradeAmount units of the cycle's first currency.
	OnCycleOpportunity(cycle []string, tradeAmount float64, netProfit float64, detectedAt int64) TradeResult
}

// TradeStore persists the ledger's trade history.
type TradeStore interface {
	SaveTrade(record *TradeRecord) error
	RecentTrades(limit int) ([]TradeRecord, error)
}
