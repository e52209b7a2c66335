package infra

import (
	"sync/atomic"
	"time"

	"arb_go/internal/domain"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Detection counters
	ticksCompleted  atomic.Uint64
	ticksFailed     atomic.Uint64
	triangularFound atomic.Uint64
	cyclesFound     atomic.Uint64

	// Ledger outcomes
	tradesAccepted atomic.Uint64
	tradesRejected atomic.Uint64

	// Feed counters
	feedMessages   atomic.Uint64
	feedReconnects atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordTick records a completed detection tick.
func (m *Metrics) RecordTick() {
	m.ticksCompleted.Add(1)
}

// RecordTickFailure records a detection tick abandoned after a panic.
func (m *Metrics) RecordTickFailure() {
	m.ticksFailed.Add(1)
}

// RecordOpportunity records a detected opportunity by strategy.
func (m *Metrics) RecordOpportunity(kind domain.StrategyKind) {
	switch kind {
	case domain.StrategyTriangular:
		m.triangularFound.Add(1)
	case domain.StrategyCycle:
		m.cyclesFound.Add(1)
	}
}

// RecordTradeAccepted records a trade the ledger accepted.
func (m *Metrics) RecordTradeAccepted() {
	m.tradesAccepted.Add(1)
}

// RecordTradeRejected records a trade the ledger rejected.
func (m *Metrics) RecordTradeRejected() {
	m.tradesRejected.Add(1)
}

// RecordFeedMessage records one processed feed message.
func (m *Metrics) RecordFeedMessage() {
	m.feedMessages.Add(1)
}

// RecordFeedReconnect records a feed reconnection attempt.
func (m *Metrics) RecordFeedReconnect() {
	m.feedReconnects.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	TicksCompleted  uint64
	TicksFailed     uint64
	TriangularFound uint64
	CyclesFound     uint64
	TradesAccepted  uint64
	TradesRejected  uint64
	FeedMessages    uint64
	FeedReconnects  uint64
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TicksCompleted:  m.ticksCompleted.Load(),
		TicksFailed:     m.ticksFailed.Load(),
		TriangularFound: m.triangularFound.Load(),
		CyclesFound:     m.cyclesFound.Load(),
		TradesAccepted:  m.tradesAccepted.Load(),
		TradesRejected:  m.tradesRejected.Load(),
		FeedMessages:    m.feedMessages.Load(),
		FeedReconnects:  m.feedReconnects.Load(),
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ticksCompleted.Store(0)
	m.ticksFailed.Store(0)
	m.triangularFound.Store(0)
	m.cyclesFound.Store(0)
	m.tradesAccepted.Store(0)
	m.tradesRejected.Store(0)
	m.feedMessages.Store(0)
	m.feedReconnects.Store(0)
}
