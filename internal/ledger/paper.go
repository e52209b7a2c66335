package ledger

import (
	"log/slog"
	"sync"

	"arb_go/internal/domain"

	"github.com/shopspring/decimal"
)

// PaperLedger simulates order execution against virtual balances. It never
// touches a live exchange: every accepted opportunity adjusts the starting
// currency's balance by the simulated round-trip result and appends a
// trade record. Calls are serialized by a mutex so each notification is
// atomic from the caller's perspective.
type PaperLedger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	feeRate  decimal.Decimal
	trades   []domain.TradeRecord
	store    domain.TradeStore // Optional persistence; nil disables it
}

// NewPaperLedger creates a ledger seeded with the given balances.
func NewPaperLedger(initialBalances map[string]float64, feeRate float64, store domain.TradeStore) *PaperLedger {
	balances := make(map[string]decimal.Decimal, len(initialBalances))
	for currency, amount := range initialBalances {
		balances[currency] = decimal.NewFromFloat(amount)
	}
	return &PaperLedger{
		balances: balances,
		feeRate:  decimal.NewFromFloat(feeRate),
		store:    store,
	}
}

// Deposit credits the given currency.
func (l *PaperLedger) Deposit(currency string, amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[currency] = l.balances[currency].Add(decimal.NewFromFloat(amount))
}

// Balance returns the current balance for a currency.
func (l *PaperLedger) Balance(currency string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[currency]
}

// TradeLog returns a copy of all recorded trades in execution order.
func (l *PaperLedger) TradeLog() []domain.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := make([]domain.TradeRecord, len(l.trades))
	copy(log, l.trades)
	return log
}

// OnTriangularOpportunity simulates the three-leg round trip
// A -> B -> C -> A, applying the per-leg fee at each conversion.
// Insufficient balance in A rejects the trade; rejection is a business
// outcome, not an error.
func (l *PaperLedger) OnTriangularOpportunity(triplet domain.Triplet, tradeAmount float64, rateAB, rateBC, rateCA float64, netProfit float64, detectedAt int64) domain.TradeResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := triplet[0]
	amount := decimal.NewFromFloat(tradeAmount)

	if l.balances[start].LessThan(amount) {
		slog.Info("Insufficient balance for triangular trade",
			slog.String("currency", start),
			slog.String("balance", l.balances[start].String()),
			slog.Float64("required", tradeAmount),
		)
		return domain.Reject(domain.RejectReasonInsufficientBalance)
	}

	oneMinusFee := decimal.NewFromInt(1).Sub(l.feeRate)
	amountB := amount.Mul(decimal.NewFromFloat(rateAB)).Mul(oneMinusFee)
	amountC := amountB.Mul(decimal.NewFromFloat(rateBC)).Mul(oneMinusFee)
	finalAmount := amountC.Mul(decimal.NewFromFloat(rateCA)).Mul(oneMinusFee)

	l.balances[start] = l.balances[start].Sub(amount).Add(finalAmount)

	l.record(domain.TradeRecord{
		ExecutedAtMs:  detectedAt,
		Strategy:      domain.StrategyTriangular.String(),
		Path:          triplet.String(),
		InitialAmount: amount,
		FinalAmount:   finalAmount,
		NetProfit:     finalAmount.Sub(amount),
	})

	return domain.Accept()
}

// OnCycleOpportunity simulates a multi-currency cycle trade. Execution is
// assumed perfect, so the final amount is the initial amount scaled by the
// replayed net profit.
func (l *PaperLedger) OnCycleOpportunity(cycle []string, tradeAmount float64, netProfit float64, detectedAt int64) domain.TradeResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := cycle[0]
	amount := decimal.NewFromFloat(tradeAmount)

	if l.balances[start].LessThan(amount) {
		slog.Info("Insufficient balance for cycle trade",
			slog.String("currency", start),
			slog.String("balance", l.balances[start].String()),
			slog.Float64("required", tradeAmount),
		)
		return domain.Reject(domain.RejectReasonInsufficientBalance)
	}

	finalAmount := amount.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(netProfit)))

	l.balances[start] = l.balances[start].Sub(amount).Add(finalAmount)

	opp := domain.Opportunity{Strategy: domain.StrategyCycle, Path: cycle}
	l.record(domain.TradeRecord{
		ExecutedAtMs:  detectedAt,
		Strategy:      domain.StrategyCycle.String(),
		Path:          opp.PathString(),
		InitialAmount: amount,
		FinalAmount:   finalAmount,
		NetProfit:     finalAmount.Sub(amount),
	})

	return domain.Accept()
}

// record appends to the in-memory log and persists when a store is
// configured. A persistence failure is logged but does not undo the
// trade; balances and log stay consistent.
// Must be called with the lock held.
func (l *PaperLedger) record(rec domain.TradeRecord) {
	l.trades = append(l.trades, rec)
	slog.Info("Executed paper trade",
		slog.String("strategy", rec.Strategy),
		slog.String("path", rec.Path),
		slog.String("net_profit", rec.NetProfit.String()),
	)

	if l.store != nil {
		if err := l.store.SaveTrade(&rec); err != nil {
			slog.Error("Failed to persist trade", slog.Any("error", err))
		}
	}
}
