package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"arb_go/internal/domain"
	"arb_go/internal/infra"
)

// Scheduler drives one detection tick at a fixed period. Each tick takes a
// single table snapshot, runs the triangular scanner over the full triplet
// list, then runs the graph/Bellman-Ford pipeline once. A panic inside a
// tick is recovered at the tick boundary; the next tick proceeds on
// schedule regardless of the previous outcome.
type Scheduler struct {
	source      domain.SnapshotSource
	ledger      domain.Ledger
	scanner     *TriangularScanner
	builder     *GraphBuilder
	detector    *CycleDetector
	interval    time.Duration
	tradeAmount float64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler wires the full detection pipeline.
func NewScheduler(source domain.SnapshotSource, ledger domain.Ledger, triplets []domain.Triplet, feeRate float64, interval time.Duration, tradeAmount float64) *Scheduler {
	return &Scheduler{
		source:      source,
		ledger:      ledger,
		scanner:     NewTriangularScanner(triplets, feeRate),
		builder:     NewGraphBuilder(feeRate),
		detector:    NewCycleDetector(feeRate),
		interval:    interval,
		tradeAmount: tradeAmount,
	}
}

// Start launches the tick loop in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		slog.Info("Detection scheduler started", slog.Duration("interval", s.interval))

		for {
			select {
			case <-ctx.Done():
				slog.Info("Detection scheduler stopped")
				return
			case <-ticker.C:
				s.RunTick()
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunTick executes one full detection pass synchronously. Exported so
// tests can drive ticks without the timer.
func (s *Scheduler) RunTick() {
	defer func() {
		if r := recover(); r != nil {
			infra.GlobalMetrics.RecordTickFailure()
			slog.Error("Detection tick failed", slog.Any("panic", r))
		}
	}()

	table := s.source.Snapshot()

	for _, opp := range s.scanner.Scan(table) {
		infra.GlobalMetrics.RecordOpportunity(domain.StrategyTriangular)
		slog.Info("Triangular opportunity detected",
			slog.String("path", opp.PathString()),
			slog.Float64("net_profit", opp.NetProfitFraction),
		)

		triplet := domain.Triplet{opp.Path[0], opp.Path[1], opp.Path[2]}
		result := s.ledger.OnTriangularOpportunity(
			triplet, s.tradeAmount,
			opp.Legs[0], opp.Legs[1], opp.Legs[2],
			opp.NetProfitFraction, opp.DetectedAt,
		)
		s.recordResult(result, &opp)
	}

	graph, currencies := s.builder.Build(table)
	if opp, found := s.detector.Detect(graph, currencies, table); found {
		infra.GlobalMetrics.RecordOpportunity(domain.StrategyCycle)
		slog.Info("Cycle opportunity detected",
			slog.String("path", opp.PathString()),
			slog.Float64("net_profit", opp.NetProfitFraction),
		)

		result := s.ledger.OnCycleOpportunity(opp.Path, s.tradeAmount, opp.NetProfitFraction, opp.DetectedAt)
		s.recordResult(result, &opp)
	}

	infra.GlobalMetrics.RecordTick()
}

// recordResult logs the ledger's verdict. Rejection is a business
// outcome, not an engine error.
func (s *Scheduler) recordResult(result domain.TradeResult, opp *domain.Opportunity) {
	if result.Accepted {
		infra.GlobalMetrics.RecordTradeAccepted()
		return
	}
	infra.GlobalMetrics.RecordTradeRejected()
	slog.Info("Ledger rejected trade",
		slog.String("strategy", opp.Strategy.String()),
		slog.String("path", opp.PathString()),
		slog.String("reason", result.Reason),
	)
}
