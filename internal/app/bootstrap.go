package app

import (
	"log/slog"
	"time"

	"arb_go/internal/engine"
	"arb_go/internal/feed"
	"arb_go/internal/infra"
	"arb_go/internal/ledger"
	"arb_go/internal/service"
	"arb_go/internal/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config    *infra.Config
	Storage   *storage.Storage
	Book      *service.PriceBook
	Ledger    *ledger.PaperLedger
	Feed      *feed.BinanceWorker
	Scheduler *engine.Scheduler
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization and wires the pipeline:
// feed -> price book -> detection scheduler -> paper ledger.
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping Arb Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (trade history)
	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Database initialized")

	// 4. Shared price book and paper ledger
	b.Book = service.NewPriceBook()
	b.Ledger = ledger.NewPaperLedger(cfg.Ledger.InitialBalances, cfg.Engine.FeeRate, store)
	slog.Info("✅ Paper ledger seeded", slog.Int("currencies", len(cfg.Ledger.InitialBalances)))

	// 5. Feed worker and detection scheduler
	b.Feed = feed.NewBinanceWorker(cfg.API.Binance.WSURL, cfg.API.Binance.Symbols, b.Book)
	b.Scheduler = engine.NewScheduler(
		b.Book,
		b.Ledger,
		cfg.Triplets(),
		cfg.Engine.FeeRate,
		time.Duration(cfg.Engine.DetectionIntervalMS)*time.Millisecond,
		cfg.Engine.TradeAmount,
	)

	return nil
}
