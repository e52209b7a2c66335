package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"arb_go/internal/app"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize("configs/config.yaml"); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Market Data Feed (writes the shared price book)
	if err := bootstrap.Feed.Connect(ctx); err != nil {
		slog.Error("Failed to start Binance feed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Feed.Disconnect()
	slog.InfoContext(ctx, "✅ Binance feed started", slog.Int("symbols", len(bootstrap.Config.API.Binance.Symbols)))

	// 5. Detection Scheduler (reads snapshots, notifies the ledger)
	bootstrap.Scheduler.Start(ctx)
	defer bootstrap.Scheduler.Stop()
	slog.InfoContext(ctx, "✅ Detection scheduler started", slog.Int("triplets", len(bootstrap.Config.Triplets())))

	slog.InfoContext(ctx, "✨ Arbitrage engine fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
