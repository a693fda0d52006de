package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"order_book/internal/app"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap(*configPath)
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seq := bootstrap.Sequencer
	g, gctx := errgroup.WithContext(ctx)

	// 3. Sequencer (the only writer to the book)
	g.Go(func() error {
		seq.Run(gctx)
		return nil
	})
	slog.InfoContext(ctx, "✅ Sequencer (Hotpath) started")

	// 4. Seed the book, then report it
	g.Go(func() error {
		last, err := bootstrap.FeedSeed(gctx)
		if err != nil {
			return err
		}
		if err := seq.WaitApplied(gctx, last); err != nil {
			return err
		}
		slog.InfoContext(gctx, "✨ Seed orders applied", slog.Uint64("last_seq", last))
		bootstrap.ReportDepth(gctx)
		return nil
	})

	slog.InfoContext(ctx, "Order book running. Press Ctrl+C to exit.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Order book stopped with error", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("👋 Shutting down gracefully...")
}
