package app

import (
	"context"
	"log/slog"
	"time"

	"order_book/internal/book"
	"order_book/internal/domain"
	"order_book/internal/engine"
	"order_book/internal/event"
	"order_book/internal/infra"

	"github.com/google/uuid"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	ConfigPath string
	SessionID  string

	Config    *infra.Config
	Logger    *slog.Logger
	Metrics   *infra.Metrics
	Book      *book.OrderBook
	Sequencer *engine.Sequencer
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap(configPath string) *Bootstrap {
	return &Bootstrap{ConfigPath: configPath}
}

// Initialize loads configuration, sets up logging and builds the book and
// its sequencer. The book starts empty; seed orders go through the sequencer.
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping order book...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(b.ConfigPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	b.SessionID = uuid.NewString()
	b.Logger = infra.NewLogger(cfg).With(
		slog.String("app", cfg.App.Name),
		slog.String("session", b.SessionID),
	)
	slog.SetDefault(b.Logger)

	// 3. Book and Sequencer
	b.Metrics = &infra.Metrics{}
	b.Book = book.New(book.WithLogger(b.Logger.With(slog.String("component", "book"))))
	b.Sequencer = engine.NewSequencer(cfg.Engine.InboxSize, b.Book, b.Metrics, b.Logger)
	b.Sequencer.SetDumpFile(cfg.Engine.DumpFile)
	event.Warmup()

	b.Logger.Info("✅ Order book ready",
		slog.Int("inbox_size", cfg.Engine.InboxSize),
		slog.Int("seed_orders", len(cfg.Book.SeedOrders)))
	return nil
}

// FeedSeed sends the configured seed orders to the sequencer in file order,
// numbering them from 1. It returns the sequence number of the last event.
func (b *Bootstrap) FeedSeed(ctx context.Context) (uint64, error) {
	inbox := b.Sequencer.Inbox()
	var seq uint64
	for _, o := range b.Config.Book.SeedOrders {
		seq++
		ev := event.AcquireAddOrderEvent()
		ev.Seq = seq
		ev.Ts = time.Now().UnixMicro()
		ev.Order = o

		select {
		case <-ctx.Done():
			event.ReleaseAddOrderEvent(ev)
			return seq - 1, ctx.Err()
		case inbox <- ev:
		}
	}
	return seq, nil
}

// ReportDepth logs the configured number of levels on both sides.
func (b *Bootstrap) ReportDepth(ctx context.Context) {
	for _, side := range []domain.Side{domain.SideBid, domain.SideOffer} {
		levels, err := b.Sequencer.Depth(side, b.Config.Book.DepthLevels)
		if err != nil {
			b.Logger.ErrorContext(ctx, "Depth query failed", slog.String("side", string(side)), slog.Any("error", err))
			continue
		}
		for i, lvl := range levels {
			b.Logger.InfoContext(ctx, "DEPTH",
				slog.String("side", string(side)),
				slog.Int("level", i+1),
				slog.String("price", lvl.Price.String()),
				slog.Int64("size", lvl.TotalSize),
				slog.Int("orders", lvl.OrderCount))
		}
	}

	snap := b.Sequencer.Metrics()
	b.Logger.InfoContext(ctx, "METRICS",
		slog.Uint64("events", snap.EventsProcessed),
		slog.Uint64("added", snap.OrdersAdded),
		slog.Uint64("errors", snap.ErrorsTotal),
		slog.Int64("avg_latency_ns", snap.AvgLatencyNs))
}
