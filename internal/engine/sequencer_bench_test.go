package engine

import (
	"context"
	"testing"

	"order_book/internal/book"
	"order_book/internal/domain"
	"order_book/internal/event"

	"github.com/shopspring/decimal"
)

// BenchmarkSequencer_Apply measures the hotpath of applying one command.
func BenchmarkSequencer_Apply(b *testing.B) {
	seq := NewSequencer(1000, book.New(), nil, quietLogger())
	price := decimal.NewFromInt(50000)

	ev := &event.UpdateSizeEvent{OrderID: 1}
	seq.ReplayEvent(&event.AddOrderEvent{
		BaseEvent: event.BaseEvent{Seq: 1},
		Order:     domain.Order{ID: 1, Price: price, Side: domain.SideBid, Size: 1},
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ev.Seq = uint64(i + 2)
		ev.Size = int64(i)
		seq.apply(ev)
	}
}

// BenchmarkSequencer_FullPipeline measures end-to-end event processing.
// Note: This benchmark includes channel overhead.
func BenchmarkSequencer_FullPipeline(b *testing.B) {
	seq := NewSequencer(b.N+100, book.New(), nil, quietLogger())
	inbox := seq.Inbox()
	price := decimal.NewFromInt(50000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go seq.Run(ctx)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		ev := event.AcquireAddOrderEvent()
		ev.Seq = uint64(i + 1)
		ev.Ts = int64(i)
		ev.Order = domain.Order{ID: uint64(i), Price: price, Side: domain.SideOffer, Size: 1}

		inbox <- ev
	}

	if err := seq.WaitApplied(ctx, uint64(b.N)); err != nil {
		b.Fatal(err)
	}
}
