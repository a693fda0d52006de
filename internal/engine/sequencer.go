package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"order_book/internal/book"
	"order_book/internal/domain"
	"order_book/internal/event"
	"order_book/internal/infra"

	"github.com/shopspring/decimal"
)

// Sequencer is the single-threaded command processor in front of the book.
// Commands are applied in sequence order by the Run goroutine; queries from
// other goroutines take the read lock and never see a half-applied command.
type Sequencer struct {
	inbox    chan event.Event
	book     *book.OrderBook
	nextSeq  uint64
	metrics  *infra.Metrics
	log      *slog.Logger
	dumpFile string

	mu sync.RWMutex
}

// NewSequencer creates a new sequencer instance around b.
// A nil metrics or logger falls back to a private instance and slog.Default().
func NewSequencer(inboxSize int, b *book.OrderBook, metrics *infra.Metrics, logger *slog.Logger) *Sequencer {
	if metrics == nil {
		metrics = &infra.Metrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		inbox:    make(chan event.Event, inboxSize),
		book:     b,
		nextSeq:  1,
		metrics:  metrics,
		log:      logger,
		dumpFile: "panic_dump.json",
	}
}

// SetDumpFile sets where the state is written if the sequencer halts.
func (s *Sequencer) SetDumpFile(path string) {
	s.dumpFile = path
}

// Inbox returns the event channel. Producers send events here.
func (s *Sequencer) Inbox() chan<- event.Event {
	return s.inbox
}

// Run starts the main event loop. This MUST be run in a single goroutine.
func (s *Sequencer) Run(ctx context.Context) {
	s.log.Info("Sequencer started (Single-Thread Hotpath)")

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("CRITICAL_PANIC_DETECTED", slog.Any("panic", r))
			s.DumpState(s.dumpFile)
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sequencer stopping...")
			return
		case ev := <-s.inbox:
			s.processEvent(ev)
		}
	}
}

func (s *Sequencer) processEvent(ev event.Event) {
	start := time.Now()

	// Sequence gap check (halt policy)
	if ev.GetSeq() != s.expectedSeq() {
		panic(fmt.Sprintf("SEQUENCE_GAP_DETECTED: expected %d, got %d", s.expectedSeq(), ev.GetSeq()))
	}

	s.apply(ev)
	s.metrics.RecordEvent(time.Since(start).Nanoseconds())
	event.Release(ev)
}

// ReplayEvent applies an event synchronously on the caller's goroutine.
// The event is not returned to the pool; the caller keeps ownership.
// It must not be mixed with a running Run loop.
func (s *Sequencer) ReplayEvent(ev event.Event) {
	if ev.GetSeq() != s.expectedSeq() {
		panic(fmt.Sprintf("REPLAY_GAP_DETECTED: expected %d, got %d", s.expectedSeq(), ev.GetSeq()))
	}
	s.apply(ev)
}

func (s *Sequencer) expectedSeq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextSeq
}

// apply dispatches one event to the book under the write lock and advances
// the sequence. Rejected commands are logged and counted, they do not halt.
func (s *Sequencer) apply(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case *event.AddOrderEvent:
		if err := s.book.AddOrder(e.Order); err != nil {
			s.reject(ev, err)
		} else {
			s.metrics.RecordAdd()
		}
	case *event.RemoveOrderEvent:
		if s.book.RemoveOrder(e.OrderID) {
			s.metrics.RecordRemove()
		} else {
			s.metrics.RecordIgnored()
		}
	case *event.UpdateSizeEvent:
		ok, err := s.book.UpdateOrderSize(e.OrderID, e.Size)
		switch {
		case err != nil:
			s.reject(ev, err)
		case ok:
			s.metrics.RecordUpdate()
		default:
			s.metrics.RecordIgnored()
		}
	default:
		s.log.Warn("Unknown event type", slog.Any("type", ev.GetType()))
	}

	s.nextSeq++
}

func (s *Sequencer) reject(ev event.Event, err error) {
	s.metrics.RecordError()
	s.log.Warn("Command rejected",
		slog.Uint64("seq", ev.GetSeq()),
		slog.String("type", string(ev.GetType())),
		slog.Any("error", err))
}

// LastSeq returns the sequence number of the last applied event.
func (s *Sequencer) LastSeq() uint64 {
	return s.expectedSeq() - 1
}

// WaitApplied blocks until the event with sequence seq has been applied or
// ctx is done.
func (s *Sequencer) WaitApplied(ctx context.Context, seq uint64) error {
	t := time.NewTicker(5 * time.Millisecond)
	defer t.Stop()
	for s.LastSeq() < seq {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

// Orders returns the orders of a side in price-time order.
func (s *Sequencer) Orders(side domain.Side) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Orders(side)
}

// Order returns the stored order for id.
func (s *Sequencer) Order(id uint64) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Order(id)
}

// PriceForLevel returns the price of the level-th best level on a side.
func (s *Sequencer) PriceForLevel(side domain.Side, level int) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.PriceForLevel(side, level)
}

// BucketCount returns the number of orders at the level-th best level.
func (s *Sequencer) BucketCount(side domain.Side, level int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.BucketCount(side, level)
}

// LevelCount returns the number of price levels on a side.
func (s *Sequencer) LevelCount(side domain.Side) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.LevelCount(side)
}

// Depth returns up to n aggregated best levels of a side.
func (s *Sequencer) Depth(side domain.Side, n int) ([]book.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Depth(side, n)
}

// Metrics returns a snapshot of the sequencer counters.
func (s *Sequencer) Metrics() infra.MetricsSnapshot {
	return s.metrics.Snapshot()
}

// DumpState writes the entire book to a file (for post-mortem).
func (s *Sequencer) DumpState(filename string) {
	s.log.Info("Dumping internal state...", slog.String("file", filename))

	s.mu.RLock()
	bids, _ := s.book.Orders(domain.SideBid)
	offers, _ := s.book.Orders(domain.SideOffer)
	data := struct {
		NextSeq uint64         `json:"next_seq"`
		Bids    []domain.Order `json:"bids"`
		Offers  []domain.Order `json:"offers"`
	}{
		NextSeq: s.nextSeq,
		Bids:    bids,
		Offers:  offers,
	}
	s.mu.RUnlock()

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		s.log.Error("Failed to marshal state", slog.Any("error", err))
		return
	}

	if err := os.WriteFile(filename, b, 0644); err != nil {
		s.log.Error("Failed to write state dump", slog.Any("error", err))
	}
}
