// Package book implements the in-memory limit order book: resting bids and
// offers grouped into price levels, with price-time ordered queries.
//
// The book is not safe for concurrent use. Callers that share a book across
// goroutines must serialize access to the whole structure (see engine.Sequencer).
package book

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"order_book/internal/domain"

	"github.com/shopspring/decimal"
)

// OrderBook tracks resting orders by id and indexes them by side and price.
// The id map is the single owner of order data; the side indexes only hold ids.
type OrderBook struct {
	orders map[uint64]domain.Order
	bids   *bookSide
	offers *bookSide
	log    *slog.Logger
}

// Option configures an OrderBook.
type Option func(*OrderBook)

// WithLogger sets the logger used for debug tracing of ignored commands.
func WithLogger(l *slog.Logger) Option {
	return func(b *OrderBook) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates an empty order book.
func New(opts ...Option) *OrderBook {
	b := &OrderBook{
		orders: make(map[uint64]domain.Order),
		bids:   newBookSide(descending),
		offers: newBookSide(ascending),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromOrders builds a book from orders, adding them in slice order so that
// earlier orders have time priority over later ones at the same price.
// All orders are validated before any is added.
func FromOrders(orders []domain.Order, opts ...Option) (*OrderBook, error) {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}
	b := New(opts...)
	for _, o := range orders {
		if err := b.AddOrder(o); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromMap builds a book from an id -> order mapping. Map iteration order is
// random, so orders are added in ascending id order to keep time priority
// deterministic.
func FromMap(orders map[uint64]domain.Order, opts ...Option) (*OrderBook, error) {
	ids := slices.Sorted(maps.Keys(orders))
	list := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o := orders[id]
		if o.ID != id {
			return nil, fmt.Errorf("%w: order keyed %d carries id %d", domain.ErrInvalidArgument, id, o.ID)
		}
		list = append(list, o)
	}
	return FromOrders(list, opts...)
}

func (b *OrderBook) side(s domain.Side) (*bookSide, error) {
	switch s {
	case domain.SideBid:
		return b.bids, nil
	case domain.SideOffer:
		return b.offers, nil
	}
	return nil, fmt.Errorf("%w: unknown order side %q", domain.ErrInvalidArgument, string(s))
}

// AddOrder puts an order at the back of the bucket for its side and price.
//
// Adding an id that is already in the book replaces the stored order and
// moves its id to the back of the bucket for the new price and side, so the
// order loses its time priority. No stale id is left behind.
func (b *OrderBook) AddOrder(o domain.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	dst, err := b.side(o.Side)
	if err != nil {
		return err
	}

	if prev, ok := b.orders[o.ID]; ok {
		b.unlink(prev)
		b.log.Debug("order re-added, time priority reset",
			slog.Uint64("id", o.ID),
			slog.String("prev_price", prev.Price.String()),
			slog.String("price", o.Price.String()))
	}

	b.orders[o.ID] = o
	dst.add(o.Price, o.ID)
	return nil
}

// RemoveOrder deletes an order from the book. It reports whether the id was
// present; removing an unknown id is a no-op.
func (b *OrderBook) RemoveOrder(id uint64) bool {
	o, ok := b.orders[id]
	if !ok {
		b.log.Debug("remove ignored, unknown order", slog.Uint64("id", id))
		return false
	}
	delete(b.orders, id)
	b.unlink(o)
	return true
}

// UpdateOrderSize replaces the size of a resting order. Its price, side and
// position in the bucket are unchanged. It reports whether the id was present;
// updating an unknown id is a no-op.
func (b *OrderBook) UpdateOrderSize(id uint64, size int64) (bool, error) {
	if size < 0 {
		return false, fmt.Errorf("%w: order %d has negative size %d", domain.ErrInvalidArgument, id, size)
	}
	o, ok := b.orders[id]
	if !ok {
		b.log.Debug("size update ignored, unknown order", slog.Uint64("id", id))
		return false, nil
	}
	b.orders[id] = o.WithSize(size)
	return true, nil
}

// unlink removes a stored order's id from its side index.
func (b *OrderBook) unlink(o domain.Order) {
	s, err := b.side(o.Side)
	if err != nil {
		// Stored orders were validated on add.
		panic(fmt.Sprintf("BOOK_CORRUPT: order %d stored with side %q", o.ID, o.Side))
	}
	if !s.remove(o.Price, o.ID) {
		panic(fmt.Sprintf("BOOK_CORRUPT: order %d missing from %s bucket %s", o.ID, o.Side, o.Price))
	}
}

// levelOf resolves a 1-based level on a side.
func (b *OrderBook) levelOf(side domain.Side, level int) (*priceLevel, error) {
	if level <= 0 {
		return nil, fmt.Errorf("%w: level must be larger than 0, got %d", domain.ErrInvalidArgument, level)
	}
	s, err := b.side(side)
	if err != nil {
		return nil, err
	}
	if n := s.count(); level > n {
		return nil, fmt.Errorf("%w: level %d requested, %s side has %d levels", domain.ErrOutOfRange, level, side, n)
	}
	return s.levelAt(level), nil
}

// PriceForLevel returns the price of the level-th best level on a side.
// Level 1 is the highest bid or the lowest offer.
func (b *OrderBook) PriceForLevel(side domain.Side, level int) (decimal.Decimal, error) {
	lvl, err := b.levelOf(side, level)
	if err != nil {
		return decimal.Zero, err
	}
	return lvl.price, nil
}

// BucketCount returns the number of orders resting at the level-th best level.
func (b *OrderBook) BucketCount(side domain.Side, level int) (int, error) {
	lvl, err := b.levelOf(side, level)
	if err != nil {
		return 0, err
	}
	return lvl.len(), nil
}

// LevelCount returns the number of distinct price levels on a side.
func (b *OrderBook) LevelCount(side domain.Side) (int, error) {
	s, err := b.side(side)
	if err != nil {
		return 0, err
	}
	return s.count(), nil
}

// Orders returns the orders of a side in price-time order: best price first
// and, within a price, in the order they were added.
func (b *OrderBook) Orders(side domain.Side) ([]domain.Order, error) {
	s, err := b.side(side)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0)
	s.iterate(func(lvl *priceLevel) bool {
		for _, id := range lvl.ids {
			out = append(out, b.orders[id])
		}
		return true
	})
	return out, nil
}

// Order returns the stored order for id.
func (b *OrderBook) Order(id uint64) (domain.Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// Len returns the number of orders in the book across both sides.
func (b *OrderBook) Len() int {
	return len(b.orders)
}

// AllOrders returns a copy of the id -> order mapping.
func (b *OrderBook) AllOrders() map[uint64]domain.Order {
	return maps.Clone(b.orders)
}
