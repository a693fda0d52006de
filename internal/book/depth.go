package book

import (
	"order_book/internal/domain"

	"github.com/shopspring/decimal"
)

// Level is an aggregated view of one price level.
type Level struct {
	Price      decimal.Decimal `json:"price"`
	TotalSize  int64           `json:"total_size"`
	OrderCount int             `json:"order_count"`
}

func (b *OrderBook) aggregate(lvl *priceLevel) Level {
	out := Level{Price: lvl.price, OrderCount: lvl.len()}
	for _, id := range lvl.ids {
		out.TotalSize += b.orders[id].Size
	}
	return out
}

// Depth returns up to n best levels of a side, best first.
// n <= 0 returns every level.
func (b *OrderBook) Depth(side domain.Side, n int) ([]Level, error) {
	s, err := b.side(side)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > s.count() {
		n = s.count()
	}
	out := make([]Level, 0, n)
	s.iterate(func(lvl *priceLevel) bool {
		if len(out) == n {
			return false
		}
		out = append(out, b.aggregate(lvl))
		return true
	})
	return out, nil
}

// Best returns the top level of a side. ok is false when the side is empty.
func (b *OrderBook) Best(side domain.Side) (lvl Level, ok bool, err error) {
	s, err := b.side(side)
	if err != nil {
		return Level{}, false, err
	}
	top := s.best()
	if top == nil {
		return Level{}, false, nil
	}
	return b.aggregate(top), true, nil
}
