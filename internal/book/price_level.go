package book

import "github.com/shopspring/decimal"

// priceLevel is the bucket of order ids resting at one price on one side.
// ids are kept in arrival order; the first id has time priority.
type priceLevel struct {
	price decimal.Decimal
	ids   []uint64
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price, ids: make([]uint64, 0, 1)}
}

// enqueue appends id to the back of the bucket.
func (p *priceLevel) enqueue(id uint64) {
	p.ids = append(p.ids, id)
}

// remove deletes id from the bucket, preserving the order of the rest.
// Linear in the bucket size; buckets hold few orders.
func (p *priceLevel) remove(id uint64) bool {
	for i, v := range p.ids {
		if v != id {
			continue
		}
		copy(p.ids[i:], p.ids[i+1:])
		p.ids = p.ids[:len(p.ids)-1]
		return true
	}
	return false
}

func (p *priceLevel) len() int { return len(p.ids) }

func (p *priceLevel) empty() bool { return len(p.ids) == 0 }
