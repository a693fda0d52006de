package book

import (
	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

// orderPreference is the direction a side is walked in, best price first.
type orderPreference int

const (
	ascending orderPreference = iota
	descending
)

const btreeDegree = 16

// bookSide is the price index of one side of the book.
// Levels are kept in a btree ordered so that Ascend visits the best price
// first: highest for bids, lowest for offers.
type bookSide struct {
	levels *btree.BTreeG[*priceLevel]
}

func newBookSide(pref orderPreference) *bookSide {
	less := func(a, b *priceLevel) bool { return a.price.LessThan(b.price) }
	if pref == descending {
		less = func(a, b *priceLevel) bool { return a.price.GreaterThan(b.price) }
	}
	return &bookSide{
		levels: btree.NewG[*priceLevel](btreeDegree, less),
	}
}

// find returns the level at price, or nil.
func (s *bookSide) find(price decimal.Decimal) *priceLevel {
	lvl, ok := s.levels.Get(&priceLevel{price: price})
	if !ok {
		return nil
	}
	return lvl
}

// upsert returns the level at price, creating it if absent.
func (s *bookSide) upsert(price decimal.Decimal) *priceLevel {
	if lvl := s.find(price); lvl != nil {
		return lvl
	}
	lvl := newPriceLevel(price)
	s.levels.ReplaceOrInsert(lvl)
	return lvl
}

// add appends id to the bucket at price.
func (s *bookSide) add(price decimal.Decimal, id uint64) {
	s.upsert(price).enqueue(id)
}

// remove takes id out of the bucket at price and prunes the bucket when it
// becomes empty.
func (s *bookSide) remove(price decimal.Decimal, id uint64) bool {
	lvl := s.find(price)
	if lvl == nil {
		return false
	}
	if !lvl.remove(id) {
		return false
	}
	if lvl.empty() {
		s.levels.Delete(lvl)
	}
	return true
}

// count is the number of price levels on the side.
func (s *bookSide) count() int {
	return s.levels.Len()
}

// levelAt returns the level-th best level, 1-based. Callers validate level.
func (s *bookSide) levelAt(level int) *priceLevel {
	var found *priceLevel
	n := 0
	s.levels.Ascend(func(lvl *priceLevel) bool {
		n++
		if n == level {
			found = lvl
			return false
		}
		return true
	})
	return found
}

// best returns the top of the side, or nil when the side is empty.
func (s *bookSide) best() *priceLevel {
	lvl, ok := s.levels.Min()
	if !ok {
		return nil
	}
	return lvl
}

// iterate walks the levels best first until fn returns false.
func (s *bookSide) iterate(fn func(*priceLevel) bool) {
	s.levels.Ascend(fn)
}

