package book

import (
	"testing"

	"order_book/internal/domain"

	"github.com/shopspring/decimal"
)

// BenchmarkOrderBook_AddRemove measures the add/remove hot path over a
// spread of price levels.
func BenchmarkOrderBook_AddRemove(b *testing.B) {
	book := New()
	prices := make([]decimal.Decimal, 64)
	for i := range prices {
		prices[i] = decimal.NewFromInt(int64(1000 + i))
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		id := uint64(i)
		o := domain.Order{ID: id, Price: prices[i%len(prices)], Side: domain.SideBid, Size: 1}
		if err := book.AddOrder(o); err != nil {
			b.Fatal(err)
		}
		if i >= 256 {
			book.RemoveOrder(id - 256)
		}
	}
}

func BenchmarkOrderBook_PriceForLevel(b *testing.B) {
	book := New()
	for i := 0; i < 1000; i++ {
		_ = book.AddOrder(domain.Order{ID: uint64(i), Price: decimal.NewFromInt(int64(i % 100)), Side: domain.SideOffer, Size: 1})
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := book.PriceForLevel(domain.SideOffer, 1+i%100); err != nil {
			b.Fatal(err)
		}
	}
}
