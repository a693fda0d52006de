package event

import (
	"testing"

	"order_book/internal/domain"

	"github.com/shopspring/decimal"
)

func TestReleaseResetsFields(t *testing.T) {
	t.Run("add order", func(t *testing.T) {
		ev := AcquireAddOrderEvent()
		ev.Seq = 7
		ev.Ts = 1000
		ev.Order = domain.Order{ID: 1, Price: decimal.NewFromInt(100), Side: domain.SideBid, Size: 5}

		ReleaseAddOrderEvent(ev)

		if ev.Seq != 0 || ev.Ts != 0 || ev.Order.ID != 0 || ev.Order.Side != "" {
			t.Errorf("Expected zeroed event after release, got %+v", ev)
		}
	})

	t.Run("remove order", func(t *testing.T) {
		ev := AcquireRemoveOrderEvent()
		ev.Seq = 3
		ev.OrderID = 9
		Release(ev)
		if ev.Seq != 0 || ev.OrderID != 0 {
			t.Errorf("Expected zeroed event after release, got %+v", ev)
		}
	})

	t.Run("update size", func(t *testing.T) {
		ev := AcquireUpdateSizeEvent()
		ev.Seq = 4
		ev.OrderID = 2
		ev.Size = 3000
		Release(ev)
		if ev.Seq != 0 || ev.OrderID != 0 || ev.Size != 0 {
			t.Errorf("Expected zeroed event after release, got %+v", ev)
		}
	})

	t.Run("nil is ignored", func(t *testing.T) {
		ReleaseAddOrderEvent(nil)
		ReleaseRemoveOrderEvent(nil)
		ReleaseUpdateSizeEvent(nil)
	})
}

func TestEventTypes(t *testing.T) {
	events := []Event{
		&AddOrderEvent{BaseEvent: BaseEvent{Seq: 1}},
		&RemoveOrderEvent{BaseEvent: BaseEvent{Seq: 2}},
		&UpdateSizeEvent{BaseEvent: BaseEvent{Seq: 3}},
	}
	want := []Type{TypeAddOrder, TypeRemove, TypeUpdateSize}

	for i, ev := range events {
		if ev.GetSeq() != uint64(i+1) {
			t.Errorf("GetSeq() = %d, want %d", ev.GetSeq(), i+1)
		}
		if ev.GetType() != want[i] {
			t.Errorf("GetType() = %s, want %s", ev.GetType(), want[i])
		}
	}
}

func BenchmarkAcquireRelease(b *testing.B) {
	Warmup()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ev := AcquireAddOrderEvent()
		ev.Seq = uint64(i)
		ReleaseAddOrderEvent(ev)
	}
}
