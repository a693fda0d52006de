package event

import (
	"sync"

	"order_book/internal/domain"
)

// Event pools reduce GC pressure when commands arrive at a high rate.
//
// Usage:
//
//	ev := AcquireAddOrderEvent()
//	ev.Seq = next
//	ev.Order = o
//	inbox <- ev  // the sequencer releases it after applying
var addOrderPool = sync.Pool{
	New: func() interface{} {
		return &AddOrderEvent{}
	},
}

// AcquireAddOrderEvent gets an AddOrderEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireAddOrderEvent() *AddOrderEvent {
	return addOrderPool.Get().(*AddOrderEvent)
}

// ReleaseAddOrderEvent returns an AddOrderEvent to the pool.
// The event is reset to zero values before being pooled.
func ReleaseAddOrderEvent(ev *AddOrderEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Ts = 0
	ev.Order = domain.Order{}

	addOrderPool.Put(ev)
}

var removeOrderPool = sync.Pool{
	New: func() interface{} {
		return &RemoveOrderEvent{}
	},
}

// AcquireRemoveOrderEvent gets a RemoveOrderEvent from the pool.
func AcquireRemoveOrderEvent() *RemoveOrderEvent {
	return removeOrderPool.Get().(*RemoveOrderEvent)
}

// ReleaseRemoveOrderEvent returns a RemoveOrderEvent to the pool.
func ReleaseRemoveOrderEvent(ev *RemoveOrderEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Ts = 0
	ev.OrderID = 0

	removeOrderPool.Put(ev)
}

var updateSizePool = sync.Pool{
	New: func() interface{} {
		return &UpdateSizeEvent{}
	},
}

// AcquireUpdateSizeEvent gets an UpdateSizeEvent from the pool.
func AcquireUpdateSizeEvent() *UpdateSizeEvent {
	return updateSizePool.Get().(*UpdateSizeEvent)
}

// ReleaseUpdateSizeEvent returns an UpdateSizeEvent to the pool.
func ReleaseUpdateSizeEvent(ev *UpdateSizeEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Ts = 0
	ev.OrderID = 0
	ev.Size = 0

	updateSizePool.Put(ev)
}

// Release returns any pooled event to its pool.
func Release(ev Event) {
	switch e := ev.(type) {
	case *AddOrderEvent:
		ReleaseAddOrderEvent(e)
	case *RemoveOrderEvent:
		ReleaseRemoveOrderEvent(e)
	case *UpdateSizeEvent:
		ReleaseUpdateSizeEvent(e)
	}
}

// Warmup pre-allocates event objects to reduce GC pressure at startup.
func Warmup() {
	const batchSize = 1000

	adds := make([]*AddOrderEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		adds = append(adds, AcquireAddOrderEvent())
	}
	for _, ev := range adds {
		ReleaseAddOrderEvent(ev)
	}

	removes := make([]*RemoveOrderEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		removes = append(removes, AcquireRemoveOrderEvent())
	}
	for _, ev := range removes {
		ReleaseRemoveOrderEvent(ev)
	}

	updates := make([]*UpdateSizeEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		updates = append(updates, AcquireUpdateSizeEvent())
	}
	for _, ev := range updates {
		ReleaseUpdateSizeEvent(ev)
	}
}
