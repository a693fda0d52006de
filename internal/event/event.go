// Package event defines the commands applied to the order book by the
// sequencer. Every event carries a gap-free sequence number.
package event

import "order_book/internal/domain"

// Type identifies the kind of an event.
type Type string

const (
	TypeAddOrder   Type = "ADD_ORDER"
	TypeRemove     Type = "REMOVE_ORDER"
	TypeUpdateSize Type = "UPDATE_SIZE"
)

// Event is a sequenced command.
type Event interface {
	GetSeq() uint64
	GetType() Type
}

// BaseEvent holds the fields shared by every event.
type BaseEvent struct {
	Seq uint64 `json:"seq"`
	Ts  int64  `json:"ts"` // Unix microseconds
}

func (b *BaseEvent) GetSeq() uint64 { return b.Seq }

// AddOrderEvent adds (or re-adds) an order.
type AddOrderEvent struct {
	BaseEvent
	Order domain.Order `json:"order"`
}

func (e *AddOrderEvent) GetType() Type { return TypeAddOrder }

// RemoveOrderEvent removes an order by id.
type RemoveOrderEvent struct {
	BaseEvent
	OrderID uint64 `json:"order_id"`
}

func (e *RemoveOrderEvent) GetType() Type { return TypeRemove }

// UpdateSizeEvent replaces the size of a resting order.
type UpdateSizeEvent struct {
	BaseEvent
	OrderID uint64 `json:"order_id"`
	Size    int64  `json:"size"`
}

func (e *UpdateSizeEvent) GetType() Type { return TypeUpdateSize }
