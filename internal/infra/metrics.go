package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight counters for the sequencer.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	eventsProcessed atomic.Uint64
	ordersAdded     atomic.Uint64
	ordersRemoved   atomic.Uint64
	ordersUpdated   atomic.Uint64
	commandsIgnored atomic.Uint64
	errorsTotal     atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// RecordEvent records an applied event with its latency.
func (m *Metrics) RecordEvent(latencyNs int64) {
	m.eventsProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordAdd records an order added to the book.
func (m *Metrics) RecordAdd() {
	m.ordersAdded.Add(1)
}

// RecordRemove records an order removed from the book.
func (m *Metrics) RecordRemove() {
	m.ordersRemoved.Add(1)
}

// RecordUpdate records a size update of a resting order.
func (m *Metrics) RecordUpdate() {
	m.ordersUpdated.Add(1)
}

// RecordIgnored records a remove or update that targeted an unknown order.
func (m *Metrics) RecordIgnored() {
	m.commandsIgnored.Add(1)
}

// RecordError records a rejected command.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	EventsProcessed uint64
	OrdersAdded     uint64
	OrdersRemoved   uint64
	OrdersUpdated   uint64
	CommandsIgnored uint64
	ErrorsTotal     uint64
	AvgLatencyNs    int64
	Timestamp       time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		EventsProcessed: m.eventsProcessed.Load(),
		OrdersAdded:     m.ordersAdded.Load(),
		OrdersRemoved:   m.ordersRemoved.Load(),
		OrdersUpdated:   m.ordersUpdated.Load(),
		CommandsIgnored: m.commandsIgnored.Load(),
		ErrorsTotal:     m.errorsTotal.Load(),
		AvgLatencyNs:    avgLatency,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.eventsProcessed.Store(0)
	m.ordersAdded.Store(0)
	m.ordersRemoved.Store(0)
	m.ordersUpdated.Store(0)
	m.commandsIgnored.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}
