// Tracks simulation-wide counters for final reporting: notification volume
// per source while running, plus a per-flight summary computed from the
// stores at the end of the run.

package sim

import (
	"fmt"
	"sync"
)

// Metrics aggregates statistics about the simulation for final reporting.
// It subscribes to the same notification contract the front-end uses and
// counts event volume per source; domain totals are read from the stores
// when the run ends.
type Metrics struct {
	mu           sync.Mutex
	TickEvents   int // tick-advanced notifications observed
	QueueEvents  int // queue mutations observed
	LedgerEvents int // gate closures and boardings observed
	WorkerEvents int // worker state changes observed
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// HandleEvent implements Listener by counting notifications per source type.
func (m *Metrics) HandleEvent(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch e.Source.(type) {
	case *Clock:
		m.TickEvents++
	case *ArrivalQueue:
		m.QueueEvents++
	case *FlightLedger:
		m.LedgerEvents++
	case *CheckInWorker:
		m.WorkerEvents++
	}
}

// Counts returns a snapshot of the observed event volumes.
func (m *Metrics) Counts() (ticks, queue, ledgers, workers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TickEvents, m.QueueEvents, m.LedgerEvents, m.WorkerEvents
}

// Print displays the end-of-run summary: per-flight boarding and fill
// figures followed by engine-wide totals.
func (m *Metrics) Print(finalTick int64, flights *FlightStore, bookings *BookingStore, queue *ArrivalQueue) {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Final tick           : %d %s\n", finalTick, TickLabel(finalTick))

	var boarded int
	var fees float64
	for _, fl := range flights.All() {
		boarded += fl.CheckedInCount()
		fees += fl.TotalFees()
		gate := "open"
		if !fl.GateOpen() {
			gate = "closed"
		}
		fmt.Printf("Flight %-8s (%s, %s): %d/%d checked in (%.1f%%), hold %.1f%% full, £%.2f fees, gate %s\n",
			fl.FlightCode(), fl.Carrier(), fl.Destination(),
			fl.CheckedInCount(), fl.MaxPassengers(), fl.PassengerCapacityPercent(),
			fl.BaggagePercent(), fl.TotalFees(), gate)
	}

	var missed int
	for _, b := range bookings.All() {
		if b.Missed() && !b.CheckedIn() {
			missed++
		}
	}

	fmt.Printf("Passengers boarded   : %d of %d\n", boarded, bookings.Len())
	fmt.Printf("Missed flights       : %d\n", missed)
	fmt.Printf("Still in queue       : %d\n", queue.Len())
	fmt.Printf("Excess fees collected: £%.2f\n", fees)

	m.mu.Lock()
	fmt.Printf("Notifications        : %d tick, %d queue, %d ledger, %d worker\n",
		m.TickEvents, m.QueueEvents, m.LedgerEvents, m.WorkerEvents)
	m.mu.Unlock()
}
