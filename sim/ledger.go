// Implements the FlightLedger, the per-flight policy record: baggage
// allowances, gate state, and accumulated totals. Workers never reach into
// ledger internals; all mutation goes through CheckGate, EvaluateBaggage and
// RecordBoarding, serialized by the ledger's own mutex.

package sim

import (
	"fmt"
	"math"
	"sync"
)

// BaggageOutcome is the result of evaluating one passenger's baggage against
// the flight's per-passenger allowance. An over-limit bag is a business
// outcome, not an error: the passenger still boards after the flat excess
// fee is charged.
type BaggageOutcome struct {
	OverLimit bool
}

// FlightLedger tracks one flight's capacity policy, gate state and running
// totals. Identity fields are immutable after construction. The gate
// transitions open to closed exactly once; totals and the checked-in count
// only ever grow.
//
// The aggregate weight/volume capacities and the max passenger count are
// informational: they feed the fill percentages but are never enforced as
// hard caps. A flight can be over-subscribed without the engine blocking
// further check-ins.
type FlightLedger struct {
	Notifier

	flightCode    string
	destination   string
	carrier       string
	maxPassengers int

	// Per-passenger allowances. Volume is derived once at construction.
	allowedWeight float64
	allowedLength float64
	allowedHeight float64
	allowedWidth  float64
	allowedVolume float64

	// Aggregate hold capacities, maxPassengers x per-passenger allowance.
	weightCapacity float64
	volumeCapacity float64

	excessFee     float64
	departureTick int64

	journal *Journal

	mu          sync.Mutex
	gateOpen    bool
	totalWeight float64
	totalVolume float64
	totalFees   float64
	checkedIn   int
}

// NewFlightLedger constructs a ledger with an open gate and zeroed totals.
func NewFlightLedger(cfg FlightConfig, journal *Journal) *FlightLedger {
	allowedVolume := cfg.AllowedLength * cfg.AllowedHeight * cfg.AllowedWidth
	return &FlightLedger{
		flightCode:     cfg.Code,
		destination:    cfg.Destination,
		carrier:        cfg.Carrier,
		maxPassengers:  cfg.MaxPassengers,
		allowedWeight:  cfg.AllowedWeight,
		allowedLength:  cfg.AllowedLength,
		allowedHeight:  cfg.AllowedHeight,
		allowedWidth:   cfg.AllowedWidth,
		allowedVolume:  allowedVolume,
		weightCapacity: float64(cfg.MaxPassengers) * cfg.AllowedWeight,
		volumeCapacity: float64(cfg.MaxPassengers) * allowedVolume,
		excessFee:      cfg.ExcessFee,
		departureTick:  cfg.DepartureTick,
		journal:        journal,
		gateOpen:       true,
	}
}

// CheckGate closes the gate the first time it is consulted at or after the
// departure tick, journals the departure and notifies subscribers. It
// returns the post-transition gate state.
func (l *FlightLedger) CheckGate(currentTick int64, label string) bool {
	l.mu.Lock()
	closedNow := false
	if l.gateOpen && currentTick >= l.departureTick {
		l.gateOpen = false
		closedNow = true
	}
	open := l.gateOpen
	l.mu.Unlock()

	if closedNow {
		l.journal.Append(fmt.Sprintf("%s Flight %s has taken off.", label, l.flightCode))
		l.Publish(l, l)
	}
	return open
}

// EvaluateBaggage accumulates the bag's weight and volume into the running
// totals unconditionally, then reports whether the bag exceeds the
// per-passenger allowance. When over limit, the flat excess fee is added to
// the collected-fees total.
func (l *FlightLedger) EvaluateBaggage(weight, length, height, width float64) BaggageOutcome {
	volume := length * height * width

	l.mu.Lock()
	defer l.mu.Unlock()
	l.totalWeight += weight
	l.totalVolume += volume
	over := weight > l.allowedWeight || volume > l.allowedVolume
	if over {
		l.totalFees += l.excessFee
	}
	return BaggageOutcome{OverLimit: over}
}

// RecordBoarding increments the checked-in passenger count and notifies
// subscribers. Never decremented.
func (l *FlightLedger) RecordBoarding() {
	l.mu.Lock()
	l.checkedIn++
	l.mu.Unlock()

	l.Publish(l, l)
}

// GateOpen reports whether boarding is currently allowed.
func (l *FlightLedger) GateOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gateOpen
}

func (l *FlightLedger) FlightCode() string     { return l.flightCode }
func (l *FlightLedger) Destination() string    { return l.destination }
func (l *FlightLedger) Carrier() string        { return l.carrier }
func (l *FlightLedger) MaxPassengers() int     { return l.maxPassengers }
func (l *FlightLedger) AllowedWeight() float64 { return l.allowedWeight }
func (l *FlightLedger) AllowedVolume() float64 { return l.allowedVolume }
func (l *FlightLedger) ExcessFee() float64     { return l.excessFee }
func (l *FlightLedger) DepartureTick() int64   { return l.departureTick }

// WeightCapacity returns the informational aggregate weight capacity.
func (l *FlightLedger) WeightCapacity() float64 { return l.weightCapacity }

// VolumeCapacity returns the informational aggregate volume capacity.
func (l *FlightLedger) VolumeCapacity() float64 { return l.volumeCapacity }

// TotalWeight returns the accumulated checked baggage weight.
func (l *FlightLedger) TotalWeight() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalWeight
}

// TotalVolume returns the accumulated checked baggage volume.
func (l *FlightLedger) TotalVolume() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalVolume
}

// TotalFees returns the accumulated excess fees collected.
func (l *FlightLedger) TotalFees() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalFees
}

// CheckedInCount returns the number of boarded passengers.
func (l *FlightLedger) CheckedInCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkedIn
}

// BaggagePercent returns how full the hold is, the worse of weight and
// volume utilization, rounded to one decimal place.
func (l *FlightLedger) BaggagePercent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	pct := math.Max(100*l.totalWeight/l.weightCapacity, 100*l.totalVolume/l.volumeCapacity)
	return math.Round(pct*10) / 10
}

// PassengerCapacityPercent returns the checked-in count as a percentage of
// the maximum passenger count.
func (l *FlightLedger) PassengerCapacityPercent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return 100 * float64(l.checkedIn) / float64(l.maxPassengers)
}
